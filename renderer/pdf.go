package renderer

import (
	"bytes"
	"io"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/etnz/zenvoice"
	"github.com/jung-kurt/gofpdf"
)

// PDFFactory creates the drawing surface of a PDF document.
type PDFFactory func() *gofpdf.Fpdf

// A4 is the default PDFFactory: portrait A4 pages measured in millimeters.
func A4() *gofpdf.Fpdf { return gofpdf.New("P", "mm", "A4", "") }

// headerFill is the background color of the items table header.
var headerFill = [3]int{22, 160, 133}

// PDF draws doc and writes the finished file to w.
//
// The whole document is produced in memory first: when newPDF is nil, or the
// drawing fails, nothing is written and the error is marked with
// zenvoice.ErrExportUnavailable.
func PDF(w io.Writer, doc Document, newPDF PDFFactory) error {
	if newPDF == nil {
		return errors.Mark(errors.New("PDF library is not loaded"), zenvoice.ErrExportUnavailable)
	}
	pdf := newPDF()
	if pdf == nil {
		return errors.Mark(errors.New("PDF library is not loaded"), zenvoice.ErrExportUnavailable)
	}
	drawInvoice(pdf, doc)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return errors.Mark(errors.Wrap(err, "drawing PDF"), zenvoice.ErrExportUnavailable)
	}
	_, err := buf.WriteTo(w)
	return err
}

func drawInvoice(pdf *gofpdf.Fpdf, doc Document) {
	tr := latin(pdf, doc)
	pdf.SetMargins(14, 14, 10)
	pdf.AddPage()

	// business
	pdf.SetFont("Helvetica", "", 20)
	pdf.CellFormat(0, 10, tr(doc.Business.Name), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.MultiCell(0, 6, tr(doc.Business.Address), "", "L", false)
	pdf.CellFormat(0, 6, tr("Tax ID: "+doc.Business.TaxID), "", 1, "L", false, 0, "")
	pdf.Ln(6)

	// invoice
	pdf.SetFont("Helvetica", "", 16)
	pdf.CellFormat(0, 8, tr("Invoice #"+doc.Number), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 6, tr("Date: "+doc.Date), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	// customer
	pdf.CellFormat(0, 6, "Bill To:", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, 6, tr(doc.CustomerName), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.MultiCell(0, 6, tr(doc.CustomerAddress), "", "L", false)
	pdf.Ln(6)

	// items
	widths := []float64{86, 20, 40, 40}
	pdf.SetFillColor(headerFill[0], headerFill[1], headerFill[2])
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 11)
	for i, h := range []string{"Item", "Qty", "Price", "Amount"} {
		align := "R"
		if i == 0 {
			align = "L"
		}
		pdf.CellFormat(widths[i], 8, h, "1", 0, align, true, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "", 11)
	for _, r := range doc.Rows {
		pdf.CellFormat(widths[0], 7, tr(r.Name), "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[1], 7, tr(r.Qty), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[2], 7, tr(r.Price), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[3], 7, tr(r.Amount), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(4)

	// totals, labels right aligned on x=150 and values on x=200
	total := func(label, value string) {
		pdf.SetX(100)
		pdf.CellFormat(50, 7, tr(label), "", 0, "R", false, 0, "")
		pdf.CellFormat(50, 7, tr(value), "", 1, "R", false, 0, "")
	}
	pdf.SetFont("Helvetica", "", 12)
	total("Subtotal:", doc.Subtotal)
	total("Tax ("+doc.TaxRate+"%):", doc.Tax)
	pdf.SetFont("Helvetica", "B", 12)
	total("Total:", doc.Total)
}

// latin returns a translator from UTF-8 to the encoding of the core fonts.
// Currency symbols they cannot draw are replaced by the currency code.
func latin(pdf *gofpdf.Fpdf, doc Document) func(string) string {
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	drawable := true
	for _, r := range doc.Symbol {
		if r > 0xff {
			drawable = false
		}
	}
	return func(s string) string {
		if !drawable && doc.Symbol != "" {
			s = strings.ReplaceAll(s, doc.Symbol, doc.Currency+" ")
		}
		return tr(s)
	}
}
