// Package renderer turns invoices and book summaries into documents: print
// ready HTML, PDF and markdown views.
package renderer

import (
	"github.com/etnz/zenvoice"
)

// Document holds the fields of an invoice as they appear on paper. Amounts are
// already formatted.
type Document struct {
	Business zenvoice.BusinessProfile

	Number string
	Date   string

	CustomerName    string
	CustomerAddress string

	Rows []Row

	TaxRate  string // percent, e.g. "18"
	Subtotal string
	Tax      string
	Total    string

	Currency string // ISO code
	Symbol   string
}

// Row is a billable line of a Document.
type Row struct {
	Name   string
	Qty    string
	Price  string
	Amount string
}

// NewDocument prepares inv for rendering. Only billable items are listed, and
// totals are recomputed from them so the document is always consistent.
func NewDocument(p zenvoice.BusinessProfile, inv zenvoice.Invoice, f zenvoice.Formatter) Document {
	inv.Recompute()
	doc := Document{
		Business:        p,
		Number:          inv.Number,
		Date:            inv.Date.String(),
		CustomerName:    inv.CustomerName,
		CustomerAddress: inv.CustomerAddress,
		TaxRate:         inv.TaxRate.String(),
		Subtotal:        f.Format(inv.Subtotal),
		Tax:             f.Format(inv.Tax),
		Total:           f.Format(inv.Total),
		Currency:        f.Currency(),
		Symbol:          f.Symbol(),
	}
	for _, it := range inv.BillableItems() {
		doc.Rows = append(doc.Rows, Row{
			Name:   it.Name,
			Qty:    it.Qty,
			Price:  f.Format(it.UnitPrice()),
			Amount: f.Format(it.Amount()),
		})
	}
	return doc
}
