package renderer

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/etnz/zenvoice"
	md "github.com/nao1215/markdown"
)

// asIs keeps cells as written: no wrapping, no upper-cased headers.
var asIs = md.TableOptions{}

// InvoicesMarkdown renders the invoice list, in book order.
func InvoicesMarkdown(invoices []zenvoice.Invoice, f zenvoice.Formatter) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Invoices")
	if len(invoices) == 0 {
		doc.PlainText("No invoices yet.")
		return doc.String()
	}
	table := md.TableSet{
		Header: []string{"Number", "Date", "Customer", "Total", "ID"},
	}
	for _, inv := range invoices {
		table.Rows = append(table.Rows, []string{
			inv.Number,
			inv.Date.String(),
			inv.CustomerName,
			f.Format(inv.Total),
			inv.ID.String(),
		})
	}
	doc.CustomTable(table, asIs)
	return doc.String()
}

// InvoiceMarkdown renders a single invoice document.
func InvoiceMarkdown(d Document) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Invoice %s", d.Number))
	doc.PlainText(fmt.Sprintf("Date: %s", d.Date))
	doc.H2("From")
	doc.PlainText(md.Bold(d.Business.Name))
	doc.PlainText(d.Business.Address)
	if d.Business.TaxID != "" {
		doc.PlainText("Tax ID: " + d.Business.TaxID)
	}
	doc.H2("To")
	doc.PlainText(md.Bold(d.CustomerName))
	if d.CustomerAddress != "" {
		doc.PlainText(d.CustomerAddress)
	}

	doc.H2("Items")
	items := md.TableSet{
		Header: []string{"Item", "Qty", "Price", "Amount"},
	}
	for _, r := range d.Rows {
		items.Rows = append(items.Rows, []string{r.Name, r.Qty, r.Price, r.Amount})
	}
	doc.CustomTable(items, asIs)

	doc.CustomTable(md.TableSet{
		Header: []string{"Subtotal", d.Subtotal},
		Rows: [][]string{
			{fmt.Sprintf("Tax (%s%%)", d.TaxRate), d.Tax},
			{md.Bold("Total"), md.Bold(d.Total)},
		},
	}, asIs)
	return doc.String()
}

// CustomersMarkdown renders the customer list.
func CustomersMarkdown(customers []zenvoice.Customer) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Customers")
	if len(customers) == 0 {
		doc.PlainText("No customers yet.")
		return doc.String()
	}
	table := md.TableSet{
		Header: []string{"Name", "Address", "ID"},
	}
	for _, c := range customers {
		table.Rows = append(table.Rows, []string{c.Name, oneLine(c.Address), c.ID.String()})
	}
	doc.CustomTable(table, asIs)
	return doc.String()
}

// SettingsMarkdown renders the business profile.
func SettingsMarkdown(p zenvoice.BusinessProfile) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Business Profile")
	doc.CustomTable(md.TableSet{
		Header: []string{"Setting", "Value"},
		Rows: [][]string{
			{"Name", p.Name},
			{"Address", oneLine(p.Address)},
			{"Tax ID", p.TaxID},
			{"Invoice prefix", p.InvoicePrefix},
			{"Next invoice number", strconv.Itoa(p.NextInvoiceNo)},
			{"Next invoice", p.NextNumber()},
		},
	}, asIs)
	return doc.String()
}

// DashboardMarkdown renders the dashboard: sales, count and recent invoices.
func DashboardMarkdown(s zenvoice.Stats, f zenvoice.Formatter) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Dashboard")
	doc.CustomTable(md.TableSet{
		Header: []string{md.Bold("Total Sales"), md.Bold(f.Format(s.TotalSales))},
		Rows: [][]string{
			{"Invoices", strconv.Itoa(s.Count)},
		},
	}, asIs)

	if len(s.Recent) > 0 {
		doc.H2("Recent Invoices")
		table := md.TableSet{
			Header: []string{"Number", "Date", "Customer", "Total"},
		}
		for _, inv := range s.Recent {
			table.Rows = append(table.Rows, []string{
				inv.Number,
				inv.Date.String(),
				inv.CustomerName,
				f.Format(inv.Total),
			})
		}
		doc.CustomTable(table, asIs)
	}
	return doc.String()
}

// oneLine flattens a multi-line address for a table cell.
func oneLine(s string) string {
	return strings.Join(strings.Fields(strings.ReplaceAll(s, "\n", ", ")), " ")
}
