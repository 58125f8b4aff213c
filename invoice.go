package zenvoice

import (
	"strings"

	"github.com/etnz/zenvoice/date"
	"github.com/shopspring/decimal"
)

// LineItem is one row of an invoice. Quantity and price are kept as the text
// the user typed, they are only interpreted when computing totals.
type LineItem struct {
	ID    ID
	Name  string // description
	Qty   string
	Price string
}

// Billable reports whether the item counts towards totals and documents,
// that is whether it has a description.
func (it LineItem) Billable() bool { return strings.TrimSpace(it.Name) != "" }

// Quantity returns the item quantity, 0 if it is not a valid non-negative number.
func (it LineItem) Quantity() decimal.Decimal { return coerce(it.Qty) }

// UnitPrice returns the item price, 0 if it is not a valid non-negative number.
func (it LineItem) UnitPrice() decimal.Decimal { return coerce(it.Price) }

// Amount returns quantity × price.
func (it LineItem) Amount() decimal.Decimal { return it.Quantity().Mul(it.UnitPrice()) }

// Invoice is a saved invoice, or the content of a draft.
//
// Customer name and address are a snapshot taken when the invoice is edited,
// later changes to the customer list do not affect it.
type Invoice struct {
	ID              ID
	Number          string
	Date            date.Date
	CustomerName    string
	CustomerAddress string
	Items           []LineItem
	TaxRate         decimal.Decimal // percent
	Totals
}

// BillableItems returns the items with a description, in order.
func (inv Invoice) BillableItems() []LineItem {
	var items []LineItem
	for _, it := range inv.Items {
		if it.Billable() {
			items = append(items, it)
		}
	}
	return items
}

// Recompute refreshes the invoice totals from its items and tax rate.
func (inv *Invoice) Recompute() { inv.Totals = ComputeTotals(inv.Items, inv.TaxRate) }

// clone returns a deep copy of the invoice.
func (inv Invoice) clone() Invoice {
	inv.Items = append([]LineItem(nil), inv.Items...)
	return inv
}

// Totals are the amounts derived from an invoice items.
type Totals struct {
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
}

// taxPlaces is the precision tax amounts are rounded to.
const taxPlaces = 2

var hundred = decimal.NewFromInt(100)

// ComputeTotals derives subtotal, tax and total from scratch.
//
// Items without a description are ignored. Malformed or negative quantities,
// prices and rates count as 0, ComputeTotals never fails. The tax is rounded
// to 2 places and total = subtotal + tax.
func ComputeTotals(items []LineItem, rate decimal.Decimal) Totals {
	subtotal := decimal.Zero
	for _, it := range items {
		if !it.Billable() {
			continue
		}
		subtotal = subtotal.Add(it.Amount())
	}
	if rate.IsNegative() {
		rate = decimal.Zero
	}
	tax := subtotal.Mul(rate).Div(hundred).Round(taxPlaces)
	return Totals{
		Subtotal: subtotal,
		Tax:      tax,
		Total:    subtotal.Add(tax),
	}
}

// coerce parses a user typed number, anything invalid or negative is 0.
func coerce(s string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil || d.IsNegative() {
		return decimal.Zero
	}
	return d
}
