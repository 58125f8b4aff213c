package zenvoice

import (
	"regexp"
	"slices"
	"time"

	"github.com/etnz/zenvoice/date"
	"github.com/shopspring/decimal"
)

// DefaultTaxRate is the tax rate, in percent, of a fresh draft.
var DefaultTaxRate = decimal.NewFromInt(18)

// ItemField names an editable field of a line item.
type ItemField string

const (
	FieldName  ItemField = "name"
	FieldQty   ItemField = "qty"
	FieldPrice ItemField = "price"
)

var (
	qtyPattern   = regexp.MustCompile(`^\d*$`)
	pricePattern = regexp.MustCompile(`^\d*\.?\d{0,2}$`)
)

// ValidQuantity reports whether s is acceptable quantity input: digits only, possibly empty.
func ValidQuantity(s string) bool { return qtyPattern.MatchString(s) }

// ValidPrice reports whether s is acceptable price input: digits with at most
// two decimals, possibly empty.
func ValidPrice(s string) bool { return pricePattern.MatchString(s) }

// Draft is an invoice being edited. A fresh draft has no id, its number
// follows the business profile (see Sync) until it is saved.
//
// Every change recomputes the totals.
type Draft struct {
	inv Invoice
	ids *idGenerator
}

// NewDraft returns an empty draft numbered from p, dated on and taxed at rate.
func NewDraft(p BusinessProfile, on date.Date, rate decimal.Decimal) *Draft {
	return newDraft(p, on, rate, newIDGenerator(time.Now))
}

func newDraft(p BusinessProfile, on date.Date, rate decimal.Decimal, ids *idGenerator) *Draft {
	d := &Draft{
		inv: Invoice{
			Number:  p.NextNumber(),
			Date:    on,
			TaxRate: rate,
		},
		ids: ids,
	}
	d.inv.Recompute()
	return d
}

// EditDraft returns a draft loaded with a copy of a saved invoice.
func EditDraft(inv Invoice) *Draft {
	return editDraft(inv, newIDGenerator(time.Now))
}

func editDraft(inv Invoice, ids *idGenerator) *Draft {
	d := &Draft{inv: inv.clone(), ids: ids}
	for _, it := range d.inv.Items {
		ids.observe(it.ID)
	}
	d.inv.Recompute()
	return d
}

// Invoice returns a copy of the draft content.
func (d *Draft) Invoice() Invoice { return d.inv.clone() }

// IsNew reports whether the draft has never been saved.
func (d *Draft) IsNew() bool { return d.inv.ID.IsZero() }

// Sync updates the number of a fresh draft after a profile change. Saved
// drafts keep their number.
func (d *Draft) Sync(p BusinessProfile) {
	if d.IsNew() {
		d.inv.Number = p.NextNumber()
	}
}

// SetNumber overrides the invoice number. No uniqueness check is made.
func (d *Draft) SetNumber(number string) { d.inv.Number = number }

// SetDate sets the invoice date.
func (d *Draft) SetDate(on date.Date) { d.inv.Date = on }

// SetCustomer sets the customer name. When it matches a known customer its
// address is copied, otherwise the address is cleared.
func (d *Draft) SetCustomer(name string, customers []Customer) {
	d.inv.CustomerName = name
	d.inv.CustomerAddress = ""
	for _, c := range customers {
		if c.Name == name {
			d.inv.CustomerAddress = c.Address
			break
		}
	}
}

// SetCustomerAddress overrides the customer address snapshot.
func (d *Draft) SetCustomerAddress(address string) { d.inv.CustomerAddress = address }

// SetTaxRate sets the tax rate in percent.
func (d *Draft) SetTaxRate(rate decimal.Decimal) {
	d.inv.TaxRate = rate
	d.inv.Recompute()
}

// AddItem appends an empty item (quantity 1, price 0) and returns it.
func (d *Draft) AddItem() LineItem {
	it := LineItem{ID: d.ids.Next(), Qty: "1", Price: "0"}
	d.inv.Items = append(d.inv.Items, it)
	d.inv.Recompute()
	return it
}

// UpdateItem changes one field of an item. Quantities must be digits only and
// prices digits with up to two decimals, other values are rejected with a
// validation error and the item is left unchanged.
func (d *Draft) UpdateItem(id ID, field ItemField, value string) error {
	i := slices.IndexFunc(d.inv.Items, func(it LineItem) bool { return it.ID == id })
	if i < 0 {
		return validationError("No such item " + id.String())
	}
	it := &d.inv.Items[i]
	switch field {
	case FieldName:
		it.Name = value
	case FieldQty:
		if !ValidQuantity(value) {
			return validationError("Quantity must be a whole number, got " + value)
		}
		it.Qty = value
	case FieldPrice:
		if !ValidPrice(value) {
			return validationError("Price must be a number with at most 2 decimals, got " + value)
		}
		it.Price = value
	default:
		return validationError("Unknown item field " + string(field))
	}
	d.inv.Recompute()
	return nil
}

// RemoveItem removes an item, unknown ids are ignored.
func (d *Draft) RemoveItem(id ID) {
	d.inv.Items = slices.DeleteFunc(d.inv.Items, func(it LineItem) bool { return it.ID == id })
	d.inv.Recompute()
}

// saved records the identity of the stored invoice so that saving the draft
// again edits it.
func (d *Draft) saved(inv Invoice) {
	d.inv.ID = inv.ID
	d.inv.Totals = inv.Totals
}
