package cmd

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/etnz/zenvoice"
)

// itemSpec is a line item typed on the command line.
type itemSpec struct {
	name, qty, price string
}

// itemList is a flag.Value collecting repeated "description;qty;price" items.
// Quantity and price are optional and default to 1 and 0.
type itemList []itemSpec

func (l *itemList) String() string {
	var parts []string
	for _, it := range *l {
		parts = append(parts, it.name+";"+it.qty+";"+it.price)
	}
	return strings.Join(parts, ", ")
}

func (l *itemList) Set(v string) error {
	fields := strings.SplitN(v, ";", 3)
	it := itemSpec{name: strings.TrimSpace(fields[0]), qty: "1", price: "0"}
	if len(fields) > 1 {
		it.qty = strings.TrimSpace(fields[1])
	}
	if len(fields) > 2 {
		it.price = strings.TrimSpace(fields[2])
	}
	if !zenvoice.ValidQuantity(it.qty) {
		return errors.Newf("invalid quantity %q, want a whole number", it.qty)
	}
	if !zenvoice.ValidPrice(it.price) {
		return errors.Newf("invalid price %q, want a number with at most 2 decimals", it.price)
	}
	*l = append(*l, it)
	return nil
}

// addTo appends the items to the draft.
func (l itemList) addTo(d *zenvoice.Draft) error {
	for _, spec := range l {
		it := d.AddItem()
		for _, u := range []struct {
			field zenvoice.ItemField
			value string
		}{
			{zenvoice.FieldName, spec.name},
			{zenvoice.FieldQty, spec.qty},
			{zenvoice.FieldPrice, spec.price},
		} {
			if err := d.UpdateItem(it.ID, u.field, u.value); err != nil {
				return err
			}
		}
	}
	return nil
}

// idList is a flag.Value collecting repeated ids.
type idList []zenvoice.ID

func (l *idList) String() string {
	var parts []string
	for _, id := range *l {
		parts = append(parts, id.String())
	}
	return strings.Join(parts, ", ")
}

func (l *idList) Set(v string) error {
	id, err := zenvoice.ParseID(v)
	if err != nil {
		return err
	}
	*l = append(*l, id)
	return nil
}
