package zenvoice

import (
	"context"
	"testing"
	"time"

	"github.com/etnz/zenvoice/kv"
	"github.com/shopspring/decimal"
)

// testNow is the frozen time of test books.
var testNow = time.Date(2025, time.August, 1, 10, 0, 0, 0, time.UTC)

// D is a helper for test to create a decimal from a string const.
func D(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// item is a helper for test to create a line item.
func item(name, qty, price string) LineItem { return LineItem{Name: name, Qty: qty, Price: price} }

// newTestBook returns a book over an empty memory store, with a frozen clock.
func newTestBook(t *testing.T) (*Book, *kv.Adapter) {
	t.Helper()
	store := kv.NewAdapter(kv.NewMemory(), nil)
	return OpenBook(context.Background(), store, WithClock(func() time.Time { return testNow })), store
}

// draftFor returns a fresh draft of b for customer with the given items.
func draftFor(t *testing.T, b *Book, customer string, items ...LineItem) *Draft {
	t.Helper()
	d := b.NewDraft()
	d.SetCustomer(customer, b.Customers())
	for _, it := range items {
		added := d.AddItem()
		for field, value := range map[ItemField]string{FieldName: it.Name, FieldQty: it.Qty, FieldPrice: it.Price} {
			if err := d.UpdateItem(added.ID, field, value); err != nil {
				t.Fatalf("UpdateItem(%s, %q) unexpected error: %v", field, value, err)
			}
		}
	}
	return d
}
