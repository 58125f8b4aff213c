package zenvoice

import (
	"math/rand"
	"strconv"
	"testing"

	"github.com/shopspring/decimal"
)

func TestComputeTotals(t *testing.T) {
	tests := []struct {
		name                 string
		items                []LineItem
		rate                 string
		subtotal, tax, total string
	}{
		{
			name:     "single item 18%",
			items:    []LineItem{item("Consulting", "3", "150.50")},
			rate:     "18",
			subtotal: "451.50", tax: "81.27", total: "532.77",
		},
		{
			name:     "empty",
			rate:     "18",
			subtotal: "0", tax: "0", total: "0",
		},
		{
			name:     "items without description are ignored",
			items:    []LineItem{item("A", "2", "10"), item("", "5", "100"), item("   ", "1", "1")},
			rate:     "10",
			subtotal: "20", tax: "2", total: "22",
		},
		{
			name:     "malformed numbers count as zero",
			items:    []LineItem{item("A", "abc", "10"), item("B", "2", "1,5"), item("C", "", ""), item("D", "1", "4")},
			rate:     "0",
			subtotal: "4", tax: "0", total: "4",
		},
		{
			name:     "negative values count as zero",
			items:    []LineItem{item("A", "-2", "10"), item("B", "2", "-10"), item("C", "1", "5")},
			rate:     "-5",
			subtotal: "5", tax: "0", total: "5",
		},
		{
			name:     "fractional rate is rounded to cents",
			items:    []LineItem{item("A", "1", "10.01")},
			rate:     "12.5",
			subtotal: "10.01", tax: "1.25", total: "11.26",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ComputeTotals(tc.items, D(tc.rate))
			if !got.Subtotal.Equal(D(tc.subtotal)) {
				t.Errorf("Subtotal = %s, want %s", got.Subtotal, tc.subtotal)
			}
			if !got.Tax.Equal(D(tc.tax)) {
				t.Errorf("Tax = %s, want %s", got.Tax, tc.tax)
			}
			if !got.Total.Equal(D(tc.total)) {
				t.Errorf("Total = %s, want %s", got.Total, tc.total)
			}
		})
	}
}

// TestComputeTotalsProperty checks total = subtotal × (1 + r/100) and
// subtotal = Σ qty × price over described items on random inputs.
func TestComputeTotalsProperty(t *testing.T) {
	rnd := rand.New(rand.NewSource(42))
	tolerance := D("0.005")
	for n := 0; n < 200; n++ {
		var items []LineItem
		want := decimal.Zero
		for i := rnd.Intn(6); i > 0; i-- {
			qty := rnd.Intn(20)
			cents := rnd.Intn(100000)
			name := ""
			if rnd.Intn(4) > 0 {
				name = "item " + strconv.Itoa(i)
			}
			price := decimal.New(int64(cents), -2)
			items = append(items, item(name, strconv.Itoa(qty), price.StringFixed(2)))
			if name != "" {
				want = want.Add(price.Mul(decimal.NewFromInt(int64(qty))))
			}
		}
		rate := decimal.New(int64(rnd.Intn(3000)), -2)

		got := ComputeTotals(items, rate)
		if !got.Subtotal.Equal(want) {
			t.Fatalf("Subtotal(%v) = %s, want %s", items, got.Subtotal, want)
		}
		exact := want.Mul(decimal.NewFromInt(1).Add(rate.Div(D("100"))))
		if diff := got.Total.Sub(exact).Abs(); diff.GreaterThan(tolerance) {
			t.Fatalf("Total(%v, %s) = %s, want %s within %s", items, rate, got.Total, exact, tolerance)
		}
		if !got.Total.Equal(got.Subtotal.Add(got.Tax)) {
			t.Fatalf("Total %s != Subtotal %s + Tax %s", got.Total, got.Subtotal, got.Tax)
		}
	}
}

func TestBillableItems(t *testing.T) {
	inv := Invoice{Items: []LineItem{item("A", "1", "1"), item("", "1", "1"), item("B", "1", "1")}}
	got := inv.BillableItems()
	if len(got) != 2 || got[0].Name != "A" || got[1].Name != "B" {
		t.Errorf("BillableItems() = %v, want items A and B", got)
	}
}

func TestNextNumber(t *testing.T) {
	tests := []struct {
		prefix string
		seq    int
		want   string
	}{
		{"INV", 1, "INV-001"},
		{"INV", 2, "INV-002"},
		{"INV", 42, "INV-042"},
		{"ZV", 999, "ZV-999"},
		{"ZV", 1234, "ZV-1234"},
		{"", 7, "-007"},
	}
	for _, tc := range tests {
		if got := NextNumber(tc.prefix, tc.seq); got != tc.want {
			t.Errorf("NextNumber(%q, %d) = %q, want %q", tc.prefix, tc.seq, got, tc.want)
		}
		if again := NextNumber(tc.prefix, tc.seq); again != NextNumber(tc.prefix, tc.seq) {
			t.Errorf("NextNumber(%q, %d) is not stable: %q", tc.prefix, tc.seq, again)
		}
	}
}
