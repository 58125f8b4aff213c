package zenvoice

import (
	"slices"

	"github.com/shopspring/decimal"
)

// recentCount is the number of invoices listed on the dashboard.
const recentCount = 5

// Stats summarizes a book for the dashboard.
type Stats struct {
	TotalSales decimal.Decimal // sum of all invoice totals
	Count      int
	Recent     []Invoice // latest saved first
}

// Stats computes the dashboard figures.
func (b *Book) Stats() Stats {
	s := Stats{TotalSales: decimal.Zero, Count: len(b.invoices)}
	for _, inv := range b.invoices {
		s.TotalSales = s.TotalSales.Add(inv.Total)
	}
	recent := b.Invoices()[max(0, len(b.invoices)-recentCount):]
	slices.Reverse(recent)
	s.Recent = recent
	return s
}

// Snapshot is the whole content of a book as a single JSON document.
type Snapshot struct {
	Business  BusinessProfile `json:"business"`
	Customers []Customer      `json:"customers"`
	Invoices  []Invoice       `json:"invoices"`
}

// Snapshot returns a copy of the book content.
func (b *Book) Snapshot() Snapshot {
	return Snapshot{
		Business:  b.profile,
		Customers: b.Customers(),
		Invoices:  b.Invoices(),
	}
}
