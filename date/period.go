package date

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
)

// Period is a calendar span used to group invoices.
type Period int

const (
	Monthly Period = iota
	Quarterly
	Yearly
)

func (p Period) String() string {
	switch p {
	case Monthly:
		return "monthly"
	case Quarterly:
		return "quarterly"
	case Yearly:
		return "yearly"
	default:
		panic(fmt.Sprintf("unknown period %d", p))
	}
}

// ParsePeriod accepts both the adjective and the noun ("monthly", "month").
func ParsePeriod(p string) (Period, error) {
	switch strings.ToLower(strings.TrimSpace(p)) {
	case "monthly", "month":
		return Monthly, nil
	case "quarterly", "quarter":
		return Quarterly, nil
	case "yearly", "year":
		return Yearly, nil
	default:
		return Monthly, errors.Newf("unknown period %q", p)
	}
}

// StartOf returns the first day of the period containing d.
func (d Date) StartOf(p Period) Date {
	switch p {
	case Quarterly:
		return New(d.y, d.m-(d.m-1)%3, 1)
	case Yearly:
		return New(d.y, 1, 1)
	default:
		return New(d.y, d.m, 1)
	}
}

// EndOf returns the last day of the period containing d.
func (d Date) EndOf(p Period) Date {
	s := d.StartOf(p)
	switch p {
	case Quarterly:
		return New(s.y, s.m+3, 0)
	case Yearly:
		return New(s.y+1, 1, 0)
	default:
		return New(s.y, s.m+1, 0)
	}
}

// Identifier names the period containing d: "2025-08", "2025-Q3" or "2025".
func (p Period) Identifier(d Date) string {
	switch p {
	case Quarterly:
		return fmt.Sprintf("%d-Q%d", d.y, (int(d.m)-1)/3+1)
	case Yearly:
		return fmt.Sprintf("%d", d.y)
	default:
		return fmt.Sprintf("%d-%02d", d.y, int(d.m))
	}
}
