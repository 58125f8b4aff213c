package date

import "fmt"

// Range is an inclusive span of days. A zero bound leaves that side open.
type Range struct {
	From, To Date
}

// NewRange returns the range of the period containing d.
func NewRange(d Date, p Period) Range {
	return Range{From: d.StartOf(p), To: d.EndOf(p)}
}

// Contains reports whether d falls within r. The zero date is never contained
// in a bounded range.
func (r Range) Contains(d Date) bool {
	if r.IsOpen() {
		return true
	}
	if d.IsZero() {
		return false
	}
	if !r.From.IsZero() && d.Before(r.From) {
		return false
	}
	if !r.To.IsZero() && d.After(r.To) {
		return false
	}
	return true
}

// IsOpen reports whether r has no bound at all.
func (r Range) IsOpen() bool { return r.From.IsZero() && r.To.IsZero() }

func (r Range) String() string {
	switch {
	case r.IsOpen():
		return "all dates"
	case r.From.IsZero():
		return fmt.Sprintf("until %s", r.To)
	case r.To.IsZero():
		return fmt.Sprintf("since %s", r.From)
	case r.From == r.To:
		return r.From.String()
	default:
		return fmt.Sprintf("%s to %s", r.From, r.To)
	}
}
