package zenvoice

import "fmt"

// NextNumber returns the invoice number for a sequence value: the prefix, a
// dash and the sequence zero-padded to 3 digits ("INV-001"). Sequences above
// 999 are not truncated. The book keeps seq at 1 or more.
func NextNumber(prefix string, seq int) string {
	return fmt.Sprintf("%s-%03d", prefix, seq)
}
