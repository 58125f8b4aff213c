package zenvoice

import (
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/cockroachdb/errors"
	"github.com/shopspring/decimal"
)

// DefaultCurrency and DefaultLocale are used when nothing is configured.
const (
	DefaultCurrency = "INR"
	DefaultLocale   = "en-IN"
)

// Formatter formats amounts as localized currency strings.
type Formatter struct {
	cur    *money.Currency
	locale string
}

// NewFormatter returns a formatter for an ISO 4217 currency code. The locale
// only changes digit grouping: "en-IN" groups by lakh and crore (1,23,456.00),
// anything else groups by thousands.
func NewFormatter(code, locale string) (Formatter, error) {
	cur := money.GetCurrency(strings.ToUpper(code))
	if cur == nil {
		return Formatter{}, errors.Newf("unknown currency %q", code)
	}
	return Formatter{cur: cur, locale: locale}, nil
}

// MustFormatter is like NewFormatter but panics on error.
func MustFormatter(code, locale string) Formatter {
	f, err := NewFormatter(code, locale)
	if err != nil {
		panic(err.Error())
	}
	return f
}

// Currency returns the currency code.
func (f Formatter) Currency() string { return f.currency().Code }

// currency never returns nil, the zero Formatter formats in the default currency.
func (f Formatter) currency() *money.Currency {
	if f.cur == nil {
		return money.GetCurrency(DefaultCurrency)
	}
	return f.cur
}

// Format returns v rounded to the currency's fraction, e.g. "₹532.77".
// Amounts of any size are formatted exactly.
func (f Formatter) Format(v decimal.Decimal) string {
	cur := f.currency()
	fraction := int32(cur.Fraction)
	rounded := v.Round(fraction)

	digits, decimals, _ := strings.Cut(rounded.Abs().StringFixed(fraction), ".")
	amount := groupDigits(digits, cur.Thousand, f.locale == "en-IN")
	if decimals != "" {
		amount += cur.Decimal + decimals
	}
	s := strings.Replace(cur.Template, "1", amount, 1)
	s = strings.Replace(s, "$", cur.Grapheme, 1)
	if rounded.IsNegative() {
		s = "-" + s
	}
	return s
}

// groupDigits inserts sep between groups of the integer digits: groups of
// three, or with indian set, the last three digits then groups of two.
func groupDigits(digits, sep string, indian bool) string {
	if sep == "" || len(digits) <= 3 {
		return digits
	}
	size := 3
	if indian {
		size = 2
	}
	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]
	groups := []string{tail}
	for len(head) > size {
		groups = append([]string{head[len(head)-size:]}, groups...)
		head = head[:len(head)-size]
	}
	groups = append([]string{head}, groups...)
	return strings.Join(groups, sep)
}

// Symbol returns the currency symbol, e.g. "₹".
func (f Formatter) Symbol() string { return f.currency().Grapheme }
