// Package money formats amounts in the single configured display currency and
// provides the percentage helper shared by every instrument.
package money

import (
	"strings"

	gomoney "github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Formatter renders whole-unit amounts (no fractional digits) in one currency.
type Formatter struct {
	currency gomoney.Currency
	lakh     bool
}

// NewFormatter returns a Formatter for an ISO 4217 currency code and a locale.
// Locales ending in "-IN" group digits the Indian way (1,07,763); any other
// locale groups by thousands. Unknown currency codes render with the code
// as their symbol.
func NewFormatter(code, locale string) *Formatter {
	// money.New never returns a nil currency, even for unknown codes
	cur := *gomoney.New(0, strings.ToUpper(code)).Currency()
	return &Formatter{
		currency: cur,
		lakh:     strings.HasSuffix(strings.ToUpper(locale), "-IN"),
	}
}

// Code returns the ISO currency code of the formatter.
func (f *Formatter) Code() string { return f.currency.Code }

// Format rounds amount half away from zero to whole units and renders it with
// the currency symbol, e.g. 107763.26 -> "₹1,07,763" and -1500 -> "-₹1,500".
func (f *Formatter) Format(amount float64) string {
	d := decimal.NewFromFloat(amount).Round(0)
	negative := d.IsNegative()
	digits := d.Abs().String()

	grouped := group(digits, f.currency.Thousand, f.lakh)
	s := strings.Replace(f.currency.Template, "1", grouped, 1)
	s = strings.Replace(s, "$", f.currency.Grapheme, 1)
	if negative {
		return "-" + s
	}
	return s
}

func group(digits, sep string, lakh bool) string {
	if len(digits) <= 3 {
		return digits
	}
	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]
	size := 3
	if lakh {
		size = 2
	}
	var parts []string
	for len(head) > size {
		parts = append([]string{head[len(head)-size:]}, parts...)
		head = head[:len(head)-size]
	}
	parts = append([]string{head}, parts...)
	parts = append(parts, tail)
	return strings.Join(parts, sep)
}

// Percentage returns numerator/denominator*100, or 0 when denominator is not positive.
func Percentage(numerator, denominator float64) float64 {
	if denominator <= 0 {
		return 0
	}
	return numerator / denominator * 100
}

// Sum adds amounts in decimal arithmetic so that totals of many records do not
// accumulate binary floating point error.
func Sum(amounts ...float64) float64 {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(decimal.NewFromFloat(a))
	}
	return total.InexactFloat64()
}
