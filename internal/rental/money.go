package rental

import (
	"strings"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// ParseAmount parses a decimal amount such as "1000", "1000.5" or "1,000.50"
// into cents. Negative amounts are rejected.
func ParseAmount(s string) (int64, error) {
	d, err := decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(s), ",", ""))
	if err != nil {
		return 0, invalid("amount %q", s)
	}

	return Cents(d)
}

// Cents converts a decimal amount into cents, rounding half away from zero.
func Cents(d decimal.Decimal) (int64, error) {
	if d.IsNegative() {
		return 0, invalid("amount %s is negative", d.String())
	}

	return d.Mul(hundred).Round(0).IntPart(), nil
}

// FormatAmount renders cents with two decimals.
func FormatAmount(cents int64) string {
	return decimal.New(cents, -2).StringFixed(2)
}
