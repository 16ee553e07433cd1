package parse

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var reCurrencyNoise = regexp.MustCompile(`[R$\s]`)

// Currency converts a matched amount string into a two-decimal value.
// Accepts Brazilian formatting (comma decimal, dot thousands) and plain
// decimals. When both ',' and '.' appear, the rightmost one is the decimal
// separator and the other marks thousands. Never panics: unparseable input
// returns 0.00 and an error for the caller to record as a warning.
func Currency(raw string) (decimal.Decimal, error) {
	cleaned := reCurrencyNoise.ReplaceAllString(raw, "")
	if cleaned == "" {
		return decimal.Zero, fmt.Errorf("parse currency %q: empty after cleanup", raw)
	}

	comma := strings.LastIndex(cleaned, ",")
	dot := strings.LastIndex(cleaned, ".")
	switch {
	case comma >= 0 && dot >= 0:
		if comma > dot {
			cleaned = strings.ReplaceAll(cleaned, ".", "")
			cleaned = strings.Replace(cleaned, ",", ".", 1)
		} else {
			cleaned = strings.ReplaceAll(cleaned, ",", "")
		}
	case comma >= 0:
		cleaned = strings.Replace(cleaned, ",", ".", 1)
	}

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse currency %q: %w", raw, err)
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("parse currency %q: negative amount", raw)
	}
	return d.Round(2), nil
}

// FormatCurrency renders a value the way Brazilian receipts print it,
// e.g. 1247.90 -> "R$ 1.247,90".
func FormatCurrency(d decimal.Decimal) string {
	fixed := d.Round(2).StringFixed(2)
	neg := strings.HasPrefix(fixed, "-")
	fixed = strings.TrimPrefix(fixed, "-")

	intPart, fracPart, _ := strings.Cut(fixed, ".")
	var grouped []string
	for len(intPart) > 3 {
		grouped = append([]string{intPart[len(intPart)-3:]}, grouped...)
		intPart = intPart[:len(intPart)-3]
	}
	grouped = append([]string{intPart}, grouped...)

	out := "R$ " + strings.Join(grouped, ".") + "," + fracPart
	if neg {
		out = "-" + out
	}
	return out
}
