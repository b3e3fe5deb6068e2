package floor

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatBRL renders a decimal-string amount for display, pt-BR style
// (R$ 1.234,56). Unparseable input renders as zero, matching the safe
// fallback the floor views rely on. Formatting happens only at the last
// moment; amounts stay decimal strings everywhere else.
func FormatBRL(value string) string {
	d, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil {
		d = decimal.Zero
	}

	s := d.StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	intPart := s[:len(s)-3]
	fracPart := s[len(s)-2:]

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}

	out := "R$ " + b.String() + "," + fracPart
	if neg {
		out = "-" + out
	}
	return out
}
