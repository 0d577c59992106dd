package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatCOP renders a value the way every totals box in the product
// shows money: "$" prefix, dot-grouped thousands, no decimal point.
// The value is rounded to whole pesos first (display convention, the
// engine has already rounded settlement values).
func FormatCOP(d decimal.Decimal) string {
	rounded := Round(d)
	neg := rounded.IsNegative()
	digits := rounded.Abs().String()

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	b.WriteByte('$')
	b.WriteString(groupThousands(digits))
	return b.String()
}

// groupThousands inserts "." every three digits from the right.
func groupThousands(digits string) string {
	n := len(digits)
	if n <= 3 {
		return digits
	}
	var b strings.Builder
	lead := n % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < n; i += 3 {
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
