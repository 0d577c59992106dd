/*
engine.go - Line and aggregate total calculation

PURPOSE:
  The arithmetic core. Given line items and a CalculationConfig, derives
  subtotal, discount, tax and total per line, then folds lines into
  document totals with a single aggregate retention.

ALGORITHM (per line):
  1. raw        = quantity * price
  2. discount   = raw * pct / 100   (percent mode)
                  clamp(abs, 0, raw) (absolute mode)
  3. base       = raw - discount    (the taxable base)
  4. exclusive  : tax = base * rate / 100
     inclusive  : tax = base - base / (1 + rate/100)
  5. Round subtotal, discount and tax once each; total is integer
     arithmetic over the rounded parts, so
     total == subtotal - discount + tax always holds exactly.

TAX-INCLUSIVE PRICING:
  When prices embed tax, subtotal and discount are restated pre-tax
  (divide by 1 + rate/100) so the reconciliation invariant keeps holding
  and the line total stays equal to the taxable base, which already
  contains the tax.

ROUNDING:
  Half-up to whole pesos, once at the end of each derivation. No
  intermediate rounding, so error does not compound across lines.

SEE ALSO:
  - types.go: Input/output shapes
  - engine_test.go: Property tests (identity, additivity, round-trip)
*/
package invoice

import (
	"github.com/shopspring/decimal"

	"github.com/villing/billing-engine/money"
)

var oneHundred = decimal.NewFromInt(100)

// Engine computes document totals. It is stateless and safe for
// concurrent use.
type Engine struct{}

// Line computes the derived totals for a single line item.
func (Engine) Line(item LineItem, config CalculationConfig) LineTotals {
	raw := item.Quantity.Mul(item.Price)

	var discount decimal.Decimal
	switch config.discountMode() {
	case DiscountAbsolute:
		discount = clamp(item.Discount, decimal.Zero, raw)
	default:
		discount = raw.Mul(item.Discount).Div(oneHundred)
	}

	base := raw.Sub(discount)

	var subtotal, tax decimal.Decimal
	if config.TaxIncluded {
		// Prices embed tax: back it out of every component so
		// subtotal - discount + tax == base still holds.
		divisor := decimal.NewFromInt(1).Add(item.Tax.Div(oneHundred))
		subtotal = raw.Div(divisor)
		discount = discount.Div(divisor)
		tax = base.Sub(base.Div(divisor))
	} else {
		subtotal = raw
		tax = base.Mul(item.Tax).Div(oneHundred)
	}

	rounded := LineTotals{
		Subtotal: money.Round(subtotal),
		Discount: money.Round(discount),
		Tax:      money.Round(tax),
	}
	rounded.Total = rounded.Subtotal.Sub(rounded.Discount).Add(rounded.Tax)
	return rounded
}

// Aggregate folds Line over every item and applies retention once to
// the aggregate subtotal. An empty item list yields all-zero totals.
func (Engine) Aggregate(items []LineItem, config CalculationConfig) AggregateTotals {
	agg := AggregateTotals{
		Subtotal:  decimal.Zero,
		Discount:  decimal.Zero,
		Tax:       decimal.Zero,
		Retention: decimal.Zero,
		Total:     decimal.Zero,
	}

	var engine Engine
	for _, item := range items {
		line := engine.Line(item, config)
		agg.Subtotal = agg.Subtotal.Add(line.Subtotal)
		agg.Discount = agg.Discount.Add(line.Discount)
		agg.Tax = agg.Tax.Add(line.Tax)
	}

	// Retention is an aggregate-level withholding, never per line.
	agg.Retention = money.Round(agg.Subtotal.Mul(config.Retention).Div(oneHundred))
	agg.Total = agg.Subtotal.Sub(agg.Discount).Add(agg.Tax).Sub(agg.Retention)
	return agg
}

func clamp(d, lo, hi decimal.Decimal) decimal.Decimal {
	// A refund line can make the raw amount negative; an absolute
	// discount still never exceeds it in magnitude.
	if hi.LessThan(lo) {
		lo, hi = hi, lo
	}
	if d.LessThan(lo) {
		return lo
	}
	if d.GreaterThan(hi) {
		return hi
	}
	return d
}
