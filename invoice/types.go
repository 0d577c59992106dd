/*
Package invoice implements the monetary calculation engine shared by
every document type in the system.

PURPOSE:
  Deterministic, side-effect-free conversion of raw line-item inputs
  (quantity, unit price, discount, tax rate) into display- and
  submission-ready totals. The same engine serves sales invoices, POS
  tickets, purchase invoices, credit/debit notes, remisions and stock
  valuations, so sign and rounding conventions stay consistent across
  the whole product.

KEY CONCEPTS IN THIS FILE (types.go):
  - LineItem: one sellable/purchasable entry on a document
  - CalculationConfig: tax-inclusive toggle, discount mode, retention
  - LineTotals / AggregateTotals: derived values, whole pesos
  - DocumentKind: which document the totals belong to

DESIGN PRINCIPLES:
  1. Purity: inputs are never mutated; every call allocates fresh outputs
  2. Precision: decimal.Decimal end to end, rounded once per derivation
  3. Sign fidelity: credit notes pass negated quantities and the engine
     propagates the sign through every step

SEE ALSO:
  - engine.go: The calculation algorithms
  - ../money: Rounding and formatting primitives
*/
package invoice

import "github.com/shopspring/decimal"

// =============================================================================
// DOCUMENT KINDS
// =============================================================================

// DocumentKind identifies which document a set of totals belongs to.
type DocumentKind string

const (
	KindSale           DocumentKind = "sale"
	KindPOS            DocumentKind = "pos"
	KindPurchase       DocumentKind = "purchase"
	KindCreditNote     DocumentKind = "credit_note"
	KindDebitNote      DocumentKind = "debit_note"
	KindRemision       DocumentKind = "remision"
	KindStockValuation DocumentKind = "stock_valuation"
)

// Valid reports whether k is a known document kind.
func (k DocumentKind) Valid() bool {
	switch k {
	case KindSale, KindPOS, KindPurchase, KindCreditNote, KindDebitNote,
		KindRemision, KindStockValuation:
		return true
	}
	return false
}

// =============================================================================
// INPUTS
// =============================================================================

// LineItem is one product entry on a document. Quantity may be
// fractional (weight-based items) and may be negative on credit notes;
// the engine propagates the sign, it never validates it away.
type LineItem struct {
	Quantity decimal.Decimal
	Price    decimal.Decimal // unit price, whole pesos
	Discount decimal.Decimal // percentage or absolute, per DiscountMode
	Tax      decimal.Decimal // percentage rate, e.g. 19 for 19% VAT
}

// NewLineItem builds a LineItem from raw float inputs, the shape most
// callers (JSON handlers, DB rows) hold them in.
func NewLineItem(quantity, price, discount, tax float64) LineItem {
	return LineItem{
		Quantity: decimal.NewFromFloat(quantity),
		Price:    decimal.NewFromFloat(price),
		Discount: decimal.NewFromFloat(discount),
		Tax:      decimal.NewFromFloat(tax),
	}
}

// DiscountMode selects how LineItem.Discount is interpreted.
type DiscountMode string

const (
	// DiscountPercent: Discount is a 0-100 percentage of the raw amount.
	DiscountPercent DiscountMode = "percent"

	// DiscountAbsolute: Discount is an absolute peso amount per line,
	// clamped to [0, rawAmount].
	DiscountAbsolute DiscountMode = "absolute"
)

// CalculationConfig controls engine behavior for one document.
type CalculationConfig struct {
	// TaxIncluded: when true, Price already embeds tax and the engine
	// backs it out instead of adding it on top.
	TaxIncluded bool

	// DiscountMode defaults to DiscountPercent when empty.
	DiscountMode DiscountMode

	// Retention is a withholding percentage applied once to the
	// aggregate subtotal on purchase-side documents. Never per line.
	Retention decimal.Decimal
}

func (c CalculationConfig) discountMode() DiscountMode {
	if c.DiscountMode == "" {
		return DiscountPercent
	}
	return c.DiscountMode
}

// =============================================================================
// OUTPUTS
// =============================================================================

// LineTotals are the derived values for a single line, rounded to whole
// pesos. Total always equals Subtotal - Discount + Tax exactly.
type LineTotals struct {
	Subtotal decimal.Decimal
	Discount decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
}

// AggregateTotals are the document-level totals. The reconciliation
// invariant Total == Subtotal - Discount + Tax - Retention holds with
// exact integer arithmetic, no tolerance.
type AggregateTotals struct {
	Subtotal  decimal.Decimal
	Discount  decimal.Decimal
	Tax       decimal.Decimal
	Retention decimal.Decimal
	Total     decimal.Decimal
}
