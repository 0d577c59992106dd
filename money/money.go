/*
Package money provides currency primitives for Colombian peso amounts.

PURPOSE:
  Every monetary value in the system flows through this package. It fixes
  the rounding policy (round half-up to whole pesos, once per derived
  value), the display conventions (integer-grouped es-CO formatting, the
  integer/fraction split used for visual cent emphasis), and the tolerant
  parsing used at input boundaries.

KEY CONCEPTS IN THIS FILE (money.go):
  - Round: the single rounding policy for settlement math
  - Split: truncating integer/fraction extraction for display
  - Parse: tolerant string -> decimal coercion

DESIGN PRINCIPLES:
  1. Precision: Uses decimal.Decimal to avoid floating-point errors
  2. Whole-unit currency: COP has no circulating sub-unit; settlement
     values are whole pesos, fractions exist only for display
  3. Round once: rounding happens at the end of each derivation, never
     on intermediate values

SEE ALSO:
  - format.go: Currency string formatting
  - invoice/engine.go: Main consumer of Round
*/
package money

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// =============================================================================
// ROUNDING
// =============================================================================

// Round rounds a monetary value to the nearest whole peso, half away
// from zero. For the non-negative values produced by the calculation
// engine this is standard round-half-up; for negated refund lines the
// rounding mirrors symmetrically.
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(0)
}

// Zero is the additive identity for monetary folds.
var Zero = decimal.Zero

// =============================================================================
// DISPLAY SPLIT
// =============================================================================

// Parts is a currency value split for display: the integer part rendered
// large, the two-digit fraction rendered small next to it.
type Parts struct {
	Integer int64  `json:"integer"`
	Decimal string `json:"decimal"`
}

// Split separates a value into its integer part and a two-digit
// zero-padded fractional remainder. Both parts truncate toward zero;
// Split never rounds, because it feeds visual emphasis of cents, not
// settlement math. Stored amounts may carry fractional cents even though
// settlement values are whole pesos.
func Split(d decimal.Decimal) Parts {
	intPart := d.IntPart()
	frac := d.Sub(decimal.NewFromInt(intPart)).Abs()
	cents := frac.Shift(2).Truncate(0).IntPart()
	return Parts{
		Integer: intPart,
		Decimal: fmt.Sprintf("%02d", cents),
	}
}

// =============================================================================
// PARSING
// =============================================================================

// Parse coerces a user- or storage-supplied numeric string into a
// decimal. It tolerates surrounding whitespace, a leading currency sign
// and thousands separators, but rejects anything non-numeric (including
// NaN/Inf spellings) so corrupt amounts fail at the boundary instead of
// surfacing mid-computation.
func Parse(s string) (decimal.Decimal, error) {
	cleaned := strings.TrimSpace(s)
	cleaned = strings.TrimPrefix(cleaned, "$")
	cleaned = strings.TrimSpace(cleaned)
	// es-CO convention: "." groups thousands, "," marks decimals.
	if strings.Contains(cleaned, ",") {
		cleaned = strings.ReplaceAll(cleaned, ".", "")
		cleaned = strings.ReplaceAll(cleaned, ",", ".")
	} else if strings.Count(cleaned, ".") > 1 {
		cleaned = strings.ReplaceAll(cleaned, ".", "")
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("money: cannot parse %q: %w", s, err)
	}
	return d, nil
}

// MustParse is Parse for trusted literals in tests and fixtures.
func MustParse(s string) decimal.Decimal {
	d, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return d
}
