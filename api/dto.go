/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal decimal-based domain model from the external API contract:
  monetary values travel as JSON numbers, decimals stay inside.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

TYPES:
  Totals:
    LineItemDTO, ConfigDTO, LineTotalsDTO, AggregateTotalsDTO

  Documents:
    DocumentDTO, CreateDocumentRequest

  Payroll:
    MapPayrollRequest (payroll.Concept is already JSON-shaped; the
    mapped payroll.Payroll is returned as-is, it IS the gateway body)

VALIDATION:
  Validation is done in handlers, not in DTOs. DTOs are pure data
  carriers.

SEE ALSO:
  - handlers.go: Uses these types
  - ../payroll/types.go: Gateway-shaped payroll output
*/
package api

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/villing/billing-engine/invoice"
	"github.com/villing/billing-engine/money"
	"github.com/villing/billing-engine/payroll"
)

// =============================================================================
// TOTALS TYPES
// =============================================================================

// LineItemDTO is one line item as submitted by clients.
type LineItemDTO struct {
	Quantity float64 `json:"quantity"`
	Price    float64 `json:"price"`
	Discount float64 `json:"discount"`
	Tax      float64 `json:"tax"`
}

func (d LineItemDTO) toDomain() invoice.LineItem {
	return invoice.NewLineItem(d.Quantity, d.Price, d.Discount, d.Tax)
}

// ConfigDTO is the calculation configuration as submitted by clients.
type ConfigDTO struct {
	TaxIncluded  bool    `json:"taxIncluded"`
	DiscountMode string  `json:"discountMode,omitempty"`
	Retention    float64 `json:"retention,omitempty"`
}

func (d ConfigDTO) toDomain() invoice.CalculationConfig {
	return invoice.CalculationConfig{
		TaxIncluded:  d.TaxIncluded,
		DiscountMode: invoice.DiscountMode(d.DiscountMode),
		Retention:    decimal.NewFromFloat(d.Retention),
	}
}

// ComputeLineRequest asks for totals of a single line.
type ComputeLineRequest struct {
	Item   LineItemDTO `json:"item"`
	Config ConfigDTO   `json:"config"`
}

// ComputeTotalsRequest asks for aggregate totals of a document.
type ComputeTotalsRequest struct {
	Items  []LineItemDTO `json:"items"`
	Config ConfigDTO     `json:"config"`
}

// LineTotalsDTO is a single line's derived totals.
type LineTotalsDTO struct {
	Subtotal  float64 `json:"subtotal"`
	Discount  float64 `json:"discount"`
	Tax       float64 `json:"tax"`
	Total     float64 `json:"total"`
	Formatted string  `json:"formatted"`
}

func toLineTotalsDTO(t invoice.LineTotals) LineTotalsDTO {
	return LineTotalsDTO{
		Subtotal:  t.Subtotal.InexactFloat64(),
		Discount:  t.Discount.InexactFloat64(),
		Tax:       t.Tax.InexactFloat64(),
		Total:     t.Total.InexactFloat64(),
		Formatted: money.FormatCOP(t.Total),
	}
}

// AggregateTotalsDTO is a document's derived totals.
type AggregateTotalsDTO struct {
	Subtotal  float64 `json:"subtotal"`
	Discount  float64 `json:"discount"`
	Tax       float64 `json:"tax"`
	Retention float64 `json:"retention"`
	Total     float64 `json:"total"`
	Formatted string  `json:"formatted"`
}

func toAggregateTotalsDTO(t invoice.AggregateTotals) AggregateTotalsDTO {
	return AggregateTotalsDTO{
		Subtotal:  t.Subtotal.InexactFloat64(),
		Discount:  t.Discount.InexactFloat64(),
		Tax:       t.Tax.InexactFloat64(),
		Retention: t.Retention.InexactFloat64(),
		Total:     t.Total.InexactFloat64(),
		Formatted: money.FormatCOP(t.Total),
	}
}

// =============================================================================
// DOCUMENT TYPES
// =============================================================================

// CreateDocumentRequest stores a document; totals are recomputed
// server-side, never trusted from the caller.
type CreateDocumentRequest struct {
	Kind      string        `json:"kind"`
	Reference string        `json:"reference"`
	Items     []LineItemDTO `json:"items"`
	Config    ConfigDTO     `json:"config"`
}

// DocumentDTO is a stored document in API responses.
type DocumentDTO struct {
	ID        string             `json:"id"`
	Kind      string             `json:"kind"`
	Reference string             `json:"reference"`
	Items     []LineItemDTO      `json:"items"`
	Totals    AggregateTotalsDTO `json:"totals"`
	CreatedAt string             `json:"created_at"`
}

func toDocumentDTO(doc invoice.Document) DocumentDTO {
	items := make([]LineItemDTO, len(doc.Items))
	for i, item := range doc.Items {
		items[i] = LineItemDTO{
			Quantity: item.Quantity.InexactFloat64(),
			Price:    item.Price.InexactFloat64(),
			Discount: item.Discount.InexactFloat64(),
			Tax:      item.Tax.InexactFloat64(),
		}
	}
	return DocumentDTO{
		ID:        doc.ID,
		Kind:      string(doc.Kind),
		Reference: doc.Reference,
		Items:     items,
		Totals:    toAggregateTotalsDTO(doc.Totals),
		CreatedAt: doc.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// =============================================================================
// PAYROLL TYPES
// =============================================================================

// MapPayrollRequest carries one pay period's concepts.
type MapPayrollRequest struct {
	WorkedDays float64           `json:"workedDays"`
	Incomes    []payroll.Concept `json:"incomes"`
	Deductions []payroll.Concept `json:"deductions"`
}

// =============================================================================
// ERRORS
// =============================================================================

// ErrorResponse is the JSON error envelope.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
