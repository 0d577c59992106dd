/*
handlers.go - HTTP API handlers for the billing engine

PURPOSE:
  Exposes the calculation engine and the payroll mapper via REST API.
  Handles HTTP request/response, JSON serialization, and delegates to
  domain logic.

ENDPOINTS:
  Totals:
    POST   /api/totals/line      Compute one line's totals
    POST   /api/totals           Compute aggregate document totals

  Documents:
    GET    /api/documents        List stored documents (?kind= filter)
    POST   /api/documents        Store a document (totals recomputed)
    GET    /api/documents/{id}   Get one document

  Payroll:
    POST   /api/payroll/map      Map a pay period into the gateway body

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid input
  - 404: Document not found
  - 422: Payroll integrity violations (missing salary, duplicates) -
         the Spanish message is passed through verbatim for the UI
  - 500: Internal errors

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/villing/billing-engine/invoice"
	"github.com/villing/billing-engine/payroll"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store  invoice.DocumentStore
	Engine invoice.Engine

	now func() time.Time
}

// NewHandler creates a new handler with the given document store.
func NewHandler(store invoice.DocumentStore) *Handler {
	return &Handler{
		Store: store,
		now:   time.Now,
	}
}

// =============================================================================
// TOTALS HANDLERS
// =============================================================================

// ComputeLine computes totals for a single line item.
// POST /api/totals/line
func (h *Handler) ComputeLine(w http.ResponseWriter, r *http.Request) {
	var req ComputeLineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	totals := h.Engine.Line(req.Item.toDomain(), req.Config.toDomain())
	writeJSON(w, http.StatusOK, toLineTotalsDTO(totals))
}

// ComputeTotals computes aggregate totals for a list of line items.
// POST /api/totals
func (h *Handler) ComputeTotals(w http.ResponseWriter, r *http.Request) {
	var req ComputeTotalsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	items := make([]invoice.LineItem, len(req.Items))
	for i, item := range req.Items {
		items[i] = item.toDomain()
	}

	totals := h.Engine.Aggregate(items, req.Config.toDomain())
	writeJSON(w, http.StatusOK, toAggregateTotalsDTO(totals))
}

// =============================================================================
// DOCUMENT HANDLERS
// =============================================================================

// CreateDocument stores a document with server-computed totals.
// POST /api/documents
func (h *Handler) CreateDocument(w http.ResponseWriter, r *http.Request) {
	var req CreateDocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	kind := invoice.DocumentKind(req.Kind)
	if !kind.Valid() {
		writeError(w, http.StatusBadRequest, "Unknown document kind", nil)
		return
	}

	items := make([]invoice.LineItem, len(req.Items))
	for i, item := range req.Items {
		items[i] = item.toDomain()
	}
	config := req.Config.toDomain()

	doc := invoice.Document{
		ID:        uuid.NewString(),
		Kind:      kind,
		Reference: req.Reference,
		Config:    config,
		Items:     items,
		Totals:    h.Engine.Aggregate(items, config),
		CreatedAt: h.now(),
	}

	if err := h.Store.SaveDocument(r.Context(), doc); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save document", err)
		return
	}

	writeJSON(w, http.StatusCreated, toDocumentDTO(doc))
}

// GetDocument returns one stored document.
// GET /api/documents/{id}
func (h *Handler) GetDocument(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	doc, err := h.Store.GetDocument(r.Context(), id)
	if err != nil {
		if errors.Is(err, invoice.ErrDocumentNotFound) {
			writeError(w, http.StatusNotFound, "Document not found", nil)
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to load document", err)
		return
	}

	writeJSON(w, http.StatusOK, toDocumentDTO(*doc))
}

// ListDocuments returns stored documents, optionally filtered by kind.
// GET /api/documents?kind=sale
func (h *Handler) ListDocuments(w http.ResponseWriter, r *http.Request) {
	kind := invoice.DocumentKind(r.URL.Query().Get("kind"))
	if kind != "" && !kind.Valid() {
		writeError(w, http.StatusBadRequest, "Unknown document kind", nil)
		return
	}

	docs, err := h.Store.ListDocuments(r.Context(), kind)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list documents", err)
		return
	}

	dtos := make([]DocumentDTO, len(docs))
	for i, doc := range docs {
		dtos[i] = toDocumentDTO(doc)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// =============================================================================
// PAYROLL HANDLERS
// =============================================================================

// MapPayroll maps a pay period's concepts into the submission body.
// POST /api/payroll/map
func (h *Handler) MapPayroll(w http.ResponseWriter, r *http.Request) {
	var req MapPayrollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	body, err := payroll.MapAll(req.Incomes, req.Deductions, req.WorkedDays)
	if err != nil {
		if payroll.IsIntegrityError(err) {
			// The Spanish message is the user-facing contract.
			writeError(w, http.StatusUnprocessableEntity, err.Error(), nil)
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to map payroll", err)
		return
	}

	writeJSON(w, http.StatusOK, body)
}

// Health reports liveness.
// GET /api/health
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// =============================================================================
// RESPONSE HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
