package invoice

import (
	"context"
	"errors"
	"time"
)

// =============================================================================
// PERSISTED DOCUMENTS
// =============================================================================

// Document is a stored commercial document: the line items as entered
// plus the totals the engine derived from them at save time. Totals are
// always recomputed on write, never trusted from the caller.
type Document struct {
	ID        string
	Kind      DocumentKind
	Reference string // human-facing number, e.g. "FV-1042"
	Config    CalculationConfig
	Items     []LineItem
	Totals    AggregateTotals
	CreatedAt time.Time
}

// DocumentStore persists documents.
//
// Implementations:
//   store/memory.go:  In-memory, for tests
//   ../store/sqlite:  SQLite-backed, for the server
type DocumentStore interface {
	SaveDocument(ctx context.Context, doc Document) error
	GetDocument(ctx context.Context, id string) (*Document, error)
	ListDocuments(ctx context.Context, kind DocumentKind) ([]Document, error)
	Close() error
}

// ErrDocumentNotFound is returned when a referenced document doesn't exist.
var ErrDocumentNotFound = errors.New("document not found")
