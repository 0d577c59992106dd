/*
Package sqlite provides a SQLite-backed implementation of the document
store.

PURPOSE:
  Implements invoice.DocumentStore using SQLite. In production, the same
  patterns apply to PostgreSQL - only minor SQL dialect differences.

KEY TABLES:
  documents:      Document headers with the totals computed at save time
  document_items: Line items as entered, one row per line

AMOUNT STORAGE:
  Monetary values are stored as TEXT in their decimal string form.
  SQLite REAL would reintroduce the floating-point drift the decimal
  type exists to prevent.

CONCURRENCY:
  Uses sync.RWMutex for thread-safety. In production with PostgreSQL,
  database-level concurrency control handles this instead.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging) for better
  concurrency: multiple readers don't block, single writer at a time,
  better crash recovery.

USAGE:
  store, err := sqlite.New("./data/villing.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

MIGRATION:
  Schema is auto-migrated on New(). For production, use a proper
  migration tool (golang-migrate, goose) with versioned migrations.

SEE ALSO:
  - invoice/document.go: Interface definition
  - invoice/store/memory.go: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/villing/billing-engine/invoice"
)

// Store implements invoice.DocumentStore using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Compile-time check that Store implements invoice.DocumentStore
var _ invoice.DocumentStore = (*Store)(nil)

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS documents (
		id TEXT PRIMARY KEY,
		kind TEXT NOT NULL,
		reference TEXT,
		tax_included BOOLEAN NOT NULL DEFAULT FALSE,
		discount_mode TEXT NOT NULL DEFAULT 'percent',
		retention TEXT NOT NULL DEFAULT '0',
		subtotal TEXT NOT NULL,
		discount TEXT NOT NULL,
		tax TEXT NOT NULL,
		retention_total TEXT NOT NULL,
		total TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_documents_kind
		ON documents(kind);
	CREATE INDEX IF NOT EXISTS idx_documents_created_at
		ON documents(created_at DESC);
	CREATE INDEX IF NOT EXISTS idx_documents_reference
		ON documents(reference) WHERE reference IS NOT NULL;

	CREATE TABLE IF NOT EXISTS document_items (
		document_id TEXT NOT NULL REFERENCES documents(id),
		position INTEGER NOT NULL,
		quantity TEXT NOT NULL,
		price TEXT NOT NULL,
		discount TEXT NOT NULL,
		tax TEXT NOT NULL,
		PRIMARY KEY (document_id, position)
	);

	CREATE INDEX IF NOT EXISTS idx_document_items_document
		ON document_items(document_id);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// DOCUMENT STORE (invoice.DocumentStore interface)
// =============================================================================

// SaveDocument stores a document header and its items atomically.
func (s *Store) SaveDocument(ctx context.Context, doc invoice.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sqlTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer sqlTx.Rollback()

	_, err = sqlTx.ExecContext(ctx, `
		INSERT INTO documents
		(id, kind, reference, tax_included, discount_mode, retention,
		 subtotal, discount, tax, retention_total, total, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		doc.ID,
		doc.Kind,
		doc.Reference,
		doc.Config.TaxIncluded,
		string(doc.Config.DiscountMode),
		doc.Config.Retention.String(),
		doc.Totals.Subtotal.String(),
		doc.Totals.Discount.String(),
		doc.Totals.Tax.String(),
		doc.Totals.Retention.String(),
		doc.Totals.Total.String(),
		doc.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to insert document: %w", err)
	}

	for i, item := range doc.Items {
		_, err = sqlTx.ExecContext(ctx, `
			INSERT INTO document_items
			(document_id, position, quantity, price, discount, tax)
			VALUES (?, ?, ?, ?, ?, ?)
		`,
			doc.ID, i,
			item.Quantity.String(),
			item.Price.String(),
			item.Discount.String(),
			item.Tax.String(),
		)
		if err != nil {
			return fmt.Errorf("failed to insert document item: %w", err)
		}
	}

	return sqlTx.Commit()
}

// GetDocument loads one document and its items.
func (s *Store) GetDocument(ctx context.Context, id string) (*invoice.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT id, kind, reference, tax_included, discount_mode, retention,
		       subtotal, discount, tax, retention_total, total, created_at
		FROM documents WHERE id = ?
	`, id)

	doc, err := scanDocument(row)
	if err == sql.ErrNoRows {
		return nil, invoice.ErrDocumentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load document: %w", err)
	}

	items, err := s.loadItems(ctx, id)
	if err != nil {
		return nil, err
	}
	doc.Items = items
	return doc, nil
}

// ListDocuments returns documents of the given kind, newest first. An
// empty kind matches everything. Items are loaded per document; lists
// are small enough that N+1 is acceptable here.
func (s *Store) ListDocuments(ctx context.Context, kind invoice.DocumentKind) ([]invoice.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT id, kind, reference, tax_included, discount_mode, retention,
		       subtotal, discount, tax, retention_total, total, created_at
		FROM documents
	`
	var args []any
	if kind != "" {
		query += " WHERE kind = ?"
		args = append(args, kind)
	}
	query += " ORDER BY created_at DESC, id ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	defer rows.Close()

	var docs []invoice.Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		items, err := s.loadItems(ctx, doc.ID)
		if err != nil {
			return nil, err
		}
		doc.Items = items
		docs = append(docs, *doc)
	}
	return docs, rows.Err()
}

func (s *Store) loadItems(ctx context.Context, documentID string) ([]invoice.LineItem, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT quantity, price, discount, tax
		FROM document_items
		WHERE document_id = ?
		ORDER BY position ASC
	`, documentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load document items: %w", err)
	}
	defer rows.Close()

	var items []invoice.LineItem
	for rows.Next() {
		var quantity, price, discount, tax string
		if err := rows.Scan(&quantity, &price, &discount, &tax); err != nil {
			return nil, fmt.Errorf("failed to scan document item: %w", err)
		}
		item, err := parseItem(quantity, price, discount, tax)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// =============================================================================
// ROW SCANNING
// =============================================================================

type scanner interface {
	Scan(dest ...any) error
}

func scanDocument(row scanner) (*invoice.Document, error) {
	var (
		doc          invoice.Document
		kind         string
		discountMode string
		retention    string
		subtotal     string
		discount     string
		tax          string
		retTotal     string
		total        string
		createdAt    string
	)

	err := row.Scan(&doc.ID, &kind, &doc.Reference, &doc.Config.TaxIncluded,
		&discountMode, &retention, &subtotal, &discount, &tax, &retTotal,
		&total, &createdAt)
	if err != nil {
		return nil, err
	}

	doc.Kind = invoice.DocumentKind(kind)
	doc.Config.DiscountMode = invoice.DiscountMode(discountMode)

	fields := map[*decimal.Decimal]string{
		&doc.Config.Retention: retention,
		&doc.Totals.Subtotal:  subtotal,
		&doc.Totals.Discount:  discount,
		&doc.Totals.Tax:       tax,
		&doc.Totals.Retention: retTotal,
		&doc.Totals.Total:     total,
	}
	for dst, raw := range fields {
		d, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, fmt.Errorf("corrupt amount %q: %w", raw, err)
		}
		*dst = d
	}

	doc.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("corrupt timestamp %q: %w", createdAt, err)
	}
	return &doc, nil
}

func parseItem(quantity, price, discount, tax string) (invoice.LineItem, error) {
	var item invoice.LineItem
	fields := map[*decimal.Decimal]string{
		&item.Quantity: quantity,
		&item.Price:    price,
		&item.Discount: discount,
		&item.Tax:      tax,
	}
	for dst, raw := range fields {
		d, err := decimal.NewFromString(raw)
		if err != nil {
			return item, fmt.Errorf("corrupt amount %q: %w", raw, err)
		}
		*dst = d
	}
	return item, nil
}
