// Package store provides DocumentStore implementations.
package store

import (
	"context"
	"sort"
	"sync"

	"github.com/villing/billing-engine/invoice"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

type Memory struct {
	mu   sync.RWMutex
	docs map[string]invoice.Document
}

func NewMemory() *Memory {
	return &Memory{docs: make(map[string]invoice.Document)}
}

func (m *Memory) SaveDocument(_ context.Context, doc invoice.Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs[doc.ID] = doc
	return nil
}

func (m *Memory) GetDocument(_ context.Context, id string) (*invoice.Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	doc, ok := m.docs[id]
	if !ok {
		return nil, invoice.ErrDocumentNotFound
	}
	return &doc, nil
}

// ListDocuments returns documents of the given kind, newest first.
// An empty kind matches everything.
func (m *Memory) ListDocuments(_ context.Context, kind invoice.DocumentKind) ([]invoice.Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []invoice.Document
	for _, doc := range m.docs {
		if kind == "" || doc.Kind == kind {
			result = append(result, doc)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (m *Memory) Close() error { return nil }
