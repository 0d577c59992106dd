package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/villing/billing-engine/invoice"
	"github.com/villing/billing-engine/store/sqlite"
)

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleDocument(id string, kind invoice.DocumentKind, createdAt time.Time) invoice.Document {
	var engine invoice.Engine
	items := []invoice.LineItem{
		invoice.NewLineItem(2, 50000, 10, 19),
		invoice.NewLineItem(1, 30000, 0, 19),
	}
	config := invoice.CalculationConfig{Retention: decimal.NewFromFloat(2.5)}
	return invoice.Document{
		ID:        id,
		Kind:      kind,
		Reference: "FV-" + id,
		Config:    config,
		Items:     items,
		Totals:    engine.Aggregate(items, config),
		CreatedAt: createdAt,
	}
}

func TestSaveAndGetDocument(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	doc := sampleDocument("doc-1", invoice.KindSale, time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC))
	require.NoError(t, store.SaveDocument(ctx, doc))

	loaded, err := store.GetDocument(ctx, "doc-1")
	require.NoError(t, err)

	assert.Equal(t, doc.ID, loaded.ID)
	assert.Equal(t, doc.Kind, loaded.Kind)
	assert.Equal(t, doc.Reference, loaded.Reference)
	assert.Equal(t, doc.CreatedAt, loaded.CreatedAt)

	// Amounts survive the TEXT round trip exactly
	assert.True(t, doc.Totals.Total.Equal(loaded.Totals.Total),
		"total: want %s, got %s", doc.Totals.Total, loaded.Totals.Total)
	assert.True(t, doc.Config.Retention.Equal(loaded.Config.Retention))

	require.Len(t, loaded.Items, 2)
	assert.True(t, loaded.Items[0].Price.Equal(decimal.NewFromInt(50000)))
	assert.True(t, loaded.Items[1].Price.Equal(decimal.NewFromInt(30000)))
}

func TestGetDocument_NotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.GetDocument(context.Background(), "missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, invoice.ErrDocumentNotFound)
}

func TestListDocuments_FilterAndOrder(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	base := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
	require.NoError(t, store.SaveDocument(ctx, sampleDocument("doc-1", invoice.KindSale, base)))
	require.NoError(t, store.SaveDocument(ctx, sampleDocument("doc-2", invoice.KindPurchase, base.Add(time.Hour))))
	require.NoError(t, store.SaveDocument(ctx, sampleDocument("doc-3", invoice.KindSale, base.Add(2*time.Hour))))

	// Empty kind matches everything, newest first
	all, err := store.ListDocuments(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "doc-3", all[0].ID)
	assert.Equal(t, "doc-1", all[2].ID)

	// Kind filter
	sales, err := store.ListDocuments(ctx, invoice.KindSale)
	require.NoError(t, err)
	require.Len(t, sales, 2)
	for _, doc := range sales {
		assert.Equal(t, invoice.KindSale, doc.Kind)
	}

	// No matches
	notes, err := store.ListDocuments(ctx, invoice.KindCreditNote)
	require.NoError(t, err)
	assert.Empty(t, notes)
}

func TestSaveDocument_DuplicateID(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	doc := sampleDocument("doc-1", invoice.KindSale, time.Now().UTC().Truncate(time.Second))
	require.NoError(t, store.SaveDocument(ctx, doc))

	err := store.SaveDocument(ctx, doc)
	require.Error(t, err)
}

func TestSaveDocument_NoItems(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	doc := sampleDocument("doc-1", invoice.KindSale, time.Now().UTC().Truncate(time.Second))
	doc.Items = nil
	var engine invoice.Engine
	doc.Totals = engine.Aggregate(nil, doc.Config)

	require.NoError(t, store.SaveDocument(ctx, doc))

	loaded, err := store.GetDocument(ctx, "doc-1")
	require.NoError(t, err)
	assert.Empty(t, loaded.Items)
	assert.True(t, loaded.Totals.Total.IsZero())
}
