package store_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Davidamascen07/Projeto-extractor-ocr/internal/entity"
	"github.com/Davidamascen07/Projeto-extractor-ocr/internal/store"
)

func sampleReceipt(id, file string) entity.Receipt {
	return entity.Receipt{
		ID:            id,
		Layout:        entity.LayoutWillBank,
		Type:          entity.TypePix,
		Amount:        decimal.RequireFromString("33.00"),
		Payer:         entity.PersonRef{FullName: "David Damasceno"},
		Payee:         entity.PersonRef{FullName: "Ana Cleuma Sousa Dos Santos"},
		TransactionID: id,
		Date:          "2025-05-20",
		Time:          "17:51:22",
		Confidence:    0.9,
		Source: entity.SourceMeta{
			SourceFile:  file,
			ProcessedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		},
	}
}

func openTestStore(t *testing.T) *store.Store {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "receipts.db")
	s, err := store.Open(context.Background(), dsn, nil)
	require.NoError(t, err)
	t.Cleanup(s.Close)
	return s
}

func TestStore_SaveBatch(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	receipts := []entity.Receipt{
		sampleReceipt("TX1", "c1.txt"),
		sampleReceipt("TX2", "c2.txt"),
	}
	require.NoError(t, s.SaveBatch(ctx, receipts))

	n, err := s.CountBySourceFile(ctx, "c1.txt")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = s.CountBySourceFile(ctx, "desconhecido.txt")
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestStore_SaveBatchUpsert(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	r := sampleReceipt("TX1", "c1.txt")
	require.NoError(t, s.SaveBatch(ctx, []entity.Receipt{r}))

	// re-processing the same receipt replaces, not duplicates
	r.Confidence = 1.0
	require.NoError(t, s.SaveBatch(ctx, []entity.Receipt{r}))

	n, err := s.CountBySourceFile(ctx, "c1.txt")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestStore_SaveBatchEmpty(t *testing.T) {
	s := openTestStore(t)
	require.NoError(t, s.SaveBatch(context.Background(), nil))
}
