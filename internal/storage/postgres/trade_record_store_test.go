package postgres

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chronos-tradegen/internal/domain"
	"chronos-tradegen/internal/storage"
)

func createTestTradeRecord(i int) *domain.TradeRecord {
	return &domain.TradeRecord{
		Slot:         200000000 + int64(i/1000),
		Timestamp:    1700000000 + int64(i),
		AmountIn:     1000 + int64(i),
		AmountOut:    999999 - int64(i),
		TxSignature:  fmt.Sprintf("sig_%04d", i),
		TokenMintIn:  "mint_in",
		TokenMintOut: "mint_out",
		IsBundled:    i%10 == 0,
		TxIndex:      i % 2000,
	}
}

func TestTradeRecordStore_InsertBulkAndGet(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	store := NewTradeRecordStore(pool)

	trades := make([]*domain.TradeRecord, 0, 2500)
	for i := 0; i < 2500; i++ {
		trades = append(trades, createTestTradeRecord(i))
	}

	require.NoError(t, store.InsertBulk(ctx, "run1", trades))

	count, err := store.CountByRun(ctx, "run1")
	require.NoError(t, err)
	assert.Equal(t, int64(2500), count)

	got, err := store.GetBySignature(ctx, "run1", "sig_2001")
	require.NoError(t, err)
	assert.Equal(t, *createTestTradeRecord(2001), *got)
}

func TestTradeRecordStore_DuplicateKey(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	store := NewTradeRecordStore(pool)

	trades := []*domain.TradeRecord{createTestTradeRecord(0)}
	require.NoError(t, store.InsertBulk(ctx, "run1", trades))

	err := store.InsertBulk(ctx, "run1", []*domain.TradeRecord{createTestTradeRecord(1), createTestTradeRecord(0)})
	assert.ErrorIs(t, err, storage.ErrDuplicateKey)

	// Failed batch is rolled back entirely
	count, err := store.CountByRun(ctx, "run1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	// Another run may reuse signatures
	require.NoError(t, store.InsertBulk(ctx, "run2", trades))
}

func TestTradeRecordStore_NotFound(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewTradeRecordStore(pool)

	_, err := store.GetBySignature(context.Background(), "run1", "missing")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestTradeRecordStore_InvalidInput(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	store := NewTradeRecordStore(pool)

	assert.ErrorIs(t, store.InsertBulk(ctx, "", []*domain.TradeRecord{createTestTradeRecord(0)}), storage.ErrInvalidInput)
	assert.ErrorIs(t, store.InsertBulk(ctx, "run1", []*domain.TradeRecord{{}}), storage.ErrInvalidInput)
	assert.NoError(t, store.InsertBulk(ctx, "run1", nil))
}
