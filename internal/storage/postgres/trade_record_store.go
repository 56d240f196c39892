package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"chronos-tradegen/internal/domain"
	"chronos-tradegen/internal/storage"
)

// TradeRecordStore implements storage.TradeRecordStore using PostgreSQL.
type TradeRecordStore struct {
	pool *Pool
}

// NewTradeRecordStore creates a new TradeRecordStore.
func NewTradeRecordStore(pool *Pool) *TradeRecordStore {
	return &TradeRecordStore{pool: pool}
}

// Compile-time interface check.
var _ storage.TradeRecordStore = (*TradeRecordStore)(nil)

var tradeFixtureColumns = []string{
	"run_id", "slot", "timestamp", "amount_in", "amount_out",
	"tx_signature", "token_mint_in", "token_mint_out", "is_bundled", "tx_index",
}

// InsertBulk copies multiple records atomically using COPY.
// Fails entire batch on any duplicate (run_id, tx_signature).
func (s *TradeRecordStore) InsertBulk(ctx context.Context, runID string, trades []*domain.TradeRecord) error {
	if runID == "" {
		return storage.ErrInvalidInput
	}
	if len(trades) == 0 {
		return nil
	}
	for _, t := range trades {
		if t == nil || t.TxSignature == "" {
			return storage.ErrInvalidInput
		}
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.CopyFrom(ctx,
		pgx.Identifier{"trade_fixtures"},
		tradeFixtureColumns,
		pgx.CopyFromSlice(len(trades), func(i int) ([]any, error) {
			t := trades[i]
			return []any{
				runID, t.Slot, t.Timestamp, t.AmountIn, t.AmountOut,
				t.TxSignature, t.TokenMintIn, t.TokenMintOut, t.IsBundled, int32(t.TxIndex),
			}, nil
		}),
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return storage.ErrDuplicateKey
		}
		return fmt.Errorf("copy trade fixtures: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	return nil
}

// CountByRun returns the number of records stored for runID.
func (s *TradeRecordStore) CountByRun(ctx context.Context, runID string) (int64, error) {
	var count int64
	err := s.pool.QueryRow(ctx, `SELECT count(*) FROM trade_fixtures WHERE run_id = $1`, runID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count trade fixtures: %w", err)
	}
	return count, nil
}

// GetBySignature retrieves one record. Returns ErrNotFound if not exists.
func (s *TradeRecordStore) GetBySignature(ctx context.Context, runID, txSignature string) (*domain.TradeRecord, error) {
	query := `
		SELECT
			slot, timestamp, amount_in, amount_out,
			tx_signature, token_mint_in, token_mint_out, is_bundled, tx_index
		FROM trade_fixtures
		WHERE run_id = $1 AND tx_signature = $2
	`

	var (
		t       domain.TradeRecord
		txIndex int32
	)
	err := s.pool.QueryRow(ctx, query, runID, txSignature).Scan(
		&t.Slot, &t.Timestamp, &t.AmountIn, &t.AmountOut,
		&t.TxSignature, &t.TokenMintIn, &t.TokenMintOut, &t.IsBundled, &txIndex,
	)
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get trade fixture: %w", err)
	}
	t.TxIndex = int(txIndex)

	return &t, nil
}
