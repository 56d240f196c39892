package clickhouse

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"chronos-tradegen/internal/domain"
	"chronos-tradegen/internal/storage"
)

// TradeRecordStore implements storage.TradeRecordStore using ClickHouse.
type TradeRecordStore struct {
	conn *Conn
}

// NewTradeRecordStore creates a new TradeRecordStore.
func NewTradeRecordStore(conn *Conn) *TradeRecordStore {
	return &TradeRecordStore{conn: conn}
}

// Compile-time interface check.
var _ storage.TradeRecordStore = (*TradeRecordStore)(nil)

// InsertBulk adds multiple records in one native batch.
// Duplicates are rejected within the batch only; MergeTree does not enforce
// uniqueness against rows already stored.
func (s *TradeRecordStore) InsertBulk(ctx context.Context, runID string, trades []*domain.TradeRecord) error {
	if runID == "" {
		return storage.ErrInvalidInput
	}
	if len(trades) == 0 {
		return nil
	}

	// Check for intra-batch duplicates
	seen := make(map[string]struct{}, len(trades))
	for _, t := range trades {
		if t == nil || t.TxSignature == "" {
			return storage.ErrInvalidInput
		}
		// slot and amounts are UInt64 columns
		if t.Slot < 0 || t.AmountIn < 0 || t.AmountOut < 0 {
			return fmt.Errorf("%w: negative slot or amount in %s", storage.ErrInvalidInput, t.TxSignature)
		}
		if _, exists := seen[t.TxSignature]; exists {
			return storage.ErrDuplicateKey
		}
		seen[t.TxSignature] = struct{}{}
	}

	batch, err := s.conn.PrepareBatch(ctx, `
		INSERT INTO trade_fixtures (
			run_id, slot, timestamp, amount_in, amount_out,
			tx_signature, token_mint_in, token_mint_out, is_bundled, tx_index
		)
	`)
	if err != nil {
		return fmt.Errorf("prepare batch: %w", err)
	}

	for _, t := range trades {
		err = batch.Append(
			runID, uint64(t.Slot), t.Timestamp, uint64(t.AmountIn), uint64(t.AmountOut),
			t.TxSignature, t.TokenMintIn, t.TokenMintOut, t.IsBundled, uint32(t.TxIndex),
		)
		if err != nil {
			return fmt.Errorf("append to batch: %w", err)
		}
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("send batch: %w", err)
	}

	return nil
}

// CountByRun returns the number of records stored for runID.
func (s *TradeRecordStore) CountByRun(ctx context.Context, runID string) (int64, error) {
	var count uint64
	err := s.conn.QueryRow(ctx, `SELECT count() FROM trade_fixtures WHERE run_id = ?`, runID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count trade fixtures: %w", err)
	}
	return int64(count), nil
}

// GetBySignature retrieves one record. Returns ErrNotFound if not exists.
func (s *TradeRecordStore) GetBySignature(ctx context.Context, runID, txSignature string) (*domain.TradeRecord, error) {
	query := `
		SELECT
			slot, timestamp, amount_in, amount_out,
			tx_signature, token_mint_in, token_mint_out, is_bundled, tx_index
		FROM trade_fixtures
		WHERE run_id = ? AND tx_signature = ?
		LIMIT 1
	`

	var (
		t             domain.TradeRecord
		slot, in, out uint64
		txIndex       uint32
	)
	err := s.conn.QueryRow(ctx, query, runID, txSignature).Scan(
		&slot, &t.Timestamp, &in, &out,
		&t.TxSignature, &t.TokenMintIn, &t.TokenMintOut, &t.IsBundled, &txIndex,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get trade fixture: %w", err)
	}

	t.Slot = int64(slot)
	t.AmountIn = int64(in)
	t.AmountOut = int64(out)
	t.TxIndex = int(txIndex)
	return &t, nil
}
