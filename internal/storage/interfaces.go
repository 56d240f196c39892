package storage

import (
	"context"

	"chronos-tradegen/internal/domain"
)

// TradeRecordStore provides access to trade_fixtures storage.
// Records are scoped by run ID so fixtures from several runs can coexist.
type TradeRecordStore interface {
	// InsertBulk adds multiple records atomically. Fails entire batch on
	// duplicate (run_id, tx_signature) where the backend can detect it.
	InsertBulk(ctx context.Context, runID string, trades []*domain.TradeRecord) error

	// CountByRun returns the number of records stored for runID.
	CountByRun(ctx context.Context, runID string) (int64, error)

	// GetBySignature retrieves one record. Returns ErrNotFound if not exists.
	GetBySignature(ctx context.Context, runID, txSignature string) (*domain.TradeRecord, error)
}
