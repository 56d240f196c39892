package memory

import (
	"context"
	"sync"

	"chronos-tradegen/internal/domain"
	"chronos-tradegen/internal/storage"
)

type tradeKey struct {
	runID       string
	txSignature string
}

// TradeRecordStore is an in-memory implementation of storage.TradeRecordStore.
type TradeRecordStore struct {
	mu    sync.RWMutex
	data  map[tradeKey]*domain.TradeRecord
	order map[string][]*domain.TradeRecord // insertion order per run
}

// NewTradeRecordStore creates a new in-memory trade record store.
func NewTradeRecordStore() *TradeRecordStore {
	return &TradeRecordStore{
		data:  make(map[tradeKey]*domain.TradeRecord),
		order: make(map[string][]*domain.TradeRecord),
	}
}

// InsertBulk adds multiple records atomically. Fails entire batch on any duplicate.
func (s *TradeRecordStore) InsertBulk(_ context.Context, runID string, trades []*domain.TradeRecord) error {
	if runID == "" {
		return storage.ErrInvalidInput
	}
	if len(trades) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Track keys in this batch to detect intra-batch duplicates
	batchKeys := make(map[tradeKey]struct{}, len(trades))

	// First pass: check for duplicates (existing + intra-batch)
	for _, t := range trades {
		if t == nil || t.TxSignature == "" {
			return storage.ErrInvalidInput
		}
		k := tradeKey{runID, t.TxSignature}
		if _, exists := s.data[k]; exists {
			return storage.ErrDuplicateKey
		}
		if _, exists := batchKeys[k]; exists {
			return storage.ErrDuplicateKey
		}
		batchKeys[k] = struct{}{}
	}

	// Second pass: insert all
	for _, t := range trades {
		copy := *t
		s.data[tradeKey{runID, t.TxSignature}] = &copy
		s.order[runID] = append(s.order[runID], &copy)
	}

	return nil
}

// CountByRun returns the number of records stored for runID.
func (s *TradeRecordStore) CountByRun(_ context.Context, runID string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return int64(len(s.order[runID])), nil
}

// GetBySignature retrieves one record. Returns ErrNotFound if not exists.
func (s *TradeRecordStore) GetBySignature(_ context.Context, runID, txSignature string) (*domain.TradeRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, exists := s.data[tradeKey{runID, txSignature}]
	if !exists {
		return nil, storage.ErrNotFound
	}

	copy := *t
	return &copy, nil
}

// ListByRun returns copies of all records of runID in insertion order.
// It is not part of storage.TradeRecordStore; tests use it to inspect what a
// sink wrote.
func (s *TradeRecordStore) ListByRun(_ context.Context, runID string) ([]*domain.TradeRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.TradeRecord, 0, len(s.order[runID]))
	for _, t := range s.order[runID] {
		copy := *t
		result = append(result, &copy)
	}
	return result, nil
}

var _ storage.TradeRecordStore = (*TradeRecordStore)(nil)
