package sink

import (
	"context"
	"fmt"

	"chronos-tradegen/internal/domain"
	"chronos-tradegen/internal/storage"
)

// DefaultBatchSize is the number of records per InsertBulk call.
const DefaultBatchSize = 5000

// Store buffers records and writes them to a TradeRecordStore in batches.
type Store struct {
	ctx   context.Context
	store storage.TradeRecordStore
	runID string

	slab  []domain.TradeRecord
	batch []*domain.TradeRecord

	onFlush func(n int)
	written int64
	closed  bool
}

// NewStore creates a Store sink. batchSize < 1 uses DefaultBatchSize.
func NewStore(ctx context.Context, store storage.TradeRecordStore, runID string, batchSize int) *Store {
	if batchSize < 1 {
		batchSize = DefaultBatchSize
	}
	return &Store{
		ctx:   ctx,
		store: store,
		runID: runID,
		slab:  make([]domain.TradeRecord, 0, batchSize),
		batch: make([]*domain.TradeRecord, 0, batchSize),
	}
}

// WithFlushHook registers fn to be called with the size of every batch
// successfully written.
func (s *Store) WithFlushHook(fn func(n int)) *Store {
	s.onFlush = fn
	return s
}

// Written returns the number of records persisted so far.
func (s *Store) Written() int64 {
	return s.written
}

// WriteHeader is a no-op; the table schema defines the columns.
func (s *Store) WriteHeader(_ []string) error {
	if s.closed {
		return ErrClosed
	}
	return nil
}

// Write buffers a copy of t, flushing when the batch is full.
func (s *Store) Write(t *domain.TradeRecord) error {
	if s.closed {
		return ErrClosed
	}

	s.slab = append(s.slab, *t)
	if len(s.slab) == cap(s.slab) {
		return s.flush()
	}
	return nil
}

// Close writes the remaining partial batch.
func (s *Store) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	return s.flush()
}

func (s *Store) flush() error {
	if len(s.slab) == 0 {
		return nil
	}

	s.batch = s.batch[:0]
	for i := range s.slab {
		s.batch = append(s.batch, &s.slab[i])
	}

	if err := s.store.InsertBulk(s.ctx, s.runID, s.batch); err != nil {
		return fmt.Errorf("insert batch of %d: %w", len(s.batch), err)
	}

	n := len(s.slab)
	s.written += int64(n)
	s.slab = s.slab[:0]
	if s.onFlush != nil {
		s.onFlush(n)
	}
	return nil
}
