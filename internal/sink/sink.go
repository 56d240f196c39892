// Package sink provides destinations for generated trade records.
package sink

import (
	"errors"

	"chronos-tradegen/internal/domain"
)

// Sink receives a header followed by records in index order.
// The caller must not retain or mutate a record after Write returns.
type Sink interface {
	// WriteHeader writes the column names. Called once before any Write.
	WriteHeader(columns []string) error

	// Write appends one record.
	Write(t *domain.TradeRecord) error

	// Close flushes buffered data and releases the destination.
	Close() error
}

// ErrClosed is returned when writing to a sink after Close.
var ErrClosed = errors.New("sink closed")

type tee struct {
	sinks []Sink
}

// Tee returns a Sink that writes every call to each of sinks in order.
// Close closes all sinks and returns the joined errors.
func Tee(sinks ...Sink) Sink {
	return &tee{sinks: sinks}
}

func (t *tee) WriteHeader(columns []string) error {
	for _, s := range t.sinks {
		if err := s.WriteHeader(columns); err != nil {
			return err
		}
	}
	return nil
}

func (t *tee) Write(r *domain.TradeRecord) error {
	for _, s := range t.sinks {
		if err := s.Write(r); err != nil {
			return err
		}
	}
	return nil
}

func (t *tee) Close() error {
	var errs []error
	for _, s := range t.sinks {
		if err := s.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
