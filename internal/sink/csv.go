package sink

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"chronos-tradegen/internal/domain"
)

// CSV writes records as comma-separated lines.
// Rows are encoded as soon as Write is called, but they reach the
// destination in chunks of the csv.Writer's 4 KiB buffer, not one line at a
// time. A reader tailing the file during a run sees whole buffers; the tail
// is written on Flush or Close.
type CSV struct {
	w      *csv.Writer
	c      io.Closer
	fields []string
	closed bool
}

// NewCSV creates a CSV sink over wc. Close closes wc.
func NewCSV(wc io.WriteCloser) *CSV {
	return &CSV{
		w:      csv.NewWriter(wc),
		c:      wc,
		fields: make([]string, 0, len(domain.TradeColumns())),
	}
}

// CreateFile creates (or truncates) the file at path, including missing
// parent directories, and returns a CSV sink writing to it.
func CreateFile(path string) (*CSV, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create output dir %s: %w", dir, err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create output file: %w", err)
	}
	return NewCSV(f), nil
}

// WriteHeader writes the header line.
func (s *CSV) WriteHeader(columns []string) error {
	if s.closed {
		return ErrClosed
	}
	if err := s.w.Write(columns); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	return nil
}

// Write encodes one record.
func (s *CSV) Write(t *domain.TradeRecord) error {
	if s.closed {
		return ErrClosed
	}
	s.fields = t.AppendFields(s.fields[:0])
	if err := s.w.Write(s.fields); err != nil {
		return fmt.Errorf("write csv row: %w", err)
	}
	return nil
}

// Flush pushes buffered rows to the destination.
func (s *CSV) Flush() error {
	s.w.Flush()
	if err := s.w.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

// Close flushes and closes the destination. The destination is closed even
// when the flush fails. Calling Close more than once is a no-op.
func (s *CSV) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	flushErr := s.Flush()
	closeErr := s.c.Close()
	if flushErr != nil {
		return flushErr
	}
	if closeErr != nil {
		return fmt.Errorf("close csv destination: %w", closeErr)
	}
	return nil
}
