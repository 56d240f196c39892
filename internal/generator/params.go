package generator

import (
	"errors"
	"fmt"
	"math"

	"chronos-tradegen/internal/idhash"
)

// ErrInvalidParams is returned when generation parameters fail validation.
var ErrInvalidParams = errors.New("invalid generation params")

// Default generation constants.
const (
	DefaultNumRows            = 1_000_000
	DefaultBaseSlot           = 200_000_000
	DefaultBaseTimestamp      = 1_700_000_000
	DefaultPoolSize           = 100
	DefaultSlotSize           = 1000
	DefaultTxIndexCycle       = 2000
	DefaultAmountMin          = 1000
	DefaultAmountMax          = 1_000_000
	DefaultBundledProbability = 0.1
	DefaultProgressInterval   = 100_000
)

// Params controls the shape of a generated fixture.
type Params struct {
	NumRows       int64 // data rows to write
	BaseSlot      int64 // slot of row 0
	BaseTimestamp int64 // timestamp of row 0

	PoolSize     int   // number of mint identifiers
	SlotSize     int64 // consecutive rows sharing one slot
	TxIndexCycle int64 // tx_index wraps at this value

	AmountMin int64 // inclusive
	AmountMax int64 // inclusive

	BundledProbability float64 // P(is_bundled)
	SignatureLength    int     // hex chars kept from the signature digest

	ProgressInterval int64 // rows between progress notifications
}

// DefaultParams returns the parameters of the reference fixture.
func DefaultParams() Params {
	return Params{
		NumRows:            DefaultNumRows,
		BaseSlot:           DefaultBaseSlot,
		BaseTimestamp:      DefaultBaseTimestamp,
		PoolSize:           DefaultPoolSize,
		SlotSize:           DefaultSlotSize,
		TxIndexCycle:       DefaultTxIndexCycle,
		AmountMin:          DefaultAmountMin,
		AmountMax:          DefaultAmountMax,
		BundledProbability: DefaultBundledProbability,
		SignatureLength:    idhash.SignatureLength,
		ProgressInterval:   DefaultProgressInterval,
	}
}

// Validate checks params. Errors wrap ErrInvalidParams.
func (p Params) Validate() error {
	switch {
	case p.NumRows < 0:
		return fmt.Errorf("%w: num_rows must be >= 0, got %d", ErrInvalidParams, p.NumRows)
	case p.PoolSize < 1:
		return fmt.Errorf("%w: pool_size must be >= 1, got %d", ErrInvalidParams, p.PoolSize)
	case p.SlotSize < 1:
		return fmt.Errorf("%w: slot_size must be >= 1, got %d", ErrInvalidParams, p.SlotSize)
	case p.TxIndexCycle < 1:
		return fmt.Errorf("%w: tx_index_cycle must be >= 1, got %d", ErrInvalidParams, p.TxIndexCycle)
	case p.BaseSlot < 0:
		return fmt.Errorf("%w: base_slot must be >= 0, got %d", ErrInvalidParams, p.BaseSlot)
	case p.BaseSlot > math.MaxInt64-p.NumRows/p.SlotSize:
		return fmt.Errorf("%w: base_slot %d overflows over %d rows", ErrInvalidParams, p.BaseSlot, p.NumRows)
	case p.AmountMin < 0:
		return fmt.Errorf("%w: amount_min must be >= 0, got %d", ErrInvalidParams, p.AmountMin)
	case p.AmountMin > p.AmountMax:
		return fmt.Errorf("%w: amount range [%d, %d] is empty", ErrInvalidParams, p.AmountMin, p.AmountMax)
	case !(p.BundledProbability >= 0 && p.BundledProbability <= 1):
		return fmt.Errorf("%w: bundled_probability must be in [0, 1], got %v", ErrInvalidParams, p.BundledProbability)
	case p.SignatureLength < 0:
		return fmt.Errorf("%w: signature_length must be >= 0, got %d", ErrInvalidParams, p.SignatureLength)
	case p.ProgressInterval < 1:
		return fmt.Errorf("%w: progress_interval must be >= 1, got %d", ErrInvalidParams, p.ProgressInterval)
	}
	return nil
}
