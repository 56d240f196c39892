package idhash

import (
	"errors"
	"strconv"
)

// SignatureLength is the hex length of a fixture tx_signature.
const SignatureLength = 44

// ErrInvalidPoolSize is returned when a pool of size < 1 is requested.
var ErrInvalidPoolSize = errors.New("pool size must be positive")

// ComputeMintID computes the identifier at position index of the mint pool.
// Formula: hex(H(decimal(index))), full digest length.
func ComputeMintID(h Hasher, index int) string {
	return Digest(h, []byte(strconv.Itoa(index)), 0)
}

// ComputeTxSignature computes the fake transaction signature of row index.
// Formula: hex(H(decimal(index)))[:length]
//
// The hash input is the bare row index, so signatures are unique over any
// range of indices generated without repetition.
func ComputeTxSignature(h Hasher, index int64, length int) string {
	return Digest(h, []byte(strconv.FormatInt(index, 10)), length)
}

// BuildPool returns size mint identifiers ordered by position index.
// Same h and size always yield the same pool.
func BuildPool(h Hasher, size int) ([]string, error) {
	if size <= 0 {
		return nil, ErrInvalidPoolSize
	}

	pool := make([]string, size)
	for i := range pool {
		pool[i] = ComputeMintID(h, i)
	}
	return pool, nil
}
