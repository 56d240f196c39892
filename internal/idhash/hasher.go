package idhash

import (
	"crypto/sha256"
	"encoding/hex"
)

// Hasher maps a byte sequence to a fixed-length digest.
type Hasher func(data []byte) []byte

// SHA256 is the default Hasher. Digests are 32 bytes (64 hex characters).
func SHA256(data []byte) []byte {
	sum := sha256.Sum256(data)
	return sum[:]
}

// Digest returns the lowercase hex digest of data truncated to n characters.
// n <= 0 or n beyond the digest length returns the full hex digest.
func Digest(h Hasher, data []byte, n int) string {
	s := hex.EncodeToString(h(data))
	if n > 0 && n < len(s) {
		return s[:n]
	}
	return s
}
