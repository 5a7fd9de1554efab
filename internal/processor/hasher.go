package processor

import "github.com/cespare/xxhash/v2"

// Hasher is an incremental 64-bit checksum.
// Write consumes bytes in order; Sum64 is read once after all input is written.
type Hasher interface {
	Write(p []byte) (int, error)
	Sum64() uint64
}

// NewXXHash returns an xxHash64 hasher using seed
func NewXXHash(seed uint64) Hasher {
	return xxhash.NewWithSeed(seed)
}
