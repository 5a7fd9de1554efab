package processor

import (
	"errors"
	"fmt"
	"io"
)

// DefaultChunkSize is the read buffer size used when none is configured
const DefaultChunkSize = 64 * 1024

// maxEmptyReads bounds consecutive (0, nil) reads before giving up
const maxEmptyReads = 100

// ChunkReader pulls fixed-size chunks from a byte source.
// Fill exposes the unconsumed part of the current chunk and Consume marks
// bytes of it as processed.
type ChunkReader struct {
	src      io.Reader
	buf      []byte
	start    int // First unconsumed byte in buf
	end      int // End of valid data in buf
	err      error
	consumed uint64
}

// NewChunkReader creates a reader with a buffer of chunkSize bytes
func NewChunkReader(src io.Reader, chunkSize int) *ChunkReader {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	return &ChunkReader{
		src: src,
		buf: make([]byte, chunkSize),
	}
}

// Fill returns the unconsumed bytes of the current chunk, reading the next
// chunk from the source once the previous one is fully consumed.
// An empty slice with a nil error means the source is exhausted.
// The returned slice is only valid until the next call to Fill.
func (r *ChunkReader) Fill() ([]byte, error) {
	if r.start < r.end {
		return r.buf[r.start:r.end], nil
	}
	if r.err != nil {
		return nil, r.readErr()
	}

	r.start, r.end = 0, 0
	for i := 0; i < maxEmptyReads; i++ {
		n, err := r.src.Read(r.buf)
		if n < 0 || n > len(r.buf) {
			return nil, fmt.Errorf("%w: invalid read count %d", ErrSourceRead, n)
		}
		if err != nil {
			// Data read alongside an error is still hashed; the error
			// surfaces once that data has been consumed.
			r.err = err
		}
		if n > 0 {
			r.end = n
			return r.buf[:n], nil
		}
		if r.err != nil {
			return nil, r.readErr()
		}
	}
	r.err = io.ErrNoProgress
	return nil, r.readErr()
}

// Consume marks n bytes of the current chunk as processed
func (r *ChunkReader) Consume(n int) {
	if n < 0 {
		n = 0
	}
	if avail := r.end - r.start; n > avail {
		n = avail
	}
	r.start += n
	r.consumed += uint64(n)
}

// Consumed returns the cumulative number of bytes consumed
func (r *ChunkReader) Consumed() uint64 {
	return r.consumed
}

func (r *ChunkReader) readErr() error {
	if errors.Is(r.err, io.EOF) {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrSourceRead, r.err)
}
