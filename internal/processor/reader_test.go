package processor

import (
	"bytes"
	"errors"
	"io"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chunkedSource returns data in reads of the listed sizes
type chunkedSource struct {
	data  []byte
	sizes []int
}

func (s *chunkedSource) Read(p []byte) (int, error) {
	if len(s.data) == 0 {
		return 0, io.EOF
	}
	n := len(s.data)
	if len(s.sizes) > 0 {
		n = s.sizes[0]
		s.sizes = s.sizes[1:]
	}
	n = min(n, len(p), len(s.data))
	copy(p, s.data[:n])
	s.data = s.data[n:]
	return n, nil
}

// drain reads src through a ChunkReader and returns the chunks seen
func drain(t *testing.T, r *ChunkReader) ([][]byte, error) {
	t.Helper()
	var chunks [][]byte
	for {
		chunk, err := r.Fill()
		if err != nil {
			return chunks, err
		}
		if len(chunk) == 0 {
			return chunks, nil
		}
		chunks = append(chunks, bytes.Clone(chunk))
		r.Consume(len(chunk))
	}
}

func TestChunkReaderChunks(t *testing.T) {
	data := bytes.Repeat([]byte("abcdefgh"), 1026) // 8208 bytes
	src := &chunkedSource{data: bytes.Clone(data), sizes: []int{4096, 4096, 10}}

	r := NewChunkReader(src, 8192)
	chunks, err := drain(t, r)
	require.NoError(t, err)

	require.Len(t, chunks, 4)
	assert.Len(t, chunks[0], 4096)
	assert.Len(t, chunks[1], 4096)
	assert.Len(t, chunks[2], 10)
	assert.Len(t, chunks[3], 6)
	assert.Equal(t, uint64(len(data)), r.Consumed())
	assert.Equal(t, data, bytes.Join(chunks, nil))
}

func TestChunkReaderBufferBound(t *testing.T) {
	r := NewChunkReader(bytes.NewReader(make([]byte, 100)), 16)
	chunks, err := drain(t, r)
	require.NoError(t, err)
	for _, c := range chunks {
		assert.LessOrEqual(t, len(c), 16)
	}
	assert.Equal(t, uint64(100), r.Consumed())
}

func TestChunkReaderPartialConsume(t *testing.T) {
	r := NewChunkReader(bytes.NewReader([]byte("hello world")), 64)

	chunk, err := r.Fill()
	require.NoError(t, err)
	assert.Equal(t, "hello world", string(chunk))

	r.Consume(6)
	chunk, err = r.Fill()
	require.NoError(t, err)
	assert.Equal(t, "world", string(chunk))

	// Over-consuming is clamped to what is available
	r.Consume(100)
	assert.Equal(t, uint64(11), r.Consumed())

	chunk, err = r.Fill()
	require.NoError(t, err)
	assert.Empty(t, chunk)
}

func TestChunkReaderEmptySource(t *testing.T) {
	r := NewChunkReader(bytes.NewReader(nil), 0)
	chunk, err := r.Fill()
	require.NoError(t, err)
	assert.Empty(t, chunk)
	assert.Zero(t, r.Consumed())

	// Exhaustion is sticky
	chunk, err = r.Fill()
	require.NoError(t, err)
	assert.Empty(t, chunk)
}

func TestChunkReaderOneByteReads(t *testing.T) {
	data := []byte("one byte at a time")
	r := NewChunkReader(iotest.OneByteReader(bytes.NewReader(data)), 8)
	chunks, err := drain(t, r)
	require.NoError(t, err)
	assert.Len(t, chunks, len(data))
	assert.Equal(t, data, bytes.Join(chunks, nil))
}

func TestChunkReaderDataWithEOF(t *testing.T) {
	data := []byte("final chunk arrives with EOF")
	r := NewChunkReader(iotest.DataErrReader(bytes.NewReader(data)), 1024)
	chunks, err := drain(t, r)
	require.NoError(t, err)
	assert.Equal(t, data, bytes.Join(chunks, nil))
}

func TestChunkReaderErrors(t *testing.T) {
	errBoom := errors.New("boom")

	t.Run("immediate", func(t *testing.T) {
		r := NewChunkReader(iotest.ErrReader(errBoom), 16)
		_, err := r.Fill()
		assert.ErrorIs(t, err, ErrSourceRead)
		assert.ErrorIs(t, err, errBoom)
	})

	t.Run("after data", func(t *testing.T) {
		src := io.MultiReader(bytes.NewReader([]byte("0123456789")), iotest.ErrReader(errBoom))
		r := NewChunkReader(src, 4)
		chunks, err := drain(t, r)
		assert.ErrorIs(t, err, errBoom)
		assert.Equal(t, "0123456789", string(bytes.Join(chunks, nil)))
		assert.Equal(t, uint64(10), r.Consumed())
	})

	t.Run("no progress", func(t *testing.T) {
		r := NewChunkReader(stuckReader{}, 16)
		_, err := r.Fill()
		assert.ErrorIs(t, err, ErrSourceRead)
		assert.ErrorIs(t, err, io.ErrNoProgress)
	})
}

type stuckReader struct{}

func (stuckReader) Read([]byte) (int, error) { return 0, nil }
