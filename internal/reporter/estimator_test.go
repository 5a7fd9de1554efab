package reporter

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xxh/pkg/types"
)

func TestCalculatePercentBounds(t *testing.T) {
	const total = 8202
	for _, bytes := range []uint64{0, 1, 41, 4096, 8192, 8201, total} {
		e := Calculate(2*time.Second, bytes, total, true)
		require.True(t, e.HasPercent)
		assert.GreaterOrEqual(t, e.Percent, 0, "bytes=%d", bytes)
		assert.LessOrEqual(t, e.Percent, 100, "bytes=%d", bytes)
	}

	assert.Equal(t, 0, Calculate(time.Second, 0, total, true).Percent)
	assert.Equal(t, 100, Calculate(time.Second, total, total, true).Percent)
	assert.Equal(t, 50, Calculate(time.Second, total/2, total, true).Percent)
}

func TestCalculateMonotonicInBytes(t *testing.T) {
	const total = 1 << 20
	elapsed := 1500 * time.Millisecond

	prev := Calculate(elapsed, 0, total, true)
	for bytes := uint64(1); bytes <= total; bytes += 7919 {
		cur := Calculate(elapsed, bytes, total, true)
		assert.GreaterOrEqual(t, cur.Percent, prev.Percent, "bytes=%d", bytes)
		assert.GreaterOrEqual(t, cur.BytesPerSec, prev.BytesPerSec, "bytes=%d", bytes)
		prev = cur
	}
}

func TestCalculateThroughputAndRemaining(t *testing.T) {
	e := Calculate(2*time.Second, 4*1024*1024, 10*1024*1024, true)

	assert.InDelta(t, 2*1024*1024, e.BytesPerSec, 0.001)
	assert.Equal(t, "2.0 MiB/s", e.Rate())
	assert.Equal(t, 40, e.Percent)
	require.True(t, e.HasRemaining)
	assert.Equal(t, 3*time.Second, e.Remaining)
	assert.Equal(t, "3s", e.ETA())
	assert.False(t, e.Done())
}

func TestCalculateDegenerate(t *testing.T) {
	t.Run("zero elapsed", func(t *testing.T) {
		e := Calculate(0, 4096, 8192, true)
		assert.False(t, math.IsNaN(e.BytesPerSec))
		assert.False(t, math.IsInf(e.BytesPerSec, 0))
		assert.Zero(t, e.BytesPerSec)
		assert.Equal(t, "0 B/s", e.Rate())
		assert.Equal(t, 50, e.Percent)
		assert.Equal(t, "unknown", e.ETA())
	})

	t.Run("negative elapsed", func(t *testing.T) {
		e := Calculate(-time.Second, 10, 20, true)
		assert.Zero(t, e.BytesPerSec)
		assert.Equal(t, "unknown", e.ETA())
	})

	t.Run("unknown size", func(t *testing.T) {
		e := Calculate(time.Second, 2048, 0, false)
		assert.False(t, e.HasPercent)
		assert.False(t, e.HasRemaining)
		assert.Equal(t, "2.0 KiB/s", e.Rate())
		assert.Equal(t, "unknown", e.ETA())
		assert.False(t, e.Done())
	})

	t.Run("empty source", func(t *testing.T) {
		e := Calculate(0, 0, 0, true)
		assert.True(t, e.HasPercent)
		assert.Equal(t, 100, e.Percent)
		assert.Equal(t, "0s", e.ETA())
		assert.True(t, e.Done())
	})

	t.Run("overflowing estimate", func(t *testing.T) {
		e := Calculate(time.Hour, 1, math.MaxInt64, true)
		assert.Equal(t, "unknown", e.ETA())
	})
}

func TestTrackerSample(t *testing.T) {
	now := time.Unix(1700000000, 0)
	clock := func() time.Time { return now }

	tr := newTrackerWithClock(types.FileJob{Name: "a.bin", Size: 1000, SizeKnown: true}, clock)
	now = now.Add(500 * time.Millisecond)

	e := tr.Sample(250)
	assert.Equal(t, 500*time.Millisecond, e.Elapsed)
	assert.InDelta(t, 500, e.BytesPerSec, 0.001)
	assert.Equal(t, 25, e.Percent)
	assert.Equal(t, "2s", e.ETA())
}
