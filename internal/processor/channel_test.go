package processor

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"xxh/pkg/types"
)

func TestProgressSlotDropsWhenFull(t *testing.T) {
	s := NewProgressSlot()

	_, ok := s.TryTake()
	assert.False(t, ok, "empty slot")

	assert.True(t, s.TryPublish(10))
	assert.False(t, s.TryPublish(20), "occupied slot must drop")
	assert.False(t, s.TryPublish(30))

	v, ok := s.TryTake()
	assert.True(t, ok)
	assert.Equal(t, types.ProgressSample(10), v)

	_, ok = s.TryTake()
	assert.False(t, ok)

	assert.True(t, s.TryPublish(40))
	v, _ = s.TryTake()
	assert.Equal(t, types.ProgressSample(40), v)
}

func TestCompletionSingleShot(t *testing.T) {
	c := NewCompletion()
	assert.False(t, c.Ready())

	errBoom := errors.New("boom")
	c.publish(types.HashResult{Bytes: 3, Err: errBoom})
	assert.True(t, c.Ready())

	res := c.Result()
	assert.True(t, res.Failed())
	assert.ErrorIs(t, res.Err, errBoom)
	assert.Equal(t, uint64(3), res.Bytes)
	assert.False(t, c.Ready())
}
