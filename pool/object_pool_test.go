package pool

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPool_GetPutReuses(t *testing.T) {
	p := NewPool(
		func() *int { v := 0; return &v },
		func(v **int) { **v = 0 },
	)

	v := p.Get()
	*v = 42
	p.Put(v)

	v2 := p.Get()
	assert.Equal(t, 0, *v2)
	assert.Equal(t, int64(2), p.Stats().Gets)
	assert.Equal(t, int64(1), p.Stats().Puts)
}

func TestPool_HitRate(t *testing.T) {
	stats := PoolStats{Gets: 10, News: 4}
	assert.InDelta(t, 0.6, stats.HitRate(), 0.0001)

	assert.Equal(t, float64(0), PoolStats{}.HitRate())
}

func TestSlicePool_ResetsLength(t *testing.T) {
	p := NewSlicePool[byte](16)

	s := p.Get()
	s = append(s, 1, 2, 3)
	p.Put(s)

	s2 := p.Get()
	assert.Len(t, s2, 0)
	assert.GreaterOrEqual(t, cap(s2), 3)
}

func TestBlockBufferPool_ReturnsZeroedBlocks(t *testing.T) {
	p := NewBlockBufferPool(16)

	b := p.Get()
	assert.Len(t, b, 16)
	for _, v := range b {
		assert.Zero(t, v)
	}

	for i := range b {
		b[i] = byte(i + 1)
	}
	p.Put(b)

	b2 := p.Get()
	assert.Len(t, b2, 16)
	for _, v := range b2 {
		assert.Zero(t, v)
	}
}

func TestBlockBufferPool_RejectsUndersizedReturn(t *testing.T) {
	p := NewBlockBufferPool(16)

	undersized := make([]byte, 0, 4)
	assert.NotPanics(t, func() { p.Put(undersized) })
}
