package bumparena

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type point struct {
	X, Y float64
	Tag  uint32
}

func TestAlloc(t *testing.T) {
	a, _ := newTestArena(t, 4096)

	p := Alloc[point](a)
	require.NotNil(t, p)
	assert.Equal(t, point{}, *p)
	assert.Zero(t, uintptr(unsafe.Pointer(p))%unsafe.Alignof(point{}))

	p.X, p.Y, p.Tag = 1, 2, 3
	q := Alloc[point](a)
	assert.Equal(t, point{}, *q)
	assert.Equal(t, point{1, 2, 3}, *p)
}

func TestAllocSlice(t *testing.T) {
	a, _ := newTestArena(t, 4096)

	s := AllocSlice[uint64](a, 16)
	require.Len(t, s, 16)
	assert.Equal(t, 16, cap(s))
	for i := range s {
		assert.Zero(t, s[i])
		s[i] = uint64(i)
	}
	assert.Equal(t, uintptr(128), a.Offset())

	assert.Nil(t, AllocSlice[uint64](a, 0))
	assert.Nil(t, AllocSlice[uint64](a, -3))
}

func TestAllocSliceFailure(t *testing.T) {
	a, rec := newTestArena(t, 64)

	assert.Nil(t, AllocSlice[uint64](a, 9))
	assert.ErrorIs(t, rec.last(), ErrCapacityExhausted)
}

func TestAllocBytes(t *testing.T) {
	a, _ := newTestArena(t, 4096)

	b := AllocBytes(a, 100, 64)
	require.Len(t, b, 100)
	assert.Zero(t, uintptr(unsafe.Pointer(&b[0]))%64)

	assert.Nil(t, AllocBytes(a, 0, 8))
}
