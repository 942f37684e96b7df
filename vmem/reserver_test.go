package vmem

import (
	"errors"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeap_Reserve(t *testing.T) {
	sizes := []int{1, 100, PageSize, PageSize + 1, 1 << 20}

	for _, size := range sizes {
		r, err := Heap().Reserve(size)
		require.NoError(t, err)

		assert.Equal(t, size, r.Size())
		assert.Len(t, r.Bytes(), size)
		assert.Equal(t, uintptr(0), uintptr(r.Base())%PageSize, "size %d not page aligned", size)

		for i, b := range r.Bytes() {
			if b != 0 {
				t.Fatalf("size %d: byte %d not zero", size, i)
			}
		}
	}
}

func TestHeap_InvalidSize(t *testing.T) {
	_, err := Heap().Reserve(0)
	assert.ErrorIs(t, err, ErrInvalidSize)

	_, err = Heap().Reserve(-1)
	assert.ErrorIs(t, err, ErrInvalidSize)
}

func TestHeap_Disjoint(t *testing.T) {
	r1, err := Heap().Reserve(PageSize)
	require.NoError(t, err)
	r2, err := Heap().Reserve(PageSize)
	require.NoError(t, err)

	r1.Bytes()[0] = 0xAA
	assert.Equal(t, byte(0), r2.Bytes()[0])
	assert.NotEqual(t, r1.Base(), r2.Base())
}

func TestRegion_Release(t *testing.T) {
	r, err := Heap().Reserve(PageSize)
	require.NoError(t, err)

	require.NoError(t, r.Release())
	require.NoError(t, r.Release()) // idempotent

	assert.Nil(t, r.Bytes())
	assert.Nil(t, r.Base())
	assert.ErrorIs(t, r.Advise(AccessRandom), ErrReleased)
}

func TestCounting(t *testing.T) {
	c := Counting(Heap())
	assert.Equal(t, int64(0), c.Calls())

	_, err := c.Reserve(PageSize)
	require.NoError(t, err)
	_, err = c.Reserve(0)
	require.Error(t, err)

	assert.Equal(t, int64(2), c.Calls())
}

func TestFailing(t *testing.T) {
	boom := errors.New("boom")

	r, err := Failing(boom).Reserve(PageSize)
	assert.Nil(t, r)
	assert.ErrorIs(t, err, boom)
}

func TestReserverFunc(t *testing.T) {
	var got int
	f := ReserverFunc(func(size int) (*Region, error) {
		got = size
		return Heap().Reserve(size)
	})

	r, err := f.Reserve(128)
	require.NoError(t, err)
	assert.Equal(t, 128, got)
	assert.Equal(t, 128, len(unsafe.Slice((*byte)(r.Base()), r.Size())))
}

func TestAccessPattern_String(t *testing.T) {
	assert.Equal(t, "default", AccessDefault.String())
	assert.Equal(t, "sequential", AccessSequential.String())
	assert.Equal(t, "random", AccessRandom.String())
	assert.Equal(t, "willneed", AccessWillNeed.String())
	assert.Equal(t, "dontneed", AccessDontNeed.String())
}
