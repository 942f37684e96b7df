package bumparena

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLayoutOf(t *testing.T) {
	type pair struct {
		a uint8
		b uint64
	}

	assert.Equal(t, Layout{Size: 1, Align: 1}, LayoutOf[uint8]())
	assert.Equal(t, Layout{Size: 8, Align: 8}, LayoutOf[uint64]())
	assert.Equal(t, Layout{Size: 16, Align: 8}, LayoutOf[pair]())
	assert.Equal(t, Layout{Size: 0, Align: 1}, LayoutOf[struct{}]())
	assert.True(t, LayoutOf[pair]().Valid())
}

func TestLayoutValid(t *testing.T) {
	for _, align := range []uintptr{1, 2, 4, 8, 4096, 1 << 20} {
		assert.True(t, Layout{Align: align}.Valid(), "align %d", align)
	}
	for _, align := range []uintptr{0, 3, 5, 24, 4095} {
		assert.False(t, Layout{Align: align}.Valid(), "align %d", align)
	}
}

func TestLayoutArray(t *testing.T) {
	l, ok := LayoutOf[uint32]().Array(10)
	assert.True(t, ok)
	assert.Equal(t, Layout{Size: 40, Align: 4}, l)

	_, ok = LayoutOf[uint64]().Array(-1)
	assert.False(t, ok)

	_, ok = Layout{Size: ^uintptr(0), Align: 1}.Array(2)
	assert.False(t, ok)
}

func TestAlignUp(t *testing.T) {
	tests := []struct {
		v, align, want uintptr
	}{
		{0, 8, 0},
		{1, 8, 8},
		{8, 8, 8},
		{9, 8, 16},
		{4095, 4096, 4096},
		{17, 1, 17},
	}
	for _, tt := range tests {
		got, ok := alignUp(tt.v, tt.align)
		assert.True(t, ok)
		assert.Equal(t, tt.want, got, "alignUp(%d, %d)", tt.v, tt.align)
	}

	_, ok := alignUp(^uintptr(0)-2, 8)
	assert.False(t, ok)
}
