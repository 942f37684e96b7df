package mem

import (
	"fmt"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
)

func TestAllocAligned(t *testing.T) {
	sizes := []int{1, 10, 63, 64, 65, 100, 4096, 4097}
	aligns := []int{1, 8, 64, 4096}

	for _, align := range aligns {
		for _, size := range sizes {
			buf := AllocAligned(size, align)
			assert.Len(t, buf, size)
			assert.Equal(t, size, cap(buf))

			addr := uintptr(unsafe.Pointer(&buf[0]))
			assert.Equal(t, uintptr(0), addr%uintptr(align), "Address %d should be aligned to %d for size %d", addr, align, size)
		}
	}

	assert.Nil(t, AllocAligned(0, 64))
	assert.Nil(t, AllocAligned(-1, 64))
}

func TestAllocAligned_Zeroed(t *testing.T) {
	buf := AllocAligned(1024, 64)
	for i, b := range buf {
		if b != 0 {
			t.Fatalf("byte at index %d not zero: %d", i, b)
		}
	}
}

func BenchmarkAllocAligned(b *testing.B) {
	sizes := []int{64, 256, 1024, 4096}
	for _, size := range sizes {
		b.Run(fmt.Sprintf("size=%d", size), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				_ = AllocAligned(size, 4096)
			}
		})
	}
}
