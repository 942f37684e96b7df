package bumparena

import (
	"math/bits"
	"unsafe"
)

// Allocator is the contract a program-wide memory provider offers its consumers.
//
// Allocate never returns an error value: failure is fatal and is reported
// through the allocator's failure handling instead.
type Allocator interface {
	Allocate(size, align uintptr) unsafe.Pointer
	Deallocate(ptr unsafe.Pointer, size, align uintptr)
}

// Layout describes the size and alignment of a block of memory.
type Layout struct {
	Size  uintptr
	Align uintptr
}

// LayoutOf returns the layout of T.
func LayoutOf[T any]() Layout {
	var zero T
	return Layout{
		Size:  unsafe.Sizeof(zero),
		Align: unsafe.Alignof(zero),
	}
}

// Valid reports whether the alignment is a non-zero power of two.
func (l Layout) Valid() bool {
	return validAlign(l.Align)
}

// Array returns the layout of n consecutive values of l.
// ok is false if the size overflows.
func (l Layout) Array(n int) (Layout, bool) {
	if n < 0 {
		return Layout{}, false
	}
	hi, lo := bits.Mul(uint(l.Size), uint(n))
	if hi != 0 {
		return Layout{}, false
	}
	return Layout{Size: uintptr(lo), Align: l.Align}, true
}

func validAlign(align uintptr) bool {
	return align != 0 && align&(align-1) == 0
}

// alignUp rounds v up to a multiple of align, which must be a power of two.
// ok is false if the result does not fit into a uintptr.
func alignUp(v, align uintptr) (uintptr, bool) {
	mask := align - 1
	r := (v + mask) &^ mask
	return r, r >= v
}
