package bumparena

import (
	"unsafe"
)

// Alloc allocates a zero value of T from a and returns a pointer to it.
//
// Arena memory is not scanned by the garbage collector: T must not contain
// Go pointers (pointers, slices, strings, maps, channels, interfaces, funcs)
// that are the only reference to heap objects.
// Returns nil if the allocator's failure handler returned.
func Alloc[T any](a Allocator) *T {
	l := LayoutOf[T]()
	return (*T)(a.Allocate(l.Size, l.Align))
}

// AllocSlice allocates n zero values of T and returns them as a slice with len and cap n.
// Returns nil if n <= 0, if the size overflows or if the allocator's failure handler returned.
// The pointer restrictions of Alloc apply.
func AllocSlice[T any](a Allocator, n int) []T {
	if n <= 0 {
		return nil
	}
	l, ok := LayoutOf[T]().Array(n)
	if !ok {
		return nil
	}
	p := a.Allocate(l.Size, l.Align)
	if p == nil {
		return nil
	}
	return unsafe.Slice((*T)(p), n)
}

// AllocBytes allocates n bytes with the given alignment.
func AllocBytes(a Allocator, n int, align uintptr) []byte {
	if n <= 0 {
		return nil
	}
	p := a.Allocate(uintptr(n), align)
	if p == nil {
		return nil
	}
	return unsafe.Slice((*byte)(p), n)
}
