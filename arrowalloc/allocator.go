// Package arrowalloc lets Apache Arrow builders place their buffers in a bump arena.
package arrowalloc

import (
	"fmt"
	"unsafe"

	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/hupe1980/bumparena"
)

// Alignment is the buffer alignment Arrow recommends for SIMD access.
const Alignment = 64

// Allocator adapts a bumparena.Allocator to memory.Allocator.
//
// Free is forwarded to the underlying Deallocate, which for an arena does
// nothing: buffers released by Arrow stay claimed until the process exits.
type Allocator struct {
	mem bumparena.Allocator
}

var _ memory.Allocator = (*Allocator)(nil)

// New returns an Arrow allocator backed by mem.
func New(mem bumparena.Allocator) *Allocator {
	return &Allocator{mem: mem}
}

// Allocate implements memory.Allocator.
func (a *Allocator) Allocate(size int) []byte {
	if size <= 0 {
		return []byte{}
	}
	b := bumparena.AllocBytes(a.mem, size, Alignment)
	if b == nil {
		// The failure handler returned; Arrow has no way to report it.
		panic(fmt.Sprintf("arrowalloc: allocation of %d bytes failed", size))
	}
	return b
}

// Reallocate implements memory.Allocator. Arena memory cannot grow in place,
// so the contents are copied into a fresh block.
func (a *Allocator) Reallocate(size int, b []byte) []byte {
	if size == len(b) {
		return b
	}
	out := a.Allocate(size)
	copy(out, b)
	a.Free(b)
	return out
}

// Free implements memory.Allocator.
func (a *Allocator) Free(b []byte) {
	if len(b) == 0 {
		return
	}
	a.mem.Deallocate(unsafe.Pointer(unsafe.SliceData(b)), uintptr(len(b)), Alignment)
}
