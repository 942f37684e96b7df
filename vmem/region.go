package vmem

import (
	"sync/atomic"
	"unsafe"
)

// Region is a reserved block of address space.
// It owns the underlying memory and is responsible for releasing it.
type Region struct {
	data     []byte
	released atomic.Bool
	// release is the platform-specific function giving the memory back.
	release func([]byte) error
}

func newRegion(data []byte, release func([]byte) error) *Region {
	return &Region{data: data, release: release}
}

// Base returns the address of the first byte of the region.
func (r *Region) Base() unsafe.Pointer {
	if r.released.Load() || len(r.data) == 0 {
		return nil
	}
	return unsafe.Pointer(unsafe.SliceData(r.data)) //nolint:gosec // unsafe is required for raw reservations
}

// Bytes returns the region as a byte slice.
// Warning: The slice is valid only until Release() is called.
func (r *Region) Bytes() []byte {
	if r.released.Load() {
		return nil
	}
	return r.data
}

// Size returns the size of the region in bytes.
func (r *Region) Size() int {
	return len(r.data)
}

// Advise provides hints to the kernel about how the memory will be accessed.
func (r *Region) Advise(pattern AccessPattern) error {
	if r.released.Load() {
		return ErrReleased
	}
	if len(r.data) == 0 {
		return nil
	}
	return osAdvise(r.data, pattern)
}

// Release gives the memory back. It is idempotent.
// Any pointer derived from the region is invalid afterwards.
func (r *Region) Release() error {
	if r.released.Swap(true) {
		return nil
	}
	if r.release != nil && r.data != nil {
		return r.release(r.data)
	}
	return nil
}
