package mem

import (
	"unsafe"
)

// AllocAligned allocates a zeroed byte slice of the given size whose first byte is
// aligned to align, which must be a power of two.
//
// Note: This function allocates align-1 extra bytes to find an aligned start.
// The underlying array is kept alive by the returned slice.
func AllocAligned(size, align int) []byte {
	if size <= 0 {
		return nil
	}
	if align <= 1 {
		return make([]byte, size)
	}

	buf := make([]byte, size+align-1)

	// Calculate the offset to the first aligned byte
	addr := uintptr(unsafe.Pointer(unsafe.SliceData(buf))) //nolint:gosec // unsafe is required for memory alignment
	mask := uintptr(align - 1)
	offset := (uintptr(align) - (addr & mask)) & mask

	return buf[offset : offset+uintptr(size) : offset+uintptr(size)]
}
