//go:build windows

package vmem

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

func osReserve(size int) ([]byte, func([]byte) error, error) {
	// MEM_COMMIT is demand paged, so pages only get physical backing when first
	// touched, like an anonymous mmap.
	addr, err := windows.VirtualAlloc(0, uintptr(size),
		windows.MEM_RESERVE|windows.MEM_COMMIT, windows.PAGE_READWRITE)
	if err != nil {
		return nil, nil, err
	}

	data := unsafe.Slice((*byte)(unsafe.Pointer(addr)), size) //nolint:gosec // unsafe is required for raw reservations

	return data, func([]byte) error {
		return windows.VirtualFree(addr, 0, windows.MEM_RELEASE)
	}, nil
}

func osAdvise([]byte, AccessPattern) error {
	return nil // no madvise equivalent
}
