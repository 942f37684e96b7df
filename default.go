package bumparena

import (
	"log/slog"
	"sync"
	"unsafe"
)

var defaultArena = sync.OnceValue(func() *Arena {
	capacity, err := capacityFromEnv()
	if err != nil {
		NewTextLogger(slog.LevelWarn).Warn("ignoring "+CapacityEnv, "error", err)
	}
	return New(WithCapacity(capacity), WithName("default"))
})

// Default returns the process-wide arena. Its capacity comes from the
// BUMPARENA_CAPACITY environment variable, read on first call, and falls back
// to DefaultCapacity. Failures panic.
func Default() *Arena {
	return defaultArena()
}

// Allocate allocates from the process-wide arena.
func Allocate(size, align uintptr) unsafe.Pointer {
	return Default().Allocate(size, align)
}

// Deallocate is a no-op on the process-wide arena.
func Deallocate(ptr unsafe.Pointer, size, align uintptr) {
	Default().Deallocate(ptr, size, align)
}
