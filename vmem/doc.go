// Package vmem provides the virtual memory reservation capability used by the arena.
//
// # Overview
//
// A Reserver hands back one contiguous, zero-initialized, read-write Region that is
// private to the caller. The arena asks for exactly one Region during its lifetime and
// never gives it back; the operating system reclaims it at process exit.
//
//	r := vmem.OS()
//	region, err := r.Reserve(1 << 30)
//	if err != nil { ... }
//	base := region.Base()
//
// # Platform Support
//
//   - Unix (Linux, macOS, BSD; not Android): anonymous private mmap(2)
//   - Windows: VirtualAlloc with MEM_RESERVE|MEM_COMMIT (demand paged)
//   - Everything else: OS() returns ErrUnsupported, use Heap() instead
//
// # Test Reservers
//
// Heap() simulates a reservation with ordinary Go memory. Counting() records how often
// Reserve is called and Failing() always fails; both are meant for tests.
package vmem
