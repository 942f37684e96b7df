// Package bumparena provides a lazily reserved bump allocator for
// program-wide, short-lived workloads.
//
// An Arena owns a single contiguous region of address space, 1 GiB unless
// configured otherwise. Nothing is reserved until the first allocation; from
// then on every Allocate call advances an offset inside that region. Memory is
// never reclaimed: Deallocate is a no-op and the region lives until the
// process exits. This makes Arena a fit for batch jobs and command line tools
// whose total allocation volume is bounded and known.
//
// # Quick Start
//
//	a := bumparena.New(bumparena.WithCapacity(64 << 20))
//	p := bumparena.Alloc[[4]uint64](a)
//	buf := bumparena.AllocSlice[float32](a, 1024)
//
// The process-wide arena is available through Default, Allocate and
// Deallocate. Its capacity is read from BUMPARENA_CAPACITY (for example
// "512MB").
//
// # Concurrency
//
// All allocations on an Arena are serialized by one mutex, including the
// one-time reservation. Blocks handed out are pairwise disjoint.
//
// # Failures
//
// Allocation failures are fatal. ReservationFailure and CapacityExhausted are
// delivered to the configured FailureHandler as *AllocError; the default
// handler panics. A handler that returns makes Allocate return nil. A failed
// reservation is never retried.
//
// # Garbage collector
//
// Arena memory lives outside the Go heap. Values stored in it must not hold
// the only reference to Go heap objects.
package bumparena
