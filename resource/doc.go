// Package resource implements a Controller for process-wide allocation limits.
//
// The Controller governs two resources:
//
//   - Memory: a byte budget that arenas draw their reservation from (non-blocking, fail-fast)
//   - Allocation rate: a token bucket callers can wait on before allocating
//
// # Memory Budget
//
// Memory tracking uses a weighted semaphore for hard limits and an atomic counter
// for usage tracking. AcquireMemory never blocks; it returns ErrMemoryLimitExceeded
// when the budget would be exceeded:
//
//	rc := resource.NewController(resource.Config{
//	    MemoryLimitBytes: 2 << 30, // 2 GiB across all arenas
//	})
//
//	a := bumparena.New(bumparena.WithMemoryAcquirer(rc))
//
// # Allocation Rate
//
//	rc := resource.NewController(resource.Config{AllocationsPerSec: 10_000})
//	if err := rc.WaitAllocation(ctx, 1); err != nil {
//	    return err
//	}
//
// # Nil Safety
//
// All methods handle a nil Controller gracefully; they become no-ops.
package resource
