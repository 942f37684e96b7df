package bumparena

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"
	"unsafe"

	"github.com/dustin/go-humanize"

	"github.com/hupe1980/bumparena/internal/conv"
	"github.com/hupe1980/bumparena/vmem"
)

// DefaultCapacity is the capacity of an arena created without WithCapacity (1 GiB).
const DefaultCapacity = 1 << 30

// State is the reservation state of an arena.
type State uint32

const (
	// StateUnreserved means no allocation has happened yet.
	StateUnreserved State = iota
	// StateReserving means the first allocation is obtaining the region.
	StateReserving
	// StateReserved means the region is in place. Terminal.
	StateReserved
	// StateFailed means the reservation failed and the failure handler returned.
	// Terminal; the reserver is never asked again.
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateUnreserved:
		return "unreserved"
	case StateReserving:
		return "reserving"
	case StateReserved:
		return "reserved"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("State(%d)", uint32(s))
	}
}

type counters struct {
	allocations    uint64
	bytesRequested uint64
	bytesConsumed  uint64
	failures       uint64
}

// Arena is a bump allocator over a single lazily reserved region.
//
// The region is reserved by the first Allocate call, never by New. Every
// Allocate call holds the arena mutex for its whole duration, so allocations
// are totally ordered. Memory is never handed back: Deallocate is a no-op and
// the region lives until the process exits.
type Arena struct {
	opts  options
	timed bool

	mu         sync.Mutex // guards the fields below
	region     *vmem.Region // keeps heap-backed regions reachable
	base       unsafe.Pointer
	offset     uintptr
	reserveErr error // sticky reservation failure
	stats      counters

	// state is written under mu and may be read without it.
	state atomic.Uint32
}

var _ Allocator = (*Arena)(nil)

// New creates an arena. It does not touch the operating system.
func New(opts ...Option) *Arena {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	if o.name != "" {
		o.logger = o.logger.WithName(o.name)
	}

	_, noop := o.metrics.(NoopMetricsCollector)

	return &Arena{
		opts:  o,
		timed: !noop,
	}
}

// Allocate returns a pointer to size bytes aligned to align.
//
// align must be a non-zero power of two. On failure the configured
// FailureHandler is invoked after the arena lock has been released; if the
// handler returns, Allocate returns nil.
func (a *Arena) Allocate(size, align uintptr) unsafe.Pointer {
	var start time.Time
	if a.timed {
		start = time.Now()
	}

	ptr, err := a.allocate(size, align)
	if err != nil {
		a.opts.metrics.RecordFailure(err)
		a.opts.logger.LogFailure(err)
		a.opts.onFailure(err)
		return nil
	}

	if a.timed {
		a.opts.metrics.RecordAllocate(size, align, time.Since(start))
	}
	return ptr
}

// Deallocate does nothing. Memory handed out by an arena is never reclaimed.
func (a *Arena) Deallocate(unsafe.Pointer, uintptr, uintptr) {}

func (a *Arena) allocate(size, align uintptr) (unsafe.Pointer, *AllocError) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !validAlign(align) {
		a.stats.failures++
		return nil, a.errorLocked(ErrInvalidLayout, size, align, nil)
	}

	if err := a.reserveLocked(); err != nil {
		a.stats.failures++
		return nil, a.errorLocked(ErrReservationFailure, size, align, err)
	}

	start, next, ok := a.placeLocked(size, align)

	// The conservative policy advances before the bound check, so a failed
	// request still burns its share of the region.
	if ok || a.opts.padding == PaddingConservative {
		a.stats.bytesConsumed += uint64(next - a.offset)
		a.offset = next
	}

	if !ok {
		a.stats.failures++
		return nil, a.errorLocked(ErrCapacityExhausted, size, align, nil)
	}

	a.stats.allocations++
	a.stats.bytesRequested += uint64(size)

	return unsafe.Add(a.base, start), nil //nolint:gosec // start+size is within the region
}

// placeLocked computes the aligned start of a request, the offset following it
// and whether the request fits into the region.
func (a *Arena) placeLocked(size, align uintptr) (start, next uintptr, ok bool) {
	capacity := a.opts.capacity

	// Align the absolute address so that alignments above the region's own
	// alignment are honoured too.
	base := uintptr(a.base)
	addr, ok := conv.AddUintptr(base, a.offset)
	if !ok {
		return 0, a.offset, false
	}
	aligned, ok := alignUp(addr, align)
	if !ok {
		return 0, a.offset, false
	}
	start = aligned - base

	end, endOK := conv.AddUintptr(start, size)

	switch a.opts.padding {
	case PaddingConservative:
		next = ^uintptr(0)
		if padded, ok := conv.AddUintptr(size, align); ok {
			if consume, ok := alignUp(padded, align); ok {
				if n, ok := conv.AddUintptr(a.offset, consume); ok {
					next = n
				}
			}
		}
	default:
		next = end
	}

	if !endOK {
		return start, next, false
	}
	if size == 0 {
		// A zero-sized request still has to point inside the region.
		return start, next, start < capacity
	}
	return start, next, end <= capacity
}

// reserveLocked performs the one-time reservation. It must be called with mu held.
func (a *Arena) reserveLocked() error {
	switch State(a.state.Load()) {
	case StateReserved:
		return nil
	case StateFailed:
		return a.reserveErr
	}

	a.state.Store(uint32(StateReserving))

	start := time.Now()
	region, err := a.reserveRegion()
	elapsed := time.Since(start)

	a.opts.metrics.RecordReserve(a.opts.capacity, elapsed, err)
	a.opts.logger.LogReserve(a.opts.capacity, elapsed, err)

	if err != nil {
		a.reserveErr = err
		a.state.Store(uint32(StateFailed))
		return err
	}

	if a.opts.advice != vmem.AccessDefault {
		if err := region.Advise(a.opts.advice); err != nil {
			a.opts.logger.Warn("advise failed", "pattern", a.opts.advice.String(), "error", err)
		}
	}

	a.region = region
	a.base = region.Base()
	a.state.Store(uint32(StateReserved))
	return nil
}

func (a *Arena) reserveRegion() (*vmem.Region, error) {
	size, err := conv.UintptrToInt(a.opts.capacity)
	if err != nil {
		return nil, err
	}
	amount := int64(size)

	if a.opts.acquirer != nil {
		if err := a.opts.acquirer.AcquireMemory(amount); err != nil {
			return nil, err
		}
	}

	region, err := a.opts.reserver.Reserve(size)
	if err == nil && (region == nil || region.Size() < size || region.Base() == nil) {
		err = fmt.Errorf("reserver returned a short region for %d bytes", size)
	}
	if err != nil {
		if a.opts.acquirer != nil {
			a.opts.acquirer.ReleaseMemory(amount)
		}
		return nil, err
	}

	return region, nil
}

func (a *Arena) errorLocked(kind error, size, align uintptr, cause error) *AllocError {
	return &AllocError{
		Kind:     kind,
		Size:     size,
		Align:    align,
		Offset:   a.offset,
		Capacity: a.opts.capacity,
		cause:    cause,
	}
}

// Capacity returns the size of the region in bytes. It never changes.
func (a *Arena) Capacity() uintptr {
	return a.opts.capacity
}

// Offset returns the number of bytes claimed so far.
func (a *Arena) Offset() uintptr {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.offset
}

// State returns the reservation state without taking the arena lock.
func (a *Arena) State() State {
	return State(a.state.Load())
}

// Reserved reports whether the region has been reserved.
func (a *Arena) Reserved() bool {
	return a.State() == StateReserved
}

// Stats returns a snapshot of the arena statistics.
func (a *Arena) Stats() Stats {
	a.mu.Lock()
	defer a.mu.Unlock()

	return Stats{
		Capacity:       a.opts.capacity,
		Offset:         a.offset,
		State:          State(a.state.Load()),
		Allocations:    a.stats.allocations,
		BytesRequested: a.stats.bytesRequested,
		BytesConsumed:  a.stats.bytesConsumed,
		Failures:       a.stats.failures,
	}
}

func (a *Arena) String() string {
	s := a.Stats()
	return fmt.Sprintf(
		"Arena{name: %q, state: %s, capacity: %s, used: %s, usage: %.1f%%, allocs: %d, failures: %d}",
		a.opts.name,
		s.State,
		humanize.IBytes(uint64(s.Capacity)),
		humanize.IBytes(uint64(s.Offset)),
		s.Utilization()*100,
		s.Allocations,
		s.Failures,
	)
}
