package vmem

import (
	"sync/atomic"

	"github.com/hupe1980/bumparena/internal/mem"
)

// PageSize is the alignment of every region returned by Heap.
const PageSize = 4096

// Reserver obtains a block of address space.
//
// The returned region must be zero-initialized, readable and writable,
// and not shared with any other reservation.
type Reserver interface {
	Reserve(size int) (*Region, error)
}

// ReserverFunc adapts a function to the Reserver interface.
type ReserverFunc func(size int) (*Region, error)

// Reserve implements Reserver.
func (f ReserverFunc) Reserve(size int) (*Region, error) {
	return f(size)
}

type osReserver struct{}

// OS returns the native reserver for the current platform.
func OS() Reserver { return osReserver{} }

func (osReserver) Reserve(size int) (*Region, error) {
	if size <= 0 {
		return nil, ErrInvalidSize
	}
	data, release, err := osReserve(size)
	if err != nil {
		return nil, err
	}
	return newRegion(data, release), nil
}

type heapReserver struct{}

// Heap returns a reserver backed by ordinary Go memory.
// The region is page aligned and stays reachable for as long as the Region is.
func Heap() Reserver { return heapReserver{} }

func (heapReserver) Reserve(size int) (*Region, error) {
	if size <= 0 {
		return nil, ErrInvalidSize
	}
	return newRegion(mem.AllocAligned(size, PageSize), nil), nil
}

// CountingReserver counts calls to the wrapped reserver.
type CountingReserver struct {
	r     Reserver
	calls atomic.Int64
}

// Counting wraps r and counts every Reserve call, successful or not.
func Counting(r Reserver) *CountingReserver {
	return &CountingReserver{r: r}
}

// Reserve implements Reserver.
func (c *CountingReserver) Reserve(size int) (*Region, error) {
	c.calls.Add(1)
	return c.r.Reserve(size)
}

// Calls returns the number of Reserve calls so far.
func (c *CountingReserver) Calls() int64 {
	return c.calls.Load()
}

// Failing returns a reserver that always fails with err.
func Failing(err error) Reserver {
	return ReserverFunc(func(int) (*Region, error) {
		return nil, err
	})
}
