package bumparena

import (
	"errors"
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting allocator metrics.
// Implement this interface to integrate with monitoring systems like Prometheus;
// the promstats package provides such an implementation.
//
// Collectors are called on the allocation path and must be safe for concurrent use.
type MetricsCollector interface {
	// RecordReserve is called once, after the region reservation.
	// err is nil if successful.
	RecordReserve(capacity uintptr, duration time.Duration, err error)

	// RecordAllocate is called after each successful allocation.
	RecordAllocate(size, align uintptr, duration time.Duration)

	// RecordFailure is called for every failed allocation, before the failure handler.
	RecordFailure(err *AllocError)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordReserve(uintptr, time.Duration, error)    {}
func (NoopMetricsCollector) RecordAllocate(uintptr, uintptr, time.Duration) {}
func (NoopMetricsCollector) RecordFailure(*AllocError)                      {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	ReserveCount        atomic.Int64
	ReserveErrors       atomic.Int64
	ReserveNanos        atomic.Int64
	AllocateCount       atomic.Int64
	AllocateBytes       atomic.Int64
	AllocateTotalNanos  atomic.Int64
	InvalidLayoutErrors atomic.Int64
	ReservationErrors   atomic.Int64
	ExhaustedErrors     atomic.Int64
}

// RecordReserve implements MetricsCollector.
func (b *BasicMetricsCollector) RecordReserve(_ uintptr, duration time.Duration, err error) {
	b.ReserveCount.Add(1)
	b.ReserveNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.ReserveErrors.Add(1)
	}
}

// RecordAllocate implements MetricsCollector.
func (b *BasicMetricsCollector) RecordAllocate(size, _ uintptr, duration time.Duration) {
	b.AllocateCount.Add(1)
	b.AllocateBytes.Add(int64(size)) //nolint:gosec // sizes that fit a region fit an int64
	b.AllocateTotalNanos.Add(duration.Nanoseconds())
}

// RecordFailure implements MetricsCollector.
func (b *BasicMetricsCollector) RecordFailure(err *AllocError) {
	switch {
	case errors.Is(err, ErrInvalidLayout):
		b.InvalidLayoutErrors.Add(1)
	case errors.Is(err, ErrReservationFailure):
		b.ReservationErrors.Add(1)
	case errors.Is(err, ErrCapacityExhausted):
		b.ExhaustedErrors.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		ReserveCount:        b.ReserveCount.Load(),
		ReserveErrors:       b.ReserveErrors.Load(),
		ReserveNanos:        b.ReserveNanos.Load(),
		AllocateCount:       b.AllocateCount.Load(),
		AllocateBytes:       b.AllocateBytes.Load(),
		AllocateAvgNanos:    b.getAvgAllocateNanos(),
		InvalidLayoutErrors: b.InvalidLayoutErrors.Load(),
		ReservationErrors:   b.ReservationErrors.Load(),
		ExhaustedErrors:     b.ExhaustedErrors.Load(),
	}
}

func (b *BasicMetricsCollector) getAvgAllocateNanos() int64 {
	count := b.AllocateCount.Load()
	if count == 0 {
		return 0
	}
	return b.AllocateTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	ReserveCount        int64
	ReserveErrors       int64
	ReserveNanos        int64
	AllocateCount       int64
	AllocateBytes       int64
	AllocateAvgNanos    int64
	InvalidLayoutErrors int64
	ReservationErrors   int64
	ExhaustedErrors     int64
}

// Failures returns the total number of failed allocations.
func (s BasicMetricsStats) Failures() int64 {
	return s.InvalidLayoutErrors + s.ReservationErrors + s.ExhaustedErrors
}
