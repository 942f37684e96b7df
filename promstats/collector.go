package promstats

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/hupe1980/bumparena"
)

// Failure kinds used as the "kind" label of the failures counter.
const (
	KindInvalidLayout = "invalid_layout"
	KindReservation   = "reservation"
	KindExhausted     = "exhausted"
	KindUnknown       = "unknown"
)

// Collector records arena events into Prometheus metrics.
type Collector struct {
	reservations    *prometheus.CounterVec
	reserveDuration prometheus.Histogram
	allocations     prometheus.Counter
	allocatedBytes  prometheus.Counter
	allocateSize    prometheus.Histogram
	failures        *prometheus.CounterVec
}

var _ bumparena.MetricsCollector = (*Collector)(nil)

// NewCollector creates a Collector and registers its metrics with reg.
// A nil reg creates unregistered metrics.
func NewCollector(reg prometheus.Registerer, namespace string) *Collector {
	c := &Collector{
		reservations: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "arena_reservations_total",
			Help:      "Total number of region reservations by result.",
		}, []string{"result"}),
		reserveDuration: promauto.With(reg).NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "arena_reserve_duration_seconds",
			Help:      "Time taken to reserve the region.",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10),
		}),
		allocations: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "arena_allocations_total",
			Help:      "Total number of successful allocations.",
		}),
		allocatedBytes: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "arena_allocated_bytes_total",
			Help:      "Total number of bytes requested by successful allocations.",
		}),
		allocateSize: promauto.With(reg).NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "arena_allocation_size_bytes",
			Help:      "Size of successful allocations.",
			Buckets:   prometheus.ExponentialBuckets(8, 4, 10),
		}),
		failures: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "arena_failures_total",
			Help:      "Total number of failed allocations by kind.",
		}, []string{"kind"}),
	}

	// Expose every label combination from the start.
	c.reservations.WithLabelValues("success")
	c.reservations.WithLabelValues("failure")
	for _, k := range []string{KindInvalidLayout, KindReservation, KindExhausted} {
		c.failures.WithLabelValues(k)
	}

	return c
}

// RecordReserve implements bumparena.MetricsCollector.
func (c *Collector) RecordReserve(_ uintptr, duration time.Duration, err error) {
	result := "success"
	if err != nil {
		result = "failure"
	}
	c.reservations.WithLabelValues(result).Inc()
	c.reserveDuration.Observe(duration.Seconds())
}

// RecordAllocate implements bumparena.MetricsCollector.
func (c *Collector) RecordAllocate(size, _ uintptr, _ time.Duration) {
	c.allocations.Inc()
	c.allocatedBytes.Add(float64(size))
	c.allocateSize.Observe(float64(size))
}

// RecordFailure implements bumparena.MetricsCollector.
func (c *Collector) RecordFailure(err *bumparena.AllocError) {
	c.failures.WithLabelValues(Kind(err)).Inc()
}

// Kind maps an allocation error to its failure label.
func Kind(err error) string {
	switch {
	case errors.Is(err, bumparena.ErrInvalidLayout):
		return KindInvalidLayout
	case errors.Is(err, bumparena.ErrReservationFailure):
		return KindReservation
	case errors.Is(err, bumparena.ErrCapacityExhausted):
		return KindExhausted
	default:
		return KindUnknown
	}
}
