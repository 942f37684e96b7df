package bumparena

import (
	"github.com/hupe1980/bumparena/vmem"
)

// PaddingPolicy controls how many bytes a request consumes.
type PaddingPolicy int

const (
	// PaddingExact consumes the alignment gap plus the requested size.
	// A request that does not fit leaves the offset untouched.
	PaddingExact PaddingPolicy = iota

	// PaddingConservative consumes alignUp(size+align, align) bytes and advances
	// the offset before the bound check, so a failed request still burns capacity.
	// With this policy the offset may end up past the capacity.
	PaddingConservative
)

func (p PaddingPolicy) String() string {
	if p == PaddingConservative {
		return "conservative"
	}
	return "exact"
}

// MemoryAcquirer accounts for the reserved region against an external budget.
// *resource.Controller satisfies it.
type MemoryAcquirer interface {
	AcquireMemory(n int64) error
	ReleaseMemory(n int64)
}

type options struct {
	capacity  uintptr
	reserver  vmem.Reserver
	logger    *Logger
	name      string
	metrics   MetricsCollector
	onFailure FailureHandler
	acquirer  MemoryAcquirer
	padding   PaddingPolicy
	advice    vmem.AccessPattern
}

func defaultOptions() options {
	return options{
		capacity:  DefaultCapacity,
		reserver:  vmem.OS(),
		logger:    NoopLogger(),
		metrics:   NoopMetricsCollector{},
		onFailure: PanicOnFailure,
		padding:   PaddingExact,
		advice:    vmem.AccessDefault,
	}
}

// Option configures an Arena.
type Option func(*options)

// WithCapacity sets the size of the region in bytes.
// A capacity of 0 keeps DefaultCapacity.
func WithCapacity(capacity uintptr) Option {
	return func(o *options) {
		if capacity > 0 {
			o.capacity = capacity
		}
	}
}

// WithReserver sets the source of the region. If nil is passed, vmem.OS is used.
func WithReserver(r vmem.Reserver) Option {
	return func(o *options) {
		if r == nil {
			r = vmem.OS()
		}
		o.reserver = r
	}
}

// WithLogger sets a custom logger for the arena.
// If nil is passed, logging is disabled.
//
// Example:
//
//	logger := bumparena.NewTextLogger(slog.LevelDebug)
//	a := bumparena.New(bumparena.WithLogger(logger))
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithName names the arena in log output and String.
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

// WithMetricsCollector sets the metrics collector.
// If nil is passed, metrics collection is disabled.
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metrics = mc
	}
}

// WithFailureHandler sets the handler for failed allocations.
// If nil is passed, PanicOnFailure is used.
func WithFailureHandler(h FailureHandler) Option {
	return func(o *options) {
		if h == nil {
			h = PanicOnFailure
		}
		o.onFailure = h
	}
}

// WithMemoryAcquirer charges the whole capacity to m before reserving.
// A refusal is reported as a reservation failure.
func WithMemoryAcquirer(m MemoryAcquirer) Option {
	return func(o *options) {
		o.acquirer = m
	}
}

// WithConservativePadding selects PaddingConservative.
func WithConservativePadding() Option {
	return func(o *options) {
		o.padding = PaddingConservative
	}
}

// WithAccessPattern advises the kernel about the expected access pattern
// once the region is reserved.
func WithAccessPattern(p vmem.AccessPattern) Option {
	return func(o *options) {
		o.advice = p
	}
}
