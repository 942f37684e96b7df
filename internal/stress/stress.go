package stress

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
	"unsafe"

	"github.com/dustin/go-humanize"
	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/bumparena"
	"github.com/hupe1980/bumparena/resource"
	"github.com/hupe1980/bumparena/vmem"
)

// ErrViolations is returned when the checker saw overlapping or misaligned blocks.
var ErrViolations = errors.New("stress: allocator violations")

// Config describes a stress run.
type Config struct {
	Capacity uintptr
	Workers  int
	Allocs   int // per worker
	Size     uintptr
	Align    uintptr

	// Rate caps allocations per second across all workers. 0 means unlimited.
	Rate int
	// MemoryLimit is the budget the region is charged against. 0 means unlimited.
	MemoryLimit int64

	Reserver     vmem.Reserver
	Conservative bool
	Metrics      bumparena.MetricsCollector
}

// DefaultConfig returns a small run suitable for smoke tests.
func DefaultConfig() Config {
	return Config{
		Capacity: 64 << 20,
		Workers:  8,
		Allocs:   1000,
		Size:     64,
		Align:    8,
	}
}

func (c Config) validate() error {
	if c.Workers <= 0 {
		return fmt.Errorf("stress: workers must be positive, got %d", c.Workers)
	}
	if c.Allocs < 0 {
		return fmt.Errorf("stress: allocs must not be negative, got %d", c.Allocs)
	}
	if !(bumparena.Layout{Size: c.Size, Align: c.Align}).Valid() {
		return fmt.Errorf("stress: align must be a power of two, got %d", c.Align)
	}
	return nil
}

// Result summarizes a run.
type Result struct {
	Stats      bumparena.Stats
	Elapsed    time.Duration
	Claimed    uint64
	Violations []string
}

// Throughput returns allocations per second.
func (r Result) Throughput() float64 {
	if r.Elapsed <= 0 {
		return 0
	}
	return float64(r.Stats.Allocations) / r.Elapsed.Seconds()
}

func (r Result) String() string {
	return fmt.Sprintf("%s in %s (%s allocs/s), %s claimed, %d violations",
		r.Stats,
		r.Elapsed.Round(time.Microsecond),
		humanize.Comma(int64(r.Throughput())),
		humanize.IBytes(r.Claimed),
		len(r.Violations),
	)
}

// firstFailure keeps the first allocation failure so workers can stop instead
// of terminating the process.
type firstFailure struct {
	once sync.Once
	err  *bumparena.AllocError
}

func (f *firstFailure) handle(err *bumparena.AllocError) {
	f.once.Do(func() { f.err = err })
}

// error must only be called after handle has run in the calling goroutine.
func (f *firstFailure) error() error {
	if f.err == nil {
		return errors.New("stress: allocation failed")
	}
	return f.err
}

// Run performs the configured allocations and checks every returned block.
// Capacity exhaustion is returned as an error wrapping bumparena.ErrCapacityExhausted.
func Run(ctx context.Context, cfg Config, logger *bumparena.Logger) (Result, error) {
	if err := cfg.validate(); err != nil {
		return Result{}, err
	}
	if logger == nil {
		logger = bumparena.NoopLogger()
	}

	ctrl := resource.NewController(resource.Config{
		MemoryLimitBytes:  cfg.MemoryLimit,
		AllocationsPerSec: cfg.Rate,
	})

	failure := &firstFailure{}
	opts := []bumparena.Option{
		bumparena.WithCapacity(cfg.Capacity),
		bumparena.WithReserver(cfg.Reserver),
		bumparena.WithLogger(logger),
		bumparena.WithName("stress"),
		bumparena.WithMetricsCollector(cfg.Metrics),
		bumparena.WithFailureHandler(failure.handle),
		bumparena.WithMemoryAcquirer(ctrl),
	}
	if cfg.Conservative {
		opts = append(opts, bumparena.WithConservativePadding())
	}

	arena := bumparena.New(opts...)
	checked := bumparena.NewChecked(arena)

	logger.Info("stress run started",
		"workers", cfg.Workers,
		"allocs", cfg.Allocs,
		"size", uint64(cfg.Size),
		"align", uint64(cfg.Align),
		"capacity", humanize.IBytes(uint64(arena.Capacity())),
	)

	start := time.Now()

	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < cfg.Workers; w++ {
		g.Go(func() error {
			return work(gctx, checked, ctrl, failure, cfg, byte(w))
		})
	}
	err := g.Wait()

	res := Result{
		Stats:      arena.Stats(),
		Elapsed:    time.Since(start),
		Claimed:    checked.ClaimedBytes(),
		Violations: checked.Violations(),
	}

	if err == nil && len(res.Violations) > 0 {
		err = fmt.Errorf("%w: %d found, first: %s", ErrViolations, len(res.Violations), res.Violations[0])
	}

	if err != nil {
		logger.Error("stress run failed", "error", err, "stats", res.Stats.String())
		return res, err
	}

	logger.Info("stress run completed", "result", res.String())
	return res, nil
}

func work(ctx context.Context, mem bumparena.Allocator, ctrl *resource.Controller, failure *firstFailure, cfg Config, tag byte) error {
	for i := 0; i < cfg.Allocs; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := ctrl.WaitAllocation(ctx, 1); err != nil {
			return err
		}

		p := mem.Allocate(cfg.Size, cfg.Align)
		if p == nil {
			// The handler ran before Allocate returned.
			return failure.error()
		}

		// Touch every byte so an overlap would also corrupt data.
		b := unsafe.Slice((*byte)(p), cfg.Size)
		for j := range b {
			b[j] = tag
		}
		for j := range b {
			if b[j] != tag {
				return fmt.Errorf("stress: block %p corrupted at byte %d", p, j)
			}
		}
	}
	return nil
}
