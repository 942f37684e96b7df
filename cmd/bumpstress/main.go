// Command bumpstress hammers a bump arena from concurrent workers and
// reports throughput and utilization.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kingpin/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"github.com/hupe1980/bumparena"
	"github.com/hupe1980/bumparena/internal/stress"
	"github.com/hupe1980/bumparena/promstats"
	"github.com/hupe1980/bumparena/vmem"
)

type stressCommand struct {
	capacity     string
	workers      int
	allocs       int
	size         uint64
	align        uint64
	rate         int
	memoryLimit  string
	reserver     string
	conservative bool
	logFormat    string
	logLevel     string
	dumpMetrics  bool
}

func main() {
	app := kingpin.New("bumpstress", "Stress a bump arena from concurrent workers.")
	app.HelpFlag.Short('h')

	cmd := &stressCommand{}
	app.Flag("capacity", "Arena capacity, e.g. 64MB or 1GB.").Default("64MB").StringVar(&cmd.capacity)
	app.Flag("workers", "Number of concurrent workers.").Short('w').Default("8").IntVar(&cmd.workers)
	app.Flag("allocs", "Allocations per worker.").Short('n').Default("1000").IntVar(&cmd.allocs)
	app.Flag("size", "Size of each allocation in bytes.").Default("64").Uint64Var(&cmd.size)
	app.Flag("align", "Alignment of each allocation, a power of two.").Default("8").Uint64Var(&cmd.align)
	app.Flag("rate", "Allocations per second across all workers, 0 for unlimited.").Default("0").IntVar(&cmd.rate)
	app.Flag("memory-limit", "Budget the region is charged against, empty for unlimited.").Default("").StringVar(&cmd.memoryLimit)
	app.Flag("reserver", "Source of the region.").Default("os").EnumVar(&cmd.reserver, "os", "heap")
	app.Flag("conservative", "Use conservative padding.").BoolVar(&cmd.conservative)
	app.Flag("log-format", "Log output format.").Default("text").EnumVar(&cmd.logFormat, "text", "json")
	app.Flag("log-level", "Minimum log level.").Default("info").EnumVar(&cmd.logLevel, "debug", "info", "warn", "error")
	app.Flag("dump-metrics", "Print Prometheus metrics after the run.").BoolVar(&cmd.dumpMetrics)

	kingpin.MustParse(app.Parse(os.Args[1:]))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cmd.run(ctx, os.Stdout); err != nil {
		exitWithErr(err)
	}
}

func (cmd *stressCommand) run(ctx context.Context, out io.Writer) error {
	cfg, err := cmd.config()
	if err != nil {
		return err
	}

	logger, err := cmd.logger()
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	cfg.Metrics = promstats.NewCollector(reg, "bumpstress")

	res, runErr := stress.Run(ctx, cfg, logger)

	fmt.Fprintln(out, res.String())

	if cmd.dumpMetrics {
		if err := dumpMetrics(reg, out); err != nil {
			return err
		}
	}

	return runErr
}

func (cmd *stressCommand) config() (stress.Config, error) {
	capacity, err := bumparena.ParseCapacity(cmd.capacity)
	if err != nil {
		return stress.Config{}, err
	}

	var limit int64
	if cmd.memoryLimit != "" {
		l, err := bumparena.ParseCapacity(cmd.memoryLimit)
		if err != nil {
			return stress.Config{}, err
		}
		limit = int64(l) //nolint:gosec // capacities are bounded by the address space
	}

	reserver := vmem.OS()
	if cmd.reserver == "heap" {
		reserver = vmem.Heap()
	}

	return stress.Config{
		Capacity:     capacity,
		Workers:      cmd.workers,
		Allocs:       cmd.allocs,
		Size:         uintptr(cmd.size),
		Align:        uintptr(cmd.align),
		Rate:         cmd.rate,
		MemoryLimit:  limit,
		Reserver:     reserver,
		Conservative: cmd.conservative,
	}, nil
}

func (cmd *stressCommand) logger() (*bumparena.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cmd.logLevel)); err != nil {
		return nil, err
	}
	if cmd.logFormat == "json" {
		return bumparena.NewJSONLogger(level), nil
	}
	return bumparena.NewTextLogger(level), nil
}

func dumpMetrics(g prometheus.Gatherer, out io.Writer) error {
	families, err := g.Gather()
	if err != nil {
		return err
	}
	enc := expfmt.NewEncoder(out, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return err
		}
	}
	return nil
}

func exitWithErr(err error) {
	fmt.Fprintf(os.Stderr, "bumpstress: %v\n", err)
	os.Exit(1)
}
