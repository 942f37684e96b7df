package promstats

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/hupe1980/bumparena"
)

// StatsSource provides arena statistics. *bumparena.Arena satisfies it.
type StatsSource interface {
	Stats() bumparena.Stats
}

// StatsCollector is a prometheus.Collector that reads a Stats snapshot on every scrape.
type StatsCollector struct {
	source StatsSource

	capacity       *prometheus.Desc
	offset         *prometheus.Desc
	reserved       *prometheus.Desc
	allocations    *prometheus.Desc
	bytesRequested *prometheus.Desc
	bytesConsumed  *prometheus.Desc
	failures       *prometheus.Desc
}

var _ prometheus.Collector = (*StatsCollector)(nil)

// NewStatsCollector creates a collector for source. name is attached as the "arena" label.
func NewStatsCollector(namespace, name string, source StatsSource) *StatsCollector {
	labels := prometheus.Labels{"arena": name}
	desc := func(metric, help string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName(namespace, "arena", metric), help, nil, labels)
	}

	return &StatsCollector{
		source:         source,
		capacity:       desc("capacity_bytes", "Size of the arena region."),
		offset:         desc("offset_bytes", "Bytes claimed from the region so far."),
		reserved:       desc("reserved", "Whether the region has been reserved."),
		allocations:    desc("allocations", "Successful allocations."),
		bytesRequested: desc("requested_bytes", "Sum of the sizes of successful allocations."),
		bytesConsumed:  desc("consumed_bytes", "Bytes consumed including alignment padding."),
		failures:       desc("failures", "Failed allocations."),
	}
}

// Describe implements prometheus.Collector.
func (c *StatsCollector) Describe(descs chan<- *prometheus.Desc) {
	descs <- c.capacity
	descs <- c.offset
	descs <- c.reserved
	descs <- c.allocations
	descs <- c.bytesRequested
	descs <- c.bytesConsumed
	descs <- c.failures
}

// Collect implements prometheus.Collector.
func (c *StatsCollector) Collect(m chan<- prometheus.Metric) {
	s := c.source.Stats()

	reserved := 0.0
	if s.State == bumparena.StateReserved {
		reserved = 1
	}

	m <- prometheus.MustNewConstMetric(c.capacity, prometheus.GaugeValue, float64(s.Capacity))
	m <- prometheus.MustNewConstMetric(c.offset, prometheus.GaugeValue, float64(s.Offset))
	m <- prometheus.MustNewConstMetric(c.reserved, prometheus.GaugeValue, reserved)
	m <- prometheus.MustNewConstMetric(c.allocations, prometheus.GaugeValue, float64(s.Allocations))
	m <- prometheus.MustNewConstMetric(c.bytesRequested, prometheus.GaugeValue, float64(s.BytesRequested))
	m <- prometheus.MustNewConstMetric(c.bytesConsumed, prometheus.GaugeValue, float64(s.BytesConsumed))
	m <- prometheus.MustNewConstMetric(c.failures, prometheus.GaugeValue, float64(s.Failures))
}
