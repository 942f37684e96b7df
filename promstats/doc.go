// Package promstats exports arena metrics to Prometheus.
//
// Collector implements bumparena.MetricsCollector and records allocation
// events as they happen. StatsCollector exposes an arena's Stats snapshot as
// gauges, read on every scrape.
package promstats
