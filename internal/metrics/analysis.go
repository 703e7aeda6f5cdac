// Package metrics provides Prometheus metrics for the analysis pipeline.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Run status labels
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Cache lookup labels
const (
	CacheHit  = "hit"
	CacheMiss = "miss"
)

// AnalysisMetrics contains all Prometheus metrics related to analysis runs.
type AnalysisMetrics struct {
	RunsTotal             *prometheus.CounterVec
	RunDuration           prometheus.Histogram
	ObservationsProcessed prometheus.Counter
	ObservationsExcluded  *prometheus.CounterVec
	ReportCacheLookups    *prometheus.CounterVec
}

// NewAnalysisMetrics creates the analysis metrics and registers them on registry.
// It returns an error if metric registration fails.
func NewAnalysisMetrics(registry prometheus.Registerer) (*AnalysisMetrics, error) {
	m := &AnalysisMetrics{
		RunsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "geotrace_analysis_runs_total",
				Help: "Total number of analysis runs partitioned by outcome.",
			},
			[]string{"status"},
		),
		RunDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "geotrace_analysis_duration_seconds",
				Help:    "Time taken to analyze one observation batch.",
				Buckets: prometheus.ExponentialBuckets(0.001, 2, 14), // 1ms to ~8s
			},
		),
		ObservationsProcessed: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "geotrace_observations_processed_total",
				Help: "Total number of observations submitted for analysis.",
			},
		),
		ObservationsExcluded: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "geotrace_observations_excluded_total",
				Help: "Total number of observations rejected before clustering, by reason.",
			},
			[]string{"reason"},
		),
		ReportCacheLookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "geotrace_report_cache_hits_total",
				Help: "Report cache lookups partitioned by result.",
			},
			[]string{"result"},
		),
	}

	if err := registry.Register(m); err != nil {
		return nil, fmt.Errorf("failed to register analysis metrics: %w", err)
	}
	return m, nil
}

// RecordRun records the outcome and duration of one analysis run
func (m *AnalysisMetrics) RecordRun(observations int, duration time.Duration, err error) {
	status := StatusSuccess
	if err != nil {
		status = StatusError
	}
	m.RunsTotal.WithLabelValues(status).Inc()
	m.RunDuration.Observe(duration.Seconds())
	m.ObservationsProcessed.Add(float64(observations))
}

// RecordExclusion counts one observation excluded for reason
func (m *AnalysisMetrics) RecordExclusion(reason string) {
	m.ObservationsExcluded.WithLabelValues(reason).Inc()
}

// RecordCacheLookup counts a report cache hit or miss
func (m *AnalysisMetrics) RecordCacheLookup(hit bool) {
	if hit {
		m.ReportCacheLookups.WithLabelValues(CacheHit).Inc()
		return
	}
	m.ReportCacheLookups.WithLabelValues(CacheMiss).Inc()
}

// Describe implements the prometheus.Collector interface.
func (m *AnalysisMetrics) Describe(ch chan<- *prometheus.Desc) {
	m.RunsTotal.Describe(ch)
	ch <- m.RunDuration.Desc()
	ch <- m.ObservationsProcessed.Desc()
	m.ObservationsExcluded.Describe(ch)
	m.ReportCacheLookups.Describe(ch)
}

// Collect implements the prometheus.Collector interface.
func (m *AnalysisMetrics) Collect(ch chan<- prometheus.Metric) {
	m.RunsTotal.Collect(ch)
	ch <- m.RunDuration
	ch <- m.ObservationsProcessed
	m.ObservationsExcluded.Collect(ch)
	m.ReportCacheLookups.Collect(ch)
}
