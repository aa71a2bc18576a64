// Package metrics provides Prometheus metrics for the roster simulation pipeline.
package metrics

import (
	"fmt"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns the pipeline metrics and the registry they live on.
//
// A nil *Manager is valid: every method is a no-op, so components can
// record unconditionally.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	constLabels      map[string]string
	registry         *prometheus.Registry

	// Simulation
	iterationsCompleted *prometheus.CounterVec
	iterationLatency    prometheus.Histogram
	seasonPoolSize      *prometheus.GaugeVec

	// Output
	rowsWritten      *prometheus.CounterVec
	artifactsWritten *prometheus.CounterVec
	seasonDuration   *prometheus.HistogramVec

	// Workers
	workersActive prometheus.Gauge

	// Errors
	errorsByComponent *prometheus.CounterVec
}

// NewManager creates a new metrics manager. Without WithPrometheusRegistry a
// private registry is used so nothing leaks into the default one.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "rotosim",
		subsystem:        "generator",
		histogramBuckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 25, 50},
		constLabels:      make(map[string]string),
	}

	for _, opt := range opts {
		opt(m)
	}
	if m.registry == nil {
		m.registry = prometheus.NewRegistry()
	}

	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.iterationsCompleted = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "iterations_completed_total",
		Help:        "Simulated leagues completed, by season",
		ConstLabels: m.constLabels,
	}, []string{"season"})

	m.iterationLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "iteration_latency_milliseconds",
		Help:        "Time to partition, aggregate and rank one simulated league",
		Buckets:     m.histogramBuckets,
		ConstLabels: m.constLabels,
	})

	m.seasonPoolSize = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "season_pool_size",
		Help:        "Players available for drafting in a season",
		ConstLabels: m.constLabels,
	}, []string{"season"})

	m.rowsWritten = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "rows_written_total",
		Help:        "Training rows persisted, by split",
		ConstLabels: m.constLabels,
	}, []string{"split"})

	m.artifactsWritten = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "artifacts_written_total",
		Help:        "Season artifacts persisted, by split",
		ConstLabels: m.constLabels,
	}, []string{"split"})

	m.seasonDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "season_duration_seconds",
		Help:        "Wall time to generate one season artifact",
		Buckets:     []float64{1, 5, 15, 30, 60, 120, 300, 600, 1200},
		ConstLabels: m.constLabels,
	}, []string{"split"})

	m.workersActive = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "workers_active",
		Help:        "Simulation workers currently running",
		ConstLabels: m.constLabels,
	})

	m.errorsByComponent = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "errors_total",
		Help:        "Errors by component and kind",
		ConstLabels: m.constLabels,
	}, []string{"component", "kind"})
}

// RecordIteration counts one completed simulated league and its latency.
func (m *Manager) RecordIteration(season int, latency time.Duration) {
	if m == nil {
		return
	}
	m.iterationsCompleted.WithLabelValues(strconv.Itoa(season)).Inc()
	m.iterationLatency.Observe(float64(latency) / float64(time.Millisecond))
}

// UpdateSeasonPoolSize records the drafting pool size of a season.
func (m *Manager) UpdateSeasonPoolSize(season, size int) {
	if m == nil {
		return
	}
	m.seasonPoolSize.WithLabelValues(strconv.Itoa(season)).Set(float64(size))
}

// RecordArtifact counts a persisted artifact and its rows.
func (m *Manager) RecordArtifact(split string, rows int, took time.Duration) {
	if m == nil {
		return
	}
	m.artifactsWritten.WithLabelValues(split).Inc()
	m.rowsWritten.WithLabelValues(split).Add(float64(rows))
	m.seasonDuration.WithLabelValues(split).Observe(took.Seconds())
}

// WorkerStarted increments the active worker gauge.
func (m *Manager) WorkerStarted() {
	if m == nil {
		return
	}
	m.workersActive.Inc()
}

// WorkerStopped decrements the active worker gauge.
func (m *Manager) WorkerStopped() {
	if m == nil {
		return
	}
	m.workersActive.Dec()
}

// RecordError counts an error for a component.
func (m *Manager) RecordError(component, kind string) {
	if m == nil {
		return
	}
	m.errorsByComponent.WithLabelValues(component, kind).Inc()
}

// Registry returns the registry backing this manager.
func (m *Manager) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// WriteTextfile writes the current metric values in the text exposition
// format, for a node-exporter textfile collector.
func (m *Manager) WriteTextfile(path string) error {
	if m == nil || path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("%w: %w", ErrExportFailed, err)
	}
	return nil
}
