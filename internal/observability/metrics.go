// Package observability provides Prometheus metrics for monitoring.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for a generation run.
type Metrics struct {
	// Generation metrics
	RowsGenerated      prometheus.Counter
	BundledRows        prometheus.Counter
	HighestSlot        prometheus.Gauge
	GenerationDuration prometheus.Histogram
	GenerationRuns     *prometheus.CounterVec

	// Storage metrics
	RowsStored *prometheus.CounterVec
}

// NewMetrics creates a new Metrics instance registered with reg.
// A nil reg registers with the default Prometheus registry.
func NewMetrics(reg prometheus.Registerer, namespace string) *Metrics {
	if namespace == "" {
		namespace = "chronos_tradegen"
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)

	return &Metrics{
		RowsGenerated: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "generator",
			Name:      "rows_generated_total",
			Help:      "Total number of trade rows written",
		}),
		BundledRows: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "generator",
			Name:      "bundled_rows_total",
			Help:      "Total number of rows flagged is_bundled",
		}),
		HighestSlot: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "generator",
			Name:      "highest_slot",
			Help:      "Slot of the most recently written row",
		}),
		GenerationDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "generator",
			Name:      "duration_seconds",
			Help:      "Wall time of a full generation run",
			Buckets:   []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120, 300},
		}),
		GenerationRuns: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "generator",
			Name:      "runs_total",
			Help:      "Total number of generation runs by status",
		}, []string{"status"}),

		RowsStored: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "storage",
			Name:      "rows_stored_total",
			Help:      "Total number of rows persisted by backend",
		}, []string{"backend"}),
	}
}

// Handler returns an HTTP handler for the /metrics endpoint of g.
// A nil g serves the default registry.
func Handler(g prometheus.Gatherer) http.Handler {
	if g == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}

// RecordRow records one written row.
func (m *Metrics) RecordRow(slot int64, bundled bool) {
	m.RowsGenerated.Inc()
	if bundled {
		m.BundledRows.Inc()
	}
	m.HighestSlot.Set(float64(slot))
}

// RecordRun records a finished generation run.
func (m *Metrics) RecordRun(status string, durationSeconds float64) {
	m.GenerationRuns.WithLabelValues(status).Inc()
	m.GenerationDuration.Observe(durationSeconds)
}

// RecordStored records a batch persisted to backend.
func (m *Metrics) RecordStored(backend string, n int) {
	m.RowsStored.WithLabelValues(backend).Add(float64(n))
}
