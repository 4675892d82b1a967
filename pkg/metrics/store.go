package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// StoreMetrics records latency and outcome of record store operations.
type StoreMetrics struct {
	duration *prometheus.HistogramVec
	success  *prometheus.CounterVec
	failure  *prometheus.CounterVec
	exported prometheus.Counter
}

// NewStoreMetrics registers the record store metrics on the provided registerer.
func NewStoreMetrics(reg prometheus.Registerer) *StoreMetrics {
	if reg == nil {
		return &StoreMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "record_store_duration_seconds",
		Help:    "Duration of record store operations in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"op"})
	success := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "record_store_success_total",
		Help: "Successful record store operations.",
	}, []string{"op"})
	failure := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "record_store_failure_total",
		Help: "Failed record store operations.",
	}, []string{"op"})
	exported := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "record_export_rows_total",
		Help: "Rows written to spreadsheet exports.",
	})
	reg.MustRegister(duration, success, failure, exported)
	return &StoreMetrics{
		duration: duration,
		success:  success,
		failure:  failure,
		exported: exported,
	}
}

// Observe records the duration since start and the outcome for the named operation.
func (s *StoreMetrics) Observe(op string, start time.Time, err error) {
	if s == nil || s.duration == nil {
		return
	}
	label := normalizeLabel(op)
	s.duration.WithLabelValues(label).Observe(time.Since(start).Seconds())
	if err != nil {
		s.failure.WithLabelValues(label).Inc()
		return
	}
	s.success.WithLabelValues(label).Inc()
}

// AddExportedRows counts rows written by an export.
func (s *StoreMetrics) AddExportedRows(n int) {
	if s == nil || s.exported == nil || n <= 0 {
		return
	}
	s.exported.Add(float64(n))
}

func normalizeLabel(op string) string {
	if op == "" {
		return "unknown"
	}
	return op
}
