// Package metrics exposes Prometheus counters for the journal and the
// recognition stub. A nil *Metrics is valid and records nothing.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "platelog"

// Metrics owns a private registry so tests can create as many as they like.
type Metrics struct {
	registry *prometheus.Registry

	rpcs               *prometheus.CounterVec
	recognitions       *prometheus.CounterVec
	recognitionLatency *prometheus.HistogramVec
	recognitionsActive prometheus.Gauge
	entriesLogged      *prometheus.CounterVec
	entriesDeleted     prometheus.Counter
}

// New registers every collector, plus Go runtime and process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		rpcs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rpc_requests_total",
			Help:      "RPC calls by procedure and result code.",
		}, []string{"procedure", "code"}),
		recognitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "recognitions_total",
			Help:      "Recognition calls by operation and outcome.",
		}, []string{"operation", "outcome"}),
		recognitionLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "recognition_duration_seconds",
			Help:      "Time from request to result for recognition calls.",
			Buckets:   []float64{0.1, 0.5, 1, 2, 2.5, 3, 5},
		}, []string{"operation"}),
		recognitionsActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "recognitions_in_flight",
			Help:      "Recognition requests waiting for a result.",
		}),
		entriesLogged: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "entries_logged_total",
			Help:      "Journal entries created by meal type.",
		}, []string{"meal_type"}),
		entriesDeleted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "entries_deleted_total",
			Help:      "Journal entries deleted.",
		}),
	}
	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.rpcs,
		m.recognitions,
		m.recognitionLatency,
		m.recognitionsActive,
		m.entriesLogged,
		m.entriesDeleted,
	)
	return m
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveRPC counts one finished RPC.
func (m *Metrics) ObserveRPC(procedure, code string) {
	if m == nil {
		return
	}
	m.rpcs.WithLabelValues(procedure, code).Inc()
}

// ObserveRecognition records one recognition call. outcome is "ok",
// "unreadable", "failed", "stale" or "canceled".
func (m *Metrics) ObserveRecognition(operation, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.recognitions.WithLabelValues(operation, outcome).Inc()
	m.recognitionLatency.WithLabelValues(operation).Observe(elapsed.Seconds())
}

// SetRecognitionsInFlight reports how many recognition requests are pending.
func (m *Metrics) SetRecognitionsInFlight(n int) {
	if m == nil {
		return
	}
	m.recognitionsActive.Set(float64(n))
}

// EntryLogged counts a new entry.
func (m *Metrics) EntryLogged(mealType string) {
	if m == nil {
		return
	}
	m.entriesLogged.WithLabelValues(mealType).Inc()
}

// EntryDeleted counts a removed entry.
func (m *Metrics) EntryDeleted() {
	if m == nil {
		return
	}
	m.entriesDeleted.Inc()
}
