package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Ingest outcomes, low cardinality.
const (
	OutcomeAccepted = "accepted"
	OutcomeIgnored  = "ignored"
	OutcomeCooldown = "cooldown"
	OutcomeConflict = "concurrency"
	OutcomeError    = "error"
)

// Metrics holds the service's Prometheus collectors. A nil *Metrics is valid
// and records nothing.
type Metrics struct {
	gatherer prometheus.Gatherer

	ingestTotal          *prometheus.CounterVec
	ingestAnomalies      *prometheus.CounterVec
	ingestDuration       *prometheus.HistogramVec
	performancesComputed *prometheus.CounterVec
}

// New registers the collectors on reg. Passing nil uses a fresh registry,
// which keeps tests isolated from the default one.
func New(reg *prometheus.Registry) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	m := &Metrics{
		gatherer: reg,
		ingestTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "punctoo_scan_ingest_total",
			Help: "Scan submissions by outcome and direction.",
		}, []string{"outcome", "direction"}),
		ingestAnomalies: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "punctoo_scan_anomalies_total",
			Help: "Scan events written with an anomaly code.",
		}, []string{"anomaly_code"}),
		ingestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "punctoo_scan_ingest_duration_seconds",
			Help:    "Scan ingestion latency including the per-employee lock wait.",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"outcome"}),
		performancesComputed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "punctoo_performances_reconstructed_total",
			Help: "Performances reconstructed by data quality.",
		}, []string{"attention"}),
	}

	reg.MustRegister(
		m.ingestTotal,
		m.ingestAnomalies,
		m.ingestDuration,
		m.performancesComputed,
	)

	return m
}

func (m *Metrics) ObserveIngest(outcome string, direction string, duration time.Duration) {
	if m == nil {
		return
	}
	m.ingestTotal.WithLabelValues(outcome, direction).Inc()
	m.ingestDuration.WithLabelValues(outcome).Observe(duration.Seconds())
}

func (m *Metrics) ObserveAnomaly(code string) {
	if m == nil {
		return
	}
	m.ingestAnomalies.WithLabelValues(code).Inc()
}

func (m *Metrics) ObservePerformances(total int, attention int) {
	if m == nil {
		return
	}
	m.performancesComputed.WithLabelValues("true").Add(float64(attention))
	m.performancesComputed.WithLabelValues("false").Add(float64(total - attention))
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
