package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors for record normalization.
type Metrics struct {
	RecordsNormalized *prometheus.CounterVec
	RecordsRejected   *prometheus.CounterVec
	RecordsSkipped    *prometheus.CounterVec
	NormalizeDuration *prometheus.HistogramVec
}

// New creates the collectors and registers them with reg. Pass
// prometheus.DefaultRegisterer in production and a fresh registry in tests.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		RecordsNormalized: f.NewCounterVec(prometheus.CounterOpts{
			Name: "roster_records_normalized_total",
			Help: "Total number of wire records normalized into domain records",
		}, []string{"entity"}),
		RecordsRejected: f.NewCounterVec(prometheus.CounterOpts{
			Name: "roster_records_rejected_total",
			Help: "Total number of wire records rejected, by error code",
		}, []string{"entity", "code"}),
		RecordsSkipped: f.NewCounterVec(prometheus.CounterOpts{
			Name: "roster_records_skipped_total",
			Help: "Total number of records skipped because a newer version was already accepted",
		}, []string{"entity"}),
		NormalizeDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "roster_normalize_duration_seconds",
			Help:    "Time spent normalizing a single wire record",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		}, []string{"entity"}),
	}
}

func (m *Metrics) IncrementNormalized(entity string) {
	m.RecordsNormalized.WithLabelValues(entity).Inc()
}

func (m *Metrics) IncrementRejected(entity, code string) {
	m.RecordsRejected.WithLabelValues(entity, code).Inc()
}

func (m *Metrics) IncrementSkipped(entity string) {
	m.RecordsSkipped.WithLabelValues(entity).Inc()
}

// ObserveNormalizeDuration records a normalization latency in seconds.
func (m *Metrics) ObserveNormalizeDuration(entity string, seconds float64) {
	m.NormalizeDuration.WithLabelValues(entity).Observe(seconds)
}
