// Package metrics holds the Prometheus instruments of the query pipeline.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "airq"

// ShapeUnknown labels turns that never compiled to a shape.
const ShapeUnknown = "none"

// Metrics counts and times pipeline turns.
type Metrics struct {
	queries  *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// New registers the instruments on reg. A nil reg creates unregistered
// instruments, which is convenient in tests.
func New(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		queries: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "queries_total",
			Help:      "Total number of answered turns by query shape and outcome.",
		}, []string{"shape", "outcome"}),
		duration: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "query_duration_seconds",
			Help:      "Time spent executing a query shape.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 12),
		}, []string{"shape"}),
	}
}

// Observe records one turn. outcome is the reply kind of the turn.
func (m *Metrics) Observe(shape, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	if shape == "" {
		shape = ShapeUnknown
	}
	m.queries.WithLabelValues(shape, outcome).Inc()
	m.duration.WithLabelValues(shape).Observe(elapsed.Seconds())
}
