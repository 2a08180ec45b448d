package metrics

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the catalog collectors. They are registered once with the
// default prometheus registry and shared by every service instance.
type Metrics struct {
	Operations      *prometheus.CounterVec
	OperationErrors *prometheus.CounterVec
	CacheRequests   *prometheus.CounterVec
	Scheduled       *prometheus.CounterVec
	LocksReaped     prometheus.Counter
	RequestDuration *prometheus.HistogramVec
}

var Default = sync.OnceValue(func() *Metrics {
	return &Metrics{
		Operations: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ptv",
			Subsystem: "catalog",
			Name:      "operations_total",
			Help:      "Committed catalog operations.",
		}, []string{"kind", "operation"}),
		OperationErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ptv",
			Subsystem: "catalog",
			Name:      "operation_errors_total",
			Help:      "Catalog operations that failed, by gRPC code.",
		}, []string{"kind", "operation", "code"}),
		CacheRequests: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ptv",
			Subsystem: "cache",
			Name:      "requests_total",
			Help:      "Published view cache lookups.",
		}, []string{"result"}),
		Scheduled: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ptv",
			Subsystem: "jobs",
			Name:      "scheduled_transitions_total",
			Help:      "Versions published or archived by their validity window.",
		}, []string{"kind", "operation"}),
		LocksReaped: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: "ptv",
			Subsystem: "jobs",
			Name:      "locks_reaped_total",
			Help:      "Expired entity locks removed.",
		}),
		RequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "ptv",
			Subsystem: "grpc",
			Name:      "request_duration_seconds",
			Help:      "Duration of unary gRPC calls.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"method"}),
	}
})

func (m *Metrics) IncOperation(kind, operation string) {
	m.Operations.WithLabelValues(kind, operation).Inc()
}

func (m *Metrics) IncError(kind, operation, code string) {
	m.OperationErrors.WithLabelValues(kind, operation, code).Inc()
}

func (m *Metrics) CacheHit() {
	m.CacheRequests.WithLabelValues("hit").Inc()
}

func (m *Metrics) CacheMiss() {
	m.CacheRequests.WithLabelValues("miss").Inc()
}

// ObserveRequest records the duration of a call started at start.
func (m *Metrics) ObserveRequest(method string, start time.Time) {
	m.RequestDuration.WithLabelValues(method).Observe(time.Since(start).Seconds())
}

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
