package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus instruments for the BFF client.
type Metrics struct {
	RequestsTotal    *prometheus.CounterVec
	RequestDuration  *prometheus.HistogramVec
	AuthFailures     prometheus.Counter
	SessionTeardowns prometheus.Counter
}

// New creates and registers all metrics on the default registry.
func New() *Metrics {
	return NewWith(prometheus.DefaultRegisterer)
}

// NewWith registers the metrics on the given registerer. Tests pass a fresh
// registry so repeated construction does not collide.
func NewWith(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		RequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "backoffice_bff_requests_total",
			Help: "Total number of BFF requests, labeled by method and status class",
		}, []string{"method", "status"}),
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "backoffice_bff_request_duration_seconds",
			Help:    "Latency of BFF requests in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"method"}),
		AuthFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "backoffice_auth_failures_total",
			Help: "Total number of 401 responses observed",
		}),
		SessionTeardowns: factory.NewCounter(prometheus.CounterOpts{
			Name: "backoffice_session_teardowns_total",
			Help: "Total number of sessions cleared after a 401",
		}),
	}
}
