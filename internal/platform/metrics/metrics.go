package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the client.
type Metrics struct {
	APIRequests    *prometheus.CounterVec
	RequestLatency *prometheus.HistogramVec
	AuthFailures   prometheus.Counter
	SessionsClear  prometheus.Counter
}

// New creates and registers all Prometheus metrics on the given registerer.
// Passing a dedicated registry keeps tests isolated from the default one.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		APIRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "esplan_api_requests_total",
			Help: "Total API requests, labeled by operation and outcome",
		}, []string{"operation", "outcome"}),
		RequestLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "esplan_api_request_latency_seconds",
			Help:    "Latency of API requests in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation"}),
		AuthFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "esplan_auth_failures_total",
			Help: "Total number of unauthorized (401) responses",
		}),
		SessionsClear: factory.NewCounter(prometheus.CounterOpts{
			Name: "esplan_sessions_cleared_total",
			Help: "Total number of local session clears",
		}),
	}
}
