// Package metrics registers the dashboard's Prometheus instrumentation
// on the default registry, exposed at /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequests counts completed HTTP requests by path and status.
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "salesdash_http_requests_total",
		Help: "Completed HTTP requests.",
	}, []string{"path", "status"})

	// HTTPDuration observes request latency by path.
	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "salesdash_http_request_duration_seconds",
		Help:    "HTTP request latency.",
		Buckets: prometheus.DefBuckets,
	}, []string{"path"})

	// QueryDuration observes store query latency by operation.
	QueryDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "salesdash_query_duration_seconds",
		Help:    "Sales store query latency.",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})

	// QueryErrors counts failed store queries by operation.
	QueryErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "salesdash_query_errors_total",
		Help: "Failed sales store queries.",
	}, []string{"operation"})

	// DegradedRenders counts dashboard passes that produced at least one
	// degraded (defaulted) result.
	DegradedRenders = promauto.NewCounter(prometheus.CounterOpts{
		Name: "salesdash_degraded_renders_total",
		Help: "Dashboard renders degraded by store failures.",
	})
)
