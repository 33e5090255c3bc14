package http

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequests counts requests by host and status code ("error" for
	// transport failures).
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "giglist_http_requests_total",
			Help: "Total number of HTTP requests by host and status",
		},
		[]string{"host", "status"},
	)

	// HTTPRequestDuration tracks request latency per host.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "giglist_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"host"},
	)
)
