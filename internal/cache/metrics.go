package cache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	missAbsent  = "absent"
	missRefresh = "refresh"
	missCorrupt = "corrupt"
)

var (
	// CacheHits counts values served from disk without running the producer.
	CacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "giglist_cache_hits_total",
			Help: "Total number of cache entries served from disk",
		},
	)

	// CacheMisses counts producer runs by reason.
	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "giglist_cache_misses_total",
			Help: "Total number of cache misses by reason",
		},
		[]string{"reason"}, // "absent", "refresh", "corrupt"
	)

	// CacheWrites counts entries persisted.
	CacheWrites = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "giglist_cache_writes_total",
			Help: "Total number of cache entries written",
		},
	)

	// CacheErrors counts failed cache operations.
	CacheErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "giglist_cache_errors_total",
			Help: "Total number of cache operation errors",
		},
		[]string{"operation"}, // "read", "write", "delete"
	)
)
