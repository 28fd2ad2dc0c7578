package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts cache-layer Redis failures by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cardstack_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// CacheRequests counts cache lookups by outcome (hit or miss).
	CacheRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cardstack_cache_requests_total",
		Help: "Total cache lookups by outcome",
	}, []string{"result"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "cardstack_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})
)

// RecordRedisError increments the Redis error counter for the operation.
func RecordRedisError(operation string) {
	RedisErrors.WithLabelValues(operation).Inc()
}

// RecordCacheHit increments the cache hit counter.
func RecordCacheHit() {
	CacheRequests.WithLabelValues("hit").Inc()
}

// RecordCacheMiss increments the cache miss counter.
func RecordCacheMiss() {
	CacheRequests.WithLabelValues("miss").Inc()
}

// TrackQuery returns a function that records query latency when called.
// Intended for defer at the top of a repository method.
func TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		DatabaseQueryLatency.WithLabelValues(operation, table).
			Observe(time.Since(start).Seconds())
	}
}
