// Package metrics exposes Prometheus collectors for the HTTP API, combo search and the cache.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// Search
	SearchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "combo_search_duration_seconds",
			Help:    "Duration of combo searches in seconds, by sort key",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"sort"},
	)

	SearchResults = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "combo_search_results",
			Help:    "Total matches per combo search",
			Buckets: []float64{0, 1, 5, 10, 50, 100, 500, 1000, 5000},
		},
	)

	// Cache
	CacheRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_requests_total",
			Help: "Cache lookups by result (hit, miss, error)",
		},
		[]string{"result"},
	)

	// Writes
	ModerationActions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moderation_actions_total",
			Help: "Admin moderation actions by target and action",
		},
		[]string{"target", "action"},
	)
)

// ObserveSearch records one search.
func ObserveSearch(sort string, started time.Time, total int64) {
	SearchDuration.WithLabelValues(sort).Observe(time.Since(started).Seconds())
	SearchResults.Observe(float64(total))
}

// Middleware records request count and latency per matched route.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		HTTPRequestsTotal.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		HTTPRequestDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

// Handler serves the default registry.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
