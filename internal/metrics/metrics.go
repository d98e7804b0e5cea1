// Package metrics defines the Prometheus collectors for the service and
// the gin middleware that feeds the HTTP ones.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "yt_transcript_api"

// HTTP metrics (incremented by Instrument).
var (
	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total HTTP requests processed.",
	}, []string{"method", "path_pattern", "status_code"})

	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request duration in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path_pattern"})

	HTTPResponseSize = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_response_size_bytes",
		Help:      "HTTP response size in bytes.",
		Buckets:   prometheus.ExponentialBuckets(100, 10, 6), // 100B → 10MB
	}, []string{"method", "path_pattern"})
)

// Provider metrics (incremented by the transcript gateway).
var (
	ProviderCallsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "provider_calls_total",
		Help:      "Transcript provider calls by operation and outcome.",
	}, []string{"operation", "outcome"})

	ProviderCallDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "provider_call_duration_seconds",
		Help:      "Transcript provider call latency in seconds.",
		Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
	}, []string{"operation"})

	ProxyUpdatesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "proxy_updates_total",
		Help:      "Successful proxy configuration updates.",
	})
)

func init() {
	prometheus.MustRegister(
		HTTPRequestsTotal,
		HTTPRequestDuration,
		HTTPResponseSize,
		ProviderCallsTotal,
		ProviderCallDuration,
		ProxyUpdatesTotal,
	)
}

// ObserveProviderCall records one provider call.
func ObserveProviderCall(operation, outcome string, d time.Duration) {
	ProviderCallsTotal.WithLabelValues(operation, outcome).Inc()
	ProviderCallDuration.WithLabelValues(operation).Observe(d.Seconds())
}

// Instrument returns gin middleware that records HTTP request metrics.
// It uses gin's route pattern as the path label to avoid cardinality
// explosion from query strings and unmatched paths.
func Instrument() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		pattern := c.FullPath()
		if pattern == "" {
			pattern = "unknown"
		}
		method := c.Request.Method
		status := strconv.Itoa(c.Writer.Status())

		HTTPRequestsTotal.WithLabelValues(method, pattern, status).Inc()
		HTTPRequestDuration.WithLabelValues(method, pattern).Observe(time.Since(start).Seconds())
		if size := c.Writer.Size(); size > 0 {
			HTTPResponseSize.WithLabelValues(method, pattern).Observe(float64(size))
		}
	}
}
