package middleware

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metric names as constants for consistency.
const (
	MetricHTTPRequestDuration   = "http_request_duration_seconds"
	MetricHTTPRequestsTotal     = "http_requests_total"
	MetricHTTPResponseSizeBytes = "http_response_size_bytes"
	MetricRateLimitBlocked      = "rate_limit_blocked_total"
	MetricRateLimitStoreErrors  = "rate_limit_store_errors_total"
)

// Metrics contains Prometheus metrics for the HTTP layer.
// All operations are thread-safe.
type Metrics struct {
	httpRequestDuration *prometheus.HistogramVec
	httpRequestsTotal   *prometheus.CounterVec
	httpResponseSize    *prometheus.HistogramVec
	rateLimitBlocked    *prometheus.CounterVec
	rateLimitStoreErrs  prometheus.Counter
}

// NewMetrics creates a Metrics instance with all collectors initialized.
// The metrics are not registered; call Register to register them.
func NewMetrics() *Metrics {
	return &Metrics{
		httpRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    MetricHTTPRequestDuration,
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{0.01, 0.1, 0.5, 1.0, 2.0},
			},
			[]string{"method", "path", "status"},
		),
		httpRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: MetricHTTPRequestsTotal,
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		httpResponseSize: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    MetricHTTPResponseSizeBytes,
				Help:    "HTTP response size in bytes",
				Buckets: prometheus.ExponentialBuckets(100, 10, 6), // 100 B to ~10 MB
			},
			[]string{"method", "path", "status"},
		),
		rateLimitBlocked: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: MetricRateLimitBlocked,
				Help: "Total number of requests rejected by rate limiting",
			},
			[]string{"path"},
		),
		rateLimitStoreErrs: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: MetricRateLimitStoreErrors,
				Help: "Total number of rate limit store errors (fail-open events)",
			},
		),
	}
}

// Register registers all metrics with the given registry.
func (m *Metrics) Register(reg prometheus.Registerer) error {
	collectors := []prometheus.Collector{
		m.httpRequestDuration,
		m.httpRequestsTotal,
		m.httpResponseSize,
		m.rateLimitBlocked,
		m.rateLimitStoreErrs,
	}
	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// ObserveHTTPRequest records metrics for one completed HTTP request.
func (m *Metrics) ObserveHTTPRequest(method, path, status string, seconds float64, responseSize int64) {
	m.httpRequestDuration.WithLabelValues(method, path, status).Observe(seconds)
	m.httpRequestsTotal.WithLabelValues(method, path, status).Inc()
	m.httpResponseSize.WithLabelValues(method, path, status).Observe(float64(responseSize))
}

// IncRateLimitBlocked increments the blocked-request counter for a path.
func (m *Metrics) IncRateLimitBlocked(path string) {
	m.rateLimitBlocked.WithLabelValues(path).Inc()
}

// IncRateLimitStoreErrors increments the store error counter.
// Tracks fail-open events when the backing store is unavailable.
func (m *Metrics) IncRateLimitStoreErrors() {
	m.rateLimitStoreErrs.Inc()
}
