package recommend

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Ranking path labels for metrics.
const (
	PathPersonalized = "personalized"
	PathFallback     = "fallback"
)

// Metric names as constants for consistency.
const (
	MetricRecommendationsTotal = "recommendations_total"
	MetricScoringDuration      = "recommendation_scoring_duration_seconds"
	MetricListingsEvaluated    = "recommendation_listings_evaluated"
)

// Metrics contains Prometheus metrics for the scoring engine.
// All operations are thread-safe.
type Metrics struct {
	recommendationsTotal *prometheus.CounterVec
	scoringDuration      *prometheus.HistogramVec
	listingsEvaluated    prometheus.Histogram
}

// NewMetrics creates a Metrics instance with all collectors initialized.
// The metrics are not registered; call Register to register them.
func NewMetrics() *Metrics {
	return &Metrics{
		recommendationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: MetricRecommendationsTotal,
				Help: "Total number of recommendation rankings computed by path",
			},
			[]string{"path"},
		),
		scoringDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    MetricScoringDuration,
				Help:    "Time spent scoring and ranking one request in seconds",
				Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1.0},
			},
			[]string{"path"},
		),
		listingsEvaluated: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    MetricListingsEvaluated,
				Help:    "Number of listings evaluated per ranking request",
				Buckets: prometheus.ExponentialBuckets(1, 4, 8), // 1 to ~16k
			},
		),
	}
}

// Register registers all metrics with the given registry.
func (m *Metrics) Register(reg prometheus.Registerer) error {
	collectors := []prometheus.Collector{
		m.recommendationsTotal,
		m.scoringDuration,
		m.listingsEvaluated,
	}
	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// ObserveRecommendation records one completed ranking.
func (m *Metrics) ObserveRecommendation(path string, listings int, seconds float64) {
	m.recommendationsTotal.WithLabelValues(path).Inc()
	m.scoringDuration.WithLabelValues(path).Observe(seconds)
	m.listingsEvaluated.Observe(float64(listings))
}
