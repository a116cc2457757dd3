// internal/matching/metrics.go

package matching

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	likeOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "matching_like_operations_total",
		Help: "Like set mutations by direction.",
	}, []string{"direction"})

	recommendationPoolSize = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "matching_recommendation_pool_size",
		Help:    "Number of candidates returned per recommendation request.",
		Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 250, 500},
	})

	matchPercentages = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "matching_match_percentage",
		Help:    "Distribution of computed match percentages.",
		Buckets: []float64{50, 60, 70, 80, 90, 100},
	})
)

func recordLike(direction string) {
	likeOperations.WithLabelValues(direction).Inc()
}

func recordRecommendationPool(size int) {
	recommendationPoolSize.Observe(float64(size))
}

func recordMatchPercentage(pct int) {
	matchPercentages.Observe(float64(pct))
}
