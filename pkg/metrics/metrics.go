// Package metrics holds the prometheus collectors shared by the recommendation pipeline
// and its generative-model adapters.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RecommendationsTotal counts finished pipeline runs by outcome code ("ok" on success).
	RecommendationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wearther_recommendations_total",
			Help: "Total number of recommendation pipeline runs by outcome",
		},
		[]string{"outcome"},
	)

	// RecommendationDuration tracks end to end pipeline latency.
	RecommendationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "wearther_recommendation_duration_seconds",
			Help:    "Duration of recommendation pipeline runs in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
	)

	// CandidatesTotal counts candidates seen at each pipeline stage.
	CandidatesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wearther_candidates_total",
			Help: "Candidate outfits observed per pipeline stage",
		},
		[]string{"stage"},
	)

	// PlannerCallsTotal counts generative model calls by operation and result.
	PlannerCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wearther_planner_calls_total",
			Help: "Generative planner calls by operation and result",
		},
		[]string{"operation", "result"},
	)

	// CircuitBreakerState is 0 closed, 1 half-open, 2 open.
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "wearther_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)
)

// ObserveRecommendation records a finished pipeline run.
func ObserveRecommendation(outcome string, elapsed time.Duration) {
	if outcome == "" {
		outcome = "ok"
	}
	RecommendationsTotal.WithLabelValues(outcome).Inc()
	RecommendationDuration.Observe(elapsed.Seconds())
}

// ObserveCandidates adds n candidates to the given stage counter.
func ObserveCandidates(stage string, n int) {
	if n <= 0 {
		return
	}
	CandidatesTotal.WithLabelValues(stage).Add(float64(n))
}

// ObservePlannerCall records a generative call result.
func ObservePlannerCall(operation string, err error) {
	result := "success"
	if err != nil {
		result = "failure"
	}
	PlannerCallsTotal.WithLabelValues(operation, result).Inc()
}
