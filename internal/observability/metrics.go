package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "postpilot_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// GenerationRequests counts generation attempts by project type and outcome.
	GenerationRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "postpilot_generation_requests_total",
		Help: "Total content generation requests by project type and outcome",
	}, []string{"project_type", "outcome"})

	// GenerationLatency records the end-to-end latency of completion calls.
	GenerationLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "postpilot_generation_latency_seconds",
		Help:    "Latency of external completion calls in seconds",
		Buckets: []float64{0.5, 1, 2.5, 5, 10, 20, 40, 60},
	}, []string{"project_type"})

	// GenerationPersistenceFailures counts completions whose write-back failed.
	// These are surfaced to the caller as persisted=false, never as errors.
	GenerationPersistenceFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "postpilot_generation_persistence_failures_total",
		Help: "Completions that succeeded but could not be written back to the project",
	})

	// OnboardingCompletions counts finished onboarding flows by user type.
	OnboardingCompletions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "postpilot_onboarding_completions_total",
		Help: "Completed onboarding flows by user classification",
	}, []string{"user_type"})
)

// ObserveGeneration records one generation attempt.
func ObserveGeneration(projectType, outcome string, elapsed time.Duration) {
	GenerationRequests.WithLabelValues(projectType, outcome).Inc()
	GenerationLatency.WithLabelValues(projectType).Observe(elapsed.Seconds())
}
