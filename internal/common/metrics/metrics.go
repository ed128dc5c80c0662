// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	StepAdvances = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "form_step_advances_total",
			Help: "Total number of successful forward step transitions",
		},
		[]string{"step"},
	)

	StepValidationFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "form_step_validation_failures_total",
			Help: "Total number of blocked forward transitions per step",
		},
		[]string{"step"},
	)

	Submissions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "form_submissions_total",
			Help: "Total number of final submissions by outcome",
		},
		[]string{"status"},
	)

	Suggestions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ai_suggestions_total",
			Help: "Total number of suggestion requests by outcome",
		},
		[]string{"outcome"},
	)

	SuggestionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "ai_suggestion_duration_seconds",
			Help: "Duration of suggestion round-trips in seconds",
		},
		[]string{"outcome"},
	)

	SessionWrites = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "form_session_writes_total",
			Help: "Total number of coalesced draft writes persisted",
		},
	)
)
