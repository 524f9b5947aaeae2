package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trendy_runs_total",
			Help: "Total number of orchestration runs by mode and outcome",
		},
		[]string{"mode", "outcome"},
	)

	StageDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "trendy_stage_duration_seconds",
			Help:    "Duration of each orchestration stage in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10, 30, 60},
		},
		[]string{"stage"},
	)

	CandidatesExtracted = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "trendy_candidates_extracted",
			Help: "Number of candidates extracted per category in the latest run",
		},
		[]string{"category"},
	)

	SearchRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trendy_search_requests_total",
			Help: "Total number of search requests by provider and outcome",
		},
		[]string{"provider", "outcome"},
	)

	LLMRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trendy_llm_requests_total",
			Help: "Total number of completion requests by provider and outcome",
		},
		[]string{"provider", "outcome"},
	)

	LLMTokensEstimated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trendy_llm_tokens_estimated_total",
			Help: "Rough token estimate (chars/4) of prompts and completions",
		},
		[]string{"provider"},
	)
)

// Outcome label values.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// OutcomeOf maps an error to an outcome label.
func OutcomeOf(err error) string {
	if err != nil {
		return OutcomeFailure
	}
	return OutcomeSuccess
}
