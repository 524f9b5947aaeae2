package llm

import (
	"context"
	"time"

	"trendy/internal/logger"
	"trendy/internal/metrics"
)

// TracedCompleter wraps a Completer with logging and Prometheus metrics.
type TracedCompleter struct {
	next Completer
}

// NewTracedCompleter wraps next.
func NewTracedCompleter(next Completer) *TracedCompleter {
	return &TracedCompleter{next: next}
}

// Name returns the wrapped provider's name.
func (tc *TracedCompleter) Name() string {
	return tc.next.Name()
}

// Complete delegates to the wrapped Completer and records the call.
func (tc *TracedCompleter) Complete(ctx context.Context, prompt string, temperature float64) (string, error) {
	start := time.Now()
	result, err := tc.next.Complete(ctx, prompt, temperature)
	latency := time.Since(start)

	provider := tc.next.Name()
	metrics.LLMRequests.WithLabelValues(provider, metrics.OutcomeOf(err)).Inc()
	metrics.LLMTokensEstimated.WithLabelValues(provider).Add(float64(estimateTokens(prompt, result)))

	if err != nil {
		logger.Error("completion failed", err, "provider", provider, "latency_ms", latency.Milliseconds())
		return "", err
	}

	logger.Info("completion finished",
		"provider", provider,
		"temperature", temperature,
		"latency_ms", latency.Milliseconds(),
		"estimated_tokens", estimateTokens(prompt, result),
	)
	return result, nil
}
