package pipeline

import (
	"context"

	"trendy/internal/core"
	"trendy/internal/prompt"
)

// Searcher fetches raw search text for one category
type Searcher interface {
	// SearchCategory queries "trending <category> in <city>" once.
	// Failures must match search.ErrSearchUnavailable.
	SearchCategory(ctx context.Context, category core.Category, city string) (string, error)
}

// CandidateExtractor turns raw search text into candidate names
type CandidateExtractor interface {
	Extract(text string, limit int) []string
}

// Completer sends one prompt to a completion provider
type Completer interface {
	// Complete returns the raw model text. Failures must match
	// llm.ErrLLMUnavailable.
	Complete(ctx context.Context, prompt string, temperature float64) (string, error)
	Name() string
}

// ResponseParser recovers report records from raw model text
type ResponseParser interface {
	Parse(raw string) ([]core.ReportRecord, error)
}

// PromptSelector picks the prompt strategy for a candidate set
type PromptSelector func(candidates core.CandidateSet) prompt.Builder

// Observer is notified on every state transition. It is called
// synchronously from the goroutine executing the run.
type Observer func(runID string, state core.RunState)
