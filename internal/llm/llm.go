// Package llm sends a single-turn prompt to a chat-completion provider and
// returns the raw text of the first choice.
package llm

import (
	"context"
	"errors"
	"fmt"
)

// DefaultTemperature biases the model toward schema-compliant output.
const DefaultTemperature = 0.0

var (
	// ErrLLMUnavailable is matched by every provider, transport or auth failure.
	ErrLLMUnavailable = errors.New("completion provider unavailable")

	// ErrMissingAPIKey is returned when a provider is created without a key.
	ErrMissingAPIKey = errors.New("API key is required")

	// ErrUnsupportedProvider is returned for an unknown provider type.
	ErrUnsupportedProvider = errors.New("unsupported LLM provider")

	// ErrEmptyPrompt is returned before any request is made.
	ErrEmptyPrompt = errors.New("prompt cannot be empty")
)

// Completer performs one completion request. There is no streaming, no
// conversation state and no retry.
type Completer interface {
	Complete(ctx context.Context, prompt string, temperature float64) (string, error)
	Name() string
}

// ProviderError wraps a failure reported by a completion provider.
type ProviderError struct {
	Provider string
	Model    string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s completion failed (model %s): %v", e.Provider, e.Model, e.Err)
}

// Unwrap exposes the provider SDK error.
func (e *ProviderError) Unwrap() error {
	return e.Err
}

// Is makes every ProviderError match ErrLLMUnavailable.
func (e *ProviderError) Is(target error) bool {
	return target == ErrLLMUnavailable
}

// ProviderType represents the type of completion provider
type ProviderType string

const (
	ProviderTypeOpenRouter ProviderType = "openrouter"
	ProviderTypeGemini     ProviderType = "gemini"
	ProviderTypeMock       ProviderType = "mock"
)

// estimateTokens is a rough chars/4 estimate used for metrics only.
func estimateTokens(prompt, completion string) int {
	return (len(prompt) + len(completion)) / 4
}
