package llm

import (
	"context"
	"net/http"

	"trendy/internal/config"
)

// NewCompleter builds the configured provider wrapped in a TracedCompleter.
func NewCompleter(ctx context.Context, providerType ProviderType, cfg config.LLM, httpClient *http.Client) (Completer, error) {
	var (
		c   Completer
		err error
	)

	switch providerType {
	case ProviderTypeOpenRouter:
		c, err = NewOpenRouterClient(cfg.OpenRouter, httpClient)
	case ProviderTypeGemini:
		c, err = NewGeminiClient(ctx, cfg.Gemini, httpClient, "")
	case ProviderTypeMock:
		c = NewMockCompleter(MockReports)
	default:
		return nil, ErrUnsupportedProvider
	}
	if err != nil {
		return nil, err
	}

	return NewTracedCompleter(c), nil
}
