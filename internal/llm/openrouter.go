package llm

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	"trendy/internal/config"
	"trendy/internal/logger"
)

const (
	// DefaultOpenRouterBaseURL is the OpenAI-compatible OpenRouter endpoint.
	DefaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"
	// DefaultOpenRouterModel is used when no model is configured.
	DefaultOpenRouterModel = "google/gemini-2.0-flash-exp:free"
)

// OpenRouterClient talks to OpenRouter through langchaingo's OpenAI client.
type OpenRouterClient struct {
	model string
	llm   *openai.LLM
}

// headerDoer adds OpenRouter attribution headers to every request.
type headerDoer struct {
	client  *http.Client
	referer string
	title   string
}

func (d *headerDoer) Do(req *http.Request) (*http.Response, error) {
	if d.referer != "" {
		req.Header.Set("HTTP-Referer", d.referer)
	}
	if d.title != "" {
		req.Header.Set("X-Title", d.title)
	}
	return d.client.Do(req)
}

// NewOpenRouterClient creates a client from configuration. A nil httpClient
// gets one with the configured timeout.
func NewOpenRouterClient(cfg config.OpenRouterConfig, httpClient *http.Client) (*OpenRouterClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openrouter: %w. Set OPENROUTER_API_KEY", ErrMissingAPIKey)
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultOpenRouterBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultOpenRouterModel
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	model, err := openai.New(
		openai.WithToken(cfg.APIKey),
		openai.WithBaseURL(strings.TrimRight(cfg.BaseURL, "/")),
		openai.WithModel(cfg.Model),
		openai.WithHTTPClient(&headerDoer{client: httpClient, referer: cfg.Referer, title: cfg.Title}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create OpenRouter client: %w", err)
	}

	return &OpenRouterClient{model: cfg.Model, llm: model}, nil
}

// Name returns the provider name
func (c *OpenRouterClient) Name() string {
	return "OpenRouter"
}

// Model returns the configured model identifier
func (c *OpenRouterClient) Model() string {
	return c.model
}

// Complete sends prompt as a single user message and returns the first choice.
func (c *OpenRouterClient) Complete(ctx context.Context, prompt string, temperature float64) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", ErrEmptyPrompt
	}

	messages := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeHuman, prompt),
	}

	resp, err := c.llm.GenerateContent(ctx, messages, llms.WithTemperature(temperature))
	if err != nil {
		return "", &ProviderError{Provider: c.Name(), Model: c.model, Err: err}
	}
	if len(resp.Choices) == 0 {
		return "", &ProviderError{Provider: c.Name(), Model: c.model, Err: fmt.Errorf("response contained no choices")}
	}

	content := resp.Choices[0].Content
	logger.Debug("OpenRouter completion received", "model", c.model, "response_length", len(content))

	return content, nil
}
