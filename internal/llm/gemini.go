package llm

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/genai"

	"trendy/internal/config"
	"trendy/internal/logger"
)

// DefaultGeminiModel is used when no model is configured.
const DefaultGeminiModel = "gemini-2.0-flash"

// GeminiClient talks to the Gemini API directly.
type GeminiClient struct {
	modelName string
	gClient   *genai.Client
}

// NewGeminiClient creates a Gemini client. baseURL overrides the API
// endpoint and is only set in tests.
func NewGeminiClient(ctx context.Context, cfg config.GeminiConfig, httpClient *http.Client, baseURL string) (*GeminiClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini: %w. Set GEMINI_API_KEY", ErrMissingAPIKey)
	}
	if cfg.Model == "" {
		cfg.Model = DefaultGeminiModel
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	clientConfig := &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: httpClient,
	}
	if baseURL != "" {
		clientConfig.HTTPOptions = genai.HTTPOptions{BaseURL: baseURL}
	}

	gClient, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{modelName: cfg.Model, gClient: gClient}, nil
}

// Name returns the provider name
func (c *GeminiClient) Name() string {
	return "Gemini"
}

// Model returns the configured model identifier
func (c *GeminiClient) Model() string {
	return c.modelName
}

// Complete sends prompt as a single user turn. Temperature is always set,
// including zero.
func (c *GeminiClient) Complete(ctx context.Context, prompt string, temperature float64) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", ErrEmptyPrompt
	}

	contents := []*genai.Content{{
		Parts: []*genai.Part{{Text: prompt}},
		Role:  "user",
	}}
	temp := float32(temperature)
	genConfig := &genai.GenerateContentConfig{Temperature: &temp}

	resp, err := c.gClient.Models.GenerateContent(ctx, c.modelName, contents, genConfig)
	if err != nil {
		return "", &ProviderError{Provider: c.Name(), Model: c.modelName, Err: err}
	}

	text := resp.Text()
	if text == "" {
		return "", &ProviderError{Provider: c.Name(), Model: c.modelName, Err: fmt.Errorf("empty response from model")}
	}

	logger.Debug("Gemini completion received", "model", c.modelName, "response_length", len(text))

	return text, nil
}
