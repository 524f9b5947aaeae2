package llm

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trendy/internal/config"
)

func chatCompletionHandler(t *testing.T, content string, seen *http.Header, body *map[string]any) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		*seen = r.Header.Clone()
		raw, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		assert.NoError(t, json.Unmarshal(raw, body))

		w.Header().Set("Content-Type", "application/json")
		resp := map[string]any{
			"id":      "chatcmpl-1",
			"object":  "chat.completion",
			"created": time.Now().Unix(),
			"model":   "test-model",
			"choices": []map[string]any{{
				"index":         0,
				"message":       map[string]any{"role": "assistant", "content": content},
				"finish_reason": "stop",
			}},
			"usage": map[string]any{"prompt_tokens": 10, "completion_tokens": 20, "total_tokens": 30},
		}
		assert.NoError(t, json.NewEncoder(w).Encode(resp))
	}
}

func TestOpenRouterComplete(t *testing.T) {
	var (
		headers http.Header
		body    map[string]any
	)
	srv := httptest.NewServer(chatCompletionHandler(t, MockReports, &headers, &body))
	defer srv.Close()

	client, err := NewOpenRouterClient(config.OpenRouterConfig{
		APIKey:  "or-test",
		BaseURL: srv.URL + "/",
		Model:   "test-model",
		Referer: "https://trendy.local",
		Title:   "Trendy",
		Timeout: 5 * time.Second,
	}, nil)
	require.NoError(t, err)

	out, err := client.Complete(context.Background(), "suggest places", 0.3)
	require.NoError(t, err)
	assert.Equal(t, MockReports, out)

	assert.Equal(t, "Bearer or-test", headers.Get("Authorization"))
	assert.Equal(t, "https://trendy.local", headers.Get("HTTP-Referer"))
	assert.Equal(t, "Trendy", headers.Get("X-Title"))
	assert.Equal(t, "test-model", body["model"])

	messages, ok := body["messages"].([]any)
	require.True(t, ok)
	require.Len(t, messages, 1)
	first := messages[0].(map[string]any)
	assert.Equal(t, "user", first["role"])
}

func TestOpenRouterAuthFailureIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"invalid api key","type":"auth_error","code":401}}`))
	}))
	defer srv.Close()

	client, err := NewOpenRouterClient(config.OpenRouterConfig{APIKey: "bad", BaseURL: srv.URL}, nil)
	require.NoError(t, err)

	_, err = client.Complete(context.Background(), "suggest places", 0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrLLMUnavailable))

	var perr *ProviderError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "OpenRouter", perr.Provider)
}

func TestOpenRouterRequiresKey(t *testing.T) {
	_, err := NewOpenRouterClient(config.OpenRouterConfig{}, nil)
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestOpenRouterRejectsEmptyPrompt(t *testing.T) {
	client, err := NewOpenRouterClient(config.OpenRouterConfig{APIKey: "k"}, nil)
	require.NoError(t, err)

	_, err = client.Complete(context.Background(), "   ", 0)
	assert.ErrorIs(t, err, ErrEmptyPrompt)
}

func TestGeminiComplete(t *testing.T) {
	var path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"[]"}]},"finishReason":"STOP"}]}`))
	}))
	defer srv.Close()

	client, err := NewGeminiClient(context.Background(), config.GeminiConfig{APIKey: "gm-test", Model: "gemini-test"}, srv.Client(), srv.URL+"/")
	require.NoError(t, err)

	out, err := client.Complete(context.Background(), "suggest places", 0)
	require.NoError(t, err)
	assert.Equal(t, "[]", out)
	assert.Contains(t, path, "gemini-test")
	assert.True(t, strings.HasSuffix(path, ":generateContent"))
}

func TestGeminiServerErrorIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":{"code":403,"message":"API key not valid","status":"PERMISSION_DENIED"}}`))
	}))
	defer srv.Close()

	client, err := NewGeminiClient(context.Background(), config.GeminiConfig{APIKey: "gm-test"}, srv.Client(), srv.URL+"/")
	require.NoError(t, err)

	_, err = client.Complete(context.Background(), "suggest places", 0)
	assert.ErrorIs(t, err, ErrLLMUnavailable)
}

func TestMockCompleter(t *testing.T) {
	m := NewMockCompleter("[]")

	out, err := m.Complete(context.Background(), "p1", 0.5)
	require.NoError(t, err)
	assert.Equal(t, "[]", out)
	assert.Equal(t, []string{"p1"}, m.Prompts())
	assert.Equal(t, []float64{0.5}, m.Temperatures())

	m.Err = &ProviderError{Provider: "Mock", Model: "mock", Err: errors.New("down")}
	_, err = m.Complete(context.Background(), "p2", 0)
	assert.ErrorIs(t, err, ErrLLMUnavailable)
}

func TestTracedCompleterPassesThrough(t *testing.T) {
	m := NewMockCompleter("ok")
	tc := NewTracedCompleter(m)

	assert.Equal(t, "Mock", tc.Name())
	out, err := tc.Complete(context.Background(), "prompt", DefaultTemperature)
	require.NoError(t, err)
	assert.Equal(t, "ok", out)
	assert.Equal(t, []float64{0}, m.Temperatures())
}

func TestNewCompleter(t *testing.T) {
	c, err := NewCompleter(context.Background(), ProviderTypeMock, config.LLM{}, nil)
	require.NoError(t, err)
	assert.Equal(t, "Mock", c.Name())

	_, err = NewCompleter(context.Background(), ProviderTypeOpenRouter, config.LLM{}, nil)
	assert.ErrorIs(t, err, ErrMissingAPIKey)

	_, err = NewCompleter(context.Background(), "claude", config.LLM{}, nil)
	assert.ErrorIs(t, err, ErrUnsupportedProvider)
}

func TestEstimateTokens(t *testing.T) {
	assert.Equal(t, 2, estimateTokens("abcd", "efgh"))
	assert.Equal(t, 0, estimateTokens("", ""))
}
