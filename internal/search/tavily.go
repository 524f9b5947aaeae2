package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"trendy/internal/logger"
)

// TavilyProvider implements Provider using the Tavily search API, which
// returns a synthesized answer alongside its results.
type TavilyProvider struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewTavilyProvider creates a new Tavily search provider
func NewTavilyProvider(apiKey, baseURL string, client *http.Client) *TavilyProvider {
	if baseURL == "" {
		baseURL = "https://api.tavily.com"
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &TavilyProvider{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
	}
}

// GetName returns the name of this provider
func (t *TavilyProvider) GetName() string {
	return "Tavily"
}

type tavilyRequest struct {
	Query         string `json:"query"`
	SearchDepth   string `json:"search_depth"`
	IncludeAnswer bool   `json:"include_answer"`
	MaxResults    int    `json:"max_results,omitempty"`
}

type tavilyResponse struct {
	Answer  string `json:"answer"`
	Results []struct {
		Title   string  `json:"title"`
		URL     string  `json:"url"`
		Content string  `json:"content"`
		Score   float64 `json:"score"`
	} `json:"results"`
}

// Search performs a search using Tavily
func (t *TavilyProvider) Search(ctx context.Context, query string, config Config) (*Response, error) {
	depth := config.SearchDepth
	if depth == "" {
		depth = "basic"
	}

	payload, err := json.Marshal(tavilyRequest{
		Query:         query,
		SearchDepth:   depth,
		IncludeAnswer: true,
		MaxResults:    config.MaxResults,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode Tavily request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.baseURL+"/search", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create Tavily request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+t.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, transportError(t.GetName(), err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, statusError(t.GetName(), resp.StatusCode, resp.Body)
	}

	var apiResponse tavilyResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResponse); err != nil {
		return nil, transportError(t.GetName(), fmt.Errorf("failed to parse response: %w", err))
	}

	out := &Response{Query: query, Answer: apiResponse.Answer}
	for i, item := range apiResponse.Results {
		out.Results = append(out.Results, Result{
			URL:     item.URL,
			Title:   item.Title,
			Snippet: item.Content,
			Domain:  extractDomain(item.URL),
			Source:  t.GetName(),
			Rank:    i + 1,
			Score:   item.Score,
		})
	}

	logger.Info("Tavily search completed", "query", query, "results_found", len(out.Results), "has_answer", out.Answer != "")

	return out, nil
}
