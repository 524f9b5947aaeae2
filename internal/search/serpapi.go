package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"trendy/internal/logger"
)

// SerpAPIProvider implements Provider using SerpAPI (premium option)
type SerpAPIProvider struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewSerpAPIProvider creates a new SerpAPI search provider
func NewSerpAPIProvider(apiKey, baseURL string, client *http.Client) *SerpAPIProvider {
	if baseURL == "" {
		baseURL = "https://serpapi.com/search"
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &SerpAPIProvider{apiKey: apiKey, baseURL: baseURL, client: client}
}

// GetName returns the name of this provider
func (s *SerpAPIProvider) GetName() string {
	return "SerpAPI"
}

// Search performs a search using SerpAPI. The answer box, when present,
// becomes the response answer.
func (s *SerpAPIProvider) Search(ctx context.Context, query string, config Config) (*Response, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("engine", "google")
	params.Set("api_key", s.apiKey)
	if config.MaxResults > 0 {
		params.Set("num", strconv.Itoa(config.MaxResults))
	}
	if config.Language != "" {
		params.Set("hl", config.Language)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create SerpAPI request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, transportError(s.GetName(), err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, statusError(s.GetName(), resp.StatusCode, resp.Body)
	}

	var apiResponse struct {
		AnswerBox struct {
			Answer  string `json:"answer"`
			Snippet string `json:"snippet"`
		} `json:"answer_box"`
		OrganicResults []struct {
			Title    string `json:"title"`
			Link     string `json:"link"`
			Snippet  string `json:"snippet"`
			Position int    `json:"position"`
		} `json:"organic_results"`
		Error string `json:"error,omitempty"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&apiResponse); err != nil {
		return nil, transportError(s.GetName(), fmt.Errorf("failed to parse response: %w", err))
	}

	if apiResponse.Error != "" {
		return nil, &ProviderError{Provider: s.GetName(), Body: apiResponse.Error}
	}

	out := &Response{Query: query, Answer: apiResponse.AnswerBox.Answer}
	if out.Answer == "" {
		out.Answer = apiResponse.AnswerBox.Snippet
	}
	for _, item := range apiResponse.OrganicResults {
		out.Results = append(out.Results, Result{
			URL:     item.Link,
			Title:   item.Title,
			Snippet: item.Snippet,
			Domain:  extractDomain(item.Link),
			Source:  s.GetName(),
			Rank:    item.Position,
		})
	}

	logger.Info("SerpAPI search completed", "query", query, "results_found", len(out.Results))

	return out, nil
}
