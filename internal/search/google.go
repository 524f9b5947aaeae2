package search

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/api/customsearch/v1"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"trendy/internal/logger"
)

// googleMaxResults is the per-request cap of the Custom Search API.
const googleMaxResults = 10

// GoogleProvider implements Provider using Google Custom Search API.
// It has no answer field, so extraction runs over result titles.
type GoogleProvider struct {
	apiKey   string
	searchID string
	baseURL  string
	client   *http.Client
}

// NewGoogleProvider creates a new Google Custom Search provider
func NewGoogleProvider(apiKey, searchID, baseURL string, client *http.Client) *GoogleProvider {
	if client == nil {
		client = http.DefaultClient
	}
	return &GoogleProvider{apiKey: apiKey, searchID: searchID, baseURL: baseURL, client: client}
}

// GetName returns the name of this provider
func (g *GoogleProvider) GetName() string {
	return "Google Custom Search"
}

// Search performs a search using Google Custom Search API
func (g *GoogleProvider) Search(ctx context.Context, query string, config Config) (*Response, error) {
	opts := []option.ClientOption{option.WithHTTPClient(g.client)}
	if g.baseURL != "" {
		opts = append(opts, option.WithEndpoint(g.baseURL))
	}
	svc, err := customsearch.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Google CSE client: %w", err)
	}

	call := svc.Cse.List().Cx(g.searchID).Q(query).Context(ctx)
	if config.MaxResults > 0 {
		call = call.Num(int64(min(config.MaxResults, googleMaxResults)))
	}

	// A custom HTTP client bypasses option.WithAPIKey, so the key travels as a call option.
	result, err := call.Do(googleapi.QueryParameter("key", g.apiKey))
	if err != nil {
		var apiErr *googleapi.Error
		if errors.As(err, &apiErr) {
			body := apiErr.Message
			if body == "" {
				body = apiErr.Body
			}
			return nil, &ProviderError{Provider: g.GetName(), StatusCode: apiErr.Code, Body: body, Err: err}
		}
		return nil, transportError(g.GetName(), err)
	}

	out := &Response{Query: query}
	for i, item := range result.Items {
		out.Results = append(out.Results, Result{
			URL:     item.Link,
			Title:   item.Title,
			Snippet: item.Snippet,
			Domain:  extractDomain(item.Link),
			Source:  g.GetName(),
			Rank:    i + 1,
		})
	}

	logger.Info("Google Custom Search completed", "query", query, "results_found", len(out.Results))

	return out, nil
}
