package search

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"trendy/internal/config"
	"trendy/internal/core"
)

// Provider defines the unified interface for search providers
type Provider interface {
	// Search performs a single search request; there is no retry.
	Search(ctx context.Context, query string, config Config) (*Response, error)

	// GetName returns the name of the search provider
	GetName() string
}

// Config holds configuration for search requests
type Config struct {
	MaxResults  int    // Maximum number of results to return
	SearchDepth string // Provider-specific depth ("basic", "advanced")
	Language    string // Language preference (e.g., "en", "ar")
}

// Response is the free text a provider returned for one query.
type Response struct {
	Query   string   `json:"query"`
	Answer  string   `json:"answer,omitempty"` // Summary/answer text when the provider has one
	Results []Result `json:"results,omitempty"`
}

// Titles returns the result titles in rank order.
func (r *Response) Titles() []string {
	titles := make([]string, 0, len(r.Results))
	for _, res := range r.Results {
		if t := strings.TrimSpace(res.Title); t != "" {
			titles = append(titles, t)
		}
	}
	return titles
}

// Text returns the raw text handed to candidate extraction: the answer when
// present, otherwise the result titles joined by ", ".
func (r *Response) Text() string {
	if r == nil {
		return ""
	}
	if strings.TrimSpace(r.Answer) != "" {
		return r.Answer
	}
	return strings.Join(r.Titles(), ", ")
}

// Result represents a unified search result
type Result struct {
	URL     string  `json:"url"`
	Title   string  `json:"title"`
	Snippet string  `json:"snippet"`
	Domain  string  `json:"domain"`
	Source  string  `json:"source"` // Provider-specific source identifier
	Rank    int     `json:"rank"`   // Position in search results
	Score   float64 `json:"score,omitempty"`
}

// ProviderType represents the type of search provider
type ProviderType string

const (
	ProviderTypeTavily     ProviderType = "tavily"
	ProviderTypeDuckDuckGo ProviderType = "duckduckgo"
	ProviderTypeGoogle     ProviderType = "google"
	ProviderTypeSerpAPI    ProviderType = "serpapi"
	ProviderTypeMock       ProviderType = "mock"
)

// BuildQuery formats the category query, e.g. "trending cafes in Riyadh".
func BuildQuery(category core.Category, city string) string {
	return fmt.Sprintf("trending %s in %s", category.Plural(), city)
}

// ProviderFactory creates search providers based on type and configuration
type ProviderFactory struct {
	client *http.Client
}

// NewProviderFactory creates a new provider factory. A nil client gets one
// with the given timeout.
func NewProviderFactory(client *http.Client, timeout time.Duration) *ProviderFactory {
	if client == nil {
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		client = &http.Client{Timeout: timeout}
	}
	return &ProviderFactory{client: client}
}

// CreateProvider creates a search provider of the specified type
func (f *ProviderFactory) CreateProvider(providerType ProviderType, cfg config.SearchProviders) (Provider, error) {
	switch providerType {
	case ProviderTypeTavily:
		if cfg.Tavily.APIKey == "" {
			return nil, ErrMissingAPIKey
		}
		return NewTavilyProvider(cfg.Tavily.APIKey, cfg.Tavily.BaseURL, f.client), nil
	case ProviderTypeSerpAPI:
		if cfg.SerpAPI.APIKey == "" {
			return nil, ErrMissingAPIKey
		}
		return NewSerpAPIProvider(cfg.SerpAPI.APIKey, cfg.SerpAPI.BaseURL, f.client), nil
	case ProviderTypeGoogle:
		if cfg.Google.APIKey == "" {
			return nil, ErrMissingAPIKey
		}
		if cfg.Google.SearchID == "" {
			return nil, ErrMissingSearchID
		}
		return NewGoogleProvider(cfg.Google.APIKey, cfg.Google.SearchID, cfg.Google.BaseURL, f.client), nil
	case ProviderTypeDuckDuckGo:
		return NewDuckDuckGoProvider(cfg.DuckDuckGo.BaseURL, cfg.DuckDuckGo.UserAgent, f.client), nil
	case ProviderTypeMock:
		return NewMockProvider(), nil
	default:
		return nil, ErrUnsupportedProvider
	}
}

// GetAvailableProviders returns a list of available provider types
func (f *ProviderFactory) GetAvailableProviders() []ProviderType {
	return []ProviderType{
		ProviderTypeTavily,
		ProviderTypeSerpAPI,
		ProviderTypeGoogle,
		ProviderTypeDuckDuckGo,
		ProviderTypeMock,
	}
}

// extractDomain extracts the domain name from a URL
func extractDomain(urlStr string) string {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(parsed.Hostname(), "www.")
}
