package search

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"trendy/internal/logger"
)

// DuckDuckGoProvider implements the Provider interface by scraping the
// DuckDuckGo HTML endpoint. It needs no API key and has no answer field.
type DuckDuckGoProvider struct {
	baseURL   string
	userAgent string
	client    *http.Client
}

// NewDuckDuckGoProvider creates a new DuckDuckGo search provider
func NewDuckDuckGoProvider(baseURL, userAgent string, client *http.Client) *DuckDuckGoProvider {
	if baseURL == "" {
		baseURL = "https://html.duckduckgo.com/html/"
	}
	if userAgent == "" {
		userAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &DuckDuckGoProvider{baseURL: baseURL, userAgent: userAgent, client: client}
}

// GetName returns the name of this provider
func (d *DuckDuckGoProvider) GetName() string {
	return "DuckDuckGo"
}

// Search performs a search using DuckDuckGo and returns results
func (d *DuckDuckGoProvider) Search(ctx context.Context, query string, config Config) (*Response, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("kl", "us-en")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", d.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, transportError(d.GetName(), err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, statusError(d.GetName(), resp.StatusCode, resp.Body)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, transportError(d.GetName(), fmt.Errorf("failed to parse HTML: %w", err))
	}

	if doc.Find("form#challenge-form, .anomaly-modal").Length() > 0 {
		logger.Debug("DuckDuckGo CAPTCHA detected", "query", query)
		return nil, &ProviderError{Provider: d.GetName(), Body: "search blocked by CAPTCHA"}
	}

	out := &Response{Query: query, Results: d.parseResults(doc, config.MaxResults)}

	logger.Info("DuckDuckGo search completed", "query", query, "results_found", len(out.Results))

	return out, nil
}

// parseResults extracts results from the DuckDuckGo HTML document.
func (d *DuckDuckGoProvider) parseResults(doc *goquery.Document, maxResults int) []Result {
	var results []Result

	doc.Find(".result").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if maxResults > 0 && len(results) >= maxResults {
			return false
		}

		link := s.Find("a.result__a").First()
		title := strings.Join(strings.Fields(link.Text()), " ")
		if title == "" {
			return true
		}

		href, _ := link.Attr("href")
		finalURL := d.extractFinalURL(href)
		results = append(results, Result{
			URL:     finalURL,
			Title:   title,
			Snippet: strings.Join(strings.Fields(s.Find(".result__snippet").Text()), " "),
			Domain:  extractDomain(finalURL),
			Source:  d.GetName(),
			Rank:    len(results) + 1,
		})
		return true
	})

	return results
}

// extractFinalURL extracts the actual URL from DuckDuckGo's redirect URL
func (d *DuckDuckGoProvider) extractFinalURL(redirectURL string) string {
	// DuckDuckGo uses URLs like: //duckduckgo.com/l/?uddg=https%3A//example.com/...&rut=...
	parsed, err := url.Parse(redirectURL)
	if err != nil {
		return ""
	}
	if uddg := parsed.Query().Get("uddg"); uddg != "" {
		return uddg
	}
	if strings.HasPrefix(redirectURL, "http") {
		return redirectURL
	}
	return ""
}
