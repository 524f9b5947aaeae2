package search

import (
	"context"
	"errors"
	"fmt"
	"time"

	"trendy/internal/core"
	"trendy/internal/logger"
	"trendy/internal/metrics"
)

// Client is the category-level search adapter used by the orchestrator.
type Client struct {
	provider Provider
	config   Config
}

// NewClient wraps provider with the request settings used for every query.
func NewClient(provider Provider, config Config) *Client {
	return &Client{provider: provider, config: config}
}

// ProviderName returns the wrapped provider's name.
func (c *Client) ProviderName() string {
	return c.provider.GetName()
}

// SearchCategory issues "trending <category> in <city>" once and returns the
// raw text for extraction. Failures match ErrSearchUnavailable.
func (c *Client) SearchCategory(ctx context.Context, category core.Category, city string) (string, error) {
	query := BuildQuery(category, city)
	logger.Debug("searching category", "category", category, "query", query, "provider", c.provider.GetName())

	start := time.Now()
	resp, err := c.provider.Search(ctx, query, c.config)
	metrics.SearchRequests.WithLabelValues(c.provider.GetName(), metrics.OutcomeOf(err)).Inc()
	if err != nil {
		return "", fmt.Errorf("search %s: %w", category, asUnavailable(c.provider.GetName(), err))
	}

	logger.Debug("category search completed",
		"category", category,
		"query", query,
		"results_found", len(resp.Results),
		"has_answer", resp.Answer != "",
		"duration", time.Since(start))

	return resp.Text(), nil
}

// asUnavailable guarantees err matches ErrSearchUnavailable.
func asUnavailable(provider string, err error) error {
	if errors.Is(err, ErrSearchUnavailable) {
		return err
	}
	return transportError(provider, err)
}
