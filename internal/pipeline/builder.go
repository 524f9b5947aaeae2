package pipeline

import (
	"context"
	"fmt"
	"net/http"

	"trendy/internal/config"
	"trendy/internal/core"
	"trendy/internal/extract"
	"trendy/internal/llm"
	"trendy/internal/logger"
	"trendy/internal/parser"
	"trendy/internal/search"
)

// Builder helps construct a fully configured Pipeline from configuration.
// Any collaborator set explicitly replaces the one built from config.
type Builder struct {
	cfg        *config.Config
	httpClient *http.Client
	searcher   Searcher
	extractor  CandidateExtractor
	selector   PromptSelector
	completer  Completer
	parser     ResponseParser
	observer   Observer
}

// NewBuilder creates a new pipeline builder for cfg
func NewBuilder(cfg *config.Config) *Builder {
	return &Builder{cfg: cfg}
}

// WithHTTPClient sets the HTTP client shared by the search and LLM providers
func (b *Builder) WithHTTPClient(client *http.Client) *Builder {
	b.httpClient = client
	return b
}

// WithSearcher sets the search adapter
func (b *Builder) WithSearcher(s Searcher) *Builder {
	b.searcher = s
	return b
}

// WithExtractor sets the candidate extractor
func (b *Builder) WithExtractor(e CandidateExtractor) *Builder {
	b.extractor = e
	return b
}

// WithPromptSelector sets the prompt strategy selector
func (b *Builder) WithPromptSelector(s PromptSelector) *Builder {
	b.selector = s
	return b
}

// WithCompleter sets the LLM adapter
func (b *Builder) WithCompleter(c Completer) *Builder {
	b.completer = c
	return b
}

// WithParser sets the response parser
func (b *Builder) WithParser(p ResponseParser) *Builder {
	b.parser = p
	return b
}

// WithObserver sets the state transition observer
func (b *Builder) WithObserver(o Observer) *Builder {
	b.observer = o
	return b
}

// Build constructs a fully configured Pipeline
func (b *Builder) Build(ctx context.Context) (*Pipeline, error) {
	if b.cfg == nil {
		return nil, fmt.Errorf("configuration is required")
	}

	if b.searcher == nil {
		factory := search.NewProviderFactory(b.httpClient, b.cfg.Search.Timeout)
		provider, err := factory.CreateProvider(search.ProviderType(b.cfg.Search.DefaultProvider), b.cfg.Search.Providers)
		switch {
		case err == nil:
			b.searcher = search.NewClient(provider, search.Config{
				MaxResults:  b.cfg.Search.MaxResults,
				SearchDepth: b.cfg.Search.SearchDepth,
				Language:    b.cfg.App.Language,
			})
		case b.cfg.App.Mode == string(core.ModeUngrounded):
			// Grounded runs on this pipeline fail with SearchUnavailable.
			logger.Warn("search provider not available, only ungrounded runs will succeed",
				"provider", b.cfg.Search.DefaultProvider, "error", err.Error())
		default:
			return nil, fmt.Errorf("failed to create search provider %q: %w", b.cfg.Search.DefaultProvider, err)
		}
	}

	if b.extractor == nil {
		b.extractor = extract.NewPatternExtractor()
	}

	if b.completer == nil {
		completer, err := llm.NewCompleter(ctx, llm.ProviderType(b.cfg.LLM.DefaultProvider), b.cfg.LLM, b.httpClient)
		if err != nil {
			return nil, fmt.Errorf("failed to create LLM provider %q: %w", b.cfg.LLM.DefaultProvider, err)
		}
		b.completer = completer
	}

	if b.parser == nil {
		mode, err := parser.ParseScanMode(b.cfg.Parser.ScanMode)
		if err != nil {
			return nil, err
		}
		b.parser = parser.NewParser(mode)
	}

	return NewPipeline(
		b.searcher,
		b.extractor,
		b.selector,
		b.completer,
		b.parser,
		b.observer,
		&Config{
			City:        b.cfg.App.City,
			Language:    b.cfg.App.Language,
			Limit:       b.cfg.Extract.Limit,
			Temperature: b.cfg.LLM.Temperature,
			Parallel:    b.cfg.Search.Parallel,
		},
	), nil
}
