package pipeline

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"trendy/internal/core"
	"trendy/internal/logger"
	"trendy/internal/metrics"
	"trendy/internal/prompt"
)

// Pipeline runs the search, extract, prompt, generate and parse sequence.
// One Pipeline executes at most one run at a time.
type Pipeline struct {
	searcher  Searcher
	extractor CandidateExtractor
	selector  PromptSelector
	completer Completer
	parser    ResponseParser
	observer  Observer

	config *Config
	mu     sync.Mutex
}

// Config holds pipeline configuration
type Config struct {
	City        string
	Language    string
	Limit       int     // Candidates kept per category
	Temperature float64 // Completion temperature
	Parallel    bool    // Search the categories concurrently
}

// DefaultConfig returns sensible default configuration
func DefaultConfig() *Config {
	return &Config{
		City:        "Riyadh",
		Language:    prompt.LanguageArabic,
		Limit:       3,
		Temperature: 0,
		Parallel:    false,
	}
}

// NewPipeline creates a new pipeline with all dependencies. searcher may be
// nil when only ungrounded runs are expected; selector defaults to
// prompt.Select.
func NewPipeline(
	searcher Searcher,
	extractor CandidateExtractor,
	selector PromptSelector,
	completer Completer,
	parser ResponseParser,
	observer Observer,
	config *Config,
) *Pipeline {
	if config == nil {
		config = DefaultConfig()
	}
	if selector == nil {
		selector = prompt.Select
	}

	return &Pipeline{
		searcher:  searcher,
		extractor: extractor,
		selector:  selector,
		completer: completer,
		parser:    parser,
		observer:  observer,
		config:    config,
	}
}

// RunOptions configures a single run
type RunOptions struct {
	Mode core.Mode
	City string // Overrides Config.City when set
}

// execution tracks per-stage timing for one run.
type execution struct {
	run        *core.Run
	stageStart time.Time
	observer   Observer
}

func (e *execution) enter(state core.RunState) {
	now := time.Now()
	if prev := e.run.State; prev != "" && prev != core.StateIdle {
		metrics.StageDuration.WithLabelValues(string(prev)).Observe(now.Sub(e.stageStart).Seconds())
	}
	e.stageStart = now
	e.run.Transition(state)

	logger.Debug("run state changed", "run_id", e.run.ID, "state", state)
	if e.observer != nil {
		e.observer(e.run.ID, state)
	}
}

// Run executes one run to completion. The returned Run is always non-nil
// unless ErrRunInProgress is returned; on failure Run.Err and the returned
// error are the same *RunError.
func (p *Pipeline) Run(ctx context.Context, opts RunOptions) (*core.Run, error) {
	if !p.mu.TryLock() {
		return nil, ErrRunInProgress
	}
	defer p.mu.Unlock()

	city := opts.City
	if city == "" {
		city = p.config.City
	}
	mode := opts.Mode
	if mode == "" {
		mode = core.ModeGrounded
	}

	run := &core.Run{
		ID:        uuid.NewString(),
		City:      city,
		Mode:      mode,
		StartedAt: time.Now(),
	}
	exec := &execution{run: run, observer: p.observer}
	exec.enter(core.StateIdle)

	logger.Info("run started", "run_id", run.ID, "city", city, "mode", mode)

	var candidates core.CandidateSet
	if mode == core.ModeGrounded {
		var err error
		candidates, err = p.gather(ctx, exec, city)
		if err != nil {
			return p.fail(exec, newRunError(KindSearchUnavailable, err))
		}
		run.Candidates = candidates
	}

	exec.enter(core.StatePrompting)
	builder := p.selector(candidates)
	promptText, err := builder.Build(candidates, city, p.config.Language)
	if err != nil {
		return p.fail(exec, newRunError(KindPromptFailed, err))
	}
	run.Prompt = promptText
	logger.Debug("prompt built", "run_id", run.ID, "strategy", builder.Name(), "length", len(promptText))

	exec.enter(core.StateGenerating)
	raw, err := p.completer.Complete(ctx, promptText, p.config.Temperature)
	if err != nil {
		return p.fail(exec, newRunError(KindLLMUnavailable, err))
	}
	run.RawResponse = raw

	exec.enter(core.StateParsing)
	records, err := p.parser.Parse(raw)
	if err != nil {
		runErr := newRunError(parseKind(err), err)
		runErr.RawResponse = raw
		return p.fail(exec, runErr)
	}
	run.Records = records

	exec.enter(core.StateDone)
	run.FinishedAt = time.Now()
	metrics.RunsTotal.WithLabelValues(string(mode), metrics.OutcomeSuccess).Inc()
	logger.Info("run finished",
		"run_id", run.ID,
		"records", len(records),
		"duration", run.Duration())

	return run, nil
}

func (p *Pipeline) fail(exec *execution, runErr *RunError) (*core.Run, error) {
	run := exec.run
	run.Err = runErr
	exec.enter(core.StateFailed)
	run.FinishedAt = time.Now()

	metrics.RunsTotal.WithLabelValues(string(run.Mode), metrics.OutcomeFailure).Inc()
	logger.Error("run failed", runErr.Err, "run_id", run.ID, "kind", runErr.Kind)

	return run, runErr
}

// gather searches every category and then extracts candidates from each
// result. Any search failure aborts the remaining categories.
func (p *Pipeline) gather(ctx context.Context, exec *execution, city string) (core.CandidateSet, error) {
	exec.enter(core.StateSearching)
	if p.searcher == nil {
		return nil, fmt.Errorf("no search provider configured")
	}

	texts := make([]string, len(core.Categories))
	if p.config.Parallel {
		g, gctx := errgroup.WithContext(ctx)
		for i, category := range core.Categories {
			g.Go(func() error {
				text, err := p.searcher.SearchCategory(gctx, category, city)
				texts[i] = text
				return err
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	} else {
		for i, category := range core.Categories {
			text, err := p.searcher.SearchCategory(ctx, category, city)
			if err != nil {
				return nil, err
			}
			texts[i] = text
		}
	}

	exec.enter(core.StateExtracting)
	candidates := make(core.CandidateSet, len(core.Categories))
	for i, category := range core.Categories {
		names := p.extractor.Extract(texts[i], p.config.Limit)
		candidates[category] = names
		metrics.CandidatesExtracted.WithLabelValues(string(category)).Set(float64(len(names)))
		logger.Debug("candidates extracted", "run_id", exec.run.ID, "category", category, "count", len(names))
	}

	return candidates, nil
}
