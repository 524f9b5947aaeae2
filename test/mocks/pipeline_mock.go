package mocks

import (
	"context"
	"sync"

	"trendy/internal/core"
)

// MockSearcher provides a mock implementation of the category search adapter
type MockSearcher struct {
	SearchCategoryFunc func(ctx context.Context, category core.Category, city string) (string, error)

	mu    sync.Mutex
	calls []core.Category
}

func (m *MockSearcher) SearchCategory(ctx context.Context, category core.Category, city string) (string, error) {
	m.mu.Lock()
	m.calls = append(m.calls, category)
	m.mu.Unlock()

	if m.SearchCategoryFunc != nil {
		return m.SearchCategoryFunc(ctx, category, city)
	}
	return "Mock Place One, Mock Place Two, Mock Place Three", nil
}

// Calls returns the categories searched so far
func (m *MockSearcher) Calls() []core.Category {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]core.Category(nil), m.calls...)
}

// MockPromptBuilder provides a mock implementation of prompt.Builder
type MockPromptBuilder struct {
	BuildFunc func(candidates core.CandidateSet, city, language string) (string, error)
	NameValue string

	mu    sync.Mutex
	calls int
}

func (m *MockPromptBuilder) Build(candidates core.CandidateSet, city, language string) (string, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()

	if m.BuildFunc != nil {
		return m.BuildFunc(candidates, city, language)
	}
	return "mock prompt for " + city, nil
}

func (m *MockPromptBuilder) Name() string {
	if m.NameValue != "" {
		return m.NameValue
	}
	return "mock"
}

// Calls returns how many prompts were built
func (m *MockPromptBuilder) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// MockCompleter provides a mock implementation of the LLM adapter
type MockCompleter struct {
	CompleteFunc func(ctx context.Context, prompt string, temperature float64) (string, error)

	mu      sync.Mutex
	prompts []string
}

func (m *MockCompleter) Complete(ctx context.Context, prompt string, temperature float64) (string, error) {
	m.mu.Lock()
	m.prompts = append(m.prompts, prompt)
	m.mu.Unlock()

	if m.CompleteFunc != nil {
		return m.CompleteFunc(ctx, prompt, temperature)
	}
	return `[{"cafe":"Mock Cafe","restaurant":"Mock Restaurant","park":"Mock Park","report":"تقرير تجريبي."}]`, nil
}

func (m *MockCompleter) Name() string {
	return "MockCompleter"
}

// Prompts returns the prompts received so far
func (m *MockCompleter) Prompts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.prompts...)
}

// MockParser provides a mock implementation of the response parser
type MockParser struct {
	ParseFunc func(raw string) ([]core.ReportRecord, error)
}

func (m *MockParser) Parse(raw string) ([]core.ReportRecord, error) {
	if m.ParseFunc != nil {
		return m.ParseFunc(raw)
	}
	return []core.ReportRecord{{Cafe: "Mock Cafe", Restaurant: "Mock Restaurant", Park: "Mock Park", Report: raw}}, nil
}
