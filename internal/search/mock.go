package search

import (
	"context"
	"sync"
)

// MockProvider implements Provider for testing and offline demos. Answers
// are keyed by the exact query string; unknown queries get the default answer.
type MockProvider struct {
	mu            sync.Mutex
	name          string
	answers       map[string]string
	defaultAnswer string
	err           error
	queries       []string
}

// NewMockProvider creates a new mock search provider with a canned answer
func NewMockProvider() *MockProvider {
	return &MockProvider{
		name:          "Mock",
		answers:       map[string]string{},
		defaultAnswer: "Overdose Coffee, Camel Step, Brew92, Lusin, Takya, Wadi Hanifa, King Abdullah Park",
	}
}

// GetName returns the name of this provider
func (m *MockProvider) GetName() string {
	return m.name
}

// Search returns the configured answer for query
func (m *MockProvider) Search(ctx context.Context, query string, config Config) (*Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.queries = append(m.queries, query)
	if err := ctx.Err(); err != nil {
		return nil, transportError(m.name, err)
	}
	if m.err != nil {
		return nil, m.err
	}

	answer, ok := m.answers[query]
	if !ok {
		answer = m.defaultAnswer
	}
	return &Response{Query: query, Answer: answer}, nil
}

// SetAnswer sets the answer returned for query
func (m *MockProvider) SetAnswer(query, answer string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.answers[query] = answer
}

// SetError makes every subsequent search fail with err
func (m *MockProvider) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// SetName allows customization of provider name for testing
func (m *MockProvider) SetName(name string) {
	m.name = name
}

// Queries returns the queries received so far
func (m *MockProvider) Queries() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.queries...)
}
