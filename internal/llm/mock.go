package llm

import (
	"context"
	"sync"
)

// MockCompleter returns a fixed response and records every prompt.
type MockCompleter struct {
	mu           sync.Mutex
	Response     string
	Err          error
	prompts      []string
	temperatures []float64
}

// NewMockCompleter creates a mock returning response.
func NewMockCompleter(response string) *MockCompleter {
	return &MockCompleter{Response: response}
}

// Name returns the provider name
func (m *MockCompleter) Name() string {
	return "Mock"
}

// Complete records the call and returns the configured response or error.
func (m *MockCompleter) Complete(ctx context.Context, prompt string, temperature float64) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.prompts = append(m.prompts, prompt)
	m.temperatures = append(m.temperatures, temperature)
	if err := ctx.Err(); err != nil {
		return "", &ProviderError{Provider: "Mock", Model: "mock", Err: err}
	}
	if m.Err != nil {
		return "", m.Err
	}
	return m.Response, nil
}

// Prompts returns the prompts received so far
func (m *MockCompleter) Prompts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.prompts...)
}

// Temperatures returns the temperatures received so far
func (m *MockCompleter) Temperatures() []float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]float64(nil), m.temperatures...)
}

// MockReports is a well-formed three-item response used by the mock provider.
const MockReports = `[
  {"cafe": "Overdose Coffee", "restaurant": "Takya", "park": "Wadi Hanifa", "report": "ابدأ يومك بقهوة مختصة في أوفردوز. بعدها توجه إلى تكية لتذوق الأطباق السعودية الأصيلة. واختم بنزهة هادئة في وادي حنيفة."},
  {"cafe": "Camel Step", "restaurant": "Lusin", "park": "King Abdullah Park", "report": "كامل ستيب وجهة محبي القهوة في الرياض. مطعم لوسين يقدم أشهى المأكولات الأرمنية. وحديقة الملك عبدالله مثالية للعائلات في المساء."},
  {"cafe": "Brew92", "restaurant": "Myazu", "park": "Salam Park", "report": "برو92 من أشهر المقاهي على وسائل التواصل. مطعم ميازو يقدم تجربة يابانية راقية. أما حديقة السلام فتمنحك إطلالة جميلة وهدوءًا بعد يوم طويل."}
]`
