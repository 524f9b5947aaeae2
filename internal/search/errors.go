package search

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

var (
	// ErrSearchUnavailable is matched by every provider or transport failure.
	ErrSearchUnavailable = errors.New("search provider unavailable")

	// ErrMissingAPIKey is returned when a required API key is not provided
	ErrMissingAPIKey = errors.New("API key is required")

	// ErrMissingSearchID is returned when a required search ID is not provided
	ErrMissingSearchID = errors.New("search ID is required")

	// ErrUnsupportedProvider is returned when an unsupported provider type is specified
	ErrUnsupportedProvider = errors.New("unsupported search provider")
)

// maxDiagnosticBytes caps how much of an error body is kept.
const maxDiagnosticBytes = 4096

// ProviderError preserves the provider's status and diagnostic text.
// StatusCode is zero for transport failures.
type ProviderError struct {
	Provider   string
	StatusCode int
	Body       string
	Err        error
}

func (e *ProviderError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s API error: %d - %s", e.Provider, e.StatusCode, e.Body)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s request failed: %v", e.Provider, e.Err)
	}
	return fmt.Sprintf("%s request failed: %s", e.Provider, e.Body)
}

// Unwrap exposes the underlying transport or decode error.
func (e *ProviderError) Unwrap() error {
	return e.Err
}

// Is makes every ProviderError match ErrSearchUnavailable.
func (e *ProviderError) Is(target error) bool {
	return target == ErrSearchUnavailable
}

// statusError builds a ProviderError from a non-success response body.
func statusError(provider string, status int, body io.Reader) *ProviderError {
	data, _ := io.ReadAll(io.LimitReader(body, maxDiagnosticBytes))
	return &ProviderError{
		Provider:   provider,
		StatusCode: status,
		Body:       strings.TrimSpace(string(data)),
	}
}

// transportError wraps a request/decode failure.
func transportError(provider string, err error) *ProviderError {
	return &ProviderError{Provider: provider, Err: err}
}
