package pipeline

import (
	"errors"
	"fmt"

	"trendy/internal/parser"
)

// ErrRunInProgress is returned when a run is triggered while another one is
// still executing on the same Pipeline.
var ErrRunInProgress = errors.New("a run is already in progress")

// ErrorKind classifies why a run failed.
type ErrorKind string

const (
	KindSearchUnavailable ErrorKind = "SearchUnavailable"
	KindLLMUnavailable    ErrorKind = "LLMUnavailable"
	KindNoJSONFound       ErrorKind = "NoJsonFound"
	KindMalformedJSON     ErrorKind = "MalformedJson"
	KindSchemaViolation   ErrorKind = "SchemaViolation"
	KindPromptFailed      ErrorKind = "PromptFailed"
)

// RunError is the typed failure handed to the presentation layer.
type RunError struct {
	Kind        ErrorKind
	Diagnostic  string // Human-readable cause, including provider status text
	RawResponse string // Unparsed model output for parse failures
	Err         error
}

func (e *RunError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Diagnostic)
}

// Unwrap returns the underlying error so errors.Is reaches sentinels.
func (e *RunError) Unwrap() error {
	return e.Err
}

func newRunError(kind ErrorKind, err error) *RunError {
	return &RunError{Kind: kind, Diagnostic: err.Error(), Err: err}
}

// parseKind maps a parser error onto its run error kind.
func parseKind(err error) ErrorKind {
	switch {
	case errors.Is(err, parser.ErrNoJSONFound):
		return KindNoJSONFound
	case errors.Is(err, parser.ErrSchemaViolation):
		return KindSchemaViolation
	default:
		return KindMalformedJSON
	}
}
