package parser

import (
	"errors"
	"fmt"
)

var (
	// ErrNoJSONFound means the text contains no '['.
	ErrNoJSONFound = errors.New("no JSON array found in response")

	// ErrMalformedJSON means the bracketed region is not valid JSON.
	ErrMalformedJSON = errors.New("malformed JSON in response")

	// ErrSchemaViolation means an element lacks one of the required keys.
	ErrSchemaViolation = errors.New("response does not match the report schema")
)

// ParseError reports a parse failure together with the raw model output so
// the caller can show it for diagnosis.
type ParseError struct {
	Kind     error  // One of the sentinel errors above
	Raw      string // Full unparsed response
	Fragment string // Bracketed region that was decoded, if any
	Err      error  // Underlying decoder or validator error
}

func (e *ParseError) Error() string {
	if e.Err == nil {
		return e.Kind.Error()
	}
	return fmt.Sprintf("%v: %v", e.Kind, e.Err)
}

// Unwrap returns both the kind and the underlying cause.
func (e *ParseError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}
