// Package extract pulls name-like candidates out of free search text.
//
// The heuristic captures runs of Latin or Arabic letters, digits, spaces,
// hyphens and apostrophes. It is not entity recognition; its output is a list
// of unverified candidates.
package extract

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// DefaultLimit is the number of candidates kept per category.
const DefaultLimit = 3

// MinNameLength is the minimum rune count of an accepted candidate.
const MinNameLength = 3

// namePattern matches runs of Latin letters, Arabic letters (U+0621-U+064A),
// digits, spaces, hyphens and apostrophes of length three or more.
var namePattern = regexp.MustCompile(`[A-Za-z\x{0621}-\x{064A}0-9 \-']{3,}`)

// Extractor returns up to limit unique candidate names from text in
// first-occurrence order.
type Extractor interface {
	Extract(text string, limit int) []string
}

// PatternExtractor implements Extractor with a regular expression.
type PatternExtractor struct {
	pattern *regexp.Regexp
}

// NewPatternExtractor creates an extractor using the default name pattern.
func NewPatternExtractor() *PatternExtractor {
	return &PatternExtractor{pattern: namePattern}
}

// NewPatternExtractorWith creates an extractor using a custom pattern.
func NewPatternExtractorWith(pattern *regexp.Regexp) *PatternExtractor {
	return &PatternExtractor{pattern: pattern}
}

// Extract scans text left to right and returns at most limit names.
// A non-positive limit falls back to DefaultLimit. No match yields an empty,
// non-nil slice.
func (e *PatternExtractor) Extract(text string, limit int) []string {
	if limit <= 0 {
		limit = DefaultLimit
	}

	names := make([]string, 0, limit)
	if text == "" {
		return names
	}

	seen := make(map[string]bool, limit)
	for _, match := range e.pattern.FindAllString(text, -1) {
		name := strings.TrimSpace(match)
		if name == "" || utf8.RuneCountInString(name) < MinNameLength {
			continue
		}
		if seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
		if len(names) == limit {
			break
		}
	}

	return names
}

// Extract runs the default pattern extractor.
func Extract(text string, limit int) []string {
	return NewPatternExtractor().Extract(text, limit)
}
