// Package prompt builds the single-turn instruction sent to the model.
package prompt

import (
	"errors"
	"fmt"
	"strings"

	"trendy/internal/core"
)

// LanguageArabic is the only narrative language currently supported.
const LanguageArabic = "ar"

// ErrUnsupportedLanguage is returned for any language other than Arabic.
var ErrUnsupportedLanguage = errors.New("unsupported report language")

// Builder turns candidates into a prompt. Implementations are pure.
type Builder interface {
	Build(candidates core.CandidateSet, city, language string) (string, error)
	Name() string
}

// GroundedBuilder embeds search-derived candidates verbatim.
type GroundedBuilder struct{}

// Name returns "grounded".
func (GroundedBuilder) Name() string { return string(core.ModeGrounded) }

// Build lists each category's candidates comma-joined. Empty categories
// still get a line so the model sees the gap.
func (GroundedBuilder) Build(candidates core.CandidateSet, city, language string) (string, error) {
	if err := checkLanguage(language); err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, personaTemplate, city)
	b.WriteString("Your task:\n")
	b.WriteString(groundedTaskHeader)
	for _, category := range core.Categories {
		fmt.Fprintf(&b, "   - %s: %s\n", category.Label(), strings.Join(candidates[category], ", "))
	}
	b.WriteString("\n")
	b.WriteString(reportInstruction)
	b.WriteString(outputContract)

	return b.String(), nil
}

// UngroundedBuilder lets the model invent plausible trending places.
type UngroundedBuilder struct{}

// Name returns "ungrounded".
func (UngroundedBuilder) Name() string { return string(core.ModeUngrounded) }

// Build ignores candidates.
func (UngroundedBuilder) Build(_ core.CandidateSet, city, language string) (string, error) {
	if err := checkLanguage(language); err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, personaTemplate, city)
	b.WriteString("Your task:\n")
	fmt.Fprintf(&b, ungroundedTaskTemplate, city)
	b.WriteString("\n")
	b.WriteString(reportInstruction)
	b.WriteString(outputContract)

	return b.String(), nil
}

// Select returns the grounded builder when the set holds at least one name
// and the ungrounded builder otherwise.
func Select(candidates core.CandidateSet) Builder {
	if candidates.Empty() {
		return UngroundedBuilder{}
	}
	return GroundedBuilder{}
}

// Build selects a strategy for candidates and builds the prompt.
func Build(candidates core.CandidateSet, city, language string) (string, error) {
	return Select(candidates).Build(candidates, city, language)
}

func checkLanguage(language string) error {
	if language != LanguageArabic {
		return fmt.Errorf("%w: %q", ErrUnsupportedLanguage, language)
	}
	return nil
}
