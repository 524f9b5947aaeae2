// Package render formats a finished run for the terminal or as Markdown.
package render

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"trendy/internal/core"
	"trendy/internal/pipeline"
)

// Options controls which optional sections are rendered
type Options struct {
	ShowCandidates bool // Top names per category (grounded runs)
	ShowPrompt     bool // Prompt sent to the model
}

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	labelStyle   = lipgloss.NewStyle().Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	recordStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	rawTextStyle = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("241")).Padding(0, 1)
)

// Terminal renders run with lipgloss styling.
func Terminal(run *core.Run, opts Options) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("Trending places in %s", run.City)))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(fmt.Sprintf("run %s · %s · %s", run.ID, run.Mode, run.State)))
	b.WriteString("\n\n")

	if opts.ShowCandidates && !run.Candidates.Empty() {
		for _, category := range core.Categories {
			fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("Top "+category.Label()+":"), candidateList(run.Candidates[category]))
		}
		b.WriteString("\n")
	}

	if opts.ShowPrompt && run.Prompt != "" {
		b.WriteString(headerStyle.Render("Prompt"))
		b.WriteString("\n")
		b.WriteString(rawTextStyle.Render(run.Prompt))
		b.WriteString("\n\n")
	}

	if run.Err != nil {
		b.WriteString(terminalFailure(run))
		return b.String()
	}

	if len(run.Records) == 0 {
		b.WriteString(mutedStyle.Render("The model returned an empty list."))
		b.WriteString("\n")
		return b.String()
	}

	for i, rec := range run.Records {
		var body strings.Builder
		body.WriteString(headerStyle.Render(fmt.Sprintf("Set %d", i+1)))
		body.WriteString("\n")
		fmt.Fprintf(&body, "%s %s\n", labelStyle.Render("Cafe:"), rec.Cafe)
		fmt.Fprintf(&body, "%s %s\n", labelStyle.Render("Restaurant:"), rec.Restaurant)
		fmt.Fprintf(&body, "%s %s\n", labelStyle.Render("Park:"), rec.Park)
		fmt.Fprintf(&body, "%s %s", labelStyle.Render("Report:"), rec.Report)
		b.WriteString(recordStyle.Render(body.String()))
		b.WriteString("\n")
	}

	return b.String()
}

func terminalFailure(run *core.Run) string {
	var b strings.Builder
	kind, diagnostic, raw := failureParts(run.Err)

	b.WriteString(errorStyle.Render("Failed: " + kind))
	b.WriteString("\n")
	b.WriteString(diagnostic)
	b.WriteString("\n")
	if raw != "" {
		b.WriteString("\n")
		b.WriteString(headerStyle.Render("Raw model output"))
		b.WriteString("\n")
		b.WriteString(rawTextStyle.Render(raw))
		b.WriteString("\n")
	}
	return b.String()
}

// Markdown renders run as a Markdown document.
func Markdown(run *core.Run, opts Options) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Trending places in %s\n\n", run.City)
	fmt.Fprintf(&b, "*Run `%s` (%s)*\n\n", run.ID, run.Mode)

	if opts.ShowCandidates && !run.Candidates.Empty() {
		b.WriteString("## Candidates\n\n")
		for _, category := range core.Categories {
			fmt.Fprintf(&b, "- **Top %s:** %s\n", category.Label(), candidateList(run.Candidates[category]))
		}
		b.WriteString("\n")
	}

	if opts.ShowPrompt && run.Prompt != "" {
		b.WriteString("## Prompt\n\n```text\n")
		b.WriteString(run.Prompt)
		b.WriteString("\n```\n\n")
	}

	if run.Err != nil {
		kind, diagnostic, raw := failureParts(run.Err)
		fmt.Fprintf(&b, "## Failed: %s\n\n%s\n\n", kind, diagnostic)
		if raw != "" {
			b.WriteString("### Raw model output\n\n```text\n")
			b.WriteString(raw)
			b.WriteString("\n```\n")
		}
		return b.String()
	}

	if len(run.Records) == 0 {
		b.WriteString("The model returned an empty list.\n")
		return b.String()
	}

	for i, rec := range run.Records {
		fmt.Fprintf(&b, "## Set %d\n\n", i+1)
		fmt.Fprintf(&b, "- **Cafe:** %s\n", rec.Cafe)
		fmt.Fprintf(&b, "- **Restaurant:** %s\n", rec.Restaurant)
		fmt.Fprintf(&b, "- **Park:** %s\n\n", rec.Park)
		fmt.Fprintf(&b, "%s\n\n", rec.Report)
		b.WriteString("---\n\n")
	}

	return b.String()
}

// failureParts returns the kind, diagnostic and raw model text of err.
func failureParts(err error) (kind, diagnostic, raw string) {
	var runErr *pipeline.RunError
	if errors.As(err, &runErr) {
		return string(runErr.Kind), runErr.Diagnostic, runErr.RawResponse
	}
	return "Error", err.Error(), ""
}

func candidateList(names []string) string {
	if len(names) == 0 {
		return "(none found)"
	}
	return strings.Join(names, ", ")
}

// WriteToFile writes content to outputDir/filename, creating the directory
// if needed, and returns the written path.
func WriteToFile(content, outputDir, filename string) (string, error) {
	if outputDir == "" {
		outputDir = "reports"
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory %s: %w", outputDir, err)
	}

	filePath := filepath.Join(outputDir, filename)
	if err := os.WriteFile(filePath, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("failed to write report file %s: %w", filePath, err)
	}

	return filePath, nil
}
