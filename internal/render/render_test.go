package render

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trendy/internal/core"
	"trendy/internal/parser"
	"trendy/internal/pipeline"
)

func successfulRun() *core.Run {
	return &core.Run{
		ID:    "run-1",
		City:  "Riyadh",
		Mode:  core.ModeGrounded,
		State: core.StateDone,
		Candidates: core.CandidateSet{
			core.CategoryCafe:       {"Grin Cafe", "Brew92"},
			core.CategoryRestaurant: {},
			core.CategoryPark:       {"Wadi Namar"},
		},
		Prompt: "PROMPT TEXT",
		Records: []core.ReportRecord{
			{Cafe: "Grin Cafe", Restaurant: "Takya", Park: "Wadi Namar", Report: "تقرير قصير."},
			{Cafe: "Brew92", Restaurant: "Lusin", Park: "Salam Park", Report: "تقرير آخر."},
		},
	}
}

func failedRun() *core.Run {
	return &core.Run{
		ID:          "run-2",
		City:        "Riyadh",
		Mode:        core.ModeGrounded,
		State:       core.StateFailed,
		RawResponse: "[{malformed",
		Err: &pipeline.RunError{
			Kind:        pipeline.KindMalformedJSON,
			Diagnostic:  "malformed JSON in response: unexpected end of JSON input",
			RawResponse: "[{malformed",
			Err:         parser.ErrMalformedJSON,
		},
	}
}

func TestMarkdownSuccess(t *testing.T) {
	out := Markdown(successfulRun(), Options{ShowCandidates: true})

	assert.Contains(t, out, "# Trending places in Riyadh")
	assert.Contains(t, out, "## Set 1")
	assert.Contains(t, out, "## Set 2")
	assert.Contains(t, out, "- **Cafe:** Grin Cafe")
	assert.Contains(t, out, "- **Park:** Salam Park")
	assert.Contains(t, out, "تقرير آخر.")
	assert.Contains(t, out, "- **Top Cafes:** Grin Cafe, Brew92")
	assert.Contains(t, out, "- **Top Restaurants:** (none found)")
	assert.NotContains(t, out, "PROMPT TEXT")
}

func TestMarkdownShowPrompt(t *testing.T) {
	out := Markdown(successfulRun(), Options{ShowPrompt: true})
	assert.Contains(t, out, "## Prompt")
	assert.Contains(t, out, "PROMPT TEXT")
	assert.NotContains(t, out, "Top Cafes")
}

func TestMarkdownFailureShowsRawOutput(t *testing.T) {
	out := Markdown(failedRun(), Options{})

	assert.Contains(t, out, "## Failed: MalformedJson")
	assert.Contains(t, out, "unexpected end of JSON input")
	assert.Contains(t, out, "### Raw model output")
	assert.Contains(t, out, "[{malformed")
	assert.NotContains(t, out, "## Set")
}

func TestMarkdownPlainError(t *testing.T) {
	run := &core.Run{City: "Riyadh", State: core.StateFailed, Err: errors.New("boom")}
	out := Markdown(run, Options{})
	assert.Contains(t, out, "## Failed: Error")
	assert.Contains(t, out, "boom")
}

func TestTerminal(t *testing.T) {
	out := Terminal(successfulRun(), Options{ShowCandidates: true, ShowPrompt: true})
	assert.Contains(t, out, "Set 1")
	assert.Contains(t, out, "Grin Cafe")
	assert.Contains(t, out, "Top Parks:")
	assert.Contains(t, out, "PROMPT TEXT")

	out = Terminal(failedRun(), Options{})
	assert.Contains(t, out, "Failed: MalformedJson")
	assert.Contains(t, out, "[{malformed")
}

func TestEmptyRecords(t *testing.T) {
	run := &core.Run{City: "Riyadh", State: core.StateDone}
	assert.Contains(t, Markdown(run, Options{}), "empty list")
	assert.Contains(t, Terminal(run, Options{}), "empty list")
}

func TestWriteToFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")

	path, err := WriteToFile("# hello", dir, "report.md")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "report.md"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "# hello", string(data))
}
