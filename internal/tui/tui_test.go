package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trendy/internal/core"
	"trendy/internal/pipeline"
)

type fakeRunner struct {
	run *core.Run
	err error
}

func (f *fakeRunner) Run(ctx context.Context, opts pipeline.RunOptions) (*core.Run, error) {
	return f.run, f.err
}

func keyMsg(s string) tea.KeyMsg {
	if s == "enter" {
		return tea.KeyMsg{Type: tea.KeyEnter}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func doneRun() *core.Run {
	return &core.Run{
		City:  "Riyadh",
		State: core.StateDone,
		Records: []core.ReportRecord{
			{Cafe: "Grin Cafe", Restaurant: "Takya", Park: "Wadi Namar", Report: "تقرير أول."},
			{Cafe: "Brew92", Restaurant: "Lusin", Park: "Salam Park", Report: "تقرير ثان."},
		},
	}
}

func TestEnterStartsRun(t *testing.T) {
	runner := &fakeRunner{run: doneRun()}
	m := New(runner, NewStates(), pipeline.RunOptions{City: "Riyadh"}, 0)

	assert.Contains(t, m.View(), "Press enter")

	next, cmd := m.Update(keyMsg("enter"))
	require.NotNil(t, cmd)
	m = next.(Model)
	assert.True(t, m.running)
	assert.Contains(t, m.View(), "idle...")

	next, _ = m.Update(stateMsg(core.StateGenerating))
	m = next.(Model)
	assert.Contains(t, m.View(), "generating...")

	msg := m.startRun()()
	next, _ = m.Update(msg)
	m = next.(Model)
	assert.False(t, m.running)
	assert.Equal(t, core.StateDone, m.state)

	view := m.View()
	assert.Contains(t, view, "Set 1: Grin Cafe / Takya / Wadi Namar")
	assert.Contains(t, view, "تقرير أول.")
}

func TestNavigateRecords(t *testing.T) {
	m := New(&fakeRunner{}, nil, pipeline.RunOptions{}, 0)
	m.run = doneRun()

	next, _ := m.Update(keyMsg("j"))
	m = next.(Model)
	assert.Equal(t, 1, m.selectedIdx)

	next, _ = m.Update(keyMsg("j"))
	m = next.(Model)
	assert.Equal(t, 1, m.selectedIdx)
	assert.Contains(t, m.View(), "تقرير ثان.")

	next, _ = m.Update(keyMsg("k"))
	m = next.(Model)
	assert.Equal(t, 0, m.selectedIdx)
}

func TestFailedRunShowsDiagnostic(t *testing.T) {
	failed := &core.Run{
		City:  "Riyadh",
		State: core.StateFailed,
		Err:   &pipeline.RunError{Kind: pipeline.KindLLMUnavailable, Diagnostic: "OpenRouter completion failed"},
	}
	m := New(&fakeRunner{}, nil, pipeline.RunOptions{}, 0)

	next, _ := m.Update(runFinishedMsg{run: failed, err: failed.Err})
	m = next.(Model)
	view := m.View()
	assert.Contains(t, view, "LLMUnavailable")
	assert.Contains(t, view, "OpenRouter completion failed")
}

func TestQuit(t *testing.T) {
	m := New(&fakeRunner{}, nil, pipeline.RunOptions{}, 0)
	next, cmd := m.Update(keyMsg("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, "Quitting...\n", next.View())
}

func TestObserverNeverBlocks(t *testing.T) {
	states := make(States, 1)
	observe := states.Observer()
	observe("id", core.StateSearching)
	observe("id", core.StateExtracting)

	assert.Equal(t, core.StateSearching, <-states)
}
