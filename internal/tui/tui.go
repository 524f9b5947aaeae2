// Package tui is an interactive front end: press enter to generate a set of
// reports, browse them, press enter again to regenerate.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"trendy/internal/core"
	"trendy/internal/pipeline"
	"trendy/internal/render"
)

// Runner executes one run. *pipeline.Pipeline satisfies it.
type Runner interface {
	Run(ctx context.Context, opts pipeline.RunOptions) (*core.Run, error)
}

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// stateMsg carries a pipeline state transition into the update loop.
type stateMsg core.RunState

// runFinishedMsg carries the result of a run.
type runFinishedMsg struct {
	run *core.Run
	err error
}

type tickMsg time.Time

// States forwards pipeline transitions to the TUI. Pass Observer() to the
// pipeline builder and the same States to New.
type States chan core.RunState

// NewStates creates a buffered transition channel.
func NewStates() States {
	return make(States, 16)
}

// Observer returns a pipeline.Observer that never blocks the run.
func (s States) Observer() pipeline.Observer {
	return func(_ string, state core.RunState) {
		select {
		case s <- state:
		default:
		}
	}
}

// Model represents the state of the TUI application.
type Model struct {
	runner  Runner
	states  States
	opts    pipeline.RunOptions
	timeout time.Duration

	running     bool
	state       core.RunState
	frame       int
	run         *core.Run
	selectedIdx int
	width       int
	height      int
	quitting    bool
}

// New returns the initial model. timeout bounds each run; zero means none.
func New(runner Runner, states States, opts pipeline.RunOptions, timeout time.Duration) Model {
	return Model{
		runner:  runner,
		states:  states,
		opts:    opts,
		timeout: timeout,
		state:   core.StateIdle,
	}
}

// Init waits for the first key press.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model accordingly.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.quitting = true
			return m, tea.Quit
		case "enter", "r":
			if m.running {
				return m, nil
			}
			m.running = true
			m.state = core.StateIdle
			m.run = nil
			m.selectedIdx = 0
			return m, tea.Batch(m.startRun(), m.waitForState(), tick())
		case "up", "k":
			if m.selectedIdx > 0 {
				m.selectedIdx--
			}
		case "down", "j":
			if m.run != nil && m.selectedIdx < len(m.run.Records)-1 {
				m.selectedIdx++
			}
		}

	case stateMsg:
		if msg != "" {
			m.state = core.RunState(msg)
		}
		if m.running {
			return m, m.waitForState()
		}

	case tickMsg:
		if m.running {
			m.frame = (m.frame + 1) % len(spinnerFrames)
			return m, tick()
		}

	case runFinishedMsg:
		m.running = false
		m.run = msg.run
		if msg.run != nil {
			m.state = msg.run.State
		} else if errors.Is(msg.err, pipeline.ErrRunInProgress) {
			m.state = core.StateIdle
		}
	}

	return m, nil
}

func (m Model) startRun() tea.Cmd {
	runner, opts, timeout := m.runner, m.opts, m.timeout
	return func() tea.Msg {
		ctx := context.Background()
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
		run, err := runner.Run(ctx, opts)
		return runFinishedMsg{run: run, err: err}
	}
}

func (m Model) waitForState() tea.Cmd {
	if m.states == nil {
		return nil
	}
	states := m.states
	return func() tea.Msg {
		select {
		case s := <-states:
			return stateMsg(s)
		case <-time.After(500 * time.Millisecond):
			return stateMsg("")
		}
	}
}

func tick() tea.Cmd {
	return tea.Tick(120*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

var (
	docStyle    = lipgloss.NewStyle().Margin(1, 2)
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	cursorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	paneStyle   = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), true).Padding(0, 1)
)

// View renders the TUI.
func (m Model) View() string {
	if m.quitting {
		return "Quitting...\n"
	}

	var b strings.Builder
	city := m.opts.City
	if m.run != nil {
		city = m.run.City
	}
	title := "Trending places"
	if city != "" {
		title += " in " + city
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n\n")

	switch {
	case m.running:
		label := string(m.state)
		if label == "" {
			label = string(core.StateIdle)
		}
		fmt.Fprintf(&b, "%s %s...\n", spinnerFrames[m.frame], label)
	case m.run == nil:
		b.WriteString("Press enter to generate reports.\n")
	case m.run.Err != nil:
		b.WriteString(render.Terminal(m.run, render.Options{}))
	default:
		b.WriteString(m.recordsView())
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("[enter] Generate | [↑/k] Up | [↓/j] Down | [q] Quit"))

	return docStyle.Render(b.String())
}

func (m Model) recordsView() string {
	if len(m.run.Records) == 0 {
		return "The model returned an empty list.\n"
	}

	var list strings.Builder
	for i, rec := range m.run.Records {
		cursor := " "
		line := fmt.Sprintf("Set %d: %s / %s / %s", i+1, rec.Cafe, rec.Restaurant, rec.Park)
		if i == m.selectedIdx {
			cursor = ">"
			line = cursorStyle.Render(line)
		}
		fmt.Fprintf(&list, "%s %s\n", cursor, line)
	}

	rec := m.run.Records[m.selectedIdx]
	detail := fmt.Sprintf("Cafe: %s\nRestaurant: %s\nPark: %s\n\n%s", rec.Cafe, rec.Restaurant, rec.Park, rec.Report)

	pane := paneStyle
	if m.width > 10 {
		pane = pane.Width(m.width - 10)
	}
	return list.String() + "\n" + pane.Render(detail) + "\n"
}

// Start initializes and runs the Bubble Tea program until the user quits.
func Start(m Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}
	return nil
}
