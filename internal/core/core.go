package core

import (
	"fmt"
	"strings"
	"time"
)

// Category is one of the place kinds a report combines.
type Category string

const (
	CategoryCafe       Category = "cafe"
	CategoryRestaurant Category = "restaurant"
	CategoryPark       Category = "park"
)

// Categories lists every category in the order the orchestrator searches them.
var Categories = []Category{CategoryCafe, CategoryRestaurant, CategoryPark}

// ParseCategory converts a string into a Category.
func ParseCategory(s string) (Category, error) {
	switch c := Category(strings.ToLower(strings.TrimSpace(s))); c {
	case CategoryCafe, CategoryRestaurant, CategoryPark:
		return c, nil
	default:
		return "", fmt.Errorf("unknown category %q", s)
	}
}

// Plural returns the plural word used in search queries and prompt lines.
func (c Category) Plural() string {
	switch c {
	case CategoryCafe:
		return "cafes"
	case CategoryRestaurant:
		return "restaurants"
	case CategoryPark:
		return "parks"
	default:
		return string(c) + "s"
	}
}

// Label returns the capitalised plural used for display ("Cafes").
func (c Category) Label() string {
	p := c.Plural()
	if p == "" {
		return p
	}
	return strings.ToUpper(p[:1]) + p[1:]
}

// CandidateSet maps each category to its extracted candidate names.
// A nil or empty set selects ungrounded prompting.
type CandidateSet map[Category][]string

// Total returns the number of names across all categories.
func (cs CandidateSet) Total() int {
	n := 0
	for _, names := range cs {
		n += len(names)
	}
	return n
}

// Empty reports whether the set holds no names at all.
func (cs CandidateSet) Empty() bool {
	return cs.Total() == 0
}

// ReportRecord is one café/restaurant/park combination with its Arabic narrative.
type ReportRecord struct {
	Cafe       string `json:"cafe"`       // Chosen café
	Restaurant string `json:"restaurant"` // Chosen restaurant
	Park       string `json:"park"`       // Chosen park
	Report     string `json:"report"`     // Short narrative in Arabic
}

// Mode selects how the prompt is built.
type Mode string

const (
	ModeGrounded   Mode = "grounded"   // Search first, embed candidates in the prompt
	ModeUngrounded Mode = "ungrounded" // Let the model pick places itself
)

// ParseMode converts a string into a Mode.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModeGrounded, ModeUngrounded:
		return m, nil
	case "":
		return ModeGrounded, nil
	default:
		return "", fmt.Errorf("unknown mode %q (supported: grounded, ungrounded)", s)
	}
}

// RunState is a state of the orchestration state machine.
type RunState string

const (
	StateIdle       RunState = "idle"
	StateSearching  RunState = "searching"
	StateExtracting RunState = "extracting"
	StatePrompting  RunState = "prompting"
	StateGenerating RunState = "generating"
	StateParsing    RunState = "parsing"
	StateDone       RunState = "done"
	StateFailed     RunState = "failed"
)

// Terminal reports whether the state ends a run.
func (s RunState) Terminal() bool {
	return s == StateDone || s == StateFailed
}

// Run holds everything one orchestration run produced. It is owned by the
// caller once returned and never shared between runs.
type Run struct {
	ID          string         `json:"id"`                     // Unique run identifier
	City        string         `json:"city"`                   // Target city
	Mode        Mode           `json:"mode"`                   // Grounded or ungrounded
	State       RunState       `json:"state"`                  // Current (final once returned) state
	Visited     []RunState     `json:"visited"`                // States in the order they were entered
	Candidates  CandidateSet   `json:"candidates,omitempty"`   // Extracted names, grounded mode only
	Prompt      string         `json:"prompt,omitempty"`       // Prompt sent to the model
	RawResponse string         `json:"raw_response,omitempty"` // Unparsed model output
	Records     []ReportRecord `json:"records,omitempty"`      // Parsed reports on success
	Err         error          `json:"-"`                      // Failure, nil on success
	StartedAt   time.Time      `json:"started_at"`
	FinishedAt  time.Time      `json:"finished_at"`
}

// Transition moves the run into state s and records it.
func (r *Run) Transition(s RunState) {
	r.State = s
	r.Visited = append(r.Visited, s)
}

// Duration returns how long the run took; zero until it finishes.
func (r *Run) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

// Succeeded reports whether the run reached StateDone.
func (r *Run) Succeeded() bool {
	return r.State == StateDone && r.Err == nil
}
