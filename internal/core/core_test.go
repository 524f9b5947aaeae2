package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCategory(t *testing.T) {
	tests := []struct {
		in      string
		want    Category
		wantErr bool
	}{
		{"cafe", CategoryCafe, false},
		{" Restaurant ", CategoryRestaurant, false},
		{"PARK", CategoryPark, false},
		{"museum", "", true},
	}

	for _, tt := range tests {
		got, err := ParseCategory(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}
}

func TestCategoryPluralAndLabel(t *testing.T) {
	assert.Equal(t, "cafes", CategoryCafe.Plural())
	assert.Equal(t, "restaurants", CategoryRestaurant.Plural())
	assert.Equal(t, "parks", CategoryPark.Plural())
	assert.Equal(t, "Cafes", CategoryCafe.Label())
}

func TestCandidateSetEmpty(t *testing.T) {
	var nilSet CandidateSet
	assert.True(t, nilSet.Empty())

	cs := CandidateSet{CategoryCafe: nil, CategoryPark: {}}
	assert.True(t, cs.Empty())

	cs[CategoryRestaurant] = []string{"Blu Pizzeria"}
	assert.False(t, cs.Empty())
	assert.Equal(t, 1, cs.Total())
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("")
	require.NoError(t, err)
	assert.Equal(t, ModeGrounded, m)

	m, err = ParseMode("Ungrounded")
	require.NoError(t, err)
	assert.Equal(t, ModeUngrounded, m)

	_, err = ParseMode("offline")
	assert.Error(t, err)
}

func TestRunTransitions(t *testing.T) {
	r := &Run{StartedAt: time.Now()}
	r.Transition(StateIdle)
	r.Transition(StateSearching)
	r.Transition(StateFailed)

	assert.Equal(t, StateFailed, r.State)
	assert.Equal(t, []RunState{StateIdle, StateSearching, StateFailed}, r.Visited)
	assert.True(t, r.State.Terminal())
	assert.False(t, r.Succeeded())
	assert.Zero(t, r.Duration())

	r.FinishedAt = r.StartedAt.Add(2 * time.Second)
	assert.Equal(t, 2*time.Second, r.Duration())
}
