package calculation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ffodds/season-projector/internal/domain"
)

func TestNewMatchupCanonicalOrder(t *testing.T) {
	assert.Equal(t, NewMatchup(3, 2, 7), NewMatchup(3, 7, 2))
	m := NewMatchup(3, 7, 2)
	assert.Equal(t, 2, m.TeamA)
	assert.Equal(t, 7, m.TeamB)
	assert.True(t, m.Involves(7))
	assert.False(t, m.Involves(5))
	assert.Equal(t, 2, m.Opponent(7))
	assert.Equal(t, 7, m.Opponent(2))
}

func TestWeekMatchups(t *testing.T) {
	sched := map[int][]int{
		1: {2, 3},
		2: {1, 0},
		3: {4, 1},
		4: {3, 4}, // week 2 scheduled against itself
	}
	l := buildLeague(domain.TiebreakTotalPointsScored, 2, 2, map[int][]int{1: {1, 2, 3, 4}}, sched)

	t.Run("each game listed once", func(t *testing.T) {
		got := WeekMatchups(l, 1)
		assert.Equal(t, []Matchup{{Week: 1, TeamA: 1, TeamB: 2}, {Week: 1, TeamA: 3, TeamB: 4}}, got)
	})

	t.Run("byes and self games skipped", func(t *testing.T) {
		got := WeekMatchups(l, 2)
		require.Len(t, got, 1)
		assert.Equal(t, Matchup{Week: 2, TeamA: 1, TeamB: 3}, got[0])
	})

	t.Run("week past the schedule", func(t *testing.T) {
		assert.Empty(t, WeekMatchups(l, 3))
	})
}

func TestResolveMatchup(t *testing.T) {
	tests := []struct {
		name         string
		a, b         float64
		wantA, wantB domain.Outcome
	}{
		{"a wins", 101.5, 99.2, domain.OutcomeWin, domain.OutcomeLoss},
		{"b wins", 88, 120.25, domain.OutcomeLoss, domain.OutcomeWin},
		{"tie", 100, 100, domain.OutcomeTie, domain.OutcomeTie},
		{"negative scores", -3, -7, domain.OutcomeWin, domain.OutcomeLoss},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, b := ResolveMatchup(tt.a, tt.b)
			assert.Equal(t, tt.wantA, a.Outcome())
			assert.Equal(t, tt.wantB, b.Outcome())
			assert.Equal(t, 1, a.Win+a.Tie+a.Loss)
			assert.Equal(t, 1, b.Win+b.Tie+b.Loss)
			assert.Equal(t, a.Win, b.Loss)
			assert.Equal(t, a.Tie, b.Tie)
			assert.Equal(t, tt.a, a.Score)
			assert.Equal(t, tt.b, b.Score)
		})
	}
}
