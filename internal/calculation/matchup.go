package calculation

import (
	"sort"

	"github.com/ffodds/season-projector/internal/domain"
)

// Matchup is one game in one week. TeamA is always the lower team id; the
// ordering only deduplicates the two schedule entries of the same game.
type Matchup struct {
	Week  int `json:"week"`
	TeamA int `json:"team_a"`
	TeamB int `json:"team_b"`
}

// NewMatchup returns the canonical matchup for two teams.
func NewMatchup(week, x, y int) Matchup {
	if y < x {
		x, y = y, x
	}
	return Matchup{Week: week, TeamA: x, TeamB: y}
}

// Involves reports whether the team plays in this matchup.
func (m Matchup) Involves(teamID int) bool {
	return m.TeamA == teamID || m.TeamB == teamID
}

// Opponent returns the other side of the matchup.
func (m Matchup) Opponent(teamID int) int {
	if m.TeamA == teamID {
		return m.TeamB
	}
	return m.TeamA
}

// WeekMatchups lists the distinct games of a week ordered by TeamA. Byes
// and self-scheduled weeks are skipped.
func WeekMatchups(league *domain.League, week int) []Matchup {
	seen := make(map[Matchup]bool)
	var out []Matchup
	for i := range league.Teams {
		team := &league.Teams[i]
		opp, ok := team.Opponent(week)
		if !ok {
			continue
		}
		if _, exists := league.Team(opp); !exists {
			continue
		}
		m := NewMatchup(week, team.ID, opp)
		if seen[m] {
			continue
		}
		seen[m] = true
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TeamA != out[j].TeamA {
			return out[i].TeamA < out[j].TeamA
		}
		return out[i].TeamB < out[j].TeamB
	})
	return out
}

// SideResult is one side of a resolved matchup. Exactly one of Win, Tie and
// Loss is 1.
type SideResult struct {
	Win   int
	Tie   int
	Loss  int
	Score float64
}

// Outcome converts the flags back to a weekly outcome.
func (r SideResult) Outcome() domain.Outcome {
	switch {
	case r.Win == 1:
		return domain.OutcomeWin
	case r.Loss == 1:
		return domain.OutcomeLoss
	case r.Tie == 1:
		return domain.OutcomeTie
	}
	return domain.OutcomeUndetermined
}

// ResolveMatchup turns two sampled scores into a consistent result pair.
func ResolveMatchup(scoreA, scoreB float64) (SideResult, SideResult) {
	switch {
	case scoreA > scoreB:
		return SideResult{Win: 1, Score: scoreA}, SideResult{Loss: 1, Score: scoreB}
	case scoreB > scoreA:
		return SideResult{Loss: 1, Score: scoreA}, SideResult{Win: 1, Score: scoreB}
	default:
		return SideResult{Tie: 1, Score: scoreA}, SideResult{Tie: 1, Score: scoreB}
	}
}

// recordedResult returns the final result already on file for a scheduled
// matchup. The opponent's side mirrors team A's outcome; its score comes
// from its own record.
func recordedResult(league *domain.League, m Matchup) (SideResult, SideResult, bool) {
	teamA, okA := league.Team(m.TeamA)
	teamB, okB := league.Team(m.TeamB)
	if !okA || !okB {
		return SideResult{}, SideResult{}, false
	}
	a := SideResult{Score: teamA.Score(m.Week)}
	switch teamA.Outcome(m.Week) {
	case domain.OutcomeWin:
		a.Win = 1
	case domain.OutcomeLoss:
		a.Loss = 1
	case domain.OutcomeTie:
		a.Tie = 1
	default:
		return SideResult{}, SideResult{}, false
	}
	b := SideResult{Win: a.Loss, Tie: a.Tie, Loss: a.Win, Score: teamB.Score(m.Week)}
	return a, b, true
}
