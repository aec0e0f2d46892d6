package domain

import "sort"

// Outcome is the result of one week for one team.
type Outcome string

const (
	OutcomeWin          Outcome = "W"
	OutcomeLoss         Outcome = "L"
	OutcomeTie          Outcome = "T"
	OutcomeUndetermined Outcome = "U"
)

// Determined reports whether the outcome is a final result.
func (o Outcome) Determined() bool {
	return o == OutcomeWin || o == OutcomeLoss || o == OutcomeTie
}

// TiebreakPolicy is the league-configured order of standings tiebreakers.
type TiebreakPolicy string

const (
	TiebreakTotalPointsScored TiebreakPolicy = "TOTAL_POINTS_SCORED"
	TiebreakHeadToHead        TiebreakPolicy = "H2H_RECORD"
	TiebreakIntraDivision     TiebreakPolicy = "INTRA_DIVISION_RECORD"
)

// Valid reports whether the policy is one of the supported values.
func (p TiebreakPolicy) Valid() bool {
	switch p {
	case TiebreakTotalPointsScored, TiebreakHeadToHead, TiebreakIntraDivision:
		return true
	}
	return false
}

// Team holds one franchise's season to date. Weekly slices are indexed by
// week-1; a missing entry means the week has not been played.
type Team struct {
	ID         int    `yaml:"id" json:"id"`
	DivisionID int    `yaml:"division_id" json:"division_id"`
	Name       string `yaml:"name" json:"name"`
	Owner      string `yaml:"owner" json:"owner"`

	Scores   []float64 `yaml:"scores" json:"scores"`
	Outcomes []Outcome `yaml:"outcomes" json:"outcomes"`
	Schedule []int     `yaml:"schedule" json:"schedule"` // opponent id per week, 0 = bye

	Wins          int     `yaml:"wins" json:"wins"`
	Losses        int     `yaml:"losses" json:"losses"`
	Ties          int     `yaml:"ties" json:"ties"`
	PointsFor     float64 `yaml:"points_for" json:"points_for"`
	PointsAgainst float64 `yaml:"points_against" json:"points_against"`
}

// Opponent returns the team's opponent for the week. A bye, a week past the
// schedule or a team scheduled against itself returns false.
func (t *Team) Opponent(week int) (int, bool) {
	if week < 1 || week > len(t.Schedule) {
		return 0, false
	}
	opp := t.Schedule[week-1]
	if opp == 0 || opp == t.ID {
		return 0, false
	}
	return opp, true
}

// Score returns the recorded score for the week, or 0 if none.
func (t *Team) Score(week int) float64 {
	if week < 1 || week > len(t.Scores) {
		return 0
	}
	return t.Scores[week-1]
}

// Outcome returns the recorded outcome for the week, or OutcomeUndetermined.
func (t *Team) Outcome(week int) Outcome {
	if week < 1 || week > len(t.Outcomes) {
		return OutcomeUndetermined
	}
	return t.Outcomes[week-1]
}

// PlayedScores returns the non-zero scores of weeks before beforeWeek, in week
// order. A scheduled game without a final outcome is still in progress and is
// left out.
func (t *Team) PlayedScores(beforeWeek int) []float64 {
	scores := make([]float64, 0, len(t.Scores))
	for week := 1; week < beforeWeek && week <= len(t.Scores); week++ {
		if _, scheduled := t.Opponent(week); scheduled && !t.Outcome(week).Determined() {
			continue
		}
		if s := t.Scores[week-1]; s != 0 {
			scores = append(scores, s)
		}
	}
	return scores
}

// League is the read-only snapshot the projection engine works from.
type League struct {
	Name               string         `yaml:"name" json:"name"`
	Teams              []Team         `yaml:"teams" json:"teams"`
	Divisions          map[int][]int  `yaml:"divisions" json:"divisions"`
	PlayoffTeamCount   int            `yaml:"playoff_team_count" json:"playoff_team_count"`
	RegularSeasonWeeks int            `yaml:"regular_season_weeks" json:"regular_season_weeks"`
	TiebreakPolicy     TiebreakPolicy `yaml:"tiebreak_policy" json:"tiebreak_policy"`
	CurrentWeek        int            `yaml:"current_week" json:"current_week"`
}

// Team looks a team up by id.
func (l *League) Team(id int) (*Team, bool) {
	for i := range l.Teams {
		if l.Teams[i].ID == id {
			return &l.Teams[i], true
		}
	}
	return nil, false
}

// TeamIDs returns every team id in ascending order.
func (l *League) TeamIDs() []int {
	ids := make([]int, 0, len(l.Teams))
	for _, t := range l.Teams {
		ids = append(ids, t.ID)
	}
	sort.Ints(ids)
	return ids
}

// DivisionIDs returns the division ids in ascending order.
func (l *League) DivisionIDs() []int {
	ids := make([]int, 0, len(l.Divisions))
	for id := range l.Divisions {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// FirstUndeterminedWeek returns the earliest regular-season week in which
// some scheduled game has no final outcome. A finished season returns
// RegularSeasonWeeks+1.
func (l *League) FirstUndeterminedWeek() int {
	for week := 1; week <= l.RegularSeasonWeeks; week++ {
		for i := range l.Teams {
			t := &l.Teams[i]
			if _, ok := t.Opponent(week); !ok {
				continue
			}
			if !t.Outcome(week).Determined() {
				return week
			}
		}
	}
	return l.RegularSeasonWeeks + 1
}

// PinResult selects which side of a pinned matchup wins.
type PinResult int

const (
	PinUnresolved PinResult = iota
	PinSideAWins
	PinSideBWins
)

// PinnedOutcome fixes the result of one matchup ahead of simulation.
type PinnedOutcome struct {
	TeamA  int       `yaml:"team_a" json:"team_a"`
	TeamB  int       `yaml:"team_b" json:"team_b"`
	Result PinResult `yaml:"result" json:"result"`
}

// Winner returns the winning team id, or false when unresolved.
func (p PinnedOutcome) Winner() (int, bool) {
	switch p.Result {
	case PinSideAWins:
		return p.TeamA, true
	case PinSideBWins:
		return p.TeamB, true
	}
	return 0, false
}

// WhatIf is a set of pinned outcomes for one week. A zero Week means the
// first simulated week.
type WhatIf struct {
	Week     int             `yaml:"week" json:"week"`
	Outcomes []PinnedOutcome `yaml:"outcomes" json:"outcomes"`
}
