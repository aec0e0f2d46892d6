package domain

import "github.com/shopspring/decimal"

// StandingRow is one line of an ordered standings table.
type StandingRow struct {
	Rank           int     `json:"rank"`
	TeamID         int     `json:"team_id"`
	Name           string  `json:"name"`
	Owner          string  `json:"owner"`
	DivisionID     int     `json:"division_id"`
	Wins           int     `json:"wins"`
	Ties           int     `json:"ties"`
	Losses         int     `json:"losses"`
	WinPct         float64 `json:"win_pct"`
	PointsFor      float64 `json:"points_for"`
	PointsAgainst  float64 `json:"points_against"`
	DivisionWinner bool    `json:"division_winner"`
	InPlayoffs     bool    `json:"in_playoffs"`
}

// PlayoffOddsRow holds mean season totals and playoff odds across trials.
type PlayoffOddsRow struct {
	TeamID      int             `json:"team_id"`
	Name        string          `json:"name"`
	Owner       string          `json:"owner"`
	Wins        decimal.Decimal `json:"wins"`
	Ties        decimal.Decimal `json:"ties"`
	Losses      decimal.Decimal `json:"losses"`
	PointsFor   decimal.Decimal `json:"points_for"`
	PlayoffOdds decimal.Decimal `json:"playoff_odds"`
}

// RankDistributionRow holds the percent of trials finishing at each rank.
// RankOdds[r-1] is the percent for final rank r.
type RankDistributionRow struct {
	TeamID      int               `json:"team_id"`
	Name        string            `json:"name"`
	Owner       string            `json:"owner"`
	RankOdds    []decimal.Decimal `json:"rank_odds"`
	PlayoffOdds decimal.Decimal   `json:"playoff_odds"`
}

// SeedingOutcomeRow holds the percent of trials ending in each seeding event.
type SeedingOutcomeRow struct {
	TeamID          int             `json:"team_id"`
	Name            string          `json:"name"`
	Owner           string          `json:"owner"`
	FirstInLeague   decimal.Decimal `json:"first_in_league"`
	FirstInDivision decimal.Decimal `json:"first_in_division"`
	MakePlayoffs    decimal.Decimal `json:"make_playoffs"`
	LastInDivision  decimal.Decimal `json:"last_in_division"`
	LastInLeague    decimal.Decimal `json:"last_in_league"`
}

// ProjectionResult is the output of one season simulation.
type ProjectionResult struct {
	LeagueName       string                `json:"league_name"`
	Trials           int                   `json:"trials"`
	Seed             int64                 `json:"seed"`
	FirstWeek        int                   `json:"first_week"`
	LastWeek         int                   `json:"last_week"`
	Ranking          string                `json:"ranking"`
	PlayoffOdds      []PlayoffOddsRow      `json:"playoff_odds"`
	RankDistribution []RankDistributionRow `json:"rank_distribution"`
	SeedingOutcomes  []SeedingOutcomeRow   `json:"seeding_outcomes"`
}

// OddsFor returns the playoff odds row for a team.
func (p *ProjectionResult) OddsFor(teamID int) (PlayoffOddsRow, bool) {
	for _, row := range p.PlayoffOdds {
		if row.TeamID == teamID {
			return row, true
		}
	}
	return PlayoffOddsRow{}, false
}

// SeedingFor returns the seeding outcome row for a team.
func (p *ProjectionResult) SeedingFor(teamID int) (SeedingOutcomeRow, bool) {
	for _, row := range p.SeedingOutcomes {
		if row.TeamID == teamID {
			return row, true
		}
	}
	return SeedingOutcomeRow{}, false
}

// RanksFor returns the rank distribution row for a team.
func (p *ProjectionResult) RanksFor(teamID int) (RankDistributionRow, bool) {
	for _, row := range p.RankDistribution {
		if row.TeamID == teamID {
			return row, true
		}
	}
	return RankDistributionRow{}, false
}

// MatchupSwing compares two pinned runs of one matchup. Maps are keyed by team id
// and cover every team in the league.
type MatchupSwing struct {
	TeamA       int                     `json:"team_a"`
	TeamB       int                     `json:"team_b"`
	OddsIfAWins map[int]decimal.Decimal `json:"odds_if_a_wins"`
	OddsIfBWins map[int]decimal.Decimal `json:"odds_if_b_wins"`
	Swing       map[int]decimal.Decimal `json:"swing"`
}

// TeamSwing is how much a team's own matchup moves its playoff odds.
type TeamSwing struct {
	TeamID     int             `json:"team_id"`
	Name       string          `json:"name"`
	OpponentID int             `json:"opponent_id"`
	OddsIfWin  decimal.Decimal `json:"odds_if_win"`
	OddsIfLoss decimal.Decimal `json:"odds_if_loss"`
	Swing      decimal.Decimal `json:"swing"`
}

// SwingReport is the output of a swing analysis for one week.
type SwingReport struct {
	Week     int            `json:"week"`
	Trials   int            `json:"trials"`
	Matchups []MatchupSwing `json:"matchups"`
	Teams    []TeamSwing    `json:"teams"`
}

// SwingFor returns a team's swing for its own matchup.
func (r *SwingReport) SwingFor(teamID int) (TeamSwing, bool) {
	for _, ts := range r.Teams {
		if ts.TeamID == teamID {
			return ts, true
		}
	}
	return TeamSwing{}, false
}

// ScheduleDifficulty rates a team's remaining opponents. Higher is harder.
type ScheduleDifficulty struct {
	TeamID            int     `json:"team_id"`
	Name              string  `json:"name"`
	Owner             string  `json:"owner"`
	Games             int     `json:"games"`
	OppPointsFor      float64 `json:"opp_points_for"`
	OppWinPct         float64 `json:"opp_win_pct"`
	OverallDifficulty float64 `json:"overall_difficulty"`
}
