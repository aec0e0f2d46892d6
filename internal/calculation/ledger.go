package calculation

import (
	"sort"

	"github.com/ffodds/season-projector/internal/domain"
)

// LedgerRow is one team's running totals.
type LedgerRow struct {
	TeamID        int     `json:"team_id"`
	Wins          int     `json:"wins"`
	Ties          int     `json:"ties"`
	Losses        int     `json:"losses"`
	PointsFor     float64 `json:"points_for"`
	PointsAgainst float64 `json:"points_against"`
}

// GamesPlayed is wins+ties+losses.
func (r LedgerRow) GamesPlayed() int {
	return r.Wins + r.Ties + r.Losses
}

// WinPct is (wins + ties/2) / games, or 0 with no games played.
func (r LedgerRow) WinPct() float64 {
	games := r.GamesPlayed()
	if games == 0 {
		return 0
	}
	return float64(2*r.Wins+r.Ties) / float64(2*games)
}

// GameRecord is one side of one resolved game.
type GameRecord struct {
	Week       int            `json:"week"`
	TeamID     int            `json:"team_id"`
	OpponentID int            `json:"opponent_id"`
	Outcome    domain.Outcome `json:"outcome"`
}

// Ledger accumulates standings for one timeline. Each trial owns its own
// ledger; the team index is shared read-only between clones.
type Ledger struct {
	index map[int]int
	rows  []LedgerRow
	games []GameRecord
}

// NewLedger creates an empty ledger for the given teams.
func NewLedger(teamIDs []int) *Ledger {
	ids := append([]int(nil), teamIDs...)
	sort.Ints(ids)
	l := &Ledger{
		index: make(map[int]int, len(ids)),
		rows:  make([]LedgerRow, len(ids)),
	}
	for i, id := range ids {
		l.index[id] = i
		l.rows[i].TeamID = id
	}
	return l
}

// LedgerFromLeague builds a ledger from every determined result in weeks
// 1..throughWeek. Byes and undetermined weeks are skipped.
func LedgerFromLeague(league *domain.League, throughWeek int) *Ledger {
	l := NewLedger(league.TeamIDs())
	for i := range league.Teams {
		team := &league.Teams[i]
		row := &l.rows[l.index[team.ID]]
		for week := 1; week <= throughWeek; week++ {
			oppID, ok := team.Opponent(week)
			if !ok {
				continue
			}
			outcome := team.Outcome(week)
			if !outcome.Determined() {
				continue
			}
			switch outcome {
			case domain.OutcomeWin:
				row.Wins++
			case domain.OutcomeTie:
				row.Ties++
			case domain.OutcomeLoss:
				row.Losses++
			}
			row.PointsFor += team.Score(week)
			if opp, found := league.Team(oppID); found {
				row.PointsAgainst += opp.Score(week)
			}
			l.games = append(l.games, GameRecord{Week: week, TeamID: team.ID, OpponentID: oppID, Outcome: outcome})
		}
	}
	return l
}

// ApplyMatchup adds a simulated result to both sides.
func (l *Ledger) ApplyMatchup(m Matchup, a, b SideResult) {
	l.apply(m.Week, m.TeamA, m.TeamB, a, b.Score)
	l.apply(m.Week, m.TeamB, m.TeamA, b, a.Score)
}

// ApplyPinned records a pinned result. Only wins and losses move; no score
// was sampled so points are untouched.
func (l *Ledger) ApplyPinned(m Matchup, winnerID int) {
	win := SideResult{Win: 1}
	loss := SideResult{Loss: 1}
	if winnerID == m.TeamA {
		l.apply(m.Week, m.TeamA, m.TeamB, win, 0)
		l.apply(m.Week, m.TeamB, m.TeamA, loss, 0)
		return
	}
	l.apply(m.Week, m.TeamB, m.TeamA, win, 0)
	l.apply(m.Week, m.TeamA, m.TeamB, loss, 0)
}

func (l *Ledger) apply(week, teamID, oppID int, res SideResult, oppScore float64) {
	idx, ok := l.index[teamID]
	if !ok {
		return
	}
	row := &l.rows[idx]
	row.Wins += res.Win
	row.Ties += res.Tie
	row.Losses += res.Loss
	row.PointsFor += res.Score
	row.PointsAgainst += oppScore
	l.games = append(l.games, GameRecord{Week: week, TeamID: teamID, OpponentID: oppID, Outcome: res.Outcome()})
}

// Row returns the totals for a team.
func (l *Ledger) Row(teamID int) (LedgerRow, bool) {
	idx, ok := l.index[teamID]
	if !ok {
		return LedgerRow{}, false
	}
	return l.rows[idx], true
}

// Clone returns an independent copy whose mutations never reach l.
func (l *Ledger) Clone() *Ledger {
	c := &Ledger{
		index: l.index,
		rows:  append([]LedgerRow(nil), l.rows...),
		games: make([]GameRecord, len(l.games), len(l.games)+2*len(l.rows)),
	}
	copy(c.games, l.games)
	return c
}

// Snapshot freezes the current totals for ranking.
func (l *Ledger) Snapshot() Snapshot {
	return Snapshot{
		index: l.index,
		rows:  append([]LedgerRow(nil), l.rows...),
		games: append([]GameRecord(nil), l.games...),
	}
}

// Snapshot is an immutable view of a ledger.
type Snapshot struct {
	index map[int]int
	rows  []LedgerRow
	games []GameRecord
}

// Row returns the totals for a team.
func (s Snapshot) Row(teamID int) (LedgerRow, bool) {
	idx, ok := s.index[teamID]
	if !ok {
		return LedgerRow{}, false
	}
	return s.rows[idx], true
}

// Rows returns a copy of every row in team id order.
func (s Snapshot) Rows() []LedgerRow {
	return append([]LedgerRow(nil), s.rows...)
}

// HeadToHeadWins counts the team's wins against members of group.
func (s Snapshot) HeadToHeadWins(teamID int, group []int) int {
	in := make(map[int]bool, len(group))
	for _, id := range group {
		in[id] = true
	}
	wins := 0
	for _, g := range s.games {
		if g.TeamID == teamID && g.Outcome == domain.OutcomeWin && in[g.OpponentID] {
			wins++
		}
	}
	return wins
}

// DivisionRecord returns the team's win pct against the given division mates,
// or 0 if it has not played any of them.
func (s Snapshot) DivisionRecord(teamID int, mates []int) float64 {
	in := make(map[int]bool, len(mates))
	for _, id := range mates {
		if id != teamID {
			in[id] = true
		}
	}
	var r LedgerRow
	for _, g := range s.games {
		if g.TeamID != teamID || !in[g.OpponentID] {
			continue
		}
		switch g.Outcome {
		case domain.OutcomeWin:
			r.Wins++
		case domain.OutcomeTie:
			r.Ties++
		case domain.OutcomeLoss:
			r.Losses++
		}
	}
	return r.WinPct()
}
