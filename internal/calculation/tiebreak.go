package calculation

import (
	"fmt"
	"hash/fnv"
	"math"
	"sort"
	"strconv"

	"github.com/ffodds/season-projector/internal/domain"
)

// Criterion is one standings tiebreaker. Higher values rank higher.
type Criterion int

const (
	CriterionWinPct Criterion = iota
	CriterionPointsFor
	CriterionHeadToHead
	CriterionDivisionRecord
	CriterionPointsAgainst
	CriterionCoinFlip
)

func (c Criterion) String() string {
	switch c {
	case CriterionWinPct:
		return "win_pct"
	case CriterionPointsFor:
		return "points_for"
	case CriterionHeadToHead:
		return "head_to_head_wins"
	case CriterionDivisionRecord:
		return "division_record"
	case CriterionPointsAgainst:
		return "points_against"
	case CriterionCoinFlip:
		return "coin_flip"
	}
	return "unknown"
}

// CriteriaFor returns the ordered tiebreak chain for a policy.
func CriteriaFor(policy domain.TiebreakPolicy) ([]Criterion, error) {
	switch policy {
	case domain.TiebreakTotalPointsScored:
		return []Criterion{CriterionWinPct, CriterionPointsFor, CriterionHeadToHead, CriterionDivisionRecord, CriterionPointsAgainst, CriterionCoinFlip}, nil
	case domain.TiebreakHeadToHead:
		return []Criterion{CriterionWinPct, CriterionHeadToHead, CriterionPointsFor, CriterionDivisionRecord, CriterionPointsAgainst, CriterionCoinFlip}, nil
	case domain.TiebreakIntraDivision:
		return []Criterion{CriterionDivisionRecord, CriterionHeadToHead, CriterionWinPct, CriterionPointsFor, CriterionPointsAgainst, CriterionCoinFlip}, nil
	}
	return nil, fmt.Errorf("%w: unknown tiebreak policy %q", domain.ErrConfiguration, policy)
}

// coinFlip is a stable per-team pseudo-random value. It never changes between
// runs, so residual ties always break the same way.
func coinFlip(teamID int) float64 {
	h := fnv.New32a()
	h.Write([]byte(strconv.Itoa(teamID)))
	return float64(h.Sum32())
}

// Resolver orders teams into official standings under a league's policy.
type Resolver struct {
	criteria   []Criterion
	divisionOf map[int]int
	divisions  map[int][]int
	divIDs     []int
}

// NewResolver builds a resolver for the league's tiebreak policy.
func NewResolver(league *domain.League) (*Resolver, error) {
	criteria, err := CriteriaFor(league.TiebreakPolicy)
	if err != nil {
		return nil, err
	}
	r := &Resolver{
		criteria:   criteria,
		divisionOf: make(map[int]int, len(league.Teams)),
		divisions:  league.DivisionMembers(),
	}
	for _, t := range league.Teams {
		r.divisionOf[t.ID] = t.DivisionID
	}
	for id := range r.divisions {
		r.divIDs = append(r.divIDs, id)
	}
	sort.Ints(r.divIDs)
	return r, nil
}

// Criteria returns the resolver's tiebreak chain.
func (r *Resolver) Criteria() []Criterion {
	return append([]Criterion(nil), r.criteria...)
}

// Order returns every team id in standings order: division winners first,
// sorted against each other, then the remaining teams.
func (r *Resolver) Order(snap Snapshot) []int {
	winners, rest := r.splitDivisionWinners(snap)
	order := r.SortGroup(snap, winners)
	return append(order, r.SortGroup(snap, rest)...)
}

// DivisionWinners returns the winner of each division, keyed by division id.
func (r *Resolver) DivisionWinners(snap Snapshot) map[int]int {
	out := make(map[int]int, len(r.divIDs))
	for _, divID := range r.divIDs {
		sorted := r.SortGroup(snap, r.divisions[divID])
		if len(sorted) > 0 {
			out[divID] = sorted[0]
		}
	}
	return out
}

func (r *Resolver) splitDivisionWinners(snap Snapshot) (winners, rest []int) {
	isWinner := make(map[int]bool, len(r.divIDs))
	for _, divID := range r.divIDs {
		sorted := r.SortGroup(snap, r.divisions[divID])
		if len(sorted) == 0 {
			continue
		}
		winners = append(winners, sorted[0])
		isWinner[sorted[0]] = true
	}
	for _, divID := range r.divIDs {
		for _, id := range r.divisions[divID] {
			if !isWinner[id] {
				rest = append(rest, id)
			}
		}
	}
	return winners, rest
}

// SortGroup orders a set of teams with the full criterion chain.
func (r *Resolver) SortGroup(snap Snapshot, group []int) []int {
	out := append([]int(nil), group...)
	r.sortTied(snap, out, r.criteria)
	return out
}

// sortTied orders ids in place. Each criterion is evaluated only over the
// teams still tied when it is reached, so head-to-head and division record
// are local to the tied subset.
func (r *Resolver) sortTied(snap Snapshot, ids []int, criteria []Criterion) {
	if len(ids) < 2 {
		return
	}
	if len(criteria) == 0 {
		sort.Ints(ids)
		return
	}
	c := criteria[0]
	values := make(map[int]float64, len(ids))
	for _, id := range ids {
		values[id] = r.value(snap, c, id, ids)
	}
	sort.SliceStable(ids, func(i, j int) bool {
		vi, vj := values[ids[i]], values[ids[j]]
		if vi != vj {
			return vi > vj
		}
		return ids[i] < ids[j]
	})
	for start := 0; start < len(ids); {
		end := start + 1
		for end < len(ids) && values[ids[end]] == values[ids[start]] {
			end++
		}
		if end-start > 1 {
			r.sortTied(snap, ids[start:end], criteria[1:])
		}
		start = end
	}
}

func (r *Resolver) value(snap Snapshot, c Criterion, teamID int, group []int) float64 {
	row, _ := snap.Row(teamID)
	switch c {
	case CriterionWinPct:
		return row.WinPct()
	case CriterionPointsFor:
		return roundPoints(row.PointsFor)
	case CriterionHeadToHead:
		return float64(snap.HeadToHeadWins(teamID, group))
	case CriterionDivisionRecord:
		return snap.DivisionRecord(teamID, r.divisions[r.divisionOf[teamID]])
	case CriterionPointsAgainst:
		return roundPoints(row.PointsAgainst)
	case CriterionCoinFlip:
		return coinFlip(teamID)
	}
	return 0
}

// roundPoints drops float noise so equal point totals compare equal.
func roundPoints(p float64) float64 {
	return math.Round(p*100) / 100
}

// ResolveCurrentStandings orders the league's real results through a week
// with the league's tiebreak policy. The top PlayoffTeamCount rows are the
// current playoff picture.
func ResolveCurrentStandings(league *domain.League, throughWeek int) ([]domain.StandingRow, error) {
	if err := league.Validate(); err != nil {
		return nil, err
	}
	if throughWeek < 0 || throughWeek > league.RegularSeasonWeeks {
		return nil, fmt.Errorf("%w: week %d is outside the regular season (0-%d)", domain.ErrInvalidArgument, throughWeek, league.RegularSeasonWeeks)
	}
	resolver, err := NewResolver(league)
	if err != nil {
		return nil, err
	}
	snap := LedgerFromLeague(league, throughWeek).Snapshot()
	winners := resolver.DivisionWinners(snap)
	isWinner := make(map[int]bool, len(winners))
	for _, id := range winners {
		isWinner[id] = true
	}
	order := resolver.Order(snap)
	rows := make([]domain.StandingRow, 0, len(order))
	for i, id := range order {
		rows = append(rows, standingRow(league, snap, id, i+1, isWinner[id]))
	}
	return rows, nil
}

// ResolveDivisionStandings orders each division on its own, keyed by division id.
func ResolveDivisionStandings(league *domain.League, throughWeek int) (map[int][]domain.StandingRow, error) {
	overall, err := ResolveCurrentStandings(league, throughWeek)
	if err != nil {
		return nil, err
	}
	resolver, err := NewResolver(league)
	if err != nil {
		return nil, err
	}
	byTeam := make(map[int]domain.StandingRow, len(overall))
	for _, row := range overall {
		byTeam[row.TeamID] = row
	}
	snap := LedgerFromLeague(league, throughWeek).Snapshot()
	out := make(map[int][]domain.StandingRow, len(resolver.divIDs))
	for _, divID := range resolver.divIDs {
		for _, id := range resolver.SortGroup(snap, resolver.divisions[divID]) {
			out[divID] = append(out[divID], byTeam[id])
		}
	}
	return out, nil
}

func standingRow(league *domain.League, snap Snapshot, teamID, rank int, divisionWinner bool) domain.StandingRow {
	row, _ := snap.Row(teamID)
	sr := domain.StandingRow{
		Rank:           rank,
		TeamID:         teamID,
		Wins:           row.Wins,
		Ties:           row.Ties,
		Losses:         row.Losses,
		WinPct:         row.WinPct(),
		PointsFor:      row.PointsFor,
		PointsAgainst:  row.PointsAgainst,
		DivisionWinner: divisionWinner,
		InPlayoffs:     rank <= league.PlayoffTeamCount,
	}
	if t, ok := league.Team(teamID); ok {
		sr.Name = t.Name
		sr.Owner = t.Owner
		sr.DivisionID = t.DivisionID
	}
	return sr
}
