package calculation

import (
	"fmt"
	"math/rand/v2"
	"sort"

	"github.com/ffodds/season-projector/internal/domain"
)

// RankingMode selects how a finished trial is ranked.
type RankingMode string

const (
	// RankingSimple orders by wins then points-for, as the projection has
	// always done. It ignores ties, divisions and the league's policy.
	RankingSimple RankingMode = "simple"
	// RankingPolicy runs the full tiebreak resolver on every trial.
	RankingPolicy RankingMode = "policy"
)

// ParseRankingMode accepts "simple" or "policy"; empty means simple.
func ParseRankingMode(s string) (RankingMode, error) {
	switch RankingMode(s) {
	case "", RankingSimple:
		return RankingSimple, nil
	case RankingPolicy:
		return RankingPolicy, nil
	}
	return "", fmt.Errorf("%w: unknown ranking mode %q (want simple or policy)", domain.ErrInvalidArgument, s)
}

// TeamFinish is one team's final line in one trial.
type TeamFinish struct {
	LedgerRow
	Rank           int  `json:"rank"`
	DivisionRank   int  `json:"division_rank"`
	DivisionSize   int  `json:"division_size"`
	MadePlayoffs   bool `json:"made_playoffs"`
	LastInDivision bool `json:"last_in_division"`
}

// TrialResult is one finished season, ordered by final rank.
type TrialResult struct {
	Finishes []TeamFinish `json:"finishes"`
}

// seasonPlan is everything a trial needs. It is built once per driver call
// and only read by trials.
type seasonPlan struct {
	weeks        [][]Matchup
	sampler      *ScoreSampler
	ranking      RankingMode
	resolver     *Resolver
	divisions    map[int][]int
	divisionOf   map[int]int
	playoffCount int
}

// complete plays every remaining matchup once on a private copy of start and
// ranks the result.
func (p *seasonPlan) complete(start *Ledger, src rand.Source) (*TrialResult, error) {
	ledger := start.Clone()
	for _, week := range p.weeks {
		for _, m := range week {
			scoreA, err := p.sampler.Sample(m.TeamA, src)
			if err != nil {
				return nil, err
			}
			scoreB, err := p.sampler.Sample(m.TeamB, src)
			if err != nil {
				return nil, err
			}
			a, b := ResolveMatchup(scoreA, scoreB)
			ledger.ApplyMatchup(m, a, b)
		}
	}
	return p.finalize(ledger.Snapshot()), nil
}

func (p *seasonPlan) finalize(snap Snapshot) *TrialResult {
	var order []int
	if p.ranking == RankingPolicy {
		order = p.resolver.Order(snap)
	} else {
		order = simpleOrder(snap)
	}

	divRank := p.divisionRanks(snap, order)
	res := &TrialResult{Finishes: make([]TeamFinish, 0, len(order))}
	for i, id := range order {
		row, _ := snap.Row(id)
		size := len(p.divisions[p.divisionOf[id]])
		res.Finishes = append(res.Finishes, TeamFinish{
			LedgerRow:      row,
			Rank:           i + 1,
			DivisionRank:   divRank[id],
			DivisionSize:   size,
			MadePlayoffs:   i < p.playoffCount,
			LastInDivision: divRank[id] == size,
		})
	}
	return res
}

// divisionRanks places each team within its division. Under the policy the
// division is sorted on its own, so head-to-head only counts division mates;
// the league-wide order can disagree when the tie spans divisions.
func (p *seasonPlan) divisionRanks(snap Snapshot, order []int) map[int]int {
	ranks := make(map[int]int, len(order))
	if p.ranking == RankingPolicy {
		for _, members := range p.divisions {
			for i, id := range p.resolver.SortGroup(snap, members) {
				ranks[id] = i + 1
			}
		}
		return ranks
	}
	seen := make(map[int]int, len(p.divisions))
	for _, id := range order {
		div := p.divisionOf[id]
		seen[div]++
		ranks[id] = seen[div]
	}
	return ranks
}

// simpleOrder ranks by wins, then points-for. The coin flip only settles
// exact ties so the order stays total.
func simpleOrder(snap Snapshot) []int {
	rows := snap.Rows()
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.Wins != b.Wins {
			return a.Wins > b.Wins
		}
		if pa, pb := roundPoints(a.PointsFor), roundPoints(b.PointsFor); pa != pb {
			return pa > pb
		}
		if ca, cb := coinFlip(a.TeamID), coinFlip(b.TeamID); ca != cb {
			return ca > cb
		}
		return a.TeamID < b.TeamID
	})
	order := make([]int, len(rows))
	for i, r := range rows {
		order[i] = r.TeamID
	}
	return order
}
