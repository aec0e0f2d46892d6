package calculation

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ffodds/season-projector/internal/domain"
)

func TestParseRankingMode(t *testing.T) {
	for in, want := range map[string]RankingMode{"": RankingSimple, "simple": RankingSimple, "policy": RankingPolicy} {
		got, err := ParseRankingMode(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseRankingMode("elo")
	assert.True(t, errors.Is(err, domain.ErrInvalidArgument))
}

func planFor(t *testing.T, l *domain.League, ranking RankingMode) *seasonPlan {
	t.Helper()
	resolver, err := NewResolver(l)
	require.NoError(t, err)
	divisionOf := make(map[int]int)
	for _, team := range l.Teams {
		divisionOf[team.ID] = team.DivisionID
	}
	return &seasonPlan{
		ranking:      ranking,
		resolver:     resolver,
		divisions:    l.DivisionMembers(),
		divisionOf:   divisionOf,
		playoffCount: l.PlayoffTeamCount,
	}
}

func finishOrder(res *TrialResult) []int {
	var ids []int
	for _, f := range res.Finishes {
		ids = append(ids, f.TeamID)
	}
	return ids
}

func TestFinalizeLabels(t *testing.T) {
	l := fourTeamTwoDivisionLeague(domain.TiebreakTotalPointsScored)
	snap := LedgerFromLeague(l, 3).Snapshot()

	t.Run("simple ranking ignores divisions", func(t *testing.T) {
		res := planFor(t, l, RankingSimple).finalize(snap)
		assert.Equal(t, []int{1, 2, 3, 4}, finishOrder(res))

		byTeam := make(map[int]TeamFinish)
		for _, f := range res.Finishes {
			byTeam[f.TeamID] = f
		}
		assert.Equal(t, 1, byTeam[3].DivisionRank)
		assert.Equal(t, 2, byTeam[4].DivisionRank)
		assert.Equal(t, 2, byTeam[4].DivisionSize)
		assert.True(t, byTeam[2].LastInDivision)
		assert.True(t, byTeam[4].LastInDivision)
		assert.False(t, byTeam[3].LastInDivision)
		assert.True(t, byTeam[2].MadePlayoffs)
		assert.False(t, byTeam[3].MadePlayoffs)
		assert.Equal(t, 3, byTeam[1].Wins)
	})

	t.Run("policy ranking seeds division winners", func(t *testing.T) {
		res := planFor(t, l, RankingPolicy).finalize(snap)
		assert.Equal(t, []int{1, 3, 2, 4}, finishOrder(res))
		assert.True(t, res.Finishes[1].MadePlayoffs)
		assert.False(t, res.Finishes[2].MadePlayoffs)
	})
}

func TestFinalizePolicyDivisionRankUsesDivisionMatesOnly(t *testing.T) {
	l := buildLeague(domain.TiebreakHeadToHead, 10, 2,
		map[int][]int{1: {1, 2, 3}, 2: {4, 5, 6}}, nil)
	ledger := NewLedger(l.TeamIDs())
	games := [][2]int{
		{3, 2}, {2, 5}, {2, 5}, // 3 beat 2, 2 swept 5
		{1, 2}, {3, 6}, {1, 3}, {4, 3}, {5, 6}, {5, 6},
	}
	for i, g := range games {
		record(ledger, i+1, g[0], g[1], 100, 90)
	}
	// 2, 3 and 5 finish 2-2. League-wide, 2 leads the tied group on
	// head-to-head; inside the division only 3's win over 2 counts.
	res := planFor(t, l, RankingPolicy).finalize(ledger.Snapshot())
	order := finishOrder(res)
	require.Len(t, order, 6)
	assert.Equal(t, []int{2, 3, 5, 6}, order[2:])

	byTeam := make(map[int]TeamFinish)
	for _, f := range res.Finishes {
		byTeam[f.TeamID] = f
	}
	assert.Equal(t, 1, byTeam[1].DivisionRank)
	assert.Equal(t, 2, byTeam[3].DivisionRank)
	assert.Equal(t, 3, byTeam[2].DivisionRank)
	assert.True(t, byTeam[2].LastInDivision)
	assert.False(t, byTeam[3].LastInDivision)
	assert.Equal(t, 1, byTeam[4].DivisionRank)
	assert.Equal(t, 2, byTeam[5].DivisionRank)
	assert.True(t, byTeam[6].LastInDivision)
}

func TestSimpleOrder(t *testing.T) {
	ledger := NewLedger([]int{1, 2, 3})
	record(ledger, 1, 1, 2, 100.004, 90)
	record(ledger, 2, 3, 2, 100.001, 90)
	// 1 and 3 both 1-0 with points equal at two decimals
	order := simpleOrder(ledger.Snapshot())
	require.Len(t, order, 3)
	assert.Equal(t, 2, order[2])
	if coinFlip(1) > coinFlip(3) {
		assert.Equal(t, []int{1, 3, 2}, order)
	} else {
		assert.Equal(t, []int{3, 1, 2}, order)
	}

	record(ledger, 3, 3, 2, 80, 70)
	assert.Equal(t, []int{3, 1, 2}, simpleOrder(ledger.Snapshot()))
}

func TestCompletePlaysEveryRemainingGame(t *testing.T) {
	l := buildLeague(domain.TiebreakHeadToHead, 6, 2,
		map[int][]int{1: {1, 2}, 2: {3, 4}}, roundRobinSchedule(4, 6))
	for week := 1; week <= 3; week++ {
		play(l, week, map[int]float64{1: 100 + float64(week), 2: 95, 3: 110 - float64(week), 4: 90})
	}
	plan := planFor(t, l, RankingSimple)
	for week := 4; week <= 6; week++ {
		plan.weeks = append(plan.weeks, WeekMatchups(l, week))
	}
	sampler, err := NewScoreSampler(l, l.TeamIDs(), 4, false)
	require.NoError(t, err)
	plan.sampler = sampler

	start := LedgerFromLeague(l, 3)
	res, err := plan.complete(start, rand.NewPCG(5, 0))
	require.NoError(t, err)
	require.Len(t, res.Finishes, 4)
	for i, f := range res.Finishes {
		assert.Equal(t, 6, f.GamesPlayed(), "team %d", f.TeamID)
		assert.Equal(t, i+1, f.Rank)
	}

	// the starting ledger is never touched
	row, _ := start.Row(1)
	assert.Equal(t, 3, row.GamesPlayed())

	again, err := plan.complete(start, rand.NewPCG(5, 0))
	require.NoError(t, err)
	assert.Equal(t, res, again)
}
