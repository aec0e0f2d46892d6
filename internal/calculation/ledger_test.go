package calculation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ffodds/season-projector/internal/domain"
)

func TestLedgerFromLeague(t *testing.T) {
	l := eightTeamLeague(domain.TiebreakHeadToHead)

	for _, through := range []int{0, 3, 6} {
		ledger := LedgerFromLeague(l, through)
		for _, id := range l.TeamIDs() {
			row, ok := ledger.Row(id)
			require.True(t, ok)
			assert.Equal(t, through, row.GamesPlayed(), "team %d through week %d", id, through)
		}
	}

	ledger := LedgerFromLeague(l, 6)
	team, _ := l.Team(3)
	row, _ := ledger.Row(3)
	wantPF, wantPA := 0.0, 0.0
	wins := 0
	for week := 1; week <= 6; week++ {
		wantPF += team.Score(week)
		opp, _ := team.Opponent(week)
		o, _ := l.Team(opp)
		wantPA += o.Score(week)
		if team.Outcome(week) == domain.OutcomeWin {
			wins++
		}
	}
	assert.InDelta(t, wantPF, row.PointsFor, 1e-9)
	assert.InDelta(t, wantPA, row.PointsAgainst, 1e-9)
	assert.Equal(t, wins, row.Wins)

	// undetermined weeks never count
	later := LedgerFromLeague(l, 10)
	row, _ = later.Row(3)
	assert.Equal(t, 6, row.GamesPlayed())
}

func TestLedgerCloneIsIndependent(t *testing.T) {
	base := NewLedger([]int{2, 1})
	clone := base.Clone()
	a, b := ResolveMatchup(120, 90)
	clone.ApplyMatchup(NewMatchup(1, 1, 2), a, b)

	orig, _ := base.Row(1)
	assert.Zero(t, orig.GamesPlayed())
	assert.Zero(t, orig.PointsFor)

	got, _ := clone.Row(1)
	assert.Equal(t, 1, got.Wins)
	assert.Equal(t, 120.0, got.PointsFor)
	assert.Equal(t, 90.0, got.PointsAgainst)
	other, _ := clone.Row(2)
	assert.Equal(t, 1, other.Losses)
}

func TestLedgerApplyPinnedLeavesPoints(t *testing.T) {
	ledger := NewLedger([]int{1, 2})
	ledger.ApplyPinned(NewMatchup(5, 1, 2), 2)

	one, _ := ledger.Row(1)
	two, _ := ledger.Row(2)
	assert.Equal(t, 1, one.Losses)
	assert.Equal(t, 1, two.Wins)
	assert.Zero(t, one.PointsFor)
	assert.Zero(t, two.PointsFor)
	assert.Zero(t, two.PointsAgainst)

	snap := ledger.Snapshot()
	assert.Equal(t, 1, snap.HeadToHeadWins(2, []int{1, 2}))
	assert.Equal(t, 0, snap.HeadToHeadWins(1, []int{1, 2}))
}

func TestWinPct(t *testing.T) {
	assert.Zero(t, LedgerRow{}.WinPct())
	assert.InDelta(t, 0.5, LedgerRow{Wins: 1, Losses: 1}.WinPct(), 1e-12)
	assert.InDelta(t, 0.75, LedgerRow{Wins: 1, Ties: 1}.WinPct(), 1e-12)
}

func TestSnapshotGroupRecords(t *testing.T) {
	ledger := NewLedger([]int{1, 2, 3, 4})
	apply := func(week, winner, loser int) {
		m := NewMatchup(week, winner, loser)
		w := SideResult{Win: 1, Score: 100}
		lo := SideResult{Loss: 1, Score: 90}
		if m.TeamA == winner {
			ledger.ApplyMatchup(m, w, lo)
		} else {
			ledger.ApplyMatchup(m, lo, w)
		}
	}
	apply(1, 1, 2)
	apply(2, 1, 3)
	apply(3, 4, 1)
	apply(4, 2, 1)
	snap := ledger.Snapshot()

	assert.Equal(t, 2, snap.HeadToHeadWins(1, []int{1, 2, 3}))
	assert.Equal(t, 1, snap.HeadToHeadWins(1, []int{1, 2}))
	assert.Equal(t, 0, snap.HeadToHeadWins(1, []int{1, 4}))

	// 1 went 1-1 against 2 and lost to 4
	assert.InDelta(t, 1.0/3.0, snap.DivisionRecord(1, []int{1, 2, 4}), 1e-12)
	assert.Zero(t, snap.DivisionRecord(3, []int{3}))

	// snapshots do not follow later writes
	apply(5, 3, 4)
	row, _ := snap.Row(3)
	assert.Equal(t, 0, row.Wins)
}
