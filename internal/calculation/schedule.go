package calculation

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/ffodds/season-projector/internal/domain"
)

// RemainingStrengthOfSchedule rates each team's remaining opponents from
// fromWeek on, skipping games that already have a final result. Opponent scoring and opponent win pct are taken from results
// before fromWeek, rescaled to [0,1] across teams and averaged into
// OverallDifficulty. Teams with nothing left to play rate 0 and are left out
// of the rescaling. fromWeek 0 means the first undetermined week.
func RemainingStrengthOfSchedule(league *domain.League, fromWeek int) ([]domain.ScheduleDifficulty, error) {
	if err := league.Validate(); err != nil {
		return nil, err
	}
	if fromWeek == 0 {
		fromWeek = league.FirstUndeterminedWeek()
	}
	if fromWeek < 1 || fromWeek > league.RegularSeasonWeeks+1 {
		return nil, fmt.Errorf("%w: week %d is outside the regular season (1-%d)", domain.ErrInvalidArgument, fromWeek, league.RegularSeasonWeeks)
	}

	snap := LedgerFromLeague(league, fromWeek-1).Snapshot()
	out := make([]domain.ScheduleDifficulty, 0, len(league.Teams))
	var scoring, winPct []float64
	var rated []int

	for _, id := range league.TeamIDs() {
		team, _ := league.Team(id)
		var oppPF, oppPct []float64
		for week := fromWeek; week <= league.RegularSeasonWeeks; week++ {
			opp, ok := team.Opponent(week)
			if !ok || team.Outcome(week).Determined() {
				continue
			}
			row, _ := snap.Row(opp)
			perGame := 0.0
			if g := row.GamesPlayed(); g > 0 {
				perGame = row.PointsFor / float64(g)
			}
			oppPF = append(oppPF, perGame)
			oppPct = append(oppPct, row.WinPct())
		}
		sd := domain.ScheduleDifficulty{TeamID: id, Name: team.Name, Owner: team.Owner, Games: len(oppPF)}
		if len(oppPF) > 0 {
			sd.OppPointsFor = stat.Mean(oppPF, nil)
			sd.OppWinPct = stat.Mean(oppPct, nil)
			scoring = append(scoring, sd.OppPointsFor)
			winPct = append(winPct, sd.OppWinPct)
			rated = append(rated, len(out))
		}
		out = append(out, sd)
	}

	if len(rated) > 0 {
		scoring = rescale(scoring)
		winPct = rescale(winPct)
		for k, i := range rated {
			out[i].OverallDifficulty = (scoring[k] + winPct[k]) / 2
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].OverallDifficulty > out[j].OverallDifficulty
	})
	return out, nil
}

// rescale maps xs linearly onto [0,1]. A flat input maps to 0.5.
func rescale(xs []float64) []float64 {
	lo, hi := floats.Min(xs), floats.Max(xs)
	out := make([]float64, len(xs))
	if hi == lo {
		for i := range out {
			out[i] = 0.5
		}
		return out
	}
	copy(out, xs)
	floats.AddConst(-lo, out)
	floats.Scale(1/(hi-lo), out)
	return out
}
