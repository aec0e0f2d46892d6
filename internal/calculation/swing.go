package calculation

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/ffodds/season-projector/internal/domain"
	"github.com/ffodds/season-projector/pkg/percent"
)

// swingParallelism caps how many projections run at once during a swing
// query. Each projection already uses the full worker pool.
const swingParallelism = 2

// SwingConfig holds the options for a swing query.
type SwingConfig struct {
	Week                int // 0 means the first simulated week
	Trials              int
	Seed                int64
	FirstWeek           int
	Ranking             RankingMode
	ClampNegativeScores bool
}

// ComputeSwing measures how much each matchup of the target week moves every
// team's playoff odds. Both sides of a matchup are projected with the same
// seed so the difference comes from the pinned result alone.
func (s *SeasonSimulator) ComputeSwing(ctx context.Context, league *domain.League, cfg SwingConfig) (*domain.SwingReport, error) {
	if cfg.Trials <= 0 {
		return nil, fmt.Errorf("%w: trial count must be positive, got %d", domain.ErrInvalidArgument, cfg.Trials)
	}
	if err := league.Validate(); err != nil {
		return nil, err
	}
	firstWeek := cfg.FirstWeek
	if firstWeek == 0 {
		firstWeek = league.FirstUndeterminedWeek()
	}
	week := cfg.Week
	if week == 0 {
		week = firstWeek
	}
	if week < firstWeek || week > league.RegularSeasonWeeks {
		return nil, fmt.Errorf("%w: swing week %d is not a simulated week (%d-%d)", domain.ErrInvalidArgument, week, firstWeek, league.RegularSeasonWeeks)
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = seedFunc()
	}

	// Games already final in the target week cannot swing anything.
	var matchups []Matchup
	for _, m := range WeekMatchups(league, week) {
		if _, _, done := recordedResult(league, m); !done {
			matchups = append(matchups, m)
		}
	}
	s.Logger.Infof("computing swing for %d matchups in week %d (%d trials per side, seed %d)", len(matchups), week, cfg.Trials, seed)

	inner := &SeasonSimulator{Workers: s.Workers, Logger: NopLogger{}}
	// sides[i][0] pins TeamA to win, sides[i][1] pins TeamB.
	sides := make([][2]*domain.ProjectionResult, len(matchups))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(swingParallelism)
	for i, m := range matchups {
		for side, result := range []domain.PinResult{domain.PinSideAWins, domain.PinSideBWins} {
			g.Go(func() error {
				res, err := inner.SimulateSeason(gctx, league, SimulationConfig{
					Trials:    cfg.Trials,
					Seed:      seed,
					FirstWeek: firstWeek,
					WhatIf: &domain.WhatIf{
						Week:     week,
						Outcomes: []domain.PinnedOutcome{{TeamA: m.TeamA, TeamB: m.TeamB, Result: result}},
					},
					Ranking:             cfg.Ranking,
					ClampNegativeScores: cfg.ClampNegativeScores,
				})
				if err != nil {
					return fmt.Errorf("swing %d vs %d: %w", m.TeamA, m.TeamB, err)
				}
				s.Logger.Debugf("swing %d vs %d side %d done", m.TeamA, m.TeamB, side)
				sides[i][side] = res
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := &domain.SwingReport{Week: week, Trials: cfg.Trials}
	for i, m := range matchups {
		ifA, ifB := sides[i][0], sides[i][1]
		ms := domain.MatchupSwing{
			TeamA:       m.TeamA,
			TeamB:       m.TeamB,
			OddsIfAWins: make(map[int]decimal.Decimal, len(league.Teams)),
			OddsIfBWins: make(map[int]decimal.Decimal, len(league.Teams)),
			Swing:       make(map[int]decimal.Decimal, len(league.Teams)),
		}
		for _, id := range league.TeamIDs() {
			a, _ := ifA.OddsFor(id)
			b, _ := ifB.OddsFor(id)
			ms.OddsIfAWins[id] = a.PlayoffOdds
			ms.OddsIfBWins[id] = b.PlayoffOdds
			ms.Swing[id] = percent.AbsDiff(a.PlayoffOdds, b.PlayoffOdds)
		}
		report.Matchups = append(report.Matchups, ms)

		for _, id := range []int{m.TeamA, m.TeamB} {
			team, _ := league.Team(id)
			win, loss := ms.OddsIfAWins[id], ms.OddsIfBWins[id]
			if id == m.TeamB {
				win, loss = loss, win
			}
			report.Teams = append(report.Teams, domain.TeamSwing{
				TeamID:     id,
				Name:       team.Name,
				OpponentID: m.Opponent(id),
				OddsIfWin:  win,
				OddsIfLoss: loss,
				Swing:      ms.Swing[id],
			})
		}
	}
	sort.SliceStable(report.Teams, func(i, j int) bool {
		a, b := report.Teams[i], report.Teams[j]
		if !a.Swing.Equal(b.Swing) {
			return a.Swing.GreaterThan(b.Swing)
		}
		return a.TeamID < b.TeamID
	})
	return report, nil
}
