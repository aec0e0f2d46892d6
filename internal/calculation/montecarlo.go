package calculation

import (
	"context"
	"fmt"
	"runtime"
	"sort"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/ffodds/season-projector/internal/domain"
	"github.com/ffodds/season-projector/pkg/percent"
)

// SimulationConfig holds the options for one season projection.
type SimulationConfig struct {
	Trials              int
	Seed                int64 // 0 picks a fresh seed
	FirstWeek           int   // 0 means the first week with an undetermined game; recorded results are kept either way
	WhatIf              *domain.WhatIf
	Ranking             RankingMode
	ClampNegativeScores bool
}

// SeasonSimulator runs Monte Carlo season projections.
type SeasonSimulator struct {
	Workers int
	Logger  Logger
}

// NewSeasonSimulator creates a simulator. A non-positive worker count uses
// one worker per CPU.
func NewSeasonSimulator(workers int) *SeasonSimulator {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &SeasonSimulator{Workers: workers, Logger: NopLogger{}}
}

// SetLogger sets the logger. If nil is provided, a no-op logger is used.
func (s *SeasonSimulator) SetLogger(l Logger) {
	if l == nil {
		s.Logger = NopLogger{}
		return
	}
	s.Logger = l
}

// preparedRun is the validated, immutable input shared by every trial.
type preparedRun struct {
	plan      *seasonPlan
	start     *Ledger
	seed      int64
	trials    int
	firstWeek int
	lastWeek  int
	ranking   RankingMode
}

// SimulateSeason plays the rest of the season cfg.Trials times and returns
// playoff odds, rank distribution and seeding outcome tables.
func (s *SeasonSimulator) SimulateSeason(ctx context.Context, league *domain.League, cfg SimulationConfig) (*domain.ProjectionResult, error) {
	run, err := s.prepare(league, cfg)
	if err != nil {
		return nil, err
	}
	s.Logger.Infof("simulating %d trials of weeks %d-%d with %d workers (seed %d, ranking %s)",
		run.trials, run.firstWeek, run.lastWeek, s.workers(), run.seed, run.ranking)

	results, err := s.runTrials(ctx, run)
	if err != nil {
		return nil, err
	}

	out := aggregate(league, results)
	out.LeagueName = league.Name
	out.Seed = run.seed
	out.FirstWeek = run.firstWeek
	out.LastWeek = run.lastWeek
	out.Ranking = string(run.ranking)
	return out, nil
}

func (s *SeasonSimulator) workers() int {
	if s.Workers <= 0 {
		return runtime.NumCPU()
	}
	return s.Workers
}

func (s *SeasonSimulator) prepare(league *domain.League, cfg SimulationConfig) (*preparedRun, error) {
	if cfg.Trials <= 0 {
		return nil, fmt.Errorf("%w: trial count must be positive, got %d", domain.ErrInvalidArgument, cfg.Trials)
	}
	if err := league.Validate(); err != nil {
		return nil, err
	}
	ranking, err := ParseRankingMode(string(cfg.Ranking))
	if err != nil {
		return nil, err
	}
	resolver, err := NewResolver(league)
	if err != nil {
		return nil, err
	}

	firstWeek := cfg.FirstWeek
	if firstWeek == 0 {
		firstWeek = league.FirstUndeterminedWeek()
	}
	if firstWeek < 1 || firstWeek > league.RegularSeasonWeeks+1 {
		return nil, fmt.Errorf("%w: first week %d is outside the regular season (1-%d)", domain.ErrInvalidArgument, firstWeek, league.RegularSeasonWeeks)
	}

	start := LedgerFromLeague(league, firstWeek-1)
	recorded, historyEnd := applyRecorded(league, start, firstWeek)
	pinned, err := applyWhatIf(league, start, cfg.WhatIf, firstWeek, recorded)
	if err != nil {
		return nil, err
	}

	var weeks [][]Matchup
	needed := make(map[int]bool)
	for week := firstWeek; week <= league.RegularSeasonWeeks; week++ {
		var games []Matchup
		for _, m := range WeekMatchups(league, week) {
			if pinned[m] || recorded[m] {
				continue
			}
			games = append(games, m)
			needed[m.TeamA] = true
			needed[m.TeamB] = true
		}
		weeks = append(weeks, games)
	}
	ids := make([]int, 0, len(needed))
	for id := range needed {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	sampler, err := NewScoreSampler(league, ids, historyEnd, cfg.ClampNegativeScores)
	if err != nil {
		return nil, err
	}

	divisions := league.DivisionMembers()
	divisionOf := make(map[int]int, len(league.Teams))
	for _, t := range league.Teams {
		divisionOf[t.ID] = t.DivisionID
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = seedFunc()
	}

	return &preparedRun{
		plan: &seasonPlan{
			weeks:        weeks,
			sampler:      sampler,
			ranking:      ranking,
			resolver:     resolver,
			divisions:    divisions,
			divisionOf:   divisionOf,
			playoffCount: league.PlayoffTeamCount,
		},
		start:     start,
		seed:      seed,
		trials:    cfg.Trials,
		firstWeek: firstWeek,
		lastWeek:  league.RegularSeasonWeeks,
		ranking:   ranking,
	}, nil
}

// applyRecorded writes games that are already final in weeks from firstWeek
// on into the starting ledger with their real scores, so a partly played week
// only simulates what is left. It also returns the week the score history
// runs up to.
func applyRecorded(league *domain.League, start *Ledger, firstWeek int) (map[Matchup]bool, int) {
	recorded := make(map[Matchup]bool)
	historyEnd := firstWeek
	for week := firstWeek; week <= league.RegularSeasonWeeks; week++ {
		for _, m := range WeekMatchups(league, week) {
			a, b, ok := recordedResult(league, m)
			if !ok {
				continue
			}
			start.ApplyMatchup(m, a, b)
			recorded[m] = true
			historyEnd = week + 1
		}
	}
	return recorded, historyEnd
}

// applyWhatIf writes resolved pins into the starting ledger and returns the
// pinned matchups so the trials skip them.
func applyWhatIf(league *domain.League, start *Ledger, whatIf *domain.WhatIf, firstWeek int, recorded map[Matchup]bool) (map[Matchup]bool, error) {
	pinned := make(map[Matchup]bool)
	if whatIf == nil || len(whatIf.Outcomes) == 0 {
		return pinned, nil
	}
	week := whatIf.Week
	if week == 0 {
		week = firstWeek
	}
	if week < firstWeek || week > league.RegularSeasonWeeks {
		return nil, fmt.Errorf("%w: what-if week %d is not a simulated week (%d-%d)", domain.ErrInvalidArgument, week, firstWeek, league.RegularSeasonWeeks)
	}

	scheduled := make(map[Matchup]bool)
	for _, m := range WeekMatchups(league, week) {
		scheduled[m] = true
	}
	seen := make(map[Matchup]bool, len(whatIf.Outcomes))
	for _, pin := range whatIf.Outcomes {
		m := NewMatchup(week, pin.TeamA, pin.TeamB)
		if !scheduled[m] {
			return nil, fmt.Errorf("%w: teams %d and %d do not play in week %d", domain.ErrInvalidArgument, pin.TeamA, pin.TeamB, week)
		}
		if seen[m] {
			return nil, fmt.Errorf("%w: matchup %d vs %d is pinned twice", domain.ErrInvalidArgument, pin.TeamA, pin.TeamB)
		}
		if recorded[m] {
			return nil, fmt.Errorf("%w: matchup %d vs %d in week %d already has a final result", domain.ErrInvalidArgument, pin.TeamA, pin.TeamB, week)
		}
		seen[m] = true
		switch pin.Result {
		case domain.PinUnresolved:
			continue
		case domain.PinSideAWins, domain.PinSideBWins:
		default:
			return nil, fmt.Errorf("%w: unknown pin result %d for %d vs %d", domain.ErrInvalidArgument, pin.Result, pin.TeamA, pin.TeamB)
		}
		winner, _ := pin.Winner()
		start.ApplyPinned(m, winner)
		pinned[m] = true
	}
	return pinned, nil
}

// runTrials fans the trials out over the worker pool and waits for all of
// them. The first failure cancels the rest and is returned.
func (s *SeasonSimulator) runTrials(ctx context.Context, run *preparedRun) ([]*TrialResult, error) {
	results := make([]*TrialResult, run.trials)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers())

	for i := 0; i < run.trials; i++ {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := run.plan.complete(run.start, trialSource(run.seed, i))
			if err != nil {
				return fmt.Errorf("trial %d: %w", i, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

type teamTally struct {
	wins, ties, losses int
	pointsFor          float64
	playoffs           int
	firstInLeague      int
	firstInDivision    int
	lastInDivision     int
	lastInLeague       int
	ranks              []int
}

// aggregate merges finished trials into the three probability tables. It
// runs on one goroutine after every trial has finished.
func aggregate(league *domain.League, results []*TrialResult) *domain.ProjectionResult {
	n := len(results)
	teamCount := len(league.Teams)
	tallies := make(map[int]*teamTally, teamCount)
	for _, id := range league.TeamIDs() {
		tallies[id] = &teamTally{ranks: make([]int, teamCount)}
	}

	for _, res := range results {
		for _, f := range res.Finishes {
			t := tallies[f.TeamID]
			t.wins += f.Wins
			t.ties += f.Ties
			t.losses += f.Losses
			t.pointsFor += f.PointsFor
			t.ranks[f.Rank-1]++
			if f.MadePlayoffs {
				t.playoffs++
			}
			if f.Rank == 1 {
				t.firstInLeague++
			}
			if f.DivisionRank == 1 {
				t.firstInDivision++
			}
			if f.LastInDivision {
				t.lastInDivision++
			}
			if f.Rank == teamCount {
				t.lastInLeague++
			}
		}
	}

	out := &domain.ProjectionResult{Trials: n}
	for _, id := range league.TeamIDs() {
		team, _ := league.Team(id)
		t := tallies[id]
		odds := percent.Of(t.playoffs, n)

		out.PlayoffOdds = append(out.PlayoffOdds, domain.PlayoffOddsRow{
			TeamID:      id,
			Name:        team.Name,
			Owner:       team.Owner,
			Wins:        percent.MeanInt(t.wins, n, 1),
			Ties:        percent.MeanInt(t.ties, n, 1),
			Losses:      percent.MeanInt(t.losses, n, 1),
			PointsFor:   percent.Mean(t.pointsFor, n, 2),
			PlayoffOdds: odds,
		})

		rankOdds := make([]decimal.Decimal, teamCount)
		for r, count := range t.ranks {
			rankOdds[r] = percent.Of(count, n)
		}
		out.RankDistribution = append(out.RankDistribution, domain.RankDistributionRow{
			TeamID:      id,
			Name:        team.Name,
			Owner:       team.Owner,
			RankOdds:    rankOdds,
			PlayoffOdds: odds,
		})

		out.SeedingOutcomes = append(out.SeedingOutcomes, domain.SeedingOutcomeRow{
			TeamID:          id,
			Name:            team.Name,
			Owner:           team.Owner,
			FirstInLeague:   percent.Of(t.firstInLeague, n),
			FirstInDivision: percent.Of(t.firstInDivision, n),
			MakePlayoffs:    odds,
			LastInDivision:  percent.Of(t.lastInDivision, n),
			LastInLeague:    percent.Of(t.lastInLeague, n),
		})
	}

	sort.SliceStable(out.PlayoffOdds, func(i, j int) bool {
		a, b := out.PlayoffOdds[i], out.PlayoffOdds[j]
		if !a.PlayoffOdds.Equal(b.PlayoffOdds) {
			return a.PlayoffOdds.GreaterThan(b.PlayoffOdds)
		}
		return a.Wins.GreaterThan(b.Wins)
	})
	sort.SliceStable(out.RankDistribution, func(i, j int) bool {
		a, b := out.RankDistribution[i], out.RankDistribution[j]
		if !a.PlayoffOdds.Equal(b.PlayoffOdds) {
			return a.PlayoffOdds.GreaterThan(b.PlayoffOdds)
		}
		return a.RankOdds[0].GreaterThan(b.RankOdds[0])
	})
	sort.SliceStable(out.SeedingOutcomes, func(i, j int) bool {
		a, b := out.SeedingOutcomes[i], out.SeedingOutcomes[j]
		if !a.MakePlayoffs.Equal(b.MakePlayoffs) {
			return a.MakePlayoffs.GreaterThan(b.MakePlayoffs)
		}
		return a.FirstInLeague.GreaterThan(b.FirstInLeague)
	})
	return out
}
