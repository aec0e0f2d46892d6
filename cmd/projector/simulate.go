package main

import (
	"github.com/spf13/cobra"

	"github.com/ffodds/season-projector/internal/calculation"
	"github.com/ffodds/season-projector/internal/config"
	"github.com/ffodds/season-projector/internal/domain"
	"github.com/ffodds/season-projector/internal/output"
)

// simFlags are the knobs shared by simulate and swing.
type simFlags struct {
	trials        int
	seed          int64
	workers       int
	firstWeek     int
	ranking       string
	clampNegative bool
}

func (a *app) bindSimFlags(cmd *cobra.Command, f *simFlags, trials int) {
	s := a.settings
	cmd.Flags().IntVarP(&f.trials, "trials", "n", trials, "number of simulated seasons")
	cmd.Flags().Int64Var(&f.seed, "seed", s.Seed, "base random seed (0 picks one)")
	cmd.Flags().IntVar(&f.workers, "workers", s.Workers, "parallel trial workers")
	cmd.Flags().IntVar(&f.firstWeek, "first-week", 0, "first week to simulate (default: first undetermined week)")
	cmd.Flags().StringVar(&f.ranking, "ranking", s.Ranking, "final ranking inside trials (simple, policy)")
	cmd.Flags().BoolVar(&f.clampNegative, "clamp-negative", s.ClampNegativeScores, "floor sampled scores at zero")
}

func (a *app) simulateCmd() *cobra.Command {
	var (
		f      simFlags
		whatIf string
		pinWk  int
	)
	cmd := &cobra.Command{
		Use:   "simulate <league.yaml>",
		Short: "Project playoff odds, rank distribution and seeding outcomes",
		Example: `  projector simulate league.yaml -n 5000 --seed 42
  projector simulate league.yaml --what-if "3>5,2>7" -f csv -o odds.csv`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			league, err := a.loadLeague(args[0])
			if err != nil {
				return err
			}
			ranking, err := calculation.ParseRankingMode(f.ranking)
			if err != nil {
				return err
			}
			cfg := calculation.SimulationConfig{
				Trials:              f.trials,
				Seed:                f.seed,
				FirstWeek:           f.firstWeek,
				Ranking:             ranking,
				ClampNegativeScores: f.clampNegative,
			}
			pins, err := config.ParseWhatIf(whatIf)
			if err != nil {
				return err
			}
			if len(pins) > 0 {
				cfg.WhatIf = &domain.WhatIf{Week: pinWk, Outcomes: pins}
			}

			result, err := a.simulator(f.workers).SimulateSeason(cmd.Context(), league, cfg)
			if err != nil {
				return err
			}
			return a.render(cmd, &output.Report{League: league.Name, Projection: result})
		},
	}
	a.bindSimFlags(cmd, &f, a.settings.Trials)
	cmd.Flags().StringVar(&whatIf, "what-if", "", `pinned results as "winner>loser" team id pairs, comma separated`)
	cmd.Flags().IntVar(&pinWk, "what-if-week", 0, "week the pinned results belong to (default: first simulated week)")
	return cmd
}
