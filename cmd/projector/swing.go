package main

import (
	"github.com/spf13/cobra"

	"github.com/ffodds/season-projector/internal/calculation"
	"github.com/ffodds/season-projector/internal/output"
)

func (a *app) swingCmd() *cobra.Command {
	var (
		f    simFlags
		week int
	)
	cmd := &cobra.Command{
		Use:   "swing <league.yaml>",
		Short: "Measure how much each matchup of a week moves playoff odds",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			league, err := a.loadLeague(args[0])
			if err != nil {
				return err
			}
			ranking, err := calculation.ParseRankingMode(f.ranking)
			if err != nil {
				return err
			}
			report, err := a.simulator(f.workers).ComputeSwing(cmd.Context(), league, calculation.SwingConfig{
				Week:                week,
				Trials:              f.trials,
				Seed:                f.seed,
				FirstWeek:           f.firstWeek,
				Ranking:             ranking,
				ClampNegativeScores: f.clampNegative,
			})
			if err != nil {
				return err
			}
			return a.render(cmd, &output.Report{League: league.Name, Swing: report})
		},
	}
	a.bindSimFlags(cmd, &f, a.settings.SwingTrials)
	cmd.Flags().IntVarP(&week, "week", "w", 0, "week to analyze (default: first simulated week)")
	return cmd
}
