package main

import (
	"github.com/spf13/cobra"

	"github.com/ffodds/season-projector/internal/calculation"
	"github.com/ffodds/season-projector/internal/output"
)

func (a *app) standingsCmd() *cobra.Command {
	var (
		week      int
		divisions bool
	)
	cmd := &cobra.Command{
		Use:   "standings <league.yaml>",
		Short: "Show current standings under the league's tiebreak policy",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			league, err := a.loadLeague(args[0])
			if err != nil {
				return err
			}
			if week < 0 {
				week = league.FirstUndeterminedWeek() - 1
			}
			rows, err := calculation.ResolveCurrentStandings(league, week)
			if err != nil {
				return err
			}
			report := &output.Report{League: league.Name, ThroughWeek: week, Standings: rows}
			if divisions {
				if report.Divisions, err = calculation.ResolveDivisionStandings(league, week); err != nil {
					return err
				}
			}
			return a.render(cmd, report)
		},
	}
	cmd.Flags().IntVarP(&week, "week", "w", -1, "resolve standings through this week (default: last completed week)")
	cmd.Flags().BoolVar(&divisions, "divisions", false, "also show each division's standings")
	return cmd
}
