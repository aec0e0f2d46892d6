package main

import (
	"github.com/spf13/cobra"

	"github.com/ffodds/season-projector/internal/calculation"
	"github.com/ffodds/season-projector/internal/output"
)

func (a *app) scheduleCmd() *cobra.Command {
	var fromWeek int
	cmd := &cobra.Command{
		Use:   "schedule <league.yaml>",
		Short: "Rate each team's remaining strength of schedule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			league, err := a.loadLeague(args[0])
			if err != nil {
				return err
			}
			rows, err := calculation.RemainingStrengthOfSchedule(league, fromWeek)
			if err != nil {
				return err
			}
			return a.render(cmd, &output.Report{League: league.Name, Schedule: rows})
		},
	}
	cmd.Flags().IntVar(&fromWeek, "from-week", 0, "first remaining week (default: first undetermined week)")
	return cmd
}
