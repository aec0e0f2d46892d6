package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ffodds/season-projector/internal/config"
	"github.com/ffodds/season-projector/internal/output"
)

func (a *app) exampleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "example [path]",
		Short: "Write an example league file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "example_league.yaml"
			if len(args) == 1 {
				path = args[0]
			}
			league := config.NewInputParser().CreateExampleLeague()
			if err := output.SaveLeague(league, path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Example league written to %s\n", path)
			return nil
		},
	}
}
