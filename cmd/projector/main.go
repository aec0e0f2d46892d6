package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/ffodds/season-projector/internal/calculation"
	"github.com/ffodds/season-projector/internal/config"
	"github.com/ffodds/season-projector/internal/domain"
	"github.com/ffodds/season-projector/internal/logger"
	"github.com/ffodds/season-projector/internal/output"
)

// app carries the state shared by every subcommand.
type app struct {
	settings *config.Settings
	log      *slog.Logger

	format    string
	output    string
	logLevel  string
	logFormat string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd(config.LoadSettings()).ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(settings *config.Settings) *cobra.Command {
	a := &app{settings: settings}

	root := &cobra.Command{
		Use:   "projector",
		Short: "Fantasy football standings and playoff odds projector",
		Long: `projector resolves current standings under a league's tiebreak policy and
runs Monte Carlo simulations of the rest of the regular season to estimate
playoff odds, final rank distribution, seeding outcomes and matchup swing.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			a.log = logger.Init(a.logLevel, a.logFormat)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&a.format, "format", "f", "console", fmt.Sprintf("output format (%v)", output.AvailableFormatterNames()))
	pf.StringVarP(&a.output, "output", "o", "", "write the report to this file instead of stdout")
	pf.StringVar(&a.logLevel, "log-level", settings.LogLevel, "log level (debug, info, warn, error)")
	pf.StringVar(&a.logFormat, "log-format", settings.LogFormat, "log format (text, json)")

	root.AddCommand(
		a.standingsCmd(),
		a.simulateCmd(),
		a.swingCmd(),
		a.scheduleCmd(),
		a.exampleCmd(),
	)
	return root
}

func (a *app) loadLeague(path string) (*domain.League, error) {
	league, err := config.NewInputParser().LoadFromFile(path)
	if err != nil {
		return nil, err
	}
	a.log.Debug("league loaded", "file", path, "teams", len(league.Teams), "weeks", league.RegularSeasonWeeks)
	return league, nil
}

func (a *app) simulator(workers int) *calculation.SeasonSimulator {
	sim := calculation.NewSeasonSimulator(workers)
	sim.SetLogger(logger.NewEngineLogger(a.log))
	return sim
}

// render writes the report to --output or to the command's stdout.
func (a *app) render(cmd *cobra.Command, r *output.Report) error {
	if a.output == "" {
		return output.GenerateReport(cmd.OutOrStdout(), r, a.format)
	}
	f := output.GetFormatterByName(a.format)
	if f == nil {
		return output.GenerateReport(cmd.OutOrStdout(), r, a.format)
	}
	path, err := output.WriteFormatted(f, r, a.output)
	if err != nil {
		return err
	}
	a.log.Info("report written", "file", path, "format", f.Name())
	return nil
}
