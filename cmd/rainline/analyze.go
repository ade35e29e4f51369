package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/yourusername/rainline/internal/service"
)

var includePractice bool

var analyzeCmd = &cobra.Command{
	Use:   "analyze [season...]",
	Short: "Compute and persist wet-weather standings",
	Long: `Analyses every wet session of the given seasons and persists the ranked
standings. Without arguments the seasons listed under analysis.seasons are used.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.close()

		runner := a.runner
		if cmd.Flags().Changed("include-practice") {
			runner = service.NewAnalysisRunner(a.engine, a.repos.Standings, a.standings, includePractice, a.logger)
		}

		seasons, err := parseSeasons(args, a.cfg.Analysis.Seasons)
		if err != nil {
			return err
		}

		outcomes, batch, err := runner.RunSeasons(ctx, seasons)
		for _, outcome := range outcomes {
			fmt.Println(describeOutcome(outcome))
		}
		a.logger.Info(batch.String())
		return err
	},
}

func init() {
	analyzeCmd.Flags().BoolVar(&includePractice, "include-practice", true, "Include wet practice sessions in addition to races and qualifying")
}

func parseSeasons(args []string, configured []int) ([]int, error) {
	if len(args) == 0 {
		if len(configured) == 0 {
			return nil, fmt.Errorf("no seasons given and analysis.seasons is empty")
		}
		return configured, nil
	}

	seasons := make([]int, 0, len(args))
	for _, arg := range args {
		year, err := strconv.Atoi(arg)
		if err != nil {
			return nil, fmt.Errorf("invalid season %q: %w", arg, err)
		}
		seasons = append(seasons, year)
	}
	return seasons, nil
}

func describeOutcome(outcome *service.RunOutcome) string {
	if !outcome.Saved {
		return fmt.Sprintf("%d: no wet-weather data, nothing saved", outcome.Season)
	}
	wetSessions := 0
	if outcome.Report != nil {
		wetSessions = len(outcome.Report.WetSessions)
	}
	return fmt.Sprintf("%d: %d drivers ranked, %d wet sessions", outcome.Season, outcome.Drivers, wetSessions)
}
