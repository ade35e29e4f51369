package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/yourusername/rainline/internal/api"
	"github.com/yourusername/rainline/internal/health"
	"github.com/yourusername/rainline/internal/scheduler"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve persisted standings over HTTP",
	Long:  `Starts the HTTP API and, when schedule.enabled is set, the periodic precompute of analysis.seasons.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.close()

		deps := map[string]health.Pinger{}
		if a.db != nil {
			deps["database"] = a.db
		}
		checker := health.NewChecker(health.Config{
			ServiceName:  a.cfg.App.Name,
			Version:      Version,
			Commit:       GitCommit,
			Dependencies: deps,
		})

		serverCfg := api.DefaultServerConfig(a.cfg.GetAPIAddress())
		serverCfg.MetricsEnabled = a.cfg.Metrics.Enabled
		serverCfg.MetricsPath = a.cfg.Metrics.Path
		server := api.NewServer(serverCfg, a.standings, checker, a.logger)

		var sched *scheduler.Scheduler
		if a.cfg.Schedule.Enabled {
			sched = scheduler.NewScheduler(a.runner, a.logger)
			if err := sched.SchedulePrecompute(a.cfg.Schedule.Cron, a.cfg.Analysis.Seasons); err != nil {
				return fmt.Errorf("failed to schedule precompute: %w", err)
			}
			if err := sched.Start(); err != nil {
				return fmt.Errorf("failed to start scheduler: %w", err)
			}
		}

		errCh := make(chan error, 1)
		go func() {
			errCh <- server.Start()
		}()
		checker.SetReady(true)

		select {
		case err := <-errCh:
			if err != nil {
				return fmt.Errorf("api server failed: %w", err)
			}
		case <-ctx.Done():
		}

		checker.SetReady(false)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if sched != nil {
			if err := sched.Stop(); err != nil {
				a.logger.WithError(err).Warn("Scheduler did not stop cleanly")
			}
		}
		return server.Shutdown(shutdownCtx)
	},
}
