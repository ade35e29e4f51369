// Package main provides the rainline command line entry point.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/rainline/internal/analysis"
	"github.com/yourusername/rainline/internal/cache"
	"github.com/yourusername/rainline/internal/config"
	"github.com/yourusername/rainline/internal/database"
	"github.com/yourusername/rainline/internal/logger"
	"github.com/yourusername/rainline/internal/metrics"
	"github.com/yourusername/rainline/internal/repository"
	"github.com/yourusername/rainline/internal/service"
	"github.com/yourusername/rainline/internal/telemetry"
)

// Build information - set via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var configFile string

// app holds the wired dependencies shared by the subcommands
type app struct {
	cfg       *config.Config
	logger    *logrus.Logger
	audit     *logger.AuditLogger
	db        *database.DB
	repos     *repository.Repositories
	engine    *analysis.Engine
	standings *service.StandingsService
	runner    *service.AnalysisRunner
}

var rootCmd = &cobra.Command{
	Use:     "rainline",
	Short:   "Wet-weather Formula 1 driver performance analysis",
	Long:    `Computes each driver's wet-to-dry pace delta per season, persists the standings and serves them over HTTP.`,
	Version: fmt.Sprintf("%s (commit %s, built %s)", Version, GitCommit, BuildDate),
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "./config/config.yaml", "Path to configuration file")
	rootCmd.AddCommand(analyzeCmd, serveCmd, seasonCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig(ctx context.Context) (*config.Config, error) {
	cfg, err := config.LoadWithDefaults(configFile)
	if err != nil {
		return nil, err
	}

	// Load AWS secrets if enabled
	if os.Getenv("AWS_SECRETS_ENABLED") == "true" {
		region := os.Getenv("AWS_REGION")
		secretName := os.Getenv("AWS_SECRET_NAME")
		if region == "" || secretName == "" {
			return nil, fmt.Errorf("AWS_REGION and AWS_SECRET_NAME must be set when AWS_SECRETS_ENABLED is true")
		}
		if err := config.LoadSecretsFromAWS(ctx, cfg, region, secretName); err != nil {
			return nil, fmt.Errorf("failed to load secrets: %w", err)
		}
	}

	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// newApp loads configuration and wires storage, telemetry and services
func newApp(ctx context.Context) (*app, error) {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log := logger.NewLogger(cfg.App.LogLevel, cfg.App.LogFormat)
	metrics.InitRegistry()

	a := &app{cfg: cfg, logger: log, audit: logger.NewAuditLogger(log)}
	a.audit.LogConfigLoaded(cfg.App.Environment, cfg.Telemetry.Provider, cfg.Storage.Backend,
		cfg.Analysis.IncludePractice, cfg.Analysis.MissingWeatherPolicy)

	if cfg.Storage.Backend == config.StorageBackendPostgres {
		initCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
		a.db, err = database.Initialize(initCtx, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
	}

	a.repos, err = repository.NewRepositories(cfg.Storage, a.db)
	if err != nil {
		a.close()
		return nil, fmt.Errorf("failed to initialize repositories: %w", err)
	}

	provider, err := telemetry.NewProvider(cfg.Telemetry, log)
	if err != nil {
		a.close()
		return nil, fmt.Errorf("failed to create telemetry provider: %w", err)
	}

	policy, err := analysis.ParseMissingWeatherPolicy(cfg.Analysis.MissingWeatherPolicy)
	if err != nil {
		a.close()
		return nil, err
	}
	a.engine = analysis.NewEngine(provider, analysis.Options{
		MissingWeatherPolicy: policy,
		Concurrency:          cfg.Analysis.Concurrency,
	}, log)

	a.standings = service.NewStandingsService(a.repos.Standings, cache.NewStore(cfg.CacheTTL()), a.engine, log)
	a.runner = service.NewAnalysisRunner(a.engine, a.repos.Standings, a.standings, cfg.Analysis.IncludePractice, log)

	return a, nil
}

func (a *app) close() {
	if a.db != nil {
		a.db.Close()
	}
}
