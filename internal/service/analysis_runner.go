package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/rainline/internal/analysis"
	"github.com/yourusername/rainline/internal/logger"
	"github.com/yourusername/rainline/internal/models"
	"github.com/yourusername/rainline/internal/repository"
)

// Analyzer runs a season analysis
type Analyzer interface {
	Analyze(ctx context.Context, year int, includePractice bool) (*analysis.Run, error)
}

// CacheInvalidator drops cached views of a season
type CacheInvalidator interface {
	Invalidate(year int)
}

// RunOutcome describes what a run produced
type RunOutcome struct {
	Season  int
	Saved   bool
	Drivers int
	Report  *analysis.RunReport
}

// AnalysisRunner computes seasons and persists non-empty standings
type AnalysisRunner struct {
	analyzer        Analyzer
	repo            repository.StandingsRepository
	invalidator     CacheInvalidator
	includePractice bool
	audit           *logger.AuditLogger
	logger          *logrus.Logger
}

// NewAnalysisRunner creates a new runner. invalidator may be nil.
func NewAnalysisRunner(analyzer Analyzer, repo repository.StandingsRepository, invalidator CacheInvalidator, includePractice bool, log *logrus.Logger) *AnalysisRunner {
	if log == nil {
		log = logrus.New()
	}
	return &AnalysisRunner{
		analyzer:        analyzer,
		repo:            repo,
		invalidator:     invalidator,
		includePractice: includePractice,
		audit:           logger.NewAuditLogger(log),
		logger:          log,
	}
}

// RunAndSave analyses one season and saves the standings. A season without
// wet sessions is reported but nothing is written.
func (r *AnalysisRunner) RunAndSave(ctx context.Context, year int) (*RunOutcome, error) {
	r.logger.WithField("season", year).Info("Starting analysis")

	run, err := r.analyzer.Analyze(ctx, year, r.includePractice)
	if errors.Is(err, analysis.ErrEmptySeason) {
		outcome := &RunOutcome{Season: year}
		if run != nil {
			outcome.Report = run.Report
			r.audit.LogStandingsNotSaved(year, run.Report.RunID, "no wet session data")
		}
		return outcome, nil
	}
	if err != nil {
		return nil, fmt.Errorf("analysis for %d failed: %w", year, err)
	}

	standings := &models.SeasonStandings{
		Season:     year,
		RunID:      run.Report.RunID,
		ComputedAt: run.Report.FinishedAt,
		Standings:  run.Results,
	}
	if err := r.repo.Save(ctx, standings); err != nil {
		return nil, fmt.Errorf("failed to save analysis for %d: %w", year, err)
	}
	r.audit.LogStandingsSaved(year, standings.RunID, r.repo.Backend(), len(standings.Standings), standings.ComputedAt)

	if r.invalidator != nil {
		r.invalidator.Invalidate(year)
	}

	return &RunOutcome{
		Season:  year,
		Saved:   true,
		Drivers: len(standings.Standings),
		Report:  run.Report,
	}, nil
}

// RunSeasons runs every season in order. A failing season does not stop the
// batch; failures are joined into the returned error.
func (r *AnalysisRunner) RunSeasons(ctx context.Context, seasons []int) ([]*RunOutcome, *BatchMetrics, error) {
	metrics := NewBatchMetrics()
	outcomes := make([]*RunOutcome, 0, len(seasons))
	var errs []error

	for _, year := range seasons {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}

		outcome, err := r.RunAndSave(ctx, year)
		if err != nil {
			r.logger.WithError(err).WithField("season", year).Error("Season analysis failed")
			metrics.RecordError()
			errs = append(errs, err)
			continue
		}
		if outcome.Saved {
			metrics.RecordSaved(outcome.Drivers)
		} else {
			metrics.RecordEmpty()
		}
		outcomes = append(outcomes, outcome)
	}

	metrics.Finish()
	r.logger.WithField("summary", metrics.String()).Info("Analysis batch finished")
	return outcomes, metrics, errors.Join(errs...)
}
