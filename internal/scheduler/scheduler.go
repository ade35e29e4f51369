// Package scheduler runs the periodic standings precompute.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/rainline/internal/service"
)

// SeasonRunner computes and persists a batch of seasons
type SeasonRunner interface {
	RunSeasons(ctx context.Context, seasons []int) ([]*service.RunOutcome, *service.BatchMetrics, error)
}

// Scheduler manages scheduled precompute jobs
type Scheduler struct {
	cron            *cron.Cron
	runner          SeasonRunner
	logger          *logrus.Logger
	mu              sync.RWMutex
	isRunning       bool
	jobIDs          []cron.EntryID
	jobTimeout      time.Duration
	gracefulTimeout time.Duration
	baseCtx         context.Context
	cancel          context.CancelFunc
}

// NewScheduler creates a new scheduler
func NewScheduler(runner SeasonRunner, logger *logrus.Logger) *Scheduler {
	if logger == nil {
		logger = logrus.New()
	}
	baseCtx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		cron:            cron.New(cron.WithLocation(time.UTC), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		runner:          runner,
		logger:          logger,
		jobIDs:          make([]cron.EntryID, 0),
		jobTimeout:      4 * time.Hour,
		gracefulTimeout: 30 * time.Second,
		baseCtx:         baseCtx,
		cancel:          cancel,
	}
}

// SchedulePrecompute schedules recomputation of the given seasons
func (s *Scheduler) SchedulePrecompute(cronExpression string, seasons []int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("cannot schedule job while scheduler is running")
	}
	if len(seasons) == 0 {
		return fmt.Errorf("no seasons configured for precompute")
	}

	targets := append([]int(nil), seasons...)
	entryID, err := s.cron.AddFunc(cronExpression, func() {
		ctx, cancel := context.WithTimeout(s.baseCtx, s.jobTimeout)
		defer cancel()
		s.RunOnce(ctx, targets)
	})
	if err != nil {
		return fmt.Errorf("failed to add job: %w", err)
	}

	s.jobIDs = append(s.jobIDs, entryID)
	s.logger.WithFields(logrus.Fields{
		"cron":    cronExpression,
		"seasons": targets,
	}).Info("Scheduled standings precompute")

	return nil
}

// RunOnce runs a single precompute pass and logs its outcome
func (s *Scheduler) RunOnce(ctx context.Context, seasons []int) {
	s.logger.WithField("seasons", seasons).Info("Starting scheduled precompute")

	_, batch, err := s.runner.RunSeasons(ctx, seasons)
	entry := s.logger.WithField("seasons", seasons)
	if batch != nil {
		entry = entry.WithField("summary", batch.String())
	}
	if err != nil {
		entry.WithError(err).Error("Scheduled precompute finished with errors")
		return
	}
	entry.Info("Scheduled precompute completed")
}

// Start starts the scheduler
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("scheduler is already running")
	}
	if len(s.jobIDs) == 0 {
		return fmt.Errorf("no jobs scheduled")
	}
	if s.baseCtx.Err() != nil {
		return fmt.Errorf("scheduler was stopped")
	}

	s.cron.Start()
	s.isRunning = true
	s.logger.WithField("jobs", len(s.jobIDs)).Info("Scheduler started")

	return nil
}

// Stop cancels in-flight jobs and waits for them, up to the graceful timeout.
// A stopped scheduler cannot be restarted.
func (s *Scheduler) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return nil
	}

	s.isRunning = false
	s.cancel()
	select {
	case <-s.cron.Stop().Done():
		s.logger.Info("Scheduler stopped")
		return nil
	case <-time.After(s.gracefulTimeout):
		return fmt.Errorf("scheduler stop timed out after %s", s.gracefulTimeout)
	}
}

// IsRunning returns whether the scheduler is currently running
func (s *Scheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// GetNextRun returns the time of the next scheduled job run
func (s *Scheduler) GetNextRun() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning || len(s.jobIDs) == 0 {
		return time.Time{}
	}

	nextRun := time.Time{}
	for _, jobID := range s.jobIDs {
		entry := s.cron.Entry(jobID)
		if entry.Valid() && (nextRun.IsZero() || entry.Next.Before(nextRun)) {
			nextRun = entry.Next
		}
	}
	return nextRun
}
