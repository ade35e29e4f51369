package logger

import (
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// AnalysisLogger provides structured logging for season analysis runs.
type AnalysisLogger struct {
	*logrus.Entry
}

// NewAnalysisLogger creates a new analysis logger.
func NewAnalysisLogger(baseLogger *logrus.Logger) *AnalysisLogger {
	return &AnalysisLogger{
		Entry: baseLogger.WithField("component", "analysis"),
	}
}

// WithRun scopes the logger to a single analysis run.
func (al *AnalysisLogger) WithRun(runID uuid.UUID, season int) *AnalysisLogger {
	return &AnalysisLogger{
		Entry: al.WithFields(logrus.Fields{
			"run_id": runID.String(),
			"season": season,
		}),
	}
}

// LogRunStarted logs the start of a season analysis.
func (al *AnalysisLogger) LogRunStarted(includePractice bool, concurrency int) {
	al.WithFields(logrus.Fields{
		"include_practice": includePractice,
		"concurrency":      concurrency,
	}).Info("Season analysis started")
}

// LogEventSkipped logs an event excluded from analysis.
func (al *AnalysisLogger) LogEventSkipped(event, reason string) {
	al.WithFields(logrus.Fields{
		"event":  event,
		"reason": reason,
	}).Info("Event skipped")
}

// LogSessionSkipped logs a session excluded from analysis.
func (al *AnalysisLogger) LogSessionSkipped(event, session, reason string) {
	al.WithFields(logrus.Fields{
		"event":   event,
		"session": session,
		"reason":  reason,
	}).Debug("Session skipped")
}

// LogLoadFailure logs a session that could not be loaded.
func (al *AnalysisLogger) LogLoadFailure(event, session string, err error) {
	al.WithFields(logrus.Fields{
		"event":   event,
		"session": session,
	}).WithError(err).Warn("Session load failed")
}

// LogWetSession logs a wet session that entered the comparison.
func (al *AnalysisLogger) LogWetSession(event, session, baseline string, drivers int) {
	al.WithFields(logrus.Fields{
		"event":    event,
		"session":  session,
		"baseline": baseline,
		"drivers":  drivers,
	}).Info("Wet session analysed")
}

// LogRunCompleted logs the outcome of a season analysis.
func (al *AnalysisLogger) LogRunCompleted(drivers, wetSessions, skipped int, duration time.Duration) {
	al.WithFields(logrus.Fields{
		"drivers":      drivers,
		"wet_sessions": wetSessions,
		"skipped":      skipped,
		"duration_ms":  duration.Milliseconds(),
	}).Info("Season analysis completed")
}
