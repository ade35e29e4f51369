package logger

import (
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// AuditLogger provides dedicated audit trail logging for persisted results.
type AuditLogger struct {
	*logrus.Entry
}

// NewAuditLogger creates a new audit logger.
func NewAuditLogger(baseLogger *logrus.Logger) *AuditLogger {
	return &AuditLogger{
		Entry: baseLogger.WithField("component", "audit"),
	}
}

// LogStandingsSaved logs that a season's standings were written to storage.
func (al *AuditLogger) LogStandingsSaved(season int, runID uuid.UUID, backend string, drivers int, computedAt time.Time) {
	al.WithFields(logrus.Fields{
		"season":      season,
		"run_id":      runID.String(),
		"backend":     backend,
		"drivers":     drivers,
		"computed_at": computedAt.UTC().Format(time.RFC3339),
	}).Info("Season standings saved")
}

// LogStandingsNotSaved logs that a run finished without anything to persist.
func (al *AuditLogger) LogStandingsNotSaved(season int, runID uuid.UUID, reason string) {
	al.WithFields(logrus.Fields{
		"season": season,
		"run_id": runID.String(),
		"reason": reason,
	}).Warn("Season standings not saved")
}

// LogConfigLoaded logs the effective analysis configuration at startup.
func (al *AuditLogger) LogConfigLoaded(environment, provider, storage string, includePractice bool, policy string) {
	al.WithFields(logrus.Fields{
		"environment":            environment,
		"telemetry_provider":     provider,
		"storage_backend":        storage,
		"include_practice":       includePractice,
		"missing_weather_policy": policy,
	}).Info("Configuration loaded")
}
