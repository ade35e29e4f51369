package analysis

import (
	"time"

	"github.com/google/uuid"

	"github.com/yourusername/rainline/internal/models"
)

// SkipReason explains why an event or session did not contribute results
type SkipReason string

const (
	SkipTestingEvent     SkipReason = "testing_event"
	SkipNoBaseline       SkipReason = "no_baseline"
	SkipLoadFailed       SkipReason = "load_failed"
	SkipBaselineRejected SkipReason = "baseline_rejected"
	SkipDrySession       SkipReason = "dry_session"
)

// Skip is one entry of the run report. Session is empty for event-level skips.
type Skip struct {
	Event   string             `json:"event"`
	Session models.SessionType `json:"session,omitempty"`
	Reason  SkipReason         `json:"reason"`
	Cause   string             `json:"cause,omitempty"`
	Err     error              `json:"-"`
}

func newSkip(event string, session models.SessionType, reason SkipReason, err error) Skip {
	s := Skip{Event: event, Session: session, Reason: reason}
	if err != nil {
		s.Err = err
		s.Cause = err.Error()
	}
	return s
}

// RunReport summarises one season analysis for diagnosis
type RunReport struct {
	RunID           uuid.UUID `json:"run_id"`
	Season          int       `json:"season"`
	IncludePractice bool      `json:"include_practice"`
	StartedAt       time.Time `json:"started_at"`
	FinishedAt      time.Time `json:"finished_at"`
	EventsAnalyzed  int       `json:"events_analyzed"`
	WetSessions     []string  `json:"wet_sessions"`
	Skipped         []Skip    `json:"skipped"`
}

func newRunReport(season int, includePractice bool) *RunReport {
	return &RunReport{
		RunID:           uuid.New(),
		Season:          season,
		IncludePractice: includePractice,
		StartedAt:       time.Now().UTC(),
	}
}

// SkippedFor returns the skips recorded for one reason
func (r *RunReport) SkippedFor(reason SkipReason) []Skip {
	var out []Skip
	for _, s := range r.Skipped {
		if s.Reason == reason {
			out = append(out, s)
		}
	}
	return out
}

// Duration returns how long the run took
func (r *RunReport) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}
