package analysis

import (
	"context"
	"sync"

	"github.com/yourusername/rainline/internal/logger"
	"github.com/yourusername/rainline/internal/models"
	"github.com/yourusername/rainline/internal/telemetry"
)

// Baseline is the dry reference session of one event. Driver paces are
// computed on first use and memoized.
type Baseline struct {
	Event   string
	Session *models.Session

	mu    sync.Mutex
	paces map[string]baselinePace
}

type baselinePace struct {
	pace float64
	laps int
	ok   bool
}

// NewBaseline wraps a dry session as an event baseline
func NewBaseline(event string, session *models.Session) *Baseline {
	return &Baseline{
		Event:   event,
		Session: session,
		paces:   make(map[string]baselinePace),
	}
}

// Label returns the baseline session label, e.g. "FP2"
func (b *Baseline) Label() string {
	return b.Session.Label()
}

// Type returns the baseline session type
func (b *Baseline) Type() models.SessionType {
	return b.Session.Type
}

// Pace returns a driver's dry pace in seconds
func (b *Baseline) Pace(driver string) (float64, bool) {
	p := b.lookup(driver)
	return p.pace, p.ok
}

// LapCount returns the number of laps behind a driver's dry pace
func (b *Baseline) LapCount(driver string) int {
	return b.lookup(driver).laps
}

func (b *Baseline) lookup(driver string) baselinePace {
	b.mu.Lock()
	defer b.mu.Unlock()

	if p, ok := b.paces[driver]; ok {
		return p
	}
	pace, laps, ok := DryPace(b.Session, driver)
	p := baselinePace{pace: pace, laps: laps, ok: ok}
	b.paces[driver] = p
	return p
}

// ResolveDryBaseline finds the first practice session of an event that loads
// and qualifies as dry. Load failures are logged and the next candidate is
// tried.
func (e *Engine) ResolveDryBaseline(ctx context.Context, year int, event models.Event) (*Baseline, bool) {
	baseline, _, _ := e.resolveBaseline(ctx, year, event, e.alog)
	return baseline, baseline != nil
}

// resolveBaseline also returns every practice load it attempted, keyed by
// session type, so the session pass does not request them again.
func (e *Engine) resolveBaseline(ctx context.Context, year int, event models.Event, alog *logger.AnalysisLogger) (*Baseline, []Skip, map[models.SessionType]telemetry.SessionResult) {
	var skips []Skip
	attempted := make(map[models.SessionType]telemetry.SessionResult)

	for _, st := range models.PracticeSessions {
		if !event.HasSession(st) {
			continue
		}
		if ctx.Err() != nil {
			return nil, skips, attempted
		}

		res := telemetry.Load(ctx, e.provider, year, event.Name, st)
		attempted[st] = res
		if !res.Loaded() {
			alog.LogLoadFailure(event.Name, string(st), res.Err)
			skips = append(skips, newSkip(event.Name, st, SkipLoadFailed, res.Err))
			continue
		}
		if !IsDryBaseline(res.Session, e.opts.MissingWeatherPolicy) {
			alog.LogSessionSkipped(event.Name, string(st), string(SkipBaselineRejected))
			continue
		}
		return NewBaseline(event.Name, res.Session), skips, attempted
	}
	return nil, skips, attempted
}
