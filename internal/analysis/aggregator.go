package analysis

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/yourusername/rainline/internal/logger"
	"github.com/yourusername/rainline/internal/metrics"
	"github.com/yourusername/rainline/internal/models"
	"github.com/yourusername/rainline/internal/telemetry"
)

const maxConcurrency = 16

// Options configures the engine
type Options struct {
	MissingWeatherPolicy MissingWeatherPolicy
	// Concurrency is the number of events analysed in parallel; 1 or less runs sequentially
	Concurrency int
}

// DefaultOptions returns sequential analysis accepting sessions without weather data
func DefaultOptions() Options {
	return Options{
		MissingWeatherPolicy: MissingWeatherAccept,
		Concurrency:          1,
	}
}

// Engine ranks drivers by wet-weather pace loss over a season
type Engine struct {
	provider telemetry.Provider
	opts     Options
	logger   *logrus.Logger
	alog     *logger.AnalysisLogger
}

// Run is the outcome of one season analysis
type Run struct {
	Results []models.DriverSeasonResult
	Report  *RunReport
}

// NewEngine creates an engine reading from provider
func NewEngine(provider telemetry.Provider, opts Options, log *logrus.Logger) *Engine {
	if log == nil {
		log = logrus.New()
	}
	if opts.MissingWeatherPolicy == "" {
		opts.MissingWeatherPolicy = MissingWeatherAccept
	}
	if opts.Concurrency > maxConcurrency {
		opts.Concurrency = maxConcurrency
	}
	return &Engine{
		provider: provider,
		opts:     opts,
		logger:   log,
		alog:     logger.NewAnalysisLogger(log),
	}
}

// Season lists the season's events without analysing them
func (e *Engine) Season(ctx context.Context, year int) ([]models.Event, error) {
	events, err := e.provider.EventSchedule(ctx, year, false)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch schedule: %w", err)
	}
	return events, nil
}

// CalculateSeasonalWetPerformance returns drivers ranked by average wet-to-dry
// delta. A season without wet sessions yields an empty slice and no error.
func (e *Engine) CalculateSeasonalWetPerformance(ctx context.Context, year int, includePractice bool) ([]models.DriverSeasonResult, error) {
	run, err := e.Analyze(ctx, year, includePractice)
	if errors.Is(err, ErrEmptySeason) {
		return run.Results, nil
	}
	if err != nil {
		return nil, err
	}
	return run.Results, nil
}

// Analyze runs the season analysis and returns results with the run report.
// It returns ErrEmptySeason together with the run when nothing was ranked.
// Only a schedule failure or cancellation aborts the run.
func (e *Engine) Analyze(ctx context.Context, year int, includePractice bool) (*Run, error) {
	report := newRunReport(year, includePractice)
	alog := e.alog.WithRun(report.RunID, year)
	alog.LogRunStarted(includePractice, e.opts.Concurrency)

	events, err := e.provider.EventSchedule(ctx, year, false)
	if err != nil {
		metrics.RecordAnalysisRun("failure", time.Since(report.StartedAt).Seconds())
		return nil, fmt.Errorf("failed to fetch schedule: %w", err)
	}

	partials, err := e.analyzeEvents(ctx, year, events, includePractice, alog)
	if err != nil {
		metrics.RecordAnalysisRun("failure", time.Since(report.StartedAt).Seconds())
		return nil, err
	}

	season := newSeasonBuilder()
	for _, p := range partials {
		report.Skipped = append(report.Skipped, p.skips...)
		report.WetSessions = append(report.WetSessions, p.wetSessions...)
		if p.analyzed {
			report.EventsAnalyzed++
		}
		for _, d := range p.details {
			season.add(d.driver, p.infos[d.driver], d.detail)
		}
	}
	for _, s := range report.Skipped {
		metrics.RecordSkipped(string(s.Reason))
	}

	run := &Run{Results: season.results(), Report: report}
	report.FinishedAt = time.Now().UTC()
	alog.LogRunCompleted(len(run.Results), len(report.WetSessions), len(report.Skipped), report.Duration())
	metrics.UpdateDriversRanked(year, len(run.Results))

	if len(run.Results) == 0 {
		metrics.RecordAnalysisRun("empty", report.Duration().Seconds())
		return run, ErrEmptySeason
	}
	metrics.RecordAnalysisRun("success", report.Duration().Seconds())
	return run, nil
}

// analyzeEvents produces one partial per event, in schedule order
func (e *Engine) analyzeEvents(ctx context.Context, year int, events []models.Event, includePractice bool, alog *logger.AnalysisLogger) ([]*eventPartial, error) {
	partials := make([]*eventPartial, len(events))

	if e.opts.Concurrency <= 1 {
		for i, event := range events {
			p, err := e.analyzeEvent(ctx, year, event, includePractice, alog)
			if err != nil {
				return nil, err
			}
			partials[i] = p
		}
		return partials, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.opts.Concurrency)
	for i, event := range events {
		g.Go(func() error {
			p, err := e.analyzeEvent(gctx, year, event, includePractice, alog)
			if err != nil {
				return err
			}
			partials[i] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return partials, nil
}

type driverDetail struct {
	driver string
	detail models.SessionDetail
}

// eventPartial holds everything one event contributes to a run. Partials
// share no state, so events can be analysed in parallel and merged later.
type eventPartial struct {
	event       string
	analyzed    bool
	details     []driverDetail
	infos       map[string]models.DriverInfo
	wetSessions []string
	skips       []Skip
}

func (e *Engine) analyzeEvent(ctx context.Context, year int, event models.Event, includePractice bool, alog *logger.AnalysisLogger) (*eventPartial, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p := &eventPartial{event: event.Name, infos: make(map[string]models.DriverInfo)}

	if event.IsTesting() {
		alog.LogEventSkipped(event.Name, string(SkipTestingEvent))
		p.skips = append(p.skips, newSkip(event.Name, "", SkipTestingEvent, nil))
		return p, nil
	}

	baseline, skips, attempted := e.resolveBaseline(ctx, year, event, alog)
	p.skips = append(p.skips, skips...)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if baseline == nil {
		alog.LogEventSkipped(event.Name, string(SkipNoBaseline))
		p.skips = append(p.skips, newSkip(event.Name, "", SkipNoBaseline, ErrNoBaseline))
		return p, nil
	}
	p.analyzed = true

	for _, st := range candidateSessions(event, includePractice) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		// The baseline already qualified as dry
		if st == baseline.Type() {
			p.skips = append(p.skips, newSkip(event.Name, st, SkipDrySession, nil))
			continue
		}

		res, reused := attempted[st]
		if !reused {
			res = telemetry.Load(ctx, e.provider, year, event.Name, st)
		}
		if !res.Loaded() {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			// Already logged and recorded while resolving the baseline
			if reused {
				continue
			}
			alog.LogLoadFailure(event.Name, string(st), res.Err)
			p.skips = append(p.skips, newSkip(event.Name, st, SkipLoadFailed, res.Err))
			continue
		}
		if !IsWet(res.Session) {
			alog.LogSessionSkipped(event.Name, string(st), string(SkipDrySession))
			p.skips = append(p.skips, newSkip(event.Name, st, SkipDrySession, nil))
			continue
		}

		n := p.addWetSession(res.Session, baseline, alog)
		p.wetSessions = append(p.wetSessions, event.Name+" "+res.Session.Label())
		metrics.RecordSessionAnalyzed(string(st))
		alog.LogWetSession(event.Name, res.Session.Label(), baseline.Label(), n)
	}
	return p, nil
}

// addWetSession compares every wet-running driver against the baseline and
// returns how many drivers produced a detail.
func (p *eventPartial) addWetSession(session *models.Session, baseline *Baseline, alog *logger.AnalysisLogger) int {
	added := 0
	for _, driver := range wetDrivers(session) {
		wet, ok := WetPace(session, driver)
		if !ok {
			continue
		}
		dry, ok := baseline.Pace(driver)
		if !ok {
			alog.WithField("driver", driver).Debug("No dry baseline laps for driver")
			continue
		}
		delta, ok := DeltaPercent(dry, wet.Pace)
		if !ok {
			continue
		}

		if _, seen := p.infos[driver]; !seen {
			p.infos[driver] = resolveDriverInfo(driver, session, baseline.Session)
		}
		p.details = append(p.details, driverDetail{
			driver: driver,
			detail: models.SessionDetail{
				Event:           p.event,
				Session:         session.Label(),
				BaselineSession: baseline.Label(),
				DryPace:         roundTo(dry, 3),
				WetPace:         roundTo(wet.Pace, 3),
				DryLapCount:     baseline.LapCount(driver),
				WetLapCount:     wet.LapCount,
				WetCompound:     wet.Compound,
				DeltaPercentage: delta,
			},
		})
		added++
	}
	return added
}

// resolveDriverInfo prefers the wet session's metadata and falls back to the
// baseline session, then to the bare code.
func resolveDriverInfo(code string, sessions ...*models.Session) models.DriverInfo {
	for _, s := range sessions {
		if info, ok := s.Driver(code); ok {
			if info.Code == "" {
				info.Code = code
			}
			return info
		}
	}
	return models.DriverInfo{Code: code}
}

// candidateSessions lists the sessions compared against the baseline. When
// the event carries session metadata, absent sessions are not requested.
func candidateSessions(event models.Event, includePractice bool) []models.SessionType {
	candidates := []models.SessionType{models.SessionRace, models.SessionQualifying}
	if includePractice {
		candidates = append(candidates, models.PracticeSessions...)
	}

	out := make([]models.SessionType, 0, len(candidates))
	for _, st := range candidates {
		if event.HasSession(st) {
			out = append(out, st)
		}
	}
	return out
}

// rank sorts ascending by average delta, keeping input order among ties, and
// assigns 1-based ranks.
func rank(results []models.DriverSeasonResult) {
	slices.SortStableFunc(results, func(a, b models.DriverSeasonResult) int {
		return cmp.Compare(a.AverageDelta, b.AverageDelta)
	})
	for i := range results {
		results[i].Rank = i + 1
	}
}
