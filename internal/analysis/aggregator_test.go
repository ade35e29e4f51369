package analysis

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/rainline/internal/models"
	"github.com/yourusername/rainline/internal/telemetry"
)

func TestSpaScenario(t *testing.T) {
	engine := NewEngine(spaProvider(), DefaultOptions(), nil)

	results, err := engine.CalculateSeasonalWetPerformance(context.Background(), testYear, true)
	require.NoError(t, err)
	require.Len(t, results, 1)

	ham := results[0]
	assert.Equal(t, 1, ham.Rank)
	assert.Equal(t, "HAM", ham.DriverCode)
	assert.Equal(t, "Lewis Hamilton", ham.FullName)
	assert.Equal(t, "Mercedes", ham.TeamName)
	assert.Equal(t, "44", ham.DriverNumber)
	assert.Equal(t, 1, ham.RacesAnalyzedCount)
	assert.Equal(t, []string{"Spa"}, ham.RacesAnalyzedList)

	require.Len(t, ham.Sessions, 1)
	detail := ham.Sessions[0]
	assert.Equal(t, "Spa", detail.Event)
	assert.Equal(t, "R", detail.Session)
	assert.Equal(t, "FP2", detail.BaselineSession)
	assert.Equal(t, 95.0, detail.DryPace)
	assert.Equal(t, 101.65, detail.WetPace)
	assert.Equal(t, 3, detail.DryLapCount)
	assert.Equal(t, 3, detail.WetLapCount)
	assert.Equal(t, models.CompoundIntermediate, detail.WetCompound)
	assert.Equal(t, 7.0, detail.DeltaPercentage)
	assert.Equal(t, 7.0, ham.AverageDelta)
}

func TestEmptySeason(t *testing.T) {
	p := telemetry.NewMemoryProvider()
	p.AddEvent(testYear, newEvent(1, "Bahrain"))
	p.AddSession(newSession("Bahrain", models.SessionPractice1, dryWeather(), quickLap("HAM", 92, models.CompoundSoft)))
	p.AddSession(newSession("Bahrain", models.SessionQualifying, dryWeather(), quickLap("HAM", 89, models.CompoundSoft)))
	p.AddSession(newSession("Bahrain", models.SessionRace, dryWeather(), quickLap("HAM", 94, models.CompoundHard)))
	engine := NewEngine(p, DefaultOptions(), nil)

	results, err := engine.CalculateSeasonalWetPerformance(context.Background(), testYear, true)
	require.NoError(t, err)
	assert.NotNil(t, results)
	assert.Empty(t, results)

	run, err := engine.Analyze(context.Background(), testYear, true)
	assert.ErrorIs(t, err, ErrEmptySeason)
	require.NotNil(t, run)
	assert.Empty(t, run.Results)
	assert.Equal(t, 1, run.Report.EventsAnalyzed)
	assert.Len(t, run.Report.SkippedFor(SkipDrySession), 3)
}

func TestRankingByAverageDelta(t *testing.T) {
	p := telemetry.NewMemoryProvider()
	p.AddEvent(testYear, newEvent(1, "Silverstone"))
	p.AddSession(newSession("Silverstone", models.SessionPractice1, dryWeather(),
		quickLap("HAM", 100, models.CompoundSoft),
		quickLap("VER", 100, models.CompoundSoft),
	))
	p.AddSession(newSession("Silverstone", models.SessionRace, wetWeather(),
		quickLap("HAM", 105, models.CompoundIntermediate),
		quickLap("VER", 103, models.CompoundIntermediate),
	))
	engine := NewEngine(p, DefaultOptions(), nil)

	results, err := engine.CalculateSeasonalWetPerformance(context.Background(), testYear, false)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, "VER", results[0].DriverCode)
	assert.Equal(t, 1, results[0].Rank)
	assert.Equal(t, 3.0, results[0].AverageDelta)
	assert.Equal(t, "HAM", results[1].DriverCode)
	assert.Equal(t, 2, results[1].Rank)
	assert.Equal(t, 5.0, results[1].AverageDelta)
}

// multiEventProvider builds a season where drivers race in the wet at
// several events, some sessions fail to load and one driver has no dry laps.
func multiEventProvider() *telemetry.MemoryProvider {
	p := telemetry.NewMemoryProvider()
	for i, name := range []string{"Imola", "Portimao", "Monaco", "Baku", "Spa", "Istanbul"} {
		p.AddEvent(testYear, newEvent(i+1, name))
		offset := float64(i)

		p.AddSession(newSession(name, models.SessionPractice1, dryWeather(),
			quickLap("HAM", 80+offset, models.CompoundSoft),
			quickLap("VER", 80+offset, models.CompoundSoft),
			quickLap("VER", 81+offset, models.CompoundMedium),
		))
		if i%2 == 0 {
			p.AddSession(newSession(name, models.SessionRace, wetWeather(),
				quickLap("VER", 85+offset, models.CompoundIntermediate),
				quickLap("HAM", 84+offset, models.CompoundIntermediate),
				quickLap("NOR", 84+offset, models.CompoundIntermediate),
				quickLap("HAM", 86+offset, models.CompoundWet),
			))
		} else {
			p.FailSession(testYear, name, models.SessionRace, errors.New("feed unavailable"))
		}
		if i%3 == 0 {
			p.AddSession(newSession(name, models.SessionQualifying, nil,
				quickLap("HAM", 83+offset, models.CompoundIntermediate),
				quickLap("VER", 82.5+offset, models.CompoundIntermediate),
			))
		}
	}
	return p
}

func TestSeasonProperties(t *testing.T) {
	engine := NewEngine(multiEventProvider(), DefaultOptions(), nil)

	run, err := engine.Analyze(context.Background(), testYear, true)
	require.NoError(t, err)
	results := run.Results
	require.NotEmpty(t, results)

	for i, r := range results {
		assert.Equal(t, i+1, r.Rank, "ranks are dense and 1-based")
		if i > 0 {
			assert.LessOrEqual(t, results[i-1].AverageDelta, r.AverageDelta)
		}

		require.NotEmpty(t, r.Sessions)
		var sum float64
		for _, d := range r.Sessions {
			sum += d.DeltaPercentage
		}
		assert.InDelta(t, sum/float64(len(r.Sessions)), r.AverageDelta, 1e-6)
	}

	codes := make([]string, 0, len(results))
	for _, r := range results {
		codes = append(codes, r.DriverCode)
	}
	assert.ElementsMatch(t, []string{"HAM", "VER"}, codes, "NOR has no dry baseline and must not appear")

	failedRaces := 0
	for _, s := range run.Report.SkippedFor(SkipLoadFailed) {
		if s.Session == models.SessionRace {
			failedRaces++
			assert.Contains(t, s.Cause, "feed unavailable")
		}
	}
	assert.Equal(t, 3, failedRaces)
	assert.Equal(t, 6, run.Report.EventsAnalyzed)
}

func TestBaselineResolvedOncePerEvent(t *testing.T) {
	p := multiEventProvider()
	engine := NewEngine(p, DefaultOptions(), nil)

	_, err := engine.Analyze(context.Background(), testYear, false)
	require.NoError(t, err)

	assert.Equal(t, 1, p.LoadCount(testYear, "Imola", models.SessionPractice1))
	assert.Equal(t, 0, p.LoadCount(testYear, "Imola", models.SessionPractice2))
	assert.Equal(t, 1, p.LoadCount(testYear, "Imola", models.SessionRace))
}

func TestAggregationIsIdempotent(t *testing.T) {
	engine := NewEngine(multiEventProvider(), DefaultOptions(), nil)

	first, err := engine.CalculateSeasonalWetPerformance(context.Background(), testYear, true)
	require.NoError(t, err)
	second, err := engine.CalculateSeasonalWetPerformance(context.Background(), testYear, true)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestParallelMatchesSequential(t *testing.T) {
	p := multiEventProvider()
	sequential := NewEngine(p, DefaultOptions(), nil)
	parallel := NewEngine(p, Options{MissingWeatherPolicy: MissingWeatherAccept, Concurrency: 4}, nil)

	want, err := sequential.Analyze(context.Background(), testYear, true)
	require.NoError(t, err)
	got, err := parallel.Analyze(context.Background(), testYear, true)
	require.NoError(t, err)

	assert.Equal(t, want.Results, got.Results)
	assert.Equal(t, want.Report.WetSessions, got.Report.WetSessions)
	assert.Equal(t, len(want.Report.Skipped), len(got.Report.Skipped))
}

func TestTiesKeepFirstSeenOrder(t *testing.T) {
	p := telemetry.NewMemoryProvider()
	p.AddEvent(testYear, newEvent(1, "Suzuka"))
	p.AddSession(newSession("Suzuka", models.SessionPractice1, dryWeather(),
		quickLap("HAM", 100, models.CompoundSoft),
		quickLap("VER", 100, models.CompoundSoft),
		quickLap("NOR", 100, models.CompoundSoft),
	))
	p.AddSession(newSession("Suzuka", models.SessionRace, wetWeather(),
		quickLap("VER", 104, models.CompoundWet),
		quickLap("NOR", 102, models.CompoundWet),
		quickLap("HAM", 104, models.CompoundWet),
	))
	engine := NewEngine(p, DefaultOptions(), nil)

	results, err := engine.CalculateSeasonalWetPerformance(context.Background(), testYear, false)
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, "NOR", results[0].DriverCode)
	assert.Equal(t, "VER", results[1].DriverCode)
	assert.Equal(t, "HAM", results[2].DriverCode)
	assert.Equal(t, []int{1, 2, 3}, []int{results[0].Rank, results[1].Rank, results[2].Rank})
}

func TestPracticeSessionsExcluded(t *testing.T) {
	p := telemetry.NewMemoryProvider()
	p.AddEvent(testYear, newEvent(1, "Hungaroring"))
	p.AddSession(newSession("Hungaroring", models.SessionPractice1, dryWeather(), quickLap("HAM", 78, models.CompoundSoft)))
	p.AddSession(newSession("Hungaroring", models.SessionPractice3, wetWeather(), quickLap("HAM", 85, models.CompoundIntermediate)))
	engine := NewEngine(p, DefaultOptions(), nil)

	results, err := engine.CalculateSeasonalWetPerformance(context.Background(), testYear, false)
	require.NoError(t, err)
	assert.Empty(t, results)
	assert.Equal(t, 0, p.LoadCount(testYear, "Hungaroring", models.SessionPractice3))

	results, err = engine.CalculateSeasonalWetPerformance(context.Background(), testYear, true)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "FP3", results[0].Sessions[0].Session)
	assert.Equal(t, "FP1", results[0].Sessions[0].BaselineSession)
}

func TestEventWithoutBaselineIsReported(t *testing.T) {
	p := spaProvider()
	p.AddEvent(testYear, newEvent(13, "Zandvoort"))
	p.AddSession(newSession("Zandvoort", models.SessionRace, wetWeather(), quickLap("HAM", 75, models.CompoundWet)))
	engine := NewEngine(p, DefaultOptions(), nil)

	run, err := engine.Analyze(context.Background(), testYear, true)
	require.NoError(t, err)
	require.Len(t, run.Results, 1)

	skips := run.Report.SkippedFor(SkipNoBaseline)
	require.Len(t, skips, 1)
	assert.Equal(t, "Zandvoort", skips[0].Event)
	assert.ErrorIs(t, skips[0].Err, ErrNoBaseline)
	assert.Equal(t, 0, p.LoadCount(testYear, "Zandvoort", models.SessionRace))
}

// testingScheduleProvider returns testing events regardless of the flag
type testingScheduleProvider struct {
	*telemetry.MemoryProvider
}

func (p testingScheduleProvider) EventSchedule(ctx context.Context, year int, _ bool) ([]models.Event, error) {
	return p.MemoryProvider.EventSchedule(ctx, year, true)
}

func TestTestingEventsSkipped(t *testing.T) {
	p := spaProvider()
	testEvent := models.Event{Name: "Pre-Season Test", Format: models.EventFormatTesting}
	p.AddEvent(testYear, testEvent)
	p.AddSession(newSession("Pre-Season Test", models.SessionPractice1, dryWeather(), quickLap("HAM", 90, models.CompoundSoft)))
	engine := NewEngine(testingScheduleProvider{p}, DefaultOptions(), nil)

	run, err := engine.Analyze(context.Background(), testYear, true)
	require.NoError(t, err)

	assert.Len(t, run.Report.SkippedFor(SkipTestingEvent), 1)
	assert.Equal(t, 0, p.LoadCount(testYear, "Pre-Season Test", models.SessionPractice1))
}

type failingSchedule struct {
	*telemetry.MemoryProvider
}

func (failingSchedule) EventSchedule(context.Context, int, bool) ([]models.Event, error) {
	return nil, telemetry.NewProviderError("memory", telemetry.ErrCodeServerError, "schedule down", nil)
}

func TestScheduleFailureAborts(t *testing.T) {
	engine := NewEngine(failingSchedule{telemetry.NewMemoryProvider()}, DefaultOptions(), nil)

	_, err := engine.CalculateSeasonalWetPerformance(context.Background(), testYear, true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to fetch schedule")
	assert.ErrorIs(t, err, telemetry.ErrServerError)
	assert.NotErrorIs(t, err, ErrEmptySeason)

	_, err = engine.Season(context.Background(), testYear)
	assert.ErrorIs(t, err, telemetry.ErrServerError)
}

func TestCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	engine := NewEngine(spaProvider(), DefaultOptions(), nil)

	_, err := engine.Analyze(ctx, testYear, true)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSeasonPassThrough(t *testing.T) {
	p := multiEventProvider()
	engine := NewEngine(p, DefaultOptions(), nil)

	events, err := engine.Season(context.Background(), testYear)
	require.NoError(t, err)
	require.Len(t, events, 6)
	for i, e := range events {
		assert.Equal(t, i+1, e.RoundNumber, fmt.Sprintf("event %s out of order", e.Name))
	}
	assert.Equal(t, 0, p.LoadCount(testYear, "Imola", models.SessionPractice1))
}

func TestPracticeLoadsReusedFromBaselineResolution(t *testing.T) {
	p := telemetry.NewMemoryProvider()
	p.AddEvent(testYear, newEvent(1, "Monza"))
	p.AddEvent(testYear, newEvent(2, "Imola"))

	// Monza: FP1 is wet so it is rejected as baseline but analysed later
	p.AddSession(newSession("Monza", models.SessionPractice1, wetWeather(),
		quickLap("HAM", 100, models.CompoundIntermediate),
	))
	p.AddSession(newSession("Monza", models.SessionPractice2, dryWeather(),
		quickLap("HAM", 95, models.CompoundSoft),
	))

	// Imola: FP1 fails while resolving the baseline
	p.FailSession(testYear, "Imola", models.SessionPractice1, errors.New("upstream timeout"))
	p.AddSession(newSession("Imola", models.SessionPractice2, dryWeather(),
		quickLap("HAM", 90, models.CompoundSoft),
	))

	engine := NewEngine(p, DefaultOptions(), nil)
	run, err := engine.Analyze(context.Background(), testYear, true)
	require.NoError(t, err)

	assert.Equal(t, 1, p.LoadCount(testYear, "Monza", models.SessionPractice1))
	assert.Equal(t, 1, p.LoadCount(testYear, "Monza", models.SessionPractice2))
	assert.Equal(t, 1, p.LoadCount(testYear, "Imola", models.SessionPractice1))

	require.Len(t, run.Results, 1)
	require.Len(t, run.Results[0].Sessions, 1)
	detail := run.Results[0].Sessions[0]
	assert.Equal(t, "Monza", detail.Event)
	assert.Equal(t, "FP1", detail.Session)
	assert.Equal(t, "FP2", detail.BaselineSession)
	assert.Equal(t, 5.26, detail.DeltaPercentage)

	imolaFP1 := 0
	for _, s := range run.Report.SkippedFor(SkipLoadFailed) {
		if s.Event == "Imola" && s.Session == models.SessionPractice1 {
			imolaFP1++
		}
	}
	assert.Equal(t, 1, imolaFP1)
}
