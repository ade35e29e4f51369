package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/yourusername/rainline/internal/analysis"
	"github.com/yourusername/rainline/internal/models"
)

// MockStandingsRepository mocks the standings repository
type MockStandingsRepository struct {
	mock.Mock
}

func (m *MockStandingsRepository) Save(ctx context.Context, standings *models.SeasonStandings) error {
	args := m.Called(ctx, standings)
	return args.Error(0)
}

func (m *MockStandingsRepository) Get(ctx context.Context, season int) (*models.SeasonStandings, error) {
	args := m.Called(ctx, season)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SeasonStandings), args.Error(1)
}

func (m *MockStandingsRepository) Seasons(ctx context.Context) ([]int, error) {
	args := m.Called(ctx)
	return args.Get(0).([]int), args.Error(1)
}

func (m *MockStandingsRepository) Backend() string {
	return "mock"
}

// MockScheduleSource mocks the schedule pass-through
type MockScheduleSource struct {
	mock.Mock
}

func (m *MockScheduleSource) Season(ctx context.Context, year int) ([]models.Event, error) {
	args := m.Called(ctx, year)
	return args.Get(0).([]models.Event), args.Error(1)
}

// MockAnalyzer mocks the analysis engine
type MockAnalyzer struct {
	mock.Mock
}

func (m *MockAnalyzer) Analyze(ctx context.Context, year int, includePractice bool) (*analysis.Run, error) {
	args := m.Called(ctx, year, includePractice)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*analysis.Run), args.Error(1)
}

// MockInvalidator records invalidated seasons
type MockInvalidator struct {
	mock.Mock
}

func (m *MockInvalidator) Invalidate(year int) {
	m.Called(year)
}

func driverResult(rank int, code, name, team string, delta float64) models.DriverSeasonResult {
	return models.DriverSeasonResult{
		Rank:               rank,
		DriverCode:         code,
		FullName:           name,
		TeamName:           team,
		AverageDelta:       delta,
		RacesAnalyzedCount: 1,
		RacesAnalyzedList:  []string{"Spa"},
	}
}
