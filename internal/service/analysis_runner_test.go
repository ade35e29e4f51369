package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/rainline/internal/analysis"
	"github.com/yourusername/rainline/internal/models"
	"github.com/yourusername/rainline/internal/repository"
)

func testRun(results ...models.DriverSeasonResult) *analysis.Run {
	return &analysis.Run{
		Results: results,
		Report: &analysis.RunReport{
			RunID:      uuid.New(),
			Season:     2021,
			StartedAt:  time.Date(2021, 12, 13, 9, 0, 0, 0, time.UTC),
			FinishedAt: time.Date(2021, 12, 13, 9, 5, 0, 0, time.UTC),
		},
	}
}

func TestRunAndSavePersistsStandings(t *testing.T) {
	run := testRun(
		driverResult(1, "VER", "Max Verstappen", "Red Bull Racing", 3),
		driverResult(2, "HAM", "Lewis Hamilton", "Mercedes", 5),
	)
	analyzer := new(MockAnalyzer)
	analyzer.On("Analyze", mock.Anything, 2021, true).Return(run, nil)
	repo := new(MockStandingsRepository)
	repo.On("Save", mock.Anything, mock.MatchedBy(func(s *models.SeasonStandings) bool {
		return s.Season == 2021 && s.RunID == run.Report.RunID && len(s.Standings) == 2
	})).Return(nil)
	invalidator := new(MockInvalidator)
	invalidator.On("Invalidate", 2021).Return()

	runner := NewAnalysisRunner(analyzer, repo, invalidator, true, nil)
	outcome, err := runner.RunAndSave(context.Background(), 2021)

	require.NoError(t, err)
	assert.True(t, outcome.Saved)
	assert.Equal(t, 2, outcome.Drivers)
	assert.Equal(t, run.Report, outcome.Report)
	repo.AssertExpectations(t)
	invalidator.AssertExpectations(t)
}

func TestRunAndSaveSkipsEmptySeason(t *testing.T) {
	analyzer := new(MockAnalyzer)
	analyzer.On("Analyze", mock.Anything, 2019, false).Return(testRun(), analysis.ErrEmptySeason)
	repo := new(MockStandingsRepository)

	runner := NewAnalysisRunner(analyzer, repo, nil, false, nil)
	outcome, err := runner.RunAndSave(context.Background(), 2019)

	require.NoError(t, err)
	assert.False(t, outcome.Saved)
	assert.NotNil(t, outcome.Report)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestRunAndSaveErrors(t *testing.T) {
	analyzer := new(MockAnalyzer)
	analyzer.On("Analyze", mock.Anything, 2021, true).Return(nil, errors.New("failed to fetch schedule: timeout"))
	runner := NewAnalysisRunner(analyzer, new(MockStandingsRepository), nil, true, nil)

	_, err := runner.RunAndSave(context.Background(), 2021)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "analysis for 2021 failed")

	analyzer = new(MockAnalyzer)
	analyzer.On("Analyze", mock.Anything, 2021, true).Return(testRun(driverResult(1, "VER", "Max Verstappen", "Red Bull Racing", 3)), nil)
	repo := new(MockStandingsRepository)
	repo.On("Save", mock.Anything, mock.Anything).Return(errors.New("read-only filesystem"))
	runner = NewAnalysisRunner(analyzer, repo, nil, true, nil)

	_, err = runner.RunAndSave(context.Background(), 2021)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to save analysis")
}

func TestRunSeasonsWithFileRepository(t *testing.T) {
	analyzer := new(MockAnalyzer)
	analyzer.On("Analyze", mock.Anything, 2020, true).Return(testRun(), analysis.ErrEmptySeason)
	analyzer.On("Analyze", mock.Anything, 2021, true).Return(testRun(driverResult(1, "VER", "Max Verstappen", "Red Bull Racing", 3)), nil)
	analyzer.On("Analyze", mock.Anything, 2022, true).Return(nil, errors.New("provider down"))
	repo := repository.NewFileStandingsRepository(t.TempDir())

	runner := NewAnalysisRunner(analyzer, repo, nil, true, nil)
	outcomes, metrics, err := runner.RunSeasons(context.Background(), []int{2020, 2021, 2022})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "provider down")
	assert.Len(t, outcomes, 2)
	assert.Equal(t, 3, metrics.Seasons)
	assert.Equal(t, 1, metrics.Saved)
	assert.Equal(t, 1, metrics.Empty)
	assert.Equal(t, 1, metrics.Errors)

	seasons, err := repo.Seasons(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int{2021}, seasons)
}
