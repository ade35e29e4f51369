package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/rainline/internal/config"
	"github.com/yourusername/rainline/internal/database"
	"github.com/yourusername/rainline/internal/models"
)

func sampleStandings(season int) *models.SeasonStandings {
	return &models.SeasonStandings{
		Season:     season,
		RunID:      uuid.New(),
		ComputedAt: time.Date(season, 12, 13, 9, 0, 0, 0, time.UTC),
		Standings: []models.DriverSeasonResult{
			{
				Rank: 1, DriverCode: "VER", FullName: "Max Verstappen", TeamName: "Red Bull Racing",
				AverageDelta: 3, RacesAnalyzedCount: 1, RacesAnalyzedList: []string{"Spa"},
			},
			{
				Rank: 2, DriverCode: "HAM", FullName: "Lewis Hamilton", TeamName: "Mercedes",
				AverageDelta: 5, RacesAnalyzedCount: 1, RacesAnalyzedList: []string{"Spa"},
			},
		},
	}
}

func TestDecodeStandingsDocument(t *testing.T) {
	legacy := `[
	  {"driver_code": "VER", "full_name": "Max Verstappen", "team_name": "Red Bull Racing", "average_wet_to_dry_delta": 3.1, "races_analyzed_count": 2, "races_analyzed_list": ["Spa", "Sochi"]},
	  {"rank": 2, "driver_code": "HAM", "full_name": "Lewis Hamilton", "team_name": "Mercedes", "average_wet_to_dry_delta": 4.2, "races_analyzed_count": 1, "races_analyzed_list": ["Spa"]}
	]`
	doc, err := DecodeStandingsDocument(2021, []byte(legacy))
	require.NoError(t, err)
	assert.Equal(t, ShapeLegacyList, doc.Shape)
	assert.Equal(t, 2021, doc.Standings.Season)
	require.Len(t, doc.Standings.Standings, 2)
	assert.Equal(t, 1, doc.Standings.Standings[0].Rank)
	assert.Equal(t, 3.1, doc.Standings.Standings[0].AverageDelta)
	assert.Equal(t, []string{"Spa", "Sochi"}, doc.Standings.Standings[0].RacesAnalyzedList)

	wrapped := `{"season": 2020, "standings": [{"rank": 1, "driver_code": "PER", "full_name": "Sergio Perez", "team_name": "Racing Point"}]}`
	doc, err = DecodeStandingsDocument(2020, []byte(wrapped))
	require.NoError(t, err)
	assert.Equal(t, ShapeWrapped, doc.Shape)
	assert.Equal(t, 2020, doc.Standings.Season)
	require.Len(t, doc.Standings.Standings, 1)
	assert.Equal(t, "PER", doc.Standings.Standings[0].DriverCode)

	doc, err = DecodeStandingsDocument(2019, []byte(`{"standings": []}`))
	require.NoError(t, err)
	assert.Equal(t, 2019, doc.Standings.Season)
	assert.Empty(t, doc.Standings.Standings)
}

func TestDecodeStandingsDocumentInvalid(t *testing.T) {
	inputs := map[string]string{
		"empty":             ``,
		"truncated":         `[{"driver_code": "VER"`,
		"missing standings": `{"season": 2021, "drivers": []}`,
		"scalar":            `42`,
	}
	for name, input := range inputs {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeStandingsDocument(2021, []byte(input))
			assert.ErrorIs(t, err, models.ErrInvalidDocument)
		})
	}
}

func TestEncodeStandingsIsCanonical(t *testing.T) {
	data, err := EncodeStandings(&models.SeasonStandings{Season: 2022})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"standings": []`)

	doc, err := DecodeStandingsDocument(0, data)
	require.NoError(t, err)
	assert.Equal(t, ShapeWrapped, doc.Shape)
	assert.Equal(t, 2022, doc.Standings.Season)
}

func TestFileStandingsRepository(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "analysis_results")
	repo := NewFileStandingsRepository(dir)
	ctx := context.Background()

	seasons, err := repo.Seasons(ctx)
	require.NoError(t, err)
	assert.Empty(t, seasons)

	_, err = repo.Get(ctx, 2021)
	assert.ErrorIs(t, err, models.ErrNotFound)

	require.NoError(t, repo.Save(ctx, sampleStandings(2021)))
	require.NoError(t, repo.Save(ctx, sampleStandings(2019)))

	got, err := repo.Get(ctx, 2021)
	require.NoError(t, err)
	assert.Equal(t, sampleStandings(2021).Standings, got.Standings)
	assert.Equal(t, 2021, got.Season)

	seasons, err = repo.Seasons(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int{2019, 2021}, seasons)
	assert.Equal(t, "file", repo.Backend())
}

func TestFileStandingsRepositoryLegacyAndCorrupt(t *testing.T) {
	dir := t.TempDir()
	repo := NewFileStandingsRepository(dir)
	ctx := context.Background()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "2018.json"), []byte(`[{"rank": 1, "driver_code": "HAM", "full_name": "Lewis Hamilton", "team_name": "Mercedes"}]`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "2017.json"), []byte(`{not json`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.json"), []byte(`{}`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "2016.txt"), []byte(`[]`), 0o644))

	got, err := repo.Get(ctx, 2018)
	require.NoError(t, err)
	assert.Equal(t, 2018, got.Season)
	assert.Equal(t, "HAM", got.Standings[0].DriverCode)

	_, err = repo.Get(ctx, 2017)
	assert.ErrorIs(t, err, models.ErrInvalidDocument)

	seasons, err := repo.Seasons(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int{2017, 2018}, seasons)
}

func TestFileStandingsRepositoryOverwrite(t *testing.T) {
	repo := NewFileStandingsRepository(t.TempDir())
	ctx := context.Background()

	first := sampleStandings(2021)
	require.NoError(t, repo.Save(ctx, first))
	second := sampleStandings(2021)
	second.Standings = second.Standings[:1]
	require.NoError(t, repo.Save(ctx, second))

	got, err := repo.Get(ctx, 2021)
	require.NoError(t, err)
	assert.Len(t, got.Standings, 1)
	assert.Equal(t, second.RunID, got.RunID)
}

func TestNewRepositories(t *testing.T) {
	repos, err := NewRepositories(config.StorageConfig{Backend: config.StorageBackendFile, Directory: t.TempDir()}, nil)
	require.NoError(t, err)
	assert.Equal(t, "file", repos.Standings.Backend())

	_, err = NewRepositories(config.StorageConfig{Backend: config.StorageBackendPostgres}, nil)
	assert.Error(t, err)

	_, err = NewRepositories(config.StorageConfig{Backend: "s3"}, nil)
	assert.Error(t, err)
}

func TestPostgresStandingsRepository(t *testing.T) {
	db := database.SetupTestDB(t)
	defer database.TeardownTestDB(t, db)
	repo := NewPostgresStandingsRepository(db)
	ctx := context.Background()

	_, err := repo.Get(ctx, 2021)
	assert.ErrorIs(t, err, models.ErrNotFound)

	want := sampleStandings(2021)
	require.NoError(t, repo.Save(ctx, want))
	require.NoError(t, repo.Save(ctx, want))

	got, err := repo.Get(ctx, 2021)
	require.NoError(t, err)
	assert.Equal(t, want.Standings, got.Standings)
	assert.Equal(t, want.RunID, got.RunID)

	seasons, err := repo.Seasons(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int{2021}, seasons)
}
