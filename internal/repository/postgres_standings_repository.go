package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/yourusername/rainline/internal/database"
	"github.com/yourusername/rainline/internal/models"
)

// PostgresStandingsRepository stores season documents as JSONB
type PostgresStandingsRepository struct {
	db *database.DB
}

// NewPostgresStandingsRepository creates a new standings repository
func NewPostgresStandingsRepository(db *database.DB) *PostgresStandingsRepository {
	return &PostgresStandingsRepository{db: db}
}

// Backend returns the storage backend name
func (r *PostgresStandingsRepository) Backend() string {
	return "postgres"
}

// Save upserts the season document
func (r *PostgresStandingsRepository) Save(ctx context.Context, standings *models.SeasonStandings) error {
	data, err := EncodeStandings(standings)
	if err != nil {
		return err
	}

	runID := standings.RunID
	if runID == uuid.Nil {
		runID = uuid.New()
	}
	computedAt := standings.ComputedAt
	if computedAt.IsZero() {
		computedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO season_standings (season, run_id, computed_at, document)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (season) DO UPDATE
		SET run_id = EXCLUDED.run_id, computed_at = EXCLUDED.computed_at, document = EXCLUDED.document
	`
	if _, err := r.db.Exec(ctx, query, standings.Season, runID, computedAt, data); err != nil {
		return fmt.Errorf("failed to save standings: %w", err)
	}
	return nil
}

// Get loads a season document
func (r *PostgresStandingsRepository) Get(ctx context.Context, season int) (*models.SeasonStandings, error) {
	var data []byte
	err := r.db.QueryRow(ctx, `SELECT document FROM season_standings WHERE season = $1`, season).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("season %d: %w", season, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get standings: %w", err)
	}

	doc, err := DecodeStandingsDocument(season, data)
	if err != nil {
		return nil, fmt.Errorf("season %d: %w", season, err)
	}
	return &doc.Standings, nil
}

// Seasons lists stored seasons in ascending order
func (r *PostgresStandingsRepository) Seasons(ctx context.Context) ([]int, error) {
	rows, err := r.db.Query(ctx, `SELECT season FROM season_standings ORDER BY season`)
	if err != nil {
		return nil, fmt.Errorf("failed to list seasons: %w", err)
	}
	seasons, err := pgx.CollectRows(rows, pgx.RowTo[int])
	if err != nil {
		return nil, fmt.Errorf("failed to scan seasons: %w", err)
	}
	return seasons, nil
}
