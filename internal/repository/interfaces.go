package repository

import (
	"context"

	"github.com/yourusername/rainline/internal/models"
)

// StandingsRepository persists computed season standings. Get returns
// models.ErrNotFound for an unknown season and models.ErrInvalidDocument
// when the stored document cannot be decoded.
type StandingsRepository interface {
	Save(ctx context.Context, standings *models.SeasonStandings) error
	Get(ctx context.Context, season int) (*models.SeasonStandings, error)
	Seasons(ctx context.Context) ([]int, error)
	Backend() string
}
