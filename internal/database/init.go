package database

import (
	"context"
	"fmt"

	"github.com/yourusername/rainline/internal/config"
)

const schema = `
CREATE TABLE IF NOT EXISTS season_standings (
    season      INTEGER PRIMARY KEY,
    run_id      UUID NOT NULL,
    computed_at TIMESTAMPTZ NOT NULL,
    document    JSONB NOT NULL
);

CREATE INDEX IF NOT EXISTS season_standings_drivers_idx
    ON season_standings USING GIN ((document -> 'standings') jsonb_path_ops);
`

// Initialize creates a database connection pool and ensures the standings schema exists
func Initialize(ctx context.Context, cfg *config.Config) (*DB, error) {
	db, err := NewDB(ctx, &cfg.Database)
	if err != nil {
		return nil, err
	}

	if err := EnsureSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// EnsureSchema creates the tables used by the standings repository
func EnsureSchema(ctx context.Context, db *DB) error {
	if _, err := db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}
