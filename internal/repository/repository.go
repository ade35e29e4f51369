package repository

import (
	"fmt"

	"github.com/yourusername/rainline/internal/config"
	"github.com/yourusername/rainline/internal/database"
)

// Repositories holds all repository implementations
type Repositories struct {
	Standings StandingsRepository
}

// NewRepositories creates the repositories for the configured storage backend.
// db is only required for the postgres backend.
func NewRepositories(cfg config.StorageConfig, db *database.DB) (*Repositories, error) {
	switch cfg.Backend {
	case config.StorageBackendFile:
		if cfg.Directory == "" {
			return nil, fmt.Errorf("storage directory is required")
		}
		return &Repositories{Standings: NewFileStandingsRepository(cfg.Directory)}, nil

	case config.StorageBackendPostgres:
		if db == nil {
			return nil, fmt.Errorf("database connection is required")
		}
		return &Repositories{Standings: NewPostgresStandingsRepository(db)}, nil

	default:
		return nil, fmt.Errorf("unknown storage backend: %s", cfg.Backend)
	}
}
