package repository

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/yourusername/rainline/internal/models"
)

// FileStandingsRepository stores one JSON document per season as
// <dir>/<season>.json
type FileStandingsRepository struct {
	dir string
	mu  sync.RWMutex
}

// NewFileStandingsRepository creates a repository rooted at dir
func NewFileStandingsRepository(dir string) *FileStandingsRepository {
	return &FileStandingsRepository{dir: dir}
}

// Backend returns the storage backend name
func (r *FileStandingsRepository) Backend() string {
	return "file"
}

// Save writes the season document, replacing any previous one
func (r *FileStandingsRepository) Save(ctx context.Context, standings *models.SeasonStandings) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := EncodeStandings(standings)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create results directory: %w", err)
	}

	tmp, err := os.CreateTemp(r.dir, fmt.Sprintf(".%d-*.json", standings.Season))
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write standings: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write standings: %w", err)
	}
	if err := os.Rename(tmp.Name(), r.path(standings.Season)); err != nil {
		return fmt.Errorf("failed to save standings: %w", err)
	}
	return nil
}

// Get reads and decodes a season document
func (r *FileStandingsRepository) Get(ctx context.Context, season int) (*models.SeasonStandings, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	data, err := os.ReadFile(r.path(season))
	r.mu.RUnlock()
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("season %d: %w", season, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to read standings: %w", err)
	}

	doc, err := DecodeStandingsDocument(season, data)
	if err != nil {
		return nil, fmt.Errorf("season %d: %w", season, err)
	}
	return &doc.Standings, nil
}

// Seasons lists stored seasons in ascending order
func (r *FileStandingsRepository) Seasons(ctx context.Context) ([]int, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	entries, err := os.ReadDir(r.dir)
	r.mu.RUnlock()
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []int{}, nil
		}
		return nil, fmt.Errorf("failed to list results directory: %w", err)
	}

	seasons := make([]int, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		season, err := strconv.Atoi(strings.TrimSuffix(name, ".json"))
		if err != nil {
			continue
		}
		seasons = append(seasons, season)
	}
	slices.Sort(seasons)
	return seasons, nil
}

func (r *FileStandingsRepository) path(season int) string {
	return filepath.Join(r.dir, strconv.Itoa(season)+".json")
}
