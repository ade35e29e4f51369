// Package service implements the read and write workflows around persisted
// season standings.
package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/rainline/internal/cache"
	"github.com/yourusername/rainline/internal/models"
	"github.com/yourusername/rainline/internal/repository"
)

const (
	driverListKey   = "driver_list"
	driverKeyPrefix = "driver_"
)

// ScheduleSource lists a season's events
type ScheduleSource interface {
	Season(ctx context.Context, year int) ([]models.Event, error)
}

// StandingsService serves persisted standings through the cache
type StandingsService struct {
	repo     repository.StandingsRepository
	cache    *cache.Store
	schedule ScheduleSource
	logger   *logrus.Logger
}

// NewStandingsService creates a new standings service. schedule may be nil
// when schedule listing is not served.
func NewStandingsService(repo repository.StandingsRepository, store *cache.Store, schedule ScheduleSource, logger *logrus.Logger) *StandingsService {
	if logger == nil {
		logger = logrus.New()
	}
	if store == nil {
		store = cache.NewStore(0)
	}
	return &StandingsService{
		repo:     repo,
		cache:    store,
		schedule: schedule,
		logger:   logger,
	}
}

// GetSeasonAnalysis returns a season's standings. It returns
// models.ErrNotFound when the season was never analysed and
// models.ErrInvalidDocument when the stored document is unreadable.
func (s *StandingsService) GetSeasonAnalysis(ctx context.Context, year int) (*models.SeasonStandings, error) {
	key := seasonKey(year)
	if cached, found := s.cache.Get(key); found {
		if standings, ok := cached.(*models.SeasonStandings); ok {
			return standings, nil
		}
	}

	standings, err := s.repo.Get(ctx, year)
	if err != nil {
		if errors.Is(err, models.ErrInvalidDocument) {
			s.logger.WithError(err).WithField("season", year).Error("Failed to decode stored standings")
		}
		return nil, err
	}

	s.cache.Set(key, standings)
	return standings, nil
}

// GetDriverCareer collects a driver's results over every stored season
func (s *StandingsService) GetDriverCareer(ctx context.Context, code string) (*models.DriverCareer, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	key := driverKeyPrefix + code
	if cached, found := s.cache.Get(key); found {
		if career, ok := cached.(*models.DriverCareer); ok {
			return career, nil
		}
	}

	all, err := s.allStandings(ctx)
	if err != nil {
		return nil, err
	}

	career := &models.DriverCareer{
		DriverCode:  code,
		TeamHistory: make(map[int]string),
		Seasons:     make(map[int]models.DriverSeasonResult),
	}
	for _, standings := range all {
		for _, d := range standings.Standings {
			if !strings.EqualFold(d.DriverCode, code) {
				continue
			}
			career.Seasons[standings.Season] = d
			career.TeamHistory[standings.Season] = d.TeamName
			career.FullName = d.FullName
		}
	}
	if len(career.Seasons) == 0 {
		return nil, fmt.Errorf("driver %s: %w", code, models.ErrDriverNotFound)
	}

	s.cache.Set(key, career)
	return career, nil
}

// ListDrivers returns every driver code present in stored standings, sorted
func (s *StandingsService) ListDrivers(ctx context.Context) ([]string, error) {
	if cached, found := s.cache.Get(driverListKey); found {
		if drivers, ok := cached.([]string); ok {
			return drivers, nil
		}
	}

	all, err := s.allStandings(ctx)
	if err != nil {
		return nil, err
	}

	var codes []string
	for _, standings := range all {
		for _, d := range standings.Standings {
			codes = append(codes, d.DriverCode)
		}
	}
	drivers := lo.Uniq(codes)
	slices.Sort(drivers)

	s.cache.Set(driverListKey, drivers)
	return drivers, nil
}

// Season returns the event schedule for a season
func (s *StandingsService) Season(ctx context.Context, year int) ([]models.Event, error) {
	if s.schedule == nil {
		return nil, errors.New("schedule source not configured")
	}
	key := fmt.Sprintf("schedule_%d", year)
	if cached, found := s.cache.Get(key); found {
		if events, ok := cached.([]models.Event); ok {
			return events, nil
		}
	}

	events, err := s.schedule.Season(ctx, year)
	if err != nil {
		return nil, err
	}
	s.cache.Set(key, events)
	return events, nil
}

// Invalidate drops cached entries affected by new standings for a season
func (s *StandingsService) Invalidate(year int) {
	s.cache.Delete(seasonKey(year))
	s.cache.Delete(driverListKey)
	removed := s.cache.DeletePrefix(driverKeyPrefix)
	s.logger.WithFields(logrus.Fields{"season": year, "driver_entries": removed}).Debug("Invalidated standings cache")
}

// allStandings loads every stored season; unreadable documents are skipped
func (s *StandingsService) allStandings(ctx context.Context) ([]*models.SeasonStandings, error) {
	seasons, err := s.repo.Seasons(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list seasons: %w", err)
	}

	all := make([]*models.SeasonStandings, 0, len(seasons))
	for _, season := range seasons {
		standings, err := s.repo.Get(ctx, season)
		if err != nil {
			if errors.Is(err, models.ErrInvalidDocument) || errors.Is(err, models.ErrNotFound) {
				s.logger.WithError(err).WithField("season", season).Warn("Skipping unreadable standings")
				continue
			}
			return nil, err
		}
		all = append(all, standings)
	}
	return all, nil
}

func seasonKey(year int) string {
	return fmt.Sprintf("analysis_%d", year)
}
