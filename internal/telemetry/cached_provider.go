package telemetry

import (
	"context"
	"fmt"
	"time"

	cache "github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/rainline/internal/metrics"
	"github.com/yourusername/rainline/internal/models"
)

// CachedProvider wraps a Provider with an in-memory cache of schedules and
// loaded sessions. Only successful loads are cached.
type CachedProvider struct {
	provider Provider
	cache    *cache.Cache
	ttl      time.Duration
	logger   *logrus.Logger
}

// NewCachedProvider creates a new cached provider
func NewCachedProvider(provider Provider, ttl time.Duration, logger *logrus.Logger) *CachedProvider {
	if logger == nil {
		logger = logrus.New()
	}
	return &CachedProvider{
		provider: provider,
		cache:    cache.New(ttl, ttl*2),
		ttl:      ttl,
		logger:   logger,
	}
}

// Name returns the wrapped provider's name
func (c *CachedProvider) Name() string {
	return c.provider.Name()
}

// EventSchedule returns the cached schedule or fetches it
func (c *CachedProvider) EventSchedule(ctx context.Context, year int, includeTesting bool) ([]models.Event, error) {
	key := fmt.Sprintf("schedule:%d:%t", year, includeTesting)
	if cached, found := c.cache.Get(key); found {
		if events, ok := cached.([]models.Event); ok {
			metrics.RecordProviderCacheLookup(true)
			return events, nil
		}
	}
	metrics.RecordProviderCacheLookup(false)

	events, err := c.provider.EventSchedule(ctx, year, includeTesting)
	if err != nil {
		return nil, err
	}
	c.cache.Set(key, events, c.ttl)
	return events, nil
}

// LoadSession returns the cached session or loads it
func (c *CachedProvider) LoadSession(ctx context.Context, year int, eventName string, sessionType models.SessionType) (*models.Session, error) {
	key := fmt.Sprintf("session:%d:%s:%s", year, eventName, sessionType)
	if cached, found := c.cache.Get(key); found {
		if session, ok := cached.(*models.Session); ok {
			c.logger.WithField("cache_key", key).Debug("Cache hit for session")
			metrics.RecordProviderCacheLookup(true)
			return session, nil
		}
	}
	metrics.RecordProviderCacheLookup(false)

	start := time.Now()
	session, err := c.provider.LoadSession(ctx, year, eventName, sessionType)
	metrics.RecordSessionLoad(string(sessionType), err == nil, time.Since(start).Seconds())
	if err != nil {
		return nil, err
	}
	c.cache.Set(key, session, c.ttl)
	return session, nil
}

// Flush drops every cached entry
func (c *CachedProvider) Flush() {
	c.cache.Flush()
}

// ItemCount returns the number of cached entries
func (c *CachedProvider) ItemCount() int {
	return c.cache.ItemCount()
}
