// Package cache provides the in-memory key/value store used by the serving layer.
package cache

import (
	"strings"
	"sync"
	"sync/atomic"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/yourusername/rainline/internal/metrics"
)

// Store is a TTL cache with hit/miss accounting
type Store struct {
	cache     *gocache.Cache
	ttl       time.Duration
	mu        sync.Mutex
	hitCount  atomic.Uint64
	missCount atomic.Uint64
}

// NewStore creates a store whose entries expire after ttl. A zero ttl keeps
// entries until they are deleted.
func NewStore(ttl time.Duration) *Store {
	expiration := ttl
	cleanup := ttl * 2
	if ttl <= 0 {
		expiration = gocache.NoExpiration
		cleanup = 0
	}
	return &Store{
		cache: gocache.New(expiration, cleanup),
		ttl:   ttl,
	}
}

// TTL returns the default entry lifetime
func (s *Store) TTL() time.Duration {
	return s.ttl
}

// Get retrieves a cached value
func (s *Store) Get(key string) (interface{}, bool) {
	value, found := s.cache.Get(key)
	if found {
		s.hitCount.Add(1)
	} else {
		s.missCount.Add(1)
	}
	metrics.RecordServingCacheLookup(found)
	return value, found
}

// Set stores a value with the default TTL
func (s *Store) Set(key string, value interface{}) {
	s.cache.Set(key, value, gocache.DefaultExpiration)
}

// SetWithTTL stores a value with an explicit TTL
func (s *Store) SetWithTTL(key string, value interface{}, ttl time.Duration) {
	s.cache.Set(key, value, ttl)
}

// Delete removes one entry
func (s *Store) Delete(key string) {
	s.cache.Delete(key)
}

// DeletePrefix removes every entry whose key starts with prefix
func (s *Store) DeletePrefix(prefix string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for k := range s.cache.Items() {
		if strings.HasPrefix(k, prefix) {
			s.cache.Delete(k)
			removed++
		}
	}
	return removed
}

// Clear flushes the entire cache and resets statistics
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cache.Flush()
	s.hitCount.Store(0)
	s.missCount.Store(0)
}

// Stats returns cache statistics
func (s *Store) Stats() (hits, misses uint64, ratio float64) {
	hits = s.hitCount.Load()
	misses = s.missCount.Load()
	total := hits + misses
	if total > 0 {
		ratio = float64(hits) / float64(total)
	}
	return
}

// ItemCount returns the number of items in cache
func (s *Store) ItemCount() int {
	return s.cache.ItemCount()
}
