package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreGetSet(t *testing.T) {
	store := NewStore(time.Hour)
	defer store.Clear()

	_, found := store.Get("season:2021")
	assert.False(t, found)

	store.Set("season:2021", []string{"VER", "HAM"})
	value, found := store.Get("season:2021")
	require.True(t, found)
	assert.Equal(t, []string{"VER", "HAM"}, value)

	assert.Equal(t, time.Hour, store.TTL())
	assert.Equal(t, 1, store.ItemCount())
}

func TestStoreExpiry(t *testing.T) {
	store := NewStore(time.Hour)

	store.SetWithTTL("short", 1, 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)

	_, found := store.Get("short")
	assert.False(t, found)
}

func TestStoreWithoutTTL(t *testing.T) {
	store := NewStore(0)
	store.Set("forever", true)

	value, found := store.Get("forever")
	require.True(t, found)
	assert.Equal(t, true, value)
}

func TestStoreDelete(t *testing.T) {
	store := NewStore(time.Hour)
	store.Set("season:2020", 1)
	store.Set("season:2021", 2)
	store.Set("drivers", 3)

	store.Delete("drivers")
	_, found := store.Get("drivers")
	assert.False(t, found)

	removed := store.DeletePrefix("season:")
	assert.Equal(t, 2, removed)
	assert.Equal(t, 0, store.ItemCount())
}

func TestStoreStats(t *testing.T) {
	store := NewStore(time.Hour)
	store.Set("a", 1)

	store.Get("a")
	store.Get("a")
	store.Get("b")

	hits, misses, ratio := store.Stats()
	assert.Equal(t, uint64(2), hits)
	assert.Equal(t, uint64(1), misses)
	assert.InDelta(t, 2.0/3.0, ratio, 1e-9)

	store.Clear()
	hits, misses, ratio = store.Stats()
	assert.Zero(t, hits)
	assert.Zero(t, misses)
	assert.Zero(t, ratio)
}
