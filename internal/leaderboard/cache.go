package leaderboard

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/finquest/finquest/internal/domain"
)

// CacheSchemaVersion is the current version of the cache schema
// Increment this when the cached data structure changes to auto-invalidate old entries
const CacheSchemaVersion = "1.0"

// cachedBoardEntry wraps a computed board with version metadata for cache
// invalidation.
type cachedBoardEntry struct {
	Version  string                   `json:"version"`
	Entries  []domain.LeaderboardEntry `json:"entries"`
	CachedAt time.Time                `json:"cached_at"`
}

// boardCache provides an in-memory LRU cache for ranked boards with
// time-based expiration. Boards are cached per metric; ranks staler than the
// TTL are acceptable.
type boardCache struct {
	lru *expirable.LRU[domain.LeaderboardMetric, *cachedBoardEntry]
}

func newBoardCache(size int, ttl time.Duration) *boardCache {
	return &boardCache{
		lru: expirable.NewLRU[domain.LeaderboardMetric, *cachedBoardEntry](size, nil, ttl),
	}
}

// Get retrieves a board from the cache.
// Returns (entries, true) if found and version matches.
func (c *boardCache) Get(metric domain.LeaderboardMetric) ([]domain.LeaderboardEntry, bool) {
	entry, found := c.lru.Get(metric)
	if !found {
		return nil, false
	}
	if entry.Version != CacheSchemaVersion {
		c.lru.Remove(metric)
		return nil, false
	}
	return entry.Entries, true
}

// Set stores a board in the cache with the current schema version.
func (c *boardCache) Set(metric domain.LeaderboardMetric, entries []domain.LeaderboardEntry) {
	c.lru.Add(metric, &cachedBoardEntry{
		Version:  CacheSchemaVersion,
		Entries:  entries,
		CachedAt: time.Now(),
	})
}

// Clear removes all cached boards.
func (c *boardCache) Clear() {
	c.lru.Purge()
}
