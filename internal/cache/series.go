package cache

import (
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/glovoll/nortide/internal/config"
	"github.com/glovoll/nortide/internal/models"
)

// SeriesCacheEntry wraps a cached series with its expiry time.
type SeriesCacheEntry struct {
	Data      *models.Series
	ExpiresAt time.Time
}

// SeriesCache is an in-memory LRU cache for locationdata responses, keyed by
// the encoded query. Entries expire after the configured TTL so observations
// and forecasts do not go stale.
type SeriesCache struct {
	lru    *lru.Cache[string, *SeriesCacheEntry]
	ttl    time.Duration
	hits   uint64
	misses uint64
}

func NewSeriesCache(cfg *config.CacheConfig) (*SeriesCache, error) {
	lruCache, err := lru.New[string, *SeriesCacheEntry](cfg.SeriesLRUSize)
	if err != nil {
		return nil, fmt.Errorf("creating LRU cache: %w", err)
	}

	return &SeriesCache{
		lru: lruCache,
		ttl: cfg.GetSeriesLRUTTL(),
	}, nil
}

// GetSeries returns the cached series for key, or nil on a miss.
func (c *SeriesCache) GetSeries(key string) *models.Series {
	if entry, ok := c.lru.Get(key); ok {
		if time.Now().Before(entry.ExpiresAt) {
			c.hits++
			return entry.Data
		}
		// Entry expired, remove it
		c.lru.Remove(key)
	}
	c.misses++
	return nil
}

func (c *SeriesCache) SaveSeries(key string, series *models.Series) {
	c.lru.Add(key, &SeriesCacheEntry{
		Data:      series,
		ExpiresAt: time.Now().Add(c.ttl),
	})
}

// GetCacheStats returns statistics about cache hits and misses
func (c *SeriesCache) GetCacheStats() map[string]uint64 {
	return map[string]uint64{
		"hits":   c.hits,
		"misses": c.misses,
	}
}

// Clear removes all entries from the LRU cache
func (c *SeriesCache) Clear() {
	c.lru.Purge()
}
