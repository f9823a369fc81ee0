package cache

import (
	"sync"
	"time"

	"github.com/glovoll/nortide/internal/models"
)

type StationCache struct {
	stations    []models.Station
	lastUpdated time.Time
	ttl         time.Duration
	mu          sync.RWMutex
}

func NewStationCache(ttl time.Duration) *StationCache {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &StationCache{
		ttl:         ttl,
		stations:    make([]models.Station, 0),
		lastUpdated: time.Time{}, // Zero time to ensure first fetch
	}
}

func (c *StationCache) GetStations() []models.Station {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.isExpired() || len(c.stations) == 0 {
		return nil
	}
	return c.stations
}

func (c *StationCache) SetStations(stations []models.Station) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stations = stations
	c.lastUpdated = time.Now()
}

func (c *StationCache) isExpired() bool {
	return time.Since(c.lastUpdated) > c.ttl
}
