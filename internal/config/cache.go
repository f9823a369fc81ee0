package config

import (
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

// CacheConfig holds all cache-related configuration
type CacheConfig struct {
	// LRU cache for locationdata series
	SeriesLRUSize       int
	SeriesLRUTTLMinutes int

	// Station list cache
	StationListTTLHours int

	// General settings
	EnableLRUCache bool
}

const (
	defaultSeriesLRUSize       = 512
	defaultSeriesLRUTTLMinutes = 15
	defaultStationListTTLHours = 24
)

// GetCacheConfig returns the cache configuration from environment variables or defaults
func GetCacheConfig() *CacheConfig {
	config := &CacheConfig{
		SeriesLRUSize:       getEnvInt("CACHE_SERIES_LRU_SIZE", defaultSeriesLRUSize),
		SeriesLRUTTLMinutes: getEnvInt("CACHE_SERIES_LRU_TTL_MINUTES", defaultSeriesLRUTTLMinutes),
		StationListTTLHours: getEnvInt("CACHE_STATION_LIST_TTL_HOURS", defaultStationListTTLHours),
		EnableLRUCache:      getEnvBool("CACHE_ENABLE_LRU", true),
	}

	log.Debug().
		Int("SeriesLRUSize", config.SeriesLRUSize).
		Int("SeriesLRUTTLMinutes", config.SeriesLRUTTLMinutes).
		Int("StationListTTLHours", config.StationListTTLHours).
		Bool("EnableLRUCache", config.EnableLRUCache).
		Msg("Cache configuration loaded")

	return config
}

func (c *CacheConfig) GetSeriesLRUTTL() time.Duration {
	return time.Duration(c.SeriesLRUTTLMinutes) * time.Minute
}

func (c *CacheConfig) GetStationListTTL() time.Duration {
	return time.Duration(c.StationListTTLHours) * time.Hour
}

// Helper functions to get environment variables with defaults
func getEnvInt(key string, defaultVal int) int {
	if val, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(val); err == nil {
			return intVal
		}
		log.Warn().Str("key", key).Msg("Invalid integer value in environment variable, using default")
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val, exists := os.LookupEnv(key); exists {
		return val == "true" || val == "1" || val == "yes"
	}
	return defaultVal
}
