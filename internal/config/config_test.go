package config

import (
	"os"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestNewConfigWithDefaults(t *testing.T) {
	cfg := New()

	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, zerolog.InfoLevel, cfg.LogLevel)
	assert.Equal(t, 10*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 3, cfg.MaxRetries)
	assert.Equal(t, DefaultBaseURL, cfg.APIBaseURL)
	assert.Equal(t, "nb", cfg.Language)
}

func TestWithEnvironment(t *testing.T) {
	cfg := New(WithEnvironment("development"))

	assert.Equal(t, "development", cfg.Environment)
}

func TestWithLogLevel(t *testing.T) {
	cfg := New(WithLogLevel("debug"))

	assert.Equal(t, zerolog.DebugLevel, cfg.LogLevel)
}

func TestWithLogLevelInvalid(t *testing.T) {
	cfg := New(WithLogLevel("shouting"))

	assert.Equal(t, zerolog.InfoLevel, cfg.LogLevel)
}

func TestWithBaseURL(t *testing.T) {
	cfg := New(WithBaseURL("http://localhost:8080/tideapi.php"))

	assert.Equal(t, "http://localhost:8080/tideapi.php", cfg.APIBaseURL)
}

func TestInitializeLogging(t *testing.T) {
	cfg := New(WithEnvironment("local"), WithLogLevel("debug"))
	cfg.InitializeLogging()

	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("ENV", "test")
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("HTTP_TIMEOUT", "5s")
	t.Setenv("TIDEAPI_URL", "http://localhost:9999/tideapi.php")
	t.Setenv("TIDEAPI_LANG", "en")

	cfg := LoadFromEnv()

	assert.Equal(t, "test", cfg.Environment)
	assert.Equal(t, zerolog.WarnLevel, cfg.LogLevel)
	assert.Equal(t, 5*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, "http://localhost:9999/tideapi.php", cfg.APIBaseURL)
	assert.Equal(t, "en", cfg.Language)
}

func TestGetEnvOrDefault(t *testing.T) {
	t.Setenv("TEST_ENV_VAR", "value")

	assert.Equal(t, "value", getEnvOrDefault("TEST_ENV_VAR", "default"))
	assert.Equal(t, "default", getEnvOrDefault("MISSING_ENV_VAR", "default"))
}

func TestGetDurationEnvOrDefault(t *testing.T) {
	t.Setenv("TEST_DURATION", "2m")
	t.Setenv("TEST_BAD_DURATION", "not-a-duration")

	assert.Equal(t, 2*time.Minute, getDurationEnvOrDefault("TEST_DURATION", time.Second))
	assert.Equal(t, time.Second, getDurationEnvOrDefault("TEST_BAD_DURATION", time.Second))
	assert.Equal(t, time.Second, getDurationEnvOrDefault("MISSING_DURATION", time.Second))
}

func TestGetCacheConfigDefaults(t *testing.T) {
	// Make sure nothing from the environment leaks into the assertions
	for _, key := range []string{"CACHE_SERIES_LRU_SIZE", "CACHE_SERIES_LRU_TTL_MINUTES", "CACHE_STATION_LIST_TTL_HOURS", "CACHE_ENABLE_LRU"} {
		if _, ok := os.LookupEnv(key); ok {
			t.Setenv(key, "")
			_ = os.Unsetenv(key)
		}
	}

	cfg := GetCacheConfig()

	assert.Equal(t, defaultSeriesLRUSize, cfg.SeriesLRUSize)
	assert.Equal(t, defaultSeriesLRUTTLMinutes, cfg.SeriesLRUTTLMinutes)
	assert.Equal(t, defaultStationListTTLHours, cfg.StationListTTLHours)
	assert.True(t, cfg.EnableLRUCache)
	assert.Equal(t, 15*time.Minute, cfg.GetSeriesLRUTTL())
	assert.Equal(t, 24*time.Hour, cfg.GetStationListTTL())
}

func TestGetCacheConfigFromEnv(t *testing.T) {
	t.Setenv("CACHE_SERIES_LRU_SIZE", "32")
	t.Setenv("CACHE_SERIES_LRU_TTL_MINUTES", "5")
	t.Setenv("CACHE_STATION_LIST_TTL_HOURS", "1")
	t.Setenv("CACHE_ENABLE_LRU", "false")

	cfg := GetCacheConfig()

	assert.Equal(t, 32, cfg.SeriesLRUSize)
	assert.Equal(t, 5*time.Minute, cfg.GetSeriesLRUTTL())
	assert.Equal(t, time.Hour, cfg.GetStationListTTL())
	assert.False(t, cfg.EnableLRUCache)
}

func TestGetEnvIntInvalid(t *testing.T) {
	t.Setenv("CACHE_SERIES_LRU_SIZE", "lots")

	cfg := GetCacheConfig()

	assert.Equal(t, defaultSeriesLRUSize, cfg.SeriesLRUSize)
}
