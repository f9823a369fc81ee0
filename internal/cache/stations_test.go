package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/glovoll/nortide/internal/models"
)

func TestStationCacheEmpty(t *testing.T) {
	t.Parallel()

	c := NewStationCache(time.Hour)

	assert.Nil(t, c.GetStations())
}

func TestStationCacheRoundTrip(t *testing.T) {
	t.Parallel()

	c := NewStationCache(time.Hour)
	stations := []models.Station{
		{Code: "ANX", Name: "Andenes", Latitude: 69.326067, Longitude: 16.134848},
		{Code: "OSL", Name: "Oslo", Latitude: 59.908559, Longitude: 10.734510},
	}

	c.SetStations(stations)

	got := c.GetStations()
	assert.Equal(t, stations, got)
}

func TestStationCacheExpiry(t *testing.T) {
	t.Parallel()

	c := NewStationCache(10 * time.Millisecond)
	c.SetStations([]models.Station{{Code: "ANX"}})

	assert.NotNil(t, c.GetStations())

	time.Sleep(20 * time.Millisecond)

	assert.Nil(t, c.GetStations())
}

func TestStationCacheDefaultTTL(t *testing.T) {
	t.Parallel()

	c := NewStationCache(0)
	c.SetStations([]models.Station{{Code: "ANX"}})

	assert.NotNil(t, c.GetStations())
}
