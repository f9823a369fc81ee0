package station

import (
	"context"
	"encoding/xml"
	"fmt"
	"math"
	"net/url"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/glovoll/nortide/internal/cache"
	"github.com/glovoll/nortide/internal/config"
	"github.com/glovoll/nortide/internal/models"
	"github.com/glovoll/nortide/pkg/http/client"
)

// KartverketStationFinder resolves the public station list of the sehavniva.no
// API and answers code, name and proximity lookups against it.
type KartverketStationFinder struct {
	httpClient *client.Client
	cache      *cache.StationCache
	cacheMutex sync.RWMutex
}

func NewKartverketStationFinder(httpClient *client.Client, stationCache *cache.StationCache) *KartverketStationFinder {
	if stationCache == nil {
		cacheConfig := config.GetCacheConfig()
		stationCache = cache.NewStationCache(cacheConfig.GetStationListTTL())
	}
	return &KartverketStationFinder{
		httpClient: httpClient,
		cache:      stationCache,
	}
}

// ListStations returns every public station known to the API.
func (f *KartverketStationFinder) ListStations(ctx context.Context) ([]models.Station, error) {
	return f.getStationList(ctx)
}

// FindStation looks a station up by its code, case-insensitively.
func (f *KartverketStationFinder) FindStation(ctx context.Context, code string) (*models.Station, error) {
	stations, err := f.getStationList(ctx)
	if err != nil {
		return nil, fmt.Errorf("getting station list: %w", err)
	}

	for _, station := range stations {
		if strings.EqualFold(station.Code, code) {
			log.Trace().Str("station_code", station.Code).Msg("FindStation: Found station")
			return &station, nil
		}
	}

	return nil, &NotFoundError{Query: code}
}

// SearchStations returns all stations whose name contains the given string,
// case-insensitively.
func (f *KartverketStationFinder) SearchStations(ctx context.Context, name string) ([]models.Station, error) {
	stations, err := f.getStationList(ctx)
	if err != nil {
		return nil, fmt.Errorf("getting station list: %w", err)
	}

	needle := strings.ToLower(name)
	var matches []models.Station
	for _, station := range stations {
		if strings.Contains(strings.ToLower(station.Name), needle) {
			matches = append(matches, station)
		}
	}
	return matches, nil
}

// GetStation returns the single station matching name. It fails when the name
// is ambiguous or matches nothing.
func (f *KartverketStationFinder) GetStation(ctx context.Context, name string) (*models.Station, error) {
	matches, err := f.SearchStations(ctx, name)
	if err != nil {
		return nil, err
	}

	switch len(matches) {
	case 1:
		return &matches[0], nil
	case 0:
		return nil, &NotFoundError{Query: name}
	default:
		codes := make([]string, len(matches))
		for i, m := range matches {
			codes[i] = m.Code
		}
		return nil, &AmbiguousError{Query: name, Matches: codes}
	}
}

func (f *KartverketStationFinder) FindNearestStations(ctx context.Context, lat, lon float64, limit int) ([]models.Station, error) {
	stations, err := f.getStationList(ctx)
	if err != nil {
		return nil, fmt.Errorf("getting station list: %w", err)
	}

	// Calculate distances in parallel using worker pool
	const workerCount = 4
	work := make(chan models.Station, len(stations))
	results := make(chan models.Station, len(stations))

	var wg sync.WaitGroup
	for i := 0; i < workerCount; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for station := range work {
				station.Distance = calculateDistance(lat, lon, station.Latitude, station.Longitude)
				results <- station
			}
		}()
	}

	// Send work
	for _, station := range stations {
		work <- station
	}
	close(work)

	// Wait for workers and close results
	go func() {
		wg.Wait()
		close(results)
	}()

	// Collect and sort results
	var stationsWithDistance []models.Station
	for station := range results {
		log.Trace().Str("station_code", station.Code).Float64("distance_km", station.Distance).Msg("FindNearestStations: Collecting")
		stationsWithDistance = append(stationsWithDistance, station)
	}

	// Sort by distance and limit results
	sort.Slice(stationsWithDistance, func(i, j int) bool {
		return stationsWithDistance[i].Distance < stationsWithDistance[j].Distance
	})

	if len(stationsWithDistance) > limit {
		stationsWithDistance = stationsWithDistance[:limit]
	}

	return stationsWithDistance, nil
}

func (f *KartverketStationFinder) getStationList(ctx context.Context) ([]models.Station, error) {
	// Check cache first
	f.cacheMutex.RLock()
	cachedStations := f.cache.GetStations()
	f.cacheMutex.RUnlock()

	if cachedStations != nil {
		log.Debug().Msg("Cache HIT for station list")
		return cachedStations, nil
	}
	log.Debug().Msg("Cache MISS for station list, calling tide API")

	params := url.Values{}
	params.Set("tide_request", "stationlist")
	params.Set("type", "public")

	resp, err := f.httpClient.Get(ctx, "?"+params.Encode())
	if err != nil {
		return nil, fmt.Errorf("fetching stations: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("fetching stations: unexpected status %d", resp.StatusCode)
	}

	var doc models.TideDocument
	if err := xml.Unmarshal(resp.Body, &doc); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	if doc.StationInfo == nil {
		return nil, fmt.Errorf("no stationinfo in response")
	}

	// Convert to Station objects
	stations := make([]models.Station, len(doc.StationInfo.Locations))
	for i, loc := range doc.StationInfo.Locations {
		var stationType *string
		if loc.Type != "" {
			stationTypeValue := loc.Type
			stationType = &stationTypeValue
		}

		stations[i] = models.Station{
			Code:      loc.Code,
			Name:      loc.Name,
			Latitude:  loc.Latitude,
			Longitude: loc.Longitude,
			Type:      stationType,
		}
	}

	log.Debug().Int("station_count", len(stations)).Msgf("Caching list of %d stations", len(stations))

	// Update cache
	f.cacheMutex.Lock()
	f.cache.SetStations(stations)
	f.cacheMutex.Unlock()

	return stations, nil
}

func calculateDistance(lat1, lon1, lat2, lon2 float64) float64 {
	const earthRadius = 6371.0 // km

	dLat := toRadians(lat2 - lat1)
	dLon := toRadians(lon2 - lon1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadius * c
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
