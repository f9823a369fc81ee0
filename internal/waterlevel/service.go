package waterlevel

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"math"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/glovoll/nortide/internal/cache"
	"github.com/glovoll/nortide/internal/config"
	"github.com/glovoll/nortide/internal/models"
	"github.com/glovoll/nortide/internal/station"
	"github.com/glovoll/nortide/pkg/http/client"
)

// Service answers water-level queries against the sehavniva.no API.
type Service struct {
	httpClient    client.Interface
	stationFinder station.Finder
	seriesCache   *cache.SeriesCache
}

func NewService(httpClient client.Interface, stationFinder station.Finder) *Service {
	var seriesCache *cache.SeriesCache
	if cacheConfig := config.GetCacheConfig(); cacheConfig.EnableLRUCache {
		var err error
		seriesCache, err = cache.NewSeriesCache(cacheConfig)
		if err != nil {
			// Only fails on a non-positive size; fall back to no caching.
			log.Warn().Err(err).Msg("Series cache disabled")
			seriesCache = nil
		}
	}
	return &Service{
		httpClient:    httpClient,
		stationFinder: stationFinder,
		seriesCache:   seriesCache,
	}
}

// FetchSeries runs a locationdata query and returns the parsed time series.
// An empty time range means the last 24 hours.
func (s *Service) FetchSeries(ctx context.Context, q Query) (*models.Series, error) {
	q.applyDefaults()
	if err := q.validate(); err != nil {
		return nil, err
	}

	key := q.encode()
	if s.seriesCache != nil {
		if cached := s.seriesCache.GetSeries(key); cached != nil {
			log.Debug().Msg("Cache HIT for series")
			return cached, nil
		}
	}

	doc, err := s.fetchTideDocument(ctx, key)
	if err != nil {
		return nil, err
	}

	series, err := seriesFromDocument(doc)
	if err != nil {
		return nil, err
	}

	log.Debug().
		Float64("lat", q.Lat).
		Float64("lon", q.Lon).
		Str("datatype", string(q.DataType)).
		Int("observations", len(series.Observations)).
		Msg("Fetched water level series")

	if s.seriesCache != nil {
		s.seriesCache.SaveSeries(key, series)
	}
	return series, nil
}

// WaterLevelAt returns a single water level for a timestamp and position.
// The upstream serves data in 10-minute steps, so the value is a linear
// interpolation between the two nearest samples, rounded to the nearest cm.
func (s *Service) WaterLevelAt(ctx context.Context, q PointQuery) (*models.WaterLevel, error) {
	if q.Time.IsZero() {
		return nil, NewInvalidRangeError("timestamp must not be empty")
	}
	ts := q.Time.In(models.APITimeZone)

	seriesQuery := Query{
		Lat:      q.Lat,
		Lon:      q.Lon,
		From:     ts.Add(-3 * time.Hour),
		To:       ts.Add(3 * time.Hour),
		DataType: q.DataType,
		RefCode:  q.RefCode,
		Interval: 10,
	}
	seriesQuery.applyDefaults()

	var fallbackStation *models.Station
	series, err := s.FetchSeries(ctx, seriesQuery)
	if err != nil {
		var noData *NoDataError
		if !errors.As(err, &noData) || q.FallbackDistance <= 0 {
			return nil, err
		}

		// No data at the position itself; retry at the closest station
		// within the fallback radius.
		nearest, ferr := s.stationFinder.FindNearestStations(ctx, q.Lat, q.Lon, 1)
		if ferr != nil {
			return nil, fmt.Errorf("finding fallback station: %w", ferr)
		}
		if len(nearest) == 0 || nearest[0].Distance > q.FallbackDistance {
			return nil, fmt.Errorf("no station within %.1f km: %w", q.FallbackDistance, err)
		}
		fallbackStation = &nearest[0]
		log.Info().
			Str("station", fallbackStation.Name).
			Float64("distance_km", fallbackStation.Distance).
			Msg("Using fallback station")

		seriesQuery.Lat = fallbackStation.Latitude
		seriesQuery.Lon = fallbackStation.Longitude
		series, err = s.FetchSeries(ctx, seriesQuery)
		if err != nil {
			return nil, err
		}
	}

	if len(series.Observations) < 2 {
		return nil, NewTideAPIError("not enough data points to interpolate", nil)
	}

	value, kind := interpolateObservations(series.Observations, ts)
	return &models.WaterLevel{
		Value:   math.Round(value),
		Kind:    kind,
		RefCode: seriesQuery.RefCode,
		Station: fallbackStation,
	}, nil
}

// StationLevels returns the statistical levels (mean sea level, highest
// observed, and so on) for a station, relative to refCode.
func (s *Service) StationLevels(ctx context.Context, stationCode, refCode string) ([]models.RefLevel, error) {
	if refCode == "" {
		refCode = "MSL"
	}
	params := make(url.Values)
	params.Set("tide_request", "stationlevels")
	params.Set("stationcode", stationCode)
	params.Set("lang", defaultLang)
	params.Set("refcode", refCode)

	doc, err := s.fetchTideDocument(ctx, params.Encode())
	if err != nil {
		return nil, err
	}
	if doc.LocationLevel == nil {
		return nil, NewTideAPIError("no locationlevel in response", nil)
	}
	return refLevelsFromXML(doc.LocationLevel.RefLevels), nil
}

// StandardLevels returns the reference-level codes available at a position.
func (s *Service) StandardLevels(ctx context.Context, lat, lon float64) ([]models.RefLevel, error) {
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return nil, InvalidCoordinatesError{}
	}
	params := make(url.Values)
	params.Set("tide_request", "standardlevels")
	params.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	params.Set("lang", defaultLang)

	doc, err := s.fetchTideDocument(ctx, params.Encode())
	if err != nil {
		return nil, err
	}
	if doc.StandardLevels == nil {
		return nil, NewTideAPIError("no standardlevels in response", nil)
	}
	return refLevelsFromXML(doc.StandardLevels.RefLevels), nil
}

// Languages returns the response languages the API supports.
func (s *Service) Languages(ctx context.Context) ([]models.Language, error) {
	params := make(url.Values)
	params.Set("tide_request", "languages")

	doc, err := s.fetchTideDocument(ctx, params.Encode())
	if err != nil {
		return nil, err
	}
	if doc.Languages == nil {
		return nil, NewTideAPIError("no languages in response", nil)
	}

	languages := make([]models.Language, len(doc.Languages.Languages))
	for i, l := range doc.Languages.Languages {
		languages[i] = models.Language{Code: l.Code, Name: l.Name}
	}
	return languages, nil
}

func (s *Service) fetchTideDocument(ctx context.Context, query string) (*models.TideDocument, error) {
	resp, err := s.httpClient.Get(ctx, "?"+query)
	if err != nil {
		return nil, fmt.Errorf("fetching tide data: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, NewTideAPIError(fmt.Sprintf("unexpected status %d", resp.StatusCode), nil)
	}

	var doc models.TideDocument
	if err := xml.Unmarshal(resp.Body, &doc); err != nil {
		return nil, NewTideAPIError("decoding response", err)
	}
	if doc.NoData != nil {
		return nil, &NoDataError{Info: doc.NoData.Info}
	}
	return &doc, nil
}

func seriesFromDocument(doc *models.TideDocument) (*models.Series, error) {
	ld := doc.LocationData
	if ld == nil {
		return nil, NewTideAPIError("no locationdata in response", nil)
	}

	series := &models.Series{RefCode: ld.RefLevelCode}
	if ld.Location != nil {
		series.Name = ld.Location.Name
		series.Code = ld.Location.Code
		series.Latitude = ld.Location.Latitude
		series.Longitude = ld.Location.Longitude
	}

	for _, group := range ld.Data {
		kind := models.SeriesKind(group.Type)
		for _, wl := range group.WaterLevels {
			t, err := models.ParseTime(wl.Time)
			if err != nil {
				return nil, NewTideAPIError("parsing observation time", err)
			}
			value, err := strconv.ParseFloat(wl.Value, 64)
			if err != nil {
				return nil, NewTideAPIError(fmt.Sprintf("parsing value %q", wl.Value), err)
			}
			series.Observations = append(series.Observations, models.Observation{
				Time:  t,
				Value: value,
				Flag:  wl.Flag,
				Kind:  kind,
			})
		}
	}

	sort.Slice(series.Observations, func(i, j int) bool {
		return series.Observations[i].Time.Before(series.Observations[j].Time)
	})
	return series, nil
}

func refLevelsFromXML(levels []models.RefLevelXML) []models.RefLevel {
	out := make([]models.RefLevel, len(levels))
	for i, l := range levels {
		out[i] = models.RefLevel{
			Code:        l.Code,
			Name:        l.Name,
			Description: l.Descr,
		}
		if v := strings.TrimSpace(l.Value); v != "" {
			if value, err := strconv.ParseFloat(v, 64); err == nil {
				out[i].Value = &value
			}
		}
	}
	return out
}

// interpolateObservations linearly interpolates between the two observations
// bracketing ts, clamping to the first or last sample outside the range.
func interpolateObservations(observations []models.Observation, ts time.Time) (float64, models.SeriesKind) {
	idx := sort.Search(len(observations), func(i int) bool {
		return !observations[i].Time.Before(ts)
	})
	if idx <= 0 {
		return observations[0].Value, observations[0].Kind
	}
	if idx >= len(observations) {
		last := observations[len(observations)-1]
		return last.Value, last.Kind
	}

	// Linear interpolation
	o1 := observations[idx-1]
	o2 := observations[idx]
	ratio := float64(ts.Sub(o1.Time)) / float64(o2.Time.Sub(o1.Time))
	return o1.Value + (o2.Value-o1.Value)*ratio, o1.Kind
}
