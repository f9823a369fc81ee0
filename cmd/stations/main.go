package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/glovoll/nortide/internal/config"
	"github.com/glovoll/nortide/internal/models"
	"github.com/glovoll/nortide/internal/station"
	"github.com/glovoll/nortide/pkg/http/client"
)

type options struct {
	code    string
	search  string
	lat     float64
	lon     float64
	limit   int
	asJSON  bool
	hasLat  bool
	hasLon  bool
}

func main() {
	cfg := config.LoadFromEnv()
	cfg.InitializeLogging()

	var opts options
	flag.StringVar(&opts.code, "code", "", "look up a single station by code")
	flag.StringVar(&opts.search, "search", "", "search stations by name")
	flag.Float64Var(&opts.lat, "lat", math.NaN(), "latitude for nearest-station search")
	flag.Float64Var(&opts.lon, "lon", math.NaN(), "longitude for nearest-station search")
	flag.IntVar(&opts.limit, "limit", 5, "max stations for nearest-station search")
	flag.BoolVar(&opts.asJSON, "json", false, "output JSON instead of text")
	flag.Parse()
	opts.hasLat = !math.IsNaN(opts.lat)
	opts.hasLon = !math.IsNaN(opts.lon)

	httpClient := client.New(client.Options{
		BaseURL:    cfg.APIBaseURL,
		Timeout:    cfg.HTTPTimeout,
		MaxRetries: cfg.MaxRetries,
	})
	finder := station.NewKartverketStationFinder(httpClient, nil)

	if err := run(context.Background(), finder, opts, os.Stdout); err != nil {
		log.Fatal().Err(err).Msg("stations command failed")
	}
}

func run(ctx context.Context, finder station.Finder, opts options, w io.Writer) error {
	var stations []models.Station

	switch {
	case opts.code != "":
		st, err := finder.FindStation(ctx, opts.code)
		if err != nil {
			return err
		}
		stations = []models.Station{*st}
	case opts.search != "":
		var err error
		stations, err = finder.SearchStations(ctx, opts.search)
		if err != nil {
			return err
		}
	case opts.hasLat && opts.hasLon:
		var err error
		stations, err = finder.FindNearestStations(ctx, opts.lat, opts.lon, opts.limit)
		if err != nil {
			return err
		}
	default:
		var err error
		stations, err = finder.ListStations(ctx)
		if err != nil {
			return err
		}
	}

	return printStations(w, stations, opts.asJSON)
}

func printStations(w io.Writer, stations []models.Station, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(stations)
	}

	for _, st := range stations {
		if _, err := fmt.Fprintf(w, "%-5s %-30s %9.5f %9.5f\n",
			st.Code, st.Name, st.Latitude, st.Longitude); err != nil {
			return err
		}
	}
	return nil
}
