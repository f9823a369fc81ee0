package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/glovoll/nortide/internal/config"
	"github.com/glovoll/nortide/internal/export"
	"github.com/glovoll/nortide/internal/models"
	"github.com/glovoll/nortide/internal/station"
	"github.com/glovoll/nortide/internal/waterlevel"
	"github.com/glovoll/nortide/pkg/http/client"
)

type options struct {
	stationCode string
	lat         float64
	lon         float64
	from        string
	to          string
	at          string
	dataType    string
	refCode     string
	interval    int
	fallback    float64
	format      string
	lang        string
	levels      bool
	refLevels   bool
	languages   bool
	refCodeSet  bool
}

func main() {
	cfg := config.LoadFromEnv()
	cfg.InitializeLogging()

	var opts options
	flag.StringVar(&opts.stationCode, "station", "", "station code, overrides -lat/-lon")
	flag.Float64Var(&opts.lat, "lat", math.NaN(), "latitude of query position")
	flag.Float64Var(&opts.lon, "lon", math.NaN(), "longitude of query position")
	flag.StringVar(&opts.from, "from", "", "start of time range (UTC+1 when no offset given)")
	flag.StringVar(&opts.to, "to", "", "end of time range; empty range means the last 24 hours")
	flag.StringVar(&opts.at, "at", "", "single timestamp: print one interpolated level instead of a series")
	flag.StringVar(&opts.dataType, "datatype", "OBS", "TAB, PRE, OBS or ALL")
	flag.StringVar(&opts.refCode, "refcode", waterlevel.DefaultRefCode, "reference level code (-levels defaults to MSL when unset)")
	flag.IntVar(&opts.interval, "interval", 60, "sample interval in minutes (10 or 60)")
	flag.Float64Var(&opts.fallback, "fallback", 0, "with -at: fallback station radius in km")
	flag.StringVar(&opts.format, "format", "text", "output format: text, csv or json")
	flag.StringVar(&opts.lang, "lang", cfg.Language, "response language for station and level names")
	flag.BoolVar(&opts.levels, "levels", false, "print statistical levels for -station and exit")
	flag.BoolVar(&opts.refLevels, "reflevels", false, "print reference levels for -lat/-lon and exit")
	flag.BoolVar(&opts.languages, "languages", false, "print supported API languages and exit")
	flag.Parse()
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "refcode" {
			opts.refCodeSet = true
		}
	})

	httpClient := client.New(client.Options{
		BaseURL:    cfg.APIBaseURL,
		Timeout:    cfg.HTTPTimeout,
		MaxRetries: cfg.MaxRetries,
	})
	finder := station.NewKartverketStationFinder(httpClient, nil)
	service := waterlevel.NewService(httpClient, finder)

	if err := run(context.Background(), service, finder, opts, os.Stdout); err != nil {
		log.Fatal().Err(err).Msg("waterlevel command failed")
	}
}

func run(ctx context.Context, service waterlevel.Provider, finder station.Finder, opts options, w io.Writer) error {
	switch {
	case opts.languages:
		languages, err := service.Languages(ctx)
		if err != nil {
			return err
		}
		return printJSON(w, languages)
	case opts.levels:
		if opts.stationCode == "" {
			return fmt.Errorf("-levels requires -station")
		}
		// An unset -refcode means MSL for levels, not the series default.
		refCode := ""
		if opts.refCodeSet {
			refCode = opts.refCode
		}
		levels, err := service.StationLevels(ctx, opts.stationCode, refCode)
		if err != nil {
			return err
		}
		return printJSON(w, levels)
	}

	lat, lon, err := resolvePosition(ctx, finder, opts)
	if err != nil {
		return err
	}

	if opts.refLevels {
		levels, err := service.StandardLevels(ctx, lat, lon)
		if err != nil {
			return err
		}
		return printJSON(w, levels)
	}

	if opts.at != "" {
		ts, err := models.ParseTime(opts.at)
		if err != nil {
			return fmt.Errorf("parsing -at: %w", err)
		}
		level, err := service.WaterLevelAt(ctx, waterlevel.PointQuery{
			Time:             ts,
			Lat:              lat,
			Lon:              lon,
			DataType:         models.DataType(opts.dataType),
			RefCode:          opts.refCode,
			FallbackDistance: opts.fallback,
		})
		if err != nil {
			return err
		}
		return printJSON(w, level)
	}

	var from, to time.Time
	if opts.from != "" {
		if from, err = models.ParseTime(opts.from); err != nil {
			return fmt.Errorf("parsing -from: %w", err)
		}
	}
	if opts.to != "" {
		if to, err = models.ParseTime(opts.to); err != nil {
			return fmt.Errorf("parsing -to: %w", err)
		}
	}

	series, err := service.FetchSeries(ctx, waterlevel.Query{
		Lat:      lat,
		Lon:      lon,
		From:     from,
		To:       to,
		DataType: models.DataType(opts.dataType),
		RefCode:  opts.refCode,
		Interval: opts.interval,
		Lang:     opts.lang,
	})
	if err != nil {
		return err
	}

	return printSeries(w, series, opts.format)
}

// resolvePosition turns -station into coordinates, or validates that both
// -lat and -lon were given.
func resolvePosition(ctx context.Context, finder station.Finder, opts options) (float64, float64, error) {
	if opts.stationCode != "" {
		st, err := finder.FindStation(ctx, opts.stationCode)
		if err != nil {
			return 0, 0, err
		}
		return st.Latitude, st.Longitude, nil
	}
	if math.IsNaN(opts.lat) || math.IsNaN(opts.lon) {
		return 0, 0, fmt.Errorf("either -station or both -lat and -lon are required")
	}
	return opts.lat, opts.lon, nil
}

func printSeries(w io.Writer, series *models.Series, format string) error {
	switch format {
	case "json":
		return printJSON(w, series)
	case "csv":
		return export.FromSeries(series).WriteCSV(w, ',')
	case "text":
		return export.FromSeries(series).WriteText(w)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
