package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/glovoll/nortide/internal/adjust"
	"github.com/glovoll/nortide/internal/config"
	"github.com/glovoll/nortide/internal/models"
	"github.com/glovoll/nortide/internal/station"
	"github.com/glovoll/nortide/internal/waterlevel"
	"github.com/glovoll/nortide/pkg/http/client"
)

func main() {
	cfg := config.LoadFromEnv()
	cfg.InitializeLogging()

	var (
		tsCol    = flag.String("ts-col", "", "timestamp column name (default \"timestamp\")")
		dateCol  = flag.String("date-col", "", "date column, used with -time-col when there is no timestamp column")
		clockCol = flag.String("time-col", "", "clock column, used with -date-col")
		latCol   = flag.String("lat-col", "Latitude", "latitude column name")
		lonCol   = flag.String("lon-col", "Longitude", "longitude column name")
		depthCol = flag.String("depth-col", "Dyp", "measured depth column name")
		startRow = flag.Int("start-row", 0, "process from this data row")
		endRow   = flag.Int("end-row", 0, "process up to this data row (0 = all)")
		invert   = flag.Bool("invert-depth", false, "invert depths given as negative values")
		refCode  = flag.String("refcode", waterlevel.DefaultRefCode, "reference level code")
		dataType = flag.String("datatype", "OBS", "TAB, PRE, OBS or ALL")
		fallback = flag.Float64("fallback", 0, "fallback station radius in km")
		delay    = flag.Duration("delay", 100*time.Millisecond, "pause between upstream requests")
		sep      = flag.String("sep", ",", "CSV separator (use \";\" for Norwegian-locale files)")
		timeZone = flag.String("time-zone", "Europe/Oslo", "IANA zone of naive input timestamps")
	)
	flag.Parse()

	if flag.NArg() != 2 {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] infile.csv outfile.csv\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(2)
	}

	comma := ','
	if *sep != "" {
		comma = rune((*sep)[0])
	}

	location, err := time.LoadLocation(*timeZone)
	if err != nil {
		log.Fatal().Err(err).Str("time_zone", *timeZone).Msg("Unknown time zone")
	}

	httpClient := client.New(client.Options{
		BaseURL:    cfg.APIBaseURL,
		Timeout:    cfg.HTTPTimeout,
		MaxRetries: cfg.MaxRetries,
	})
	finder := station.NewKartverketStationFinder(httpClient, nil)
	service := waterlevel.NewService(httpClient, finder)

	adjuster := adjust.New(service, adjust.Options{
		TimeColumn:       *tsCol,
		DateColumn:       *dateCol,
		ClockColumn:      *clockCol,
		LatColumn:        *latCol,
		LonColumn:        *lonCol,
		DepthColumn:      *depthCol,
		StartRow:         *startRow,
		EndRow:           *endRow,
		InvertDepth:      *invert,
		Location:         location,
		RefCode:          *refCode,
		DataType:         models.DataType(*dataType),
		FallbackDistance: *fallback,
		Delay:            *delay,
		Comma:            comma,
	})

	if err := runFiles(adjuster, flag.Arg(0), flag.Arg(1)); err != nil {
		log.Fatal().Err(err).Msg("depth adjustment failed")
	}
	log.Info().Str("outfile", flag.Arg(1)).Msg("Depth adjustment finished")
}

func runFiles(adjuster *adjust.Adjuster, inPath, outPath string) error {
	in, err := os.Open(inPath)
	if err != nil {
		return fmt.Errorf("opening input: %w", err)
	}
	defer func() {
		if closeErr := in.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Msg("Closing input file")
		}
	}()

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("creating output: %w", err)
	}

	if err := adjuster.Run(context.Background(), in, out); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
