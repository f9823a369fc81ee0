// Package adjust corrects depth soundings for the tide. It reads a CSV of
// timestamped positions with measured depths, queries the water level for
// each row and writes the input back out with corrected-depth columns
// appended.
package adjust

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/glovoll/nortide/internal/models"
	"github.com/glovoll/nortide/internal/waterlevel"
)

type Options struct {
	// Column names in the input CSV, matched case-insensitively.
	TimeColumn  string // single timestamp column
	DateColumn  string // date + clock pair, used when TimeColumn is empty
	ClockColumn string
	LatColumn   string
	LonColumn   string
	DepthColumn string

	// Row range to process, half open, relative to the first data row.
	// EndRow 0 means all rows.
	StartRow int
	EndRow   int

	// InvertDepth flips the sign of depths given as negative values.
	InvertDepth bool

	// Location interprets row timestamps that carry no offset. Survey
	// files are usually recorded in local wall-clock time, so the
	// default is Europe/Oslo, which differs from the upstream's fixed
	// UTC+1 during DST.
	Location *time.Location

	RefCode          string
	DataType         models.DataType
	FallbackDistance float64 // km

	// Delay between upstream requests. The API rate limits aggressively,
	// so a per-row pause is the polite default.
	Delay time.Duration

	Comma rune // CSV separator, ',' when zero
}

func (o *Options) applyDefaults() {
	if o.TimeColumn == "" && o.DateColumn == "" {
		o.TimeColumn = "timestamp"
	}
	if o.LatColumn == "" {
		o.LatColumn = "Latitude"
	}
	if o.LonColumn == "" {
		o.LonColumn = "Longitude"
	}
	if o.DepthColumn == "" {
		o.DepthColumn = "Dyp"
	}
	if o.Comma == 0 {
		o.Comma = ','
	}
	if o.Delay == 0 {
		o.Delay = 100 * time.Millisecond
	}
	if o.Location == nil {
		if loc, err := time.LoadLocation("Europe/Oslo"); err == nil {
			o.Location = loc
		} else {
			o.Location = models.APITimeZone
		}
	}
}

type Adjuster struct {
	provider waterlevel.Provider
	opts     Options
}

func New(provider waterlevel.Provider, opts Options) *Adjuster {
	opts.applyDefaults()
	return &Adjuster{
		provider: provider,
		opts:     opts,
	}
}

// Run processes the CSV on r and writes the adjusted CSV to w. Rows whose
// correction cannot be computed are passed through with empty correction
// columns rather than failing the whole run.
func (a *Adjuster) Run(ctx context.Context, r io.Reader, w io.Writer) error {
	reader := csv.NewReader(r)
	reader.Comma = a.opts.Comma
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}
	if len(records) < 2 {
		return fmt.Errorf("input has no data rows")
	}

	header := records[0]
	cols, err := a.resolveColumns(header)
	if err != nil {
		return err
	}

	rows := records[1:]
	start, end := a.opts.StartRow, a.opts.EndRow
	if end == 0 || end > len(rows) {
		end = len(rows)
	}
	if start < 0 || start > end {
		return fmt.Errorf("invalid row range [%d, %d)", start, end)
	}
	rows = rows[start:end]

	writer := csv.NewWriter(w)
	writer.Comma = a.opts.Comma
	outHeader := append(append([]string{}, header...), "corr_depth", "correction", "correction_type", "refcode")
	if err := writer.Write(outHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, row := range rows {
		if i > 0 && a.opts.Delay > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(a.opts.Delay):
			}
		}

		out := append([]string{}, row...)
		corrected, level, rowErr := a.adjustRow(ctx, row, cols)
		if rowErr != nil {
			log.Warn().Err(rowErr).Int("row", start+i).Msg("Skipping correction for row")
			out = append(out, "", "", "", "")
		} else {
			out = append(out,
				strconv.FormatFloat(corrected, 'f', 2, 64),
				strconv.FormatFloat(level.Value, 'f', 0, 64),
				string(level.Kind),
				level.RefCode,
			)
		}
		if err := writer.Write(out); err != nil {
			return fmt.Errorf("writing row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

type columns struct {
	time  int
	date  int
	clock int
	lat   int
	lon   int
	depth int
}

func (c *columns) maxIndex() int {
	max := -1
	for _, i := range []int{c.time, c.date, c.clock, c.lat, c.lon, c.depth} {
		if i > max {
			max = i
		}
	}
	return max
}

func (a *Adjuster) resolveColumns(header []string) (*columns, error) {
	cols := &columns{time: -1, date: -1, clock: -1, lat: -1, lon: -1, depth: -1}
	find := func(name string) int {
		for i, h := range header {
			if strings.EqualFold(strings.TrimSpace(h), name) {
				return i
			}
		}
		return -1
	}

	if a.opts.TimeColumn != "" {
		if cols.time = find(a.opts.TimeColumn); cols.time < 0 {
			return nil, fmt.Errorf("timestamp column %q not found", a.opts.TimeColumn)
		}
	} else {
		if cols.date = find(a.opts.DateColumn); cols.date < 0 {
			return nil, fmt.Errorf("date column %q not found", a.opts.DateColumn)
		}
		if cols.clock = find(a.opts.ClockColumn); cols.clock < 0 {
			return nil, fmt.Errorf("time column %q not found", a.opts.ClockColumn)
		}
	}
	if cols.lat = find(a.opts.LatColumn); cols.lat < 0 {
		return nil, fmt.Errorf("latitude column %q not found", a.opts.LatColumn)
	}
	if cols.lon = find(a.opts.LonColumn); cols.lon < 0 {
		return nil, fmt.Errorf("longitude column %q not found", a.opts.LonColumn)
	}
	if cols.depth = find(a.opts.DepthColumn); cols.depth < 0 {
		return nil, fmt.Errorf("depth column %q not found", a.opts.DepthColumn)
	}
	return cols, nil
}

func (a *Adjuster) adjustRow(ctx context.Context, row []string, cols *columns) (float64, *models.WaterLevel, error) {
	// Ragged rows are admitted by the reader; reject the short ones here
	// so they pass through with empty correction columns.
	if last := cols.maxIndex(); last >= len(row) {
		return 0, nil, fmt.Errorf("row has %d fields, need at least %d", len(row), last+1)
	}

	ts, err := a.rowTimestamp(row, cols)
	if err != nil {
		return 0, nil, err
	}

	lat, err := ParseFloat(row[cols.lat])
	if err != nil {
		return 0, nil, fmt.Errorf("parsing latitude: %w", err)
	}
	lon, err := ParseFloat(row[cols.lon])
	if err != nil {
		return 0, nil, fmt.Errorf("parsing longitude: %w", err)
	}
	depth, err := ParseFloat(row[cols.depth])
	if err != nil {
		return 0, nil, fmt.Errorf("parsing depth: %w", err)
	}
	if a.opts.InvertDepth {
		depth = -depth
	}

	level, err := a.provider.WaterLevelAt(ctx, waterlevel.PointQuery{
		Time:             ts,
		Lat:              lat,
		Lon:              lon,
		DataType:         a.opts.DataType,
		RefCode:          a.opts.RefCode,
		FallbackDistance: a.opts.FallbackDistance,
	})
	if err != nil {
		return 0, nil, err
	}

	// Water levels are in cm, depths in m.
	corrected := depth - level.Value/100
	return corrected, level, nil
}

func (a *Adjuster) rowTimestamp(row []string, cols *columns) (time.Time, error) {
	if cols.time >= 0 {
		return models.ParseTimeIn(strings.TrimSpace(row[cols.time]), a.opts.Location)
	}
	joined := strings.TrimSpace(row[cols.date]) + "T" + strings.TrimSpace(row[cols.clock])
	return models.ParseTimeIn(joined, a.opts.Location)
}

// ParseFloat parses a float that may use a Norwegian-locale decimal comma.
func ParseFloat(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return v, nil
	}
	return strconv.ParseFloat(strings.Replace(s, ",", ".", 1), 64)
}
