// Package export materializes water-level series into a fixed tabular schema
// for CSV or text output.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/glovoll/nortide/internal/models"
)

// Table is a materialized series: one row per observation with a fixed
// time/value/flag/kind schema.
type Table struct {
	Header []string
	Rows   [][]string
}

const timeColumnLayout = "2006-01-02T15:04:05"

// FromSeries converts a series into a table. Times are rendered in the API's
// UTC+1 convention without an offset suffix.
func FromSeries(series *models.Series) *Table {
	table := &Table{
		Header: []string{"time", "value", "flag", "kind"},
		Rows:   make([][]string, 0, len(series.Observations)),
	}
	for _, obs := range series.Observations {
		table.Rows = append(table.Rows, []string{
			obs.Time.In(models.APITimeZone).Format(timeColumnLayout),
			strconv.FormatFloat(obs.Value, 'f', -1, 64),
			obs.Flag,
			string(obs.Kind),
		})
	}
	return table
}

// WriteCSV encodes the table as CSV with the given separator. A zero comma
// means ','.
func (t *Table) WriteCSV(w io.Writer, comma rune) error {
	cw := csv.NewWriter(w)
	if comma != 0 {
		cw.Comma = comma
	}
	if err := cw.Write(t.Header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, row := range t.Rows {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteText renders the table in aligned columns for terminal output.
func (t *Table) WriteText(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	if err := writeTabRow(tw, t.Header); err != nil {
		return err
	}
	for _, row := range t.Rows {
		if err := writeTabRow(tw, row); err != nil {
			return err
		}
	}
	return tw.Flush()
}

func writeTabRow(w io.Writer, fields []string) error {
	for i, f := range fields {
		if i > 0 {
			if _, err := io.WriteString(w, "\t"); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, f); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "\n")
	return err
}
