package models

import (
	"fmt"
	"time"
)

// APITimeZone is the fixed UTC+1 offset the sehavniva.no API assumes for
// every timestamp that does not carry an explicit offset.
var APITimeZone = time.FixedZone("UTC+1", 3600)

// timeLayouts are tried in order when parsing timestamps from the API or
// from user input. The dotted layouts cover day-first dates common in
// Norwegian survey exports.
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02.01.2006T15:04:05",
	"02.01.2006 15:04:05",
	"02.01.2006T15:04",
	"02.01.2006",
}

// ParseTime parses a timestamp string, interpreting timezone-naive values in
// the API's UTC+1 convention. The result is always expressed in UTC+1.
func ParseTime(s string) (time.Time, error) {
	return ParseTimeIn(s, APITimeZone)
}

// ParseTimeIn parses a timestamp string, interpreting timezone-naive values
// in loc. The result is always expressed in UTC+1.
func ParseTimeIn(s string, loc *time.Location) (time.Time, error) {
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t.In(APITimeZone), nil
		}
	}
	return time.Time{}, fmt.Errorf("unsupported timestamp %q", s)
}

// FormatTime renders a timestamp the way the API expects query parameters:
// ISO 8601 in UTC+1 with an explicit offset.
func FormatTime(t time.Time) string {
	return t.In(APITimeZone).Format(time.RFC3339)
}
