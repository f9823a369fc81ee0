package waterlevel

import (
	"net/url"
	"strconv"
	"time"

	"github.com/glovoll/nortide/internal/models"
)

const defaultLang = "nb"

// DefaultRefCode is sea map zero (sjøkartnull), the reference level used when
// a query does not name one.
const DefaultRefCode = "CD"

// Query describes a locationdata request: a position, a time range and what
// kind of data to return. Zero fields are filled with defaults by the
// service; an empty time range means the last 24 hours.
type Query struct {
	Lat      float64
	Lon      float64
	From     time.Time
	To       time.Time
	DataType models.DataType
	RefCode  string
	Interval int // minutes between samples, 10 or 60
	Lang     string
}

func (q *Query) applyDefaults() {
	if q.From.IsZero() && q.To.IsZero() {
		q.To = time.Now().In(models.APITimeZone)
		q.From = q.To.AddDate(0, 0, -1)
	}
	if q.DataType == "" {
		q.DataType = models.DataTypeObservations
	}
	if q.RefCode == "" {
		q.RefCode = DefaultRefCode
	}
	if q.Interval == 0 {
		q.Interval = 60
	}
	if q.Lang == "" {
		q.Lang = defaultLang
	}
}

func (q Query) validate() error {
	if q.Lat < -90 || q.Lat > 90 || q.Lon < -180 || q.Lon > 180 {
		return InvalidCoordinatesError{}
	}
	if q.From.IsZero() || q.To.IsZero() {
		return NewInvalidRangeError("time range must not be empty")
	}
	if !q.From.Before(q.To) {
		return NewInvalidRangeError("start time must be before end time")
	}
	if !q.DataType.Valid() {
		return NewInvalidRangeError("invalid data type " + string(q.DataType))
	}
	if q.Interval != 10 && q.Interval != 60 {
		return NewInvalidRangeError("interval must be 10 or 60 minutes")
	}
	return nil
}

// encode builds the locationdata query string. Timestamps go out in the
// API's UTC+1 convention with explicit offsets.
func (q Query) encode() string {
	vals := make(url.Values)
	vals.Set("tide_request", "locationdata")
	vals.Set("lat", strconv.FormatFloat(q.Lat, 'f', -1, 64))
	vals.Set("lon", strconv.FormatFloat(q.Lon, 'f', -1, 64))
	vals.Set("fromtime", models.FormatTime(q.From))
	vals.Set("totime", models.FormatTime(q.To))
	vals.Set("datatype", string(q.DataType))
	vals.Set("refcode", q.RefCode)
	vals.Set("interval", strconv.Itoa(q.Interval))
	vals.Set("lang", q.Lang)
	vals.Set("dst", "1")
	return vals.Encode()
}
