package models

import "time"

// DataType selects what kind of water-level data a locationdata query returns.
type DataType string

const (
	DataTypeTideTable    DataType = "TAB" // high and low tides only
	DataTypePredictions  DataType = "PRE" // astronomic tide
	DataTypeObservations DataType = "OBS" // measured water level
	DataTypeAll          DataType = "ALL" // predictions, observations, weather effect and forecast
)

func (d DataType) Valid() bool {
	switch d {
	case DataTypeTideTable, DataTypePredictions, DataTypeObservations, DataTypeAll:
		return true
	}
	return false
}

// SeriesKind is the type attribute of a <data> group in a locationdata
// response.
type SeriesKind string

const (
	KindObservation   SeriesKind = "observation"
	KindPrediction    SeriesKind = "prediction"
	KindForecast      SeriesKind = "forecast"
	KindWeatherEffect SeriesKind = "weathereffect"
)

// Observation is a single water-level reading. Value is in cm above the
// reference level of the query. Time always carries the API's UTC+1 zone.
type Observation struct {
	Time  time.Time  `json:"time"`
	Value float64    `json:"value"`
	Flag  string     `json:"flag,omitempty"`
	Kind  SeriesKind `json:"kind"`
}

// Series is a parsed locationdata response: the resolved location, the
// reference level the values are relative to, and the readings in time order.
type Series struct {
	Name         string        `json:"name,omitempty"`
	Code         string        `json:"code,omitempty"`
	Latitude     float64       `json:"latitude"`
	Longitude    float64       `json:"longitude"`
	RefCode      string        `json:"refCode"`
	Observations []Observation `json:"observations"`
}

// WaterLevel is a single interpolated reading produced by WaterLevelAt.
type WaterLevel struct {
	Value   float64    `json:"value"` // cm, rounded to nearest cm
	Kind    SeriesKind `json:"kind"`
	RefCode string     `json:"refCode"`
	Station *Station   `json:"station,omitempty"` // set when a fallback station was used
}
