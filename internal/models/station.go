package models

type Station struct {
	Code      string  `json:"code"`
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Type      *string `json:"type,omitempty"`
	Distance  float64 `json:"distance"`
}

// RefLevel is a reference (zero) level for water-level values. The
// stationlevels request returns levels with a value in cm, standardlevels
// returns only the codes.
type RefLevel struct {
	Code        string   `json:"code"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Value       *float64 `json:"value,omitempty"`
}

// Language is a response language supported by the upstream API.
type Language struct {
	Code string `json:"code"`
	Name string `json:"name"`
}
