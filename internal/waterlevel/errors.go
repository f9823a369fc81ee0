package waterlevel

import "fmt"

// TideAPIError represents an error from the sehavniva.no API
type TideAPIError struct {
	Message string
	Err     error
}

func (e *TideAPIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("tide API error: %s: %v", e.Message, e.Err)
	}
	return fmt.Sprintf("tide API error: %s", e.Message)
}

func (e *TideAPIError) Unwrap() error {
	return e.Err
}

// NewTideAPIError creates a new tide API error
func NewTideAPIError(message string, err error) *TideAPIError {
	return &TideAPIError{
		Message: message,
		Err:     err,
	}
}

// NoDataError is returned when the upstream answers with <nodata>, typically
// because the position is on land or outside the covered area.
type NoDataError struct {
	Info string
}

func (e *NoDataError) Error() string {
	if e.Info == "" {
		return "no data returned for query"
	}
	return fmt.Sprintf("no data returned for query: %s", e.Info)
}

// InvalidRangeError is returned for a bad time range or interval
type InvalidRangeError struct {
	Message string
}

func (e *InvalidRangeError) Error() string {
	return e.Message
}

func NewInvalidRangeError(message string) *InvalidRangeError {
	return &InvalidRangeError{
		Message: message,
	}
}

// InvalidCoordinatesError is returned for out-of-bounds latitude or longitude
type InvalidCoordinatesError struct{}

func (e InvalidCoordinatesError) Error() string {
	return "invalid coordinates"
}
