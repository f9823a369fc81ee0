package station

import "fmt"

// NotFoundError is returned when no station matches a code or name.
type NotFoundError struct {
	Query string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("station not found: %s", e.Query)
}

// AmbiguousError is returned by GetStation when a name matches more than one
// station.
type AmbiguousError struct {
	Query   string
	Matches []string
}

func (e *AmbiguousError) Error() string {
	return fmt.Sprintf("more than one station matches %q: %v", e.Query, e.Matches)
}
