package domain

import (
	"fmt"
	"time"
)

// iso8601Layouts are the accepted timestamp shapes, tried in order.
var iso8601Layouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05.000-07:00",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseISO8601 parses the timestamp shapes the source API emits.
// Returns ErrInvalidTimestamp when no layout matches.
func ParseISO8601(value string) (time.Time, error) {
	for _, layout := range iso8601Layouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTimestamp, value)
}
