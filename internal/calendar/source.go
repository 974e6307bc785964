// Package calendar provides the calendar sources a validation run reads
// events from.
package calendar

import (
	"context"

	"timeguard/internal/domain"
	"timeguard/internal/errors"
)

// Source produces calendar events for a date range.
//
// Events returns a mapping that contains every date in [start, start+days),
// in ascending order, possibly with empty event lists. Events within a day
// are ordered by start time.
type Source interface {
	Name() string
	Events(ctx context.Context, start domain.Date, days int) (*domain.CalendarDays, error)
}

func checkDays(days int) error {
	if days < 1 {
		return errors.NewInvalidInputError("days", days, "must be at least 1")
	}
	return nil
}

// clockAfter returns the clock d after midnight.
func clockAfter(d int64) domain.Clock {
	secs := int(d)
	return domain.Clock{Hour: secs / 3600, Minute: secs % 3600 / 60, Second: secs % 60}
}
