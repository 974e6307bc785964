package sqlite

import (
	"fmt"
	"strings"

	"timeguard/internal/domain"
)

// FormatDateForDB formats a date the way the input tables store it.
func FormatDateForDB(d domain.Date) string {
	return d.String()
}

// ParseDateFromDB parses a stored YYYY-MM-DD date.
func ParseDateFromDB(s string) (domain.Date, error) {
	return domain.ParseDate(strings.TrimSpace(s))
}

// ParseClockFromDB parses a stored HH:MM or HH:MM:SS time of day.
func ParseClockFromDB(s string) (domain.Clock, error) {
	var c domain.Clock
	if err := c.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return domain.Clock{}, fmt.Errorf("invalid stored time %q", s)
	}
	return c, nil
}
