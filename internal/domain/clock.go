package domain

import (
	"fmt"
	"time"
)

const (
	// ClockLayout is the accepted input form of a time of day.
	ClockLayout = "15:04"
	// ClockISOLayout is the ISO-8601 form used in serialized reports.
	ClockISOLayout = "15:04:05"
)

// Clock is a time of day within a single calendar day.
type Clock struct {
	Hour   int
	Minute int
	Second int
}

// NewClock returns the clock for hour and minute.
func NewClock(hour, minute int) Clock {
	return Clock{Hour: hour, Minute: minute}
}

// ClockOf returns the wall-clock time of day of t.
func ClockOf(t time.Time) Clock {
	return Clock{Hour: t.Hour(), Minute: t.Minute(), Second: t.Second()}
}

// ParseClock parses an HH:MM time of day. Both fields take two digits.
func ParseClock(s string) (Clock, error) {
	t, err := time.Parse(ClockLayout, s)
	if err != nil || len(s) != len(ClockLayout) {
		return Clock{}, fmt.Errorf("invalid time %q, expected HH:MM", s)
	}
	return ClockOf(t), nil
}

// Seconds returns the number of seconds since midnight.
func (c Clock) Seconds() int {
	return c.Hour*3600 + c.Minute*60 + c.Second
}

// Before reports whether c is strictly earlier than other.
func (c Clock) Before(other Clock) bool {
	return c.Seconds() < other.Seconds()
}

// Valid reports whether c lies within a single day.
func (c Clock) Valid() bool {
	return c.Hour >= 0 && c.Hour < 24 && c.Minute >= 0 && c.Minute < 60 && c.Second >= 0 && c.Second < 60
}

// String returns HH:MM, with seconds appended only when non-zero.
func (c Clock) String() string {
	if c.Second != 0 {
		return c.ISO()
	}
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// ISO returns HH:MM:SS.
func (c Clock) ISO() string {
	return fmt.Sprintf("%02d:%02d:%02d", c.Hour, c.Minute, c.Second)
}

// MarshalText implements encoding.TextMarshaler using the ISO form.
func (c Clock) MarshalText() ([]byte, error) {
	return []byte(c.ISO()), nil
}

// UnmarshalText accepts HH:MM or HH:MM:SS.
func (c *Clock) UnmarshalText(text []byte) error {
	s := string(text)
	if t, err := time.Parse(ClockISOLayout, s); err == nil && len(s) == len(ClockISOLayout) {
		*c = ClockOf(t)
		return nil
	}
	parsed, err := ParseClock(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
