package domain

import (
	"fmt"
	"time"
)

// TimeInterval is a span of time on a single calendar date.
// Start is strictly before End; intervals never cross midnight.
type TimeInterval struct {
	Date  Date
	Start Clock
	End   Clock
}

// NewTimeInterval returns the interval or an error when start is not before end.
func NewTimeInterval(date Date, start, end Clock) (TimeInterval, error) {
	iv := TimeInterval{Date: date, Start: start, End: end}
	if !iv.Valid() {
		return TimeInterval{}, fmt.Errorf("interval %s %s-%s: start must be before end", date, start, end)
	}
	return iv, nil
}

// Valid reports whether the interval satisfies start < end within one day.
func (iv TimeInterval) Valid() bool {
	return iv.Start.Valid() && iv.End.Valid() && iv.Start.Before(iv.End)
}

// Duration returns End - Start.
func (iv TimeInterval) Duration() time.Duration {
	return time.Duration(iv.End.Seconds()-iv.Start.Seconds()) * time.Second
}

// Overlaps reports whether the time-of-day spans of iv and other strictly
// overlap: max(startA, startB) < min(endA, endB). Touching endpoints do not
// overlap. Dates are not compared.
func (iv TimeInterval) Overlaps(other TimeInterval) bool {
	return Overlaps(iv.Start, iv.End, other.Start, other.End)
}

// Overlaps reports whether [start1,end1) and [start2,end2) strictly overlap.
func Overlaps(start1, end1, start2, end2 Clock) bool {
	lo := start1.Seconds()
	if s := start2.Seconds(); s > lo {
		lo = s
	}
	hi := end1.Seconds()
	if e := end2.Seconds(); e < hi {
		hi = e
	}
	return lo < hi
}

// String returns "YYYY-MM-DD HH:MM-HH:MM".
func (iv TimeInterval) String() string {
	return fmt.Sprintf("%s %s-%s", iv.Date, iv.Start, iv.End)
}
