package domain

import "sort"

// CalendarEvent is a calendar entry produced by a calendar source.
type CalendarEvent struct {
	TimeInterval
	ID    string
	Title string
}

// CalendarDay holds the events of one date in source order.
type CalendarDay struct {
	Date   Date
	Events []CalendarEvent
}

// CalendarDays is an ordered mapping from date to that date's events.
// Iteration order is the order in which days were added.
type CalendarDays struct {
	days  []CalendarDay
	index map[Date]int
}

// NewCalendarDays returns a mapping containing every date in
// [start, start+days) with no events.
func NewCalendarDays(start Date, days int) *CalendarDays {
	cd := &CalendarDays{index: make(map[Date]int, days)}
	for i := 0; i < days; i++ {
		cd.AddDay(start.AddDays(i))
	}
	return cd
}

// AddDay ensures date is present in the mapping and returns its position.
func (cd *CalendarDays) AddDay(date Date) int {
	if cd.index == nil {
		cd.index = make(map[Date]int)
	}
	if i, ok := cd.index[date]; ok {
		return i
	}
	cd.days = append(cd.days, CalendarDay{Date: date})
	cd.index[date] = len(cd.days) - 1
	return len(cd.days) - 1
}

// Add appends ev to the day of its date, adding the day if needed.
func (cd *CalendarDays) Add(ev CalendarEvent) {
	i := cd.AddDay(ev.Date)
	cd.days[i].Events = append(cd.days[i].Events, ev)
}

// SortEvents orders each day's events by start time, keeping insertion
// order for equal starts.
func (cd *CalendarDays) SortEvents() {
	for i := range cd.days {
		events := cd.days[i].Events
		sort.SliceStable(events, func(a, b int) bool {
			return events[a].Start.Before(events[b].Start)
		})
	}
}

// Days returns the days in mapping order.
func (cd *CalendarDays) Days() []CalendarDay {
	if cd == nil {
		return nil
	}
	return cd.days
}

// Events returns the events for date and whether the date is in the mapping.
func (cd *CalendarDays) Events(date Date) ([]CalendarEvent, bool) {
	if cd == nil {
		return nil, false
	}
	i, ok := cd.index[date]
	if !ok {
		return nil, false
	}
	return cd.days[i].Events, true
}

// Contains reports whether date is a key of the mapping.
func (cd *CalendarDays) Contains(date Date) bool {
	_, ok := cd.Events(date)
	return ok
}

// Len returns the number of days.
func (cd *CalendarDays) Len() int {
	if cd == nil {
		return 0
	}
	return len(cd.days)
}

// EventCount returns the total number of events across all days.
func (cd *CalendarDays) EventCount() int {
	n := 0
	for _, day := range cd.Days() {
		n += len(day.Events)
	}
	return n
}
