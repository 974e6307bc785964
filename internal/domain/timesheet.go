package domain

import "sort"

// TimesheetEntry is one validated timesheet row.
type TimesheetEntry struct {
	TimeInterval
	Project string
	// Line is the 1-based row number in the source, 0 when unknown.
	Line int
}

// Timesheet holds entries in input order, grouped by date.
type Timesheet struct {
	entries []TimesheetEntry
	byDate  map[Date][]int
}

// NewTimesheet groups entries by date, preserving input order within a date.
func NewTimesheet(entries []TimesheetEntry) *Timesheet {
	ts := &Timesheet{
		entries: make([]TimesheetEntry, len(entries)),
		byDate:  make(map[Date][]int),
	}
	copy(ts.entries, entries)
	for i, e := range ts.entries {
		ts.byDate[e.Date] = append(ts.byDate[e.Date], i)
	}
	return ts
}

// Entries returns all entries in input order.
func (ts *Timesheet) Entries() []TimesheetEntry {
	if ts == nil {
		return nil
	}
	return ts.entries
}

// ForDate returns the entries on date in input order.
func (ts *Timesheet) ForDate(date Date) []TimesheetEntry {
	if ts == nil {
		return nil
	}
	idx := ts.byDate[date]
	out := make([]TimesheetEntry, len(idx))
	for i, j := range idx {
		out[i] = ts.entries[j]
	}
	return out
}

// Dates returns the distinct dates in ascending order.
func (ts *Timesheet) Dates() []Date {
	if ts == nil {
		return nil
	}
	dates := make([]Date, 0, len(ts.byDate))
	for d := range ts.byDate {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates
}

// EarliestDate returns the smallest entry date, false when empty.
func (ts *Timesheet) EarliestDate() (Date, bool) {
	dates := ts.Dates()
	if len(dates) == 0 {
		return Date{}, false
	}
	return dates[0], true
}

// Len returns the number of entries.
func (ts *Timesheet) Len() int {
	if ts == nil {
		return 0
	}
	return len(ts.entries)
}
