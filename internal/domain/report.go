package domain

const (
	ReasonNoTimesheetEntry = "No matching timesheet entry"
	ReasonNoCalendarEvent  = "No matching calendar event"
)

// DiscrepancyRecord is one flagged interval. Project is set only on
// records for extra timesheet entries.
type DiscrepancyRecord struct {
	Date    Date    `json:"date"`
	Start   Clock   `json:"start"`
	End     Clock   `json:"end"`
	Project *string `json:"project,omitempty"`
	Reason  string  `json:"reason"`
}

// IsExtra reports whether the record describes an extra timesheet entry.
func (r DiscrepancyRecord) IsExtra() bool {
	return r.Project != nil
}

// NewMissingRecord returns the record for a calendar event without a timesheet entry.
func NewMissingRecord(ev CalendarEvent) DiscrepancyRecord {
	return DiscrepancyRecord{
		Date:   ev.Date,
		Start:  ev.Start,
		End:    ev.End,
		Reason: ReasonNoTimesheetEntry,
	}
}

// NewExtraRecord returns the record for a timesheet entry without a calendar event.
func NewExtraRecord(entry TimesheetEntry) DiscrepancyRecord {
	project := entry.Project
	return DiscrepancyRecord{
		Date:    entry.Date,
		Start:   entry.Start,
		End:     entry.End,
		Project: &project,
		Reason:  ReasonNoCalendarEvent,
	}
}

// Report is the outcome of one validation run.
type Report struct {
	MissingEntries []DiscrepancyRecord `json:"missingEntries"`
	ExtraEntries   []DiscrepancyRecord `json:"extraEntries"`
}

// NewReport returns a report with empty, non-nil lists.
func NewReport() Report {
	return Report{
		MissingEntries: []DiscrepancyRecord{},
		ExtraEntries:   []DiscrepancyRecord{},
	}
}

// IsClean reports whether neither list has records.
func (r Report) IsClean() bool {
	return len(r.MissingEntries) == 0 && len(r.ExtraEntries) == 0
}

// Summary holds the counts of a validation run.
type Summary struct {
	CalendarEvents   int `json:"calendarEvents"`
	TimesheetEntries int `json:"timesheetEntries"`
	Matched          int `json:"matched"`
	Missing          int `json:"missing"`
	Extra            int `json:"extra"`
	// Unexamined counts entries on dates the calendar did not cover.
	Unexamined int `json:"unexamined"`
}
