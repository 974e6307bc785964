package sqlite

// TimesheetRow is a raw row of the timesheet_entries table. Fields are kept
// as stored text; typing and validation happen in the timesheet parser.
type TimesheetRow struct {
	ID        int64
	Date      string
	StartTime string
	EndTime   string
	Project   string
}

// CalendarEventRow is a row of the calendar_events table.
type CalendarEventRow struct {
	ID        int64
	UID       string
	Title     string
	Date      string
	StartTime string
	EndTime   string
}
