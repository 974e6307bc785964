package sqlite

import (
	"database/sql"
)

// Scanner is satisfied by both *sql.Row and *sql.Rows
type Scanner interface {
	Scan(dest ...interface{}) error
}

// ScanTimesheetRow scans id, date, start_time, end_time, project.
// A NULL project becomes "".
func ScanTimesheetRow(s Scanner) (*TimesheetRow, error) {
	var (
		row     TimesheetRow
		project sql.NullString
	)
	if err := s.Scan(&row.ID, &row.Date, &row.StartTime, &row.EndTime, &project); err != nil {
		return nil, err
	}
	row.Project = project.String
	return &row, nil
}

// ScanCalendarEventRow scans id, uid, title, date, start_time, end_time.
func ScanCalendarEventRow(s Scanner) (*CalendarEventRow, error) {
	var (
		ev         CalendarEventRow
		uid, title sql.NullString
	)
	if err := s.Scan(&ev.ID, &uid, &title, &ev.Date, &ev.StartTime, &ev.EndTime); err != nil {
		return nil, err
	}
	ev.UID, ev.Title = uid.String, title.String
	return &ev, nil
}
