package timesheet

import (
	"context"

	"timeguard/internal/repository/sqlite"
)

// ReadSQLite reads the timesheet_entries table. Row ids serve as line numbers.
func ReadSQLite(ctx context.Context, repo sqlite.Repository) ([]Row, error) {
	stored, err := repo.ListTimesheetRows(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]Row, 0, len(stored))
	for _, s := range stored {
		rows = append(rows, Row{
			Line:    int(s.ID),
			Date:    s.Date,
			Start:   s.StartTime,
			End:     s.EndTime,
			Project: s.Project,
		})
	}
	return rows, nil
}
