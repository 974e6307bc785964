package calendar

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"timeguard/internal/domain"
	"timeguard/internal/errors"
	"timeguard/internal/logging"
	"timeguard/internal/repository/sqlite"
)

// SQLiteSource reads events from the calendar_events table of a SQLite file.
type SQLiteSource struct {
	path   string
	cfg    sqlite.Config
	logger *slog.Logger
}

// NewSQLiteSource creates a source that opens path on every call.
func NewSQLiteSource(path string, cfg sqlite.Config, logger *slog.Logger) *SQLiteSource {
	return &SQLiteSource{path: path, cfg: cfg, logger: logging.OrDiscard(logger)}
}

// Name returns "sqlite".
func (s *SQLiteSource) Name() string {
	return "sqlite"
}

// Events lists the stored events dated within the range. A malformed row
// fails the whole call.
func (s *SQLiteSource) Events(ctx context.Context, start domain.Date, days int) (*domain.CalendarDays, error) {
	if err := checkDays(days); err != nil {
		return nil, err
	}
	if _, err := os.Stat(s.path); err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewNotFoundError("calendar database", s.path)
		}
		return nil, errors.NewCalendarSourceError(s.Name(), err)
	}

	repo, err := sqlite.OpenReadOnly(s.path, s.cfg)
	if err != nil {
		return nil, errors.NewCalendarSourceError(s.Name(), err)
	}
	defer repo.Close()

	rows, err := repo.ListCalendarEvents(ctx, sqlite.FormatDateForDB(start), sqlite.FormatDateForDB(start.AddDays(days)))
	if errors.IsErrorType(err, errors.ErrorTypeNotFound) {
		return nil, err
	}
	if err != nil {
		return nil, errors.NewCalendarSourceError(s.Name(), err)
	}

	cd := domain.NewCalendarDays(start, days)
	for _, row := range rows {
		ev, err := eventFromRow(row)
		if err != nil {
			return nil, errors.NewCalendarSourceError(s.Name(), err)
		}
		cd.Add(ev)
	}
	cd.SortEvents()

	s.logger.Debug("read calendar database", "path", s.path, "events", cd.EventCount())
	return cd, nil
}

func eventFromRow(row *sqlite.CalendarEventRow) (domain.CalendarEvent, error) {
	date, err := sqlite.ParseDateFromDB(row.Date)
	if err != nil {
		return domain.CalendarEvent{}, fmt.Errorf("calendar event %d: %w", row.ID, err)
	}
	start, err := sqlite.ParseClockFromDB(row.StartTime)
	if err != nil {
		return domain.CalendarEvent{}, fmt.Errorf("calendar event %d: %w", row.ID, err)
	}
	end, err := sqlite.ParseClockFromDB(row.EndTime)
	if err != nil {
		return domain.CalendarEvent{}, fmt.Errorf("calendar event %d: %w", row.ID, err)
	}
	iv, err := domain.NewTimeInterval(date, start, end)
	if err != nil {
		return domain.CalendarEvent{}, fmt.Errorf("calendar event %d: %w", row.ID, err)
	}

	id := row.UID
	if id == "" {
		id = strconv.FormatInt(row.ID, 10)
	}
	return domain.CalendarEvent{TimeInterval: iv, ID: id, Title: row.Title}, nil
}
