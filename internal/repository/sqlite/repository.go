package sqlite

import (
	"context"
	"database/sql"
	stderrors "errors"
	"net/url"
	"path/filepath"
	"time"

	"timeguard/internal/errors"
	"timeguard/internal/repository/sqlite/migrations"

	_ "modernc.org/sqlite"
)

// Repository reads timesheet rows and calendar events from a SQLite database.
// Input files are opened with OpenReadOnly; New and NewWithConfig create and
// migrate a database that can be seeded.
type Repository interface {
	// Read operations
	ListTimesheetRows(ctx context.Context) ([]*TimesheetRow, error)
	ListCalendarEvents(ctx context.Context, from, to string) ([]*CalendarEventRow, error)

	// Create operations
	InsertTimesheetRow(ctx context.Context, row *TimesheetRow) error
	InsertCalendarEvent(ctx context.Context, ev *CalendarEventRow) error

	// Utility
	Close() error
}

// Config is the part of the application configuration the repository uses.
type Config interface {
	GetQueryTimeout() time.Duration
}

// SQLiteRepository implements the Repository interface
type SQLiteRepository struct {
	db           *sql.DB
	queryTimeout time.Duration
	readOnly     bool
}

// New creates a new SQLite repository instance
func New(dbPath string) (*SQLiteRepository, error) {
	return open(dbPath, 0)
}

// NewWithConfig creates a repository whose queries are bounded by the
// configured query timeout.
func NewWithConfig(dbPath string, cfg Config) (*SQLiteRepository, error) {
	var timeout time.Duration
	if cfg != nil {
		timeout = cfg.GetQueryTimeout()
	}
	return open(dbPath, timeout)
}

// OpenReadOnly opens an existing input database without writing to it.
// No migrations run, so the tables a query needs must already exist.
func OpenReadOnly(dbPath string, cfg Config) (*SQLiteRepository, error) {
	abs, err := filepath.Abs(dbPath)
	if err != nil {
		return nil, errors.NewDatabaseError("open database", err)
	}
	dsn := (&url.URL{Scheme: "file", Path: filepath.ToSlash(abs), RawQuery: "mode=ro"}).String()

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, errors.NewDatabaseError("open database", err)
	}

	var timeout time.Duration
	if cfg != nil {
		timeout = cfg.GetQueryTimeout()
	}
	return &SQLiteRepository{db: db, queryTimeout: timeout, readOnly: true}, nil
}

func open(dbPath string, timeout time.Duration) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.NewDatabaseError("open database", err)
	}
	// every :memory: connection is a separate database
	if dbPath == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	if err := migrations.Apply(context.Background(), db); err != nil {
		db.Close()
		return nil, errors.NewDatabaseError("run migrations", err)
	}

	return &SQLiteRepository{db: db, queryTimeout: timeout}, nil
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

// ListTimesheetRows returns every timesheet row in insertion order.
func (r *SQLiteRepository) ListTimesheetRows(ctx context.Context) ([]*TimesheetRow, error) {
	ctx, cancel := r.bounded(ctx)
	defer cancel()

	if err := r.requireTable(ctx, "timesheet_entries"); err != nil {
		return nil, err
	}

	query := `
	SELECT id, date, start_time, end_time, project
	FROM timesheet_entries
	ORDER BY id ASC`

	return queryAll(ctx, r.db, "timesheet entries", query, ScanTimesheetRow)
}

// ListCalendarEvents returns events with from <= date < to, ordered by
// date, start time and id. Dates are compared as YYYY-MM-DD text.
func (r *SQLiteRepository) ListCalendarEvents(ctx context.Context, from, to string) ([]*CalendarEventRow, error) {
	ctx, cancel := r.bounded(ctx)
	defer cancel()

	if err := r.requireTable(ctx, "calendar_events"); err != nil {
		return nil, err
	}

	query := `
	SELECT id, uid, title, date, start_time, end_time
	FROM calendar_events
	WHERE date >= ? AND date < ?
	ORDER BY date ASC, start_time ASC, id ASC`

	return queryAll(ctx, r.db, "calendar events", query, ScanCalendarEventRow, from, to)
}

// requireTable reports a missing input table as a not found error
func (r *SQLiteRepository) requireTable(ctx context.Context, table string) error {
	var name string
	err := r.db.QueryRowContext(ctx,
		"SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?", table).Scan(&name)
	if stderrors.Is(err, sql.ErrNoRows) {
		return errors.NewNotFoundError("table", table)
	}
	return classifyError("look up table "+table, err)
}

// InsertTimesheetRow stores row and sets its ID.
func (r *SQLiteRepository) InsertTimesheetRow(ctx context.Context, row *TimesheetRow) error {
	if r.readOnly {
		return errors.NewInvalidInputError("database", nil, "opened read-only")
	}
	ctx, cancel := r.bounded(ctx)
	defer cancel()

	query := `
	INSERT INTO timesheet_entries (date, start_time, end_time, project)
	VALUES (?, ?, ?, ?)`

	id, err := insert(ctx, r.db, "timesheet_entries", query, row.Date, row.StartTime, row.EndTime, row.Project)
	if err != nil {
		return err
	}

	row.ID = id
	return nil
}

// InsertCalendarEvent stores ev and sets its ID.
func (r *SQLiteRepository) InsertCalendarEvent(ctx context.Context, ev *CalendarEventRow) error {
	if r.readOnly {
		return errors.NewInvalidInputError("database", nil, "opened read-only")
	}
	ctx, cancel := r.bounded(ctx)
	defer cancel()

	query := `
	INSERT INTO calendar_events (uid, title, date, start_time, end_time)
	VALUES (?, ?, ?, ?, ?)`

	id, err := insert(ctx, r.db, "calendar_events", query, ev.UID, ev.Title, ev.Date, ev.StartTime, ev.EndTime)
	if err != nil {
		return err
	}

	ev.ID = id
	return nil
}
