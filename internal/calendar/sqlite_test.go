package calendar

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"timeguard/internal/domain"
	"timeguard/internal/errors"
	"timeguard/internal/repository/sqlite"
)

func seedCalendarDB(t *testing.T, rows ...*sqlite.CalendarEventRow) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "calendar.db")
	repo, err := sqlite.New(path)
	require.NoError(t, err)
	defer repo.Close()

	for _, row := range rows {
		require.NoError(t, repo.InsertCalendarEvent(context.Background(), row))
	}
	return path
}

func TestSQLiteSource_Events(t *testing.T) {
	path := seedCalendarDB(t,
		&sqlite.CalendarEventRow{UID: "b", Title: "Review", Date: "2024-01-02", StartTime: "14:00", EndTime: "15:00"},
		&sqlite.CalendarEventRow{Title: "Standup", Date: "2024-01-02", StartTime: "09:00", EndTime: "09:15"},
		&sqlite.CalendarEventRow{UID: "x", Date: "2024-01-09", StartTime: "09:00", EndTime: "10:00"},
	)

	cd, err := NewSQLiteSource(path, nil, nil).Events(context.Background(), domain.NewDate(2024, time.January, 1), 7)
	require.NoError(t, err)
	assert.Equal(t, 7, cd.Len())
	assert.Equal(t, 2, cd.EventCount())

	events, _ := cd.Events(domain.NewDate(2024, time.January, 2))
	require.Len(t, events, 2)
	assert.Equal(t, "Standup", events[0].Title)
	assert.Equal(t, "2", events[0].ID)
	assert.Equal(t, "b", events[1].ID)
}

func TestSQLiteSource_MalformedRow(t *testing.T) {
	path := seedCalendarDB(t,
		&sqlite.CalendarEventRow{UID: "bad", Date: "2024-01-02", StartTime: "15:00", EndTime: "14:00"},
	)

	_, err := NewSQLiteSource(path, nil, nil).Events(context.Background(), domain.NewDate(2024, time.January, 1), 7)
	require.Error(t, err)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeCalendarSource))
}

func TestSQLiteSource_MissingFile(t *testing.T) {
	_, err := NewSQLiteSource(filepath.Join(t.TempDir(), "none.db"), nil, nil).Events(context.Background(), domain.NewDate(2024, time.January, 1), 7)
	require.Error(t, err)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotFound))
}

func userTables(t *testing.T, path string) []string {
	t.Helper()
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	rows, err := db.Query("SELECT name FROM sqlite_master WHERE type = 'table' ORDER BY name")
	require.NoError(t, err)
	defer rows.Close()
	var names []string
	for rows.Next() {
		var name string
		require.NoError(t, rows.Scan(&name))
		names = append(names, name)
	}
	return names
}

func TestSQLiteSource_DoesNotModifyInput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "user.db")
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	_, err = db.Exec(`CREATE TABLE calendar_events (id INTEGER PRIMARY KEY, uid TEXT, title TEXT, date TEXT NOT NULL, start_time TEXT NOT NULL, end_time TEXT NOT NULL)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO calendar_events (uid, title, date, start_time, end_time) VALUES ('u1', 'Planning', '2024-01-03', '10:00', '11:00')`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	cd, err := NewSQLiteSource(path, nil, nil).Events(context.Background(), domain.NewDate(2024, time.January, 1), 7)
	require.NoError(t, err)
	assert.Equal(t, 1, cd.EventCount())

	assert.Equal(t, []string{"calendar_events"}, userTables(t, path))
}

func TestSQLiteSource_MissingTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.db")
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	_, err = db.Exec(`CREATE TABLE notes (body TEXT)`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	_, err = NewSQLiteSource(path, nil, nil).Events(context.Background(), domain.NewDate(2024, time.January, 1), 7)
	require.Error(t, err)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotFound))
	assert.Equal(t, []string{"notes"}, userTables(t, path))
}
