package migrations

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func openMemory(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestLoadSteps(t *testing.T) {
	steps, err := loadSteps()
	require.NoError(t, err)
	require.NotEmpty(t, steps)

	assert.Equal(t, 1, steps[0].version)
	assert.Equal(t, "000001_create_input_tables.up.sql", steps[0].name)
	assert.Contains(t, steps[0].sql, "timesheet_entries")
}

func TestVersionOf(t *testing.T) {
	tests := []struct {
		name    string
		version int
		ok      bool
	}{
		{"000001_create_input_tables.up.sql", 1, true},
		{"000012_x.up.sql", 12, true},
		{"readme.sql", 0, false},
		{"abc_x.up.sql", 0, false},
		{"000000_zero.up.sql", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, ok := versionOf(tt.name)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.version, v)
		})
	}
}

func TestApply_Idempotent(t *testing.T) {
	db := openMemory(t)
	ctx := context.Background()

	require.NoError(t, Apply(ctx, db))
	require.NoError(t, Apply(ctx, db))

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM schema_versions").Scan(&count))
	assert.Equal(t, 1, count)

	for _, table := range []string{"timesheet_entries", "calendar_events"} {
		var name string
		err := db.QueryRow("SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?", table).Scan(&name)
		require.NoError(t, err, table)
	}
}

func TestApply_ExistingTables(t *testing.T) {
	db := openMemory(t)

	// a user-supplied database that already has the input table
	_, err := db.Exec(`CREATE TABLE timesheet_entries (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		date TEXT NOT NULL,
		start_time TEXT NOT NULL,
		end_time TEXT NOT NULL,
		project TEXT
	)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO timesheet_entries (date, start_time, end_time, project) VALUES ('2024-01-02', '09:00', '10:00', 'X')`)
	require.NoError(t, err)

	require.NoError(t, Apply(context.Background(), db))

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM timesheet_entries").Scan(&count))
	assert.Equal(t, 1, count)
}

func TestApply_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Error(t, Apply(ctx, openMemory(t)))
}
