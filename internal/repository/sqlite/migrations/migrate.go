package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"path"
	"slices"
	"strconv"
	"strings"
)

//go:embed *.up.sql
var scripts embed.FS

// step is one numbered schema script, named NNNNNN_description.up.sql
type step struct {
	version int
	name    string
	sql     string
}

// Apply runs every script not yet recorded in schema_versions. The input
// tables are created only when missing so user databases keep their rows.
func Apply(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, `
	CREATE TABLE IF NOT EXISTS schema_versions (
		version INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`); err != nil {
		return fmt.Errorf("create schema_versions: %w", err)
	}

	steps, err := loadSteps()
	if err != nil {
		return err
	}
	done, err := appliedVersions(ctx, db)
	if err != nil {
		return err
	}

	for _, s := range steps {
		if done[s.version] {
			continue
		}
		if err := s.run(ctx, db); err != nil {
			return fmt.Errorf("apply %s: %w", s.name, err)
		}
	}
	return nil
}

func loadSteps() ([]step, error) {
	names, err := scripts.ReadDir(".")
	if err != nil {
		return nil, fmt.Errorf("list schema scripts: %w", err)
	}

	var steps []step
	for _, entry := range names {
		version, ok := versionOf(entry.Name())
		if !ok {
			continue
		}
		body, err := scripts.ReadFile(entry.Name())
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", entry.Name(), err)
		}
		steps = append(steps, step{version: version, name: entry.Name(), sql: string(body)})
	}
	slices.SortFunc(steps, func(a, b step) int { return a.version - b.version })
	return steps, nil
}

// versionOf reads the numeric prefix of a script name
func versionOf(name string) (int, bool) {
	prefix, _, found := strings.Cut(path.Base(name), "_")
	if !found {
		return 0, false
	}
	v, err := strconv.Atoi(prefix)
	if err != nil || v <= 0 {
		return 0, false
	}
	return v, true
}

func appliedVersions(ctx context.Context, db *sql.DB) (map[int]bool, error) {
	rows, err := db.QueryContext(ctx, "SELECT version FROM schema_versions")
	if err != nil {
		return nil, fmt.Errorf("read schema_versions: %w", err)
	}
	defer rows.Close()

	done := make(map[int]bool)
	for rows.Next() {
		var v int
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		done[v] = true
	}
	return done, rows.Err()
}

func (s step) run(ctx context.Context, db *sql.DB) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, s.sql); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "INSERT INTO schema_versions (version, name) VALUES (?, ?)", s.version, s.name); err != nil {
		return err
	}
	return tx.Commit()
}
