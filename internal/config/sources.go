package config

import (
	"fmt"
	"log/slog"
	"os"

	"timeguard/internal/calendar"
	"timeguard/internal/errors"
	"timeguard/internal/repository/sqlite"
)

// CreateCalendarSource builds the calendar source selected by cfg.Calendar.Source
func CreateCalendarSource(cfg *Config, logger *slog.Logger) (calendar.Source, error) {
	switch cfg.Calendar.Source {
	case SourceMock:
		return calendar.NewMockSource(MockOptions(cfg, logger)), nil
	case SourceICS:
		return calendar.NewICSSource(cfg.Calendar.Path, logger), nil
	case SourceSQLite:
		return calendar.NewSQLiteSource(cfg.Calendar.Path, cfg, logger), nil
	default:
		return nil, &ConfigError{Field: "calendar.source", Message: fmt.Sprintf("unknown calendar source %q", cfg.Calendar.Source)}
	}
}

// MockOptions maps the mock settings of cfg onto calendar.MockOptions
func MockOptions(cfg *Config, logger *slog.Logger) calendar.MockOptions {
	return calendar.MockOptions{
		Seed:           cfg.Calendar.MockSeed,
		MinEvents:      cfg.Calendar.MockMinEvents,
		MaxEvents:      cfg.Calendar.MockMaxEvents,
		FirstEventHour: cfg.Calendar.FirstEventHour,
		Spacing:        cfg.Calendar.EventSpacing.Duration,
		Duration:       cfg.Calendar.EventDuration.Duration,
		Logger:         logger,
	}
}

// CreateRepository opens the existing SQLite input database at path read-only
func CreateRepository(cfg *Config, path string) (sqlite.Repository, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewNotFoundError("database", path)
		}
		return nil, errors.NewDatabaseError("open database", err)
	}

	repo, err := sqlite.OpenReadOnly(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return repo, nil
}
