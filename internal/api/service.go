// Package api exposes the validation workflows used by the CLI and the HTTP
// server.
package api

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"timeguard/internal/calendar"
	"timeguard/internal/config"
	"timeguard/internal/domain"
	"timeguard/internal/errors"
	"timeguard/internal/logging"
	"timeguard/internal/reconcile"
	"timeguard/internal/services"
	"timeguard/internal/timesheet"
	"timeguard/internal/validation"
)

// ValidateOptions narrows a validation run. Zero values fall back to the
// configured defaults.
type ValidateOptions struct {
	Start              *domain.Date
	Days               int
	FlagUncoveredDates *bool
}

// Result is the outcome of one validation run.
type Result struct {
	Start     domain.Date
	Days      int
	Calendar  *domain.CalendarDays
	Timesheet *domain.Timesheet
	Report    domain.Report
	Summary   domain.Summary
	Daily     []services.DayStatistics
}

// Service defines the timesheet validation workflows
type Service interface {
	// LoadTimesheet reads and parses a timesheet file; the format follows the extension
	LoadTimesheet(ctx context.Context, path string) (*domain.Timesheet, error)

	// DecodeTimesheet parses a timesheet from r
	DecodeTimesheet(ctx context.Context, r io.Reader, format timesheet.Format) (*domain.Timesheet, error)

	// Calendar fetches the calendar for [start, start+days)
	Calendar(ctx context.Context, start domain.Date, days int) (*domain.CalendarDays, error)

	// Validate reconciles ts against the calendar
	Validate(ctx context.Context, ts *domain.Timesheet, opts ValidateOptions) (*Result, error)
}

// Option customizes a service
type Option func(*serviceImpl)

// WithSource replaces the configured calendar source
func WithSource(source calendar.Source) Option {
	return func(s *serviceImpl) { s.source = source }
}

// WithClock sets the function used to find today's date
func WithClock(now func() time.Time) Option {
	return func(s *serviceImpl) { s.now = now }
}

type serviceImpl struct {
	cfg       *config.Config
	source    calendar.Source
	validator *validation.Validator
	parser    *timesheet.Parser
	engine    *reconcile.Engine
	stats     services.StatisticsService
	logger    *slog.Logger
	now       func() time.Time
}

// New creates a Service from cfg. The calendar source is built from the
// configuration unless WithSource is given.
func New(cfg *config.Config, logger *slog.Logger, opts ...Option) (Service, error) {
	logger = logging.OrDiscard(logger)
	s := &serviceImpl{
		cfg:       cfg,
		validator: validation.NewValidatorWithConfig(cfg),
		parser:    timesheet.NewParser(validation.NewTimesheetValidatorWithConfig(cfg), logger),
		engine:    reconcile.NewEngine(reconcile.Options{FlagUncoveredDates: cfg.Reconcile.FlagUncoveredDates}, logger),
		stats:     services.NewStatisticsService(),
		logger:    logger,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.source == nil {
		source, err := config.CreateCalendarSource(cfg, logger)
		if err != nil {
			return nil, err
		}
		s.source = source
	}
	return s, nil
}

func (s *serviceImpl) LoadTimesheet(ctx context.Context, path string) (*domain.Timesheet, error) {
	format, err := timesheet.FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	if format == timesheet.FormatSQLite {
		return s.loadSQLite(ctx, path)
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewNotFoundError("timesheet file", path)
		}
		return nil, fmt.Errorf("failed to open timesheet: %w", err)
	}
	defer f.Close()

	s.logger.Debug("loading timesheet", "path", path, "format", format)
	return s.DecodeTimesheet(ctx, f, format)
}

func (s *serviceImpl) DecodeTimesheet(ctx context.Context, r io.Reader, format timesheet.Format) (*domain.Timesheet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if format == timesheet.FormatSQLite {
		return s.decodeSQLite(ctx, r)
	}
	return s.parser.Decode(r, format, s.cfg.Timesheet.Sheet)
}

// decodeSQLite spools r to a temporary file, since SQLite only opens files.
func (s *serviceImpl) decodeSQLite(ctx context.Context, r io.Reader) (*domain.Timesheet, error) {
	tmp, err := os.CreateTemp("", "timeguard-*.db")
	if err != nil {
		return nil, fmt.Errorf("failed to create temporary database: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("failed to write temporary database: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return nil, fmt.Errorf("failed to write temporary database: %w", err)
	}
	return s.loadSQLite(ctx, tmp.Name())
}

func (s *serviceImpl) loadSQLite(ctx context.Context, path string) (*domain.Timesheet, error) {
	repo, err := config.CreateRepository(s.cfg, path)
	if err != nil {
		return nil, err
	}
	defer repo.Close()

	rows, err := timesheet.ReadSQLite(ctx, repo)
	if err != nil {
		return nil, err
	}
	return s.parser.Parse(rows)
}

func (s *serviceImpl) Calendar(ctx context.Context, start domain.Date, days int) (*domain.CalendarDays, error) {
	if err := s.validator.ValidateCalendarRange(days); err != nil {
		return nil, err
	}

	cal, err := s.source.Events(ctx, start, days)
	if err != nil {
		if errors.IsAppError(err) {
			return nil, err
		}
		return nil, errors.NewCalendarSourceError(s.source.Name(), err)
	}

	s.logger.Debug("fetched calendar", "source", s.source.Name(), "start", start, "days", days, "events", cal.EventCount())
	return cal, nil
}

func (s *serviceImpl) Validate(ctx context.Context, ts *domain.Timesheet, opts ValidateOptions) (*Result, error) {
	if ts == nil {
		ts = domain.NewTimesheet(nil)
	}

	start := s.startDate(ts, opts.Start)
	days := opts.Days
	if days == 0 {
		days = s.cfg.Calendar.Days
	}

	cal, err := s.Calendar(ctx, start, days)
	if err != nil {
		return nil, err
	}

	runOpts := s.engine.Options()
	if opts.FlagUncoveredDates != nil {
		runOpts.FlagUncoveredDates = *opts.FlagUncoveredDates
	}
	outcome := s.engine.RunWith(cal, ts, runOpts)

	s.logger.Info("validated timesheet",
		"start", start,
		"days", days,
		"missing", outcome.Summary.Missing,
		"extra", outcome.Summary.Extra,
	)

	return &Result{
		Start:     start,
		Days:      days,
		Calendar:  cal,
		Timesheet: ts,
		Report:    outcome.Report,
		Summary:   outcome.Summary,
		Daily:     s.stats.DailyStatistics(cal, ts),
	}, nil
}

// startDate picks the explicit start, else the earliest timesheet date,
// else today.
func (s *serviceImpl) startDate(ts *domain.Timesheet, explicit *domain.Date) domain.Date {
	if explicit != nil {
		return *explicit
	}
	if earliest, ok := ts.EarliestDate(); ok {
		return earliest
	}
	return domain.DateOf(s.now())
}
