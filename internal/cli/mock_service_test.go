package cli

import (
	"context"
	"io"
	"time"

	"timeguard/internal/api"
	"timeguard/internal/domain"
	"timeguard/internal/errors"
	"timeguard/internal/reconcile"
	"timeguard/internal/services"
	"timeguard/internal/timesheet"
)

// mockService implements api.Service over fixed data
type mockService struct {
	timesheets map[string]*domain.Timesheet
	events     []domain.CalendarEvent
	calErr     error

	lastValidate api.ValidateOptions
	lastStart    domain.Date
	lastDays     int
}

func newMockService() *mockService {
	return &mockService{timesheets: make(map[string]*domain.Timesheet)}
}

func (m *mockService) LoadTimesheet(ctx context.Context, path string) (*domain.Timesheet, error) {
	ts, ok := m.timesheets[path]
	if !ok {
		return nil, errors.NewNotFoundError("timesheet file", path)
	}
	return ts, nil
}

func (m *mockService) DecodeTimesheet(ctx context.Context, r io.Reader, format timesheet.Format) (*domain.Timesheet, error) {
	return timesheet.NewParser(nil, nil).Decode(r, format, "")
}

func (m *mockService) Calendar(ctx context.Context, start domain.Date, days int) (*domain.CalendarDays, error) {
	m.lastStart, m.lastDays = start, days
	if m.calErr != nil {
		return nil, m.calErr
	}
	cd := domain.NewCalendarDays(start, days)
	for _, ev := range m.events {
		if cd.Contains(ev.Date) {
			cd.Add(ev)
		}
	}
	return cd, nil
}

func (m *mockService) Validate(ctx context.Context, ts *domain.Timesheet, opts api.ValidateOptions) (*api.Result, error) {
	m.lastValidate = opts
	start := domain.NewDate(2024, time.January, 1)
	if opts.Start != nil {
		start = *opts.Start
	} else if earliest, ok := ts.EarliestDate(); ok {
		start = earliest
	}
	days := opts.Days
	if days == 0 {
		days = 7
	}

	cal, err := m.Calendar(ctx, start, days)
	if err != nil {
		return nil, err
	}
	outcome := reconcile.NewEngine(reconcile.Options{}, nil).Run(cal, ts)
	return &api.Result{
		Start:     start,
		Days:      days,
		Calendar:  cal,
		Timesheet: ts,
		Report:    outcome.Report,
		Summary:   outcome.Summary,
		Daily:     services.NewStatisticsService().DailyStatistics(cal, ts),
	}, nil
}

func mockEvent(date domain.Date, startHour, endHour int) domain.CalendarEvent {
	return domain.CalendarEvent{
		TimeInterval: domain.TimeInterval{Date: date, Start: domain.NewClock(startHour, 0), End: domain.NewClock(endHour, 0)},
		ID:           "ev",
		Title:        "Project Work",
	}
}

func mockEntry(date domain.Date, startHour, endHour int, project string) domain.TimesheetEntry {
	return domain.TimesheetEntry{
		TimeInterval: domain.TimeInterval{Date: date, Start: domain.NewClock(startHour, 0), End: domain.NewClock(endHour, 0)},
		Project:      project,
	}
}
