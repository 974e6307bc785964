// Package reconcile matches timesheet entries against calendar events.
package reconcile

import (
	"log/slog"

	"timeguard/internal/domain"
	"timeguard/internal/logging"
)

// Options controls behaviour beyond the default matching rules.
type Options struct {
	// FlagUncoveredDates reports entries on dates the calendar does not
	// cover as extra, after all examined dates. By default those entries
	// are not examined at all.
	FlagUncoveredDates bool
}

// Outcome is the report of a run together with its counts.
type Outcome struct {
	Report  domain.Report
	Summary domain.Summary
}

// Engine runs reconciliations. It holds no per-run state and is safe for
// concurrent use.
type Engine struct {
	opts   Options
	logger *slog.Logger
}

// NewEngine creates an engine.
func NewEngine(opts Options, logger *slog.Logger) *Engine {
	return &Engine{opts: opts, logger: logging.OrDiscard(logger)}
}

// Options returns the engine's default options.
func (e *Engine) Options() Options {
	return e.opts
}

// Run reconciles with the engine's options.
func (e *Engine) Run(cal *domain.CalendarDays, ts *domain.Timesheet) Outcome {
	return e.RunWith(cal, ts, e.opts)
}

// RunWith reconciles with explicit options.
func (e *Engine) RunWith(cal *domain.CalendarDays, ts *domain.Timesheet, opts Options) Outcome {
	report, matched := reconcile(cal, ts)

	uncovered := UncoveredEntries(cal, ts)
	if len(uncovered) > 0 {
		e.logger.Warn("timesheet entries on dates outside the calendar range",
			"entries", len(uncovered), "flagged", opts.FlagUncoveredDates)
		if opts.FlagUncoveredDates {
			for _, entry := range uncovered {
				report.ExtraEntries = append(report.ExtraEntries, domain.NewExtraRecord(entry))
			}
		}
	}

	summary := domain.Summary{
		CalendarEvents:   cal.EventCount(),
		TimesheetEntries: ts.Len(),
		Matched:          matched,
		Missing:          len(report.MissingEntries),
		Extra:            len(report.ExtraEntries),
		Unexamined:       len(uncovered),
	}
	if opts.FlagUncoveredDates {
		summary.Unexamined = 0
	}

	e.logger.Debug("reconciled",
		"days", cal.Len(), "events", summary.CalendarEvents, "entries", summary.TimesheetEntries,
		"matched", summary.Matched, "missing", summary.Missing, "extra", summary.Extra)

	return Outcome{Report: report, Summary: summary}
}

// Reconcile compares the two collections date by date in calendar order.
//
// For each calendar event, in order, the first not-yet-matched entry of the
// same date whose interval strictly overlaps the event is paired with it.
// Unpaired events become missing records and unpaired entries become extra
// records. Dates present only in the timesheet are not examined.
func Reconcile(cal *domain.CalendarDays, ts *domain.Timesheet) domain.Report {
	report, _ := reconcile(cal, ts)
	return report
}

func reconcile(cal *domain.CalendarDays, ts *domain.Timesheet) (domain.Report, int) {
	report := domain.NewReport()
	matchedPairs := 0

	for _, day := range cal.Days() {
		events := day.Events
		entries := ts.ForDate(day.Date)

		eventMatched := make([]bool, len(events))
		entryMatched := make([]bool, len(entries))

		for i, ev := range events {
			for j, entry := range entries {
				if entryMatched[j] {
					continue
				}
				if ev.Overlaps(entry.TimeInterval) {
					eventMatched[i] = true
					entryMatched[j] = true
					matchedPairs++
					break
				}
			}
		}

		for i, ev := range events {
			if !eventMatched[i] {
				report.MissingEntries = append(report.MissingEntries, domain.NewMissingRecord(ev))
			}
		}
		for j, entry := range entries {
			if !entryMatched[j] {
				report.ExtraEntries = append(report.ExtraEntries, domain.NewExtraRecord(entry))
			}
		}
	}

	return report, matchedPairs
}

// UncoveredEntries returns the entries whose date is not a key of cal, in
// ascending date order and input order within a date.
func UncoveredEntries(cal *domain.CalendarDays, ts *domain.Timesheet) []domain.TimesheetEntry {
	var out []domain.TimesheetEntry
	for _, date := range ts.Dates() {
		if cal.Contains(date) {
			continue
		}
		out = append(out, ts.ForDate(date)...)
	}
	return out
}
