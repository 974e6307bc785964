package calendar

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	ical "github.com/arran4/golang-ical"
	"github.com/google/uuid"

	"timeguard/internal/domain"
	"timeguard/internal/errors"
	"timeguard/internal/logging"
)

// ICSSource reads events from a local iCalendar file.
//
// Only timed events that start and end on the same date are used. All-day
// events and events spanning midnight are skipped. Recurrence rules are not
// expanded; a recurring event contributes its first instance only.
type ICSSource struct {
	path   string
	logger *slog.Logger
}

// NewICSSource creates a source reading path on every call.
func NewICSSource(path string, logger *slog.Logger) *ICSSource {
	return &ICSSource{path: path, logger: logging.OrDiscard(logger)}
}

// Name returns "ics".
func (s *ICSSource) Name() string {
	return "ics"
}

// Events parses the file and keeps events dated within the range.
func (s *ICSSource) Events(ctx context.Context, start domain.Date, days int) (*domain.CalendarDays, error) {
	if err := checkDays(days); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewNotFoundError("calendar file", s.path)
		}
		return nil, errors.NewCalendarSourceError(s.Name(), err)
	}
	defer f.Close()

	cal, err := ical.ParseCalendar(f)
	if err != nil {
		return nil, errors.NewCalendarSourceError(s.Name(), fmt.Errorf("parse %s: %w", s.path, err))
	}

	end := start.AddDays(days)
	cd := domain.NewCalendarDays(start, days)
	skipped := 0
	for _, ve := range cal.Events() {
		ev, ok, reason := s.convert(ve)
		if !ok {
			skipped++
			s.logger.Debug("skipping calendar event", "uid", propValue(ve, ical.ComponentPropertyUniqueId), "reason", reason)
			continue
		}
		if ev.Date.Before(start) || !ev.Date.Before(end) {
			continue
		}
		cd.Add(ev)
	}
	cd.SortEvents()

	s.logger.Debug("read calendar file", "path", s.path, "events", cd.EventCount(), "skipped", skipped)
	return cd, nil
}

// convert maps a VEVENT onto a calendar event, reporting why it was rejected.
func (s *ICSSource) convert(ve *ical.VEvent) (domain.CalendarEvent, bool, string) {
	dtStart := ve.GetProperty(ical.ComponentPropertyDtStart)
	if dtStart == nil {
		return domain.CalendarEvent{}, false, "missing DTSTART"
	}
	if isDateValue(dtStart) {
		return domain.CalendarEvent{}, false, "all-day event"
	}

	begin, err := ve.GetStartAt()
	if err != nil {
		return domain.CalendarEvent{}, false, "invalid DTSTART: " + err.Error()
	}
	finish, err := ve.GetEndAt()
	if err != nil {
		return domain.CalendarEvent{}, false, "invalid or missing DTEND: " + err.Error()
	}

	// wall clock of the event's own zone
	date := domain.DateOf(begin)
	if domain.DateOf(finish) != date {
		return domain.CalendarEvent{}, false, "spans midnight"
	}
	iv, err := domain.NewTimeInterval(date, domain.ClockOf(begin), domain.ClockOf(finish))
	if err != nil {
		return domain.CalendarEvent{}, false, err.Error()
	}

	id := propValue(ve, ical.ComponentPropertyUniqueId)
	if id == "" {
		id = uuid.NewString()
	}

	return domain.CalendarEvent{
		TimeInterval: iv,
		ID:           id,
		Title:        propValue(ve, ical.ComponentPropertySummary),
	}, true, ""
}

func isDateValue(p *ical.IANAProperty) bool {
	if vs, ok := p.ICalParameters["VALUE"]; ok && len(vs) > 0 && strings.EqualFold(vs[0], "DATE") {
		return true
	}
	return !strings.Contains(p.Value, "T")
}

func propValue(ve *ical.VEvent, prop ical.ComponentProperty) string {
	if p := ve.GetProperty(prop); p != nil {
		return p.Value
	}
	return ""
}
