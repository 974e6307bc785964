package report

import (
	"fmt"

	"timeguard/internal/domain"
	"timeguard/internal/services"
)

const (
	missingTitle = "Missing Entries from Timesheet"
	extraTitle   = "Extra Entries in Timesheet"
)

type validationJSON struct {
	Start          domain.Date                `json:"start"`
	Days           int                        `json:"days"`
	MissingEntries []domain.DiscrepancyRecord `json:"missingEntries"`
	ExtraEntries   []domain.DiscrepancyRecord `json:"extraEntries"`
	Summary        domain.Summary             `json:"summary"`
	Daily          []dailyJSON                `json:"daily,omitempty"`
}

type dailyJSON struct {
	Date             domain.Date `json:"date"`
	CalendarEvents   int         `json:"calendarEvents"`
	TimesheetEntries int         `json:"timesheetEntries"`
	Projects         int         `json:"projects"`
	CalendarMinutes  int         `json:"calendarMinutes"`
	LoggedMinutes    int         `json:"loggedMinutes"`
}

type entryJSON struct {
	Date    domain.Date  `json:"date"`
	Start   domain.Clock `json:"start"`
	End     domain.Clock `json:"end"`
	Project string       `json:"project"`
}

type eventJSON struct {
	ID    string       `json:"id"`
	Title string       `json:"title"`
	Start domain.Clock `json:"start"`
	End   domain.Clock `json:"end"`
}

type dayJSON struct {
	Date   domain.Date `json:"date"`
	Events []eventJSON `json:"events"`
}

func validationDocument(v Validation) document {
	missing := section{
		Title:  missingTitle,
		Sheet:  "Missing Entries",
		Header: []string{"Date", "Start", "End", "Reason"},
		Empty:  "No missing entries",
	}
	for _, rec := range v.Report.MissingEntries {
		missing.Rows = append(missing.Rows, []string{rec.Date.String(), rec.Start.String(), rec.End.String(), rec.Reason})
	}

	extra := section{
		Title:  extraTitle,
		Sheet:  "Extra Entries",
		Header: []string{"Date", "Start", "End", "Project", "Reason"},
		Empty:  "No extra entries",
	}
	for _, rec := range v.Report.ExtraEntries {
		extra.Rows = append(extra.Rows, []string{rec.Date.String(), rec.Start.String(), rec.End.String(), project(rec), rec.Reason})
	}

	sections := []section{missing, extra}
	if len(v.Daily) > 0 {
		sections = append(sections, dailySection(v.Daily))
	}

	doc := document{
		Sections:  sections,
		CSVHeader: []string{"kind", "date", "start", "end", "project", "reason"},
		JSON: validationJSON{
			Start:          v.Start,
			Days:           v.Days,
			MissingEntries: nonNil(v.Report.MissingEntries),
			ExtraEntries:   nonNil(v.Report.ExtraEntries),
			Summary:        v.Summary,
			Daily:          dailyRows(v.Daily),
		},
	}
	for _, rec := range v.Report.MissingEntries {
		doc.CSVRows = append(doc.CSVRows, []string{"missing", rec.Date.String(), rec.Start.String(), rec.End.String(), "", rec.Reason})
	}
	for _, rec := range v.Report.ExtraEntries {
		doc.CSVRows = append(doc.CSVRows, []string{"extra", rec.Date.String(), rec.Start.String(), rec.End.String(), project(rec), rec.Reason})
	}

	s := v.Summary
	doc.Footer = append(doc.Footer, fmt.Sprintf("Checked %d day(s) from %s: %d calendar event(s), %d timesheet entr%s, %d matched.",
		v.Days, v.Start, s.CalendarEvents, s.TimesheetEntries, plural(s.TimesheetEntries, "y", "ies"), s.Matched))
	if s.Unexamined > 0 {
		doc.Footer = append(doc.Footer, fmt.Sprintf("%d timesheet entr%s fall outside the calendar range and were not checked.",
			s.Unexamined, plural(s.Unexamined, "y", "ies")))
	}
	return doc
}

func dailySection(stats []services.DayStatistics) section {
	format := services.NewStatisticsService().FormatDuration
	sec := section{
		Title:  "Daily Totals",
		Sheet:  "Daily Totals",
		Header: []string{"Date", "Events", "Scheduled", "Entries", "Logged", "Difference", "Projects"},
		Empty:  "No calendar days",
	}
	for _, d := range stats {
		sec.Rows = append(sec.Rows, []string{
			d.Date.String(),
			fmt.Sprint(d.CalendarEvents),
			format(d.CalendarTime),
			fmt.Sprint(d.TimesheetEntries),
			format(d.LoggedTime),
			format(d.Difference()),
			fmt.Sprint(d.Projects),
		})
	}
	return sec
}

func dailyRows(stats []services.DayStatistics) []dailyJSON {
	if len(stats) == 0 {
		return nil
	}
	out := make([]dailyJSON, 0, len(stats))
	for _, d := range stats {
		out = append(out, dailyJSON{
			Date:             d.Date,
			CalendarEvents:   d.CalendarEvents,
			TimesheetEntries: d.TimesheetEntries,
			Projects:         d.Projects,
			CalendarMinutes:  int(d.CalendarTime.Minutes()),
			LoggedMinutes:    int(d.LoggedTime.Minutes()),
		})
	}
	return out
}

func timesheetDocument(ts *domain.Timesheet) document {
	sec := section{
		Title:  "Timesheet",
		Sheet:  "Timesheet",
		Header: []string{"Date", "Start", "End", "Project"},
		Empty:  "No timesheet entries",
	}
	entries := make([]entryJSON, 0, ts.Len())
	for _, e := range ts.Entries() {
		sec.Rows = append(sec.Rows, []string{e.Date.String(), e.Start.String(), e.End.String(), e.Project})
		entries = append(entries, entryJSON{Date: e.Date, Start: e.Start, End: e.End, Project: e.Project})
	}

	return document{
		Sections:  []section{sec},
		CSVHeader: []string{"date", "start", "end", "project"},
		CSVRows:   sec.Rows,
		JSON:      entries,
	}
}

func calendarDocument(cd *domain.CalendarDays) document {
	sec := section{
		Title:  "Calendar",
		Sheet:  "Calendar",
		Header: []string{"Date", "Start", "End", "Title", "ID"},
		Empty:  "No calendar days",
	}
	days := make([]dayJSON, 0, cd.Len())
	var csvRows [][]string
	for _, day := range cd.Days() {
		dj := dayJSON{Date: day.Date, Events: make([]eventJSON, 0, len(day.Events))}
		if len(day.Events) == 0 {
			sec.Rows = append(sec.Rows, []string{day.Date.String(), "", "", "(no events)", ""})
		}
		for _, ev := range day.Events {
			row := []string{day.Date.String(), ev.Start.String(), ev.End.String(), ev.Title, ev.ID}
			sec.Rows = append(sec.Rows, row)
			csvRows = append(csvRows, row)
			dj.Events = append(dj.Events, eventJSON{ID: ev.ID, Title: ev.Title, Start: ev.Start, End: ev.End})
		}
		days = append(days, dj)
	}

	return document{
		Sections:  []section{sec},
		Footer:    []string{fmt.Sprintf("%d event(s) over %d day(s).", cd.EventCount(), cd.Len())},
		CSVHeader: []string{"date", "start", "end", "title", "id"},
		CSVRows:   csvRows,
		JSON:      days,
	}
}

func project(rec domain.DiscrepancyRecord) string {
	if rec.Project == nil {
		return ""
	}
	return *rec.Project
}

func nonNil(records []domain.DiscrepancyRecord) []domain.DiscrepancyRecord {
	if records == nil {
		return []domain.DiscrepancyRecord{}
	}
	return records
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
