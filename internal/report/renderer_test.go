package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"timeguard/internal/domain"
	"timeguard/internal/services"
)

func mustDate(t *testing.T, s string) domain.Date {
	t.Helper()
	d, err := domain.ParseDate(s)
	require.NoError(t, err)
	return d
}

func mustInterval(t *testing.T, date, start, end string) domain.TimeInterval {
	t.Helper()
	s, err := domain.ParseClock(start)
	require.NoError(t, err)
	e, err := domain.ParseClock(end)
	require.NoError(t, err)
	iv, err := domain.NewTimeInterval(mustDate(t, date), s, e)
	require.NoError(t, err)
	return iv
}

func sampleValidation(t *testing.T) Validation {
	t.Helper()
	rep := domain.NewReport()
	rep.MissingEntries = append(rep.MissingEntries,
		domain.NewMissingRecord(domain.CalendarEvent{TimeInterval: mustInterval(t, "2024-01-02", "09:00", "10:00"), ID: "e1", Title: "Standup"}))
	rep.ExtraEntries = append(rep.ExtraEntries,
		domain.NewExtraRecord(domain.TimesheetEntry{TimeInterval: mustInterval(t, "2024-01-02", "13:00", "14:00"), Project: "Alpha", Line: 3}))

	return Validation{
		Start:  mustDate(t, "2024-01-02"),
		Days:   7,
		Report: rep,
		Summary: domain.Summary{
			CalendarEvents:   2,
			TimesheetEntries: 2,
			Matched:          1,
			Missing:          1,
			Extra:            1,
			Unexamined:       1,
		},
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    Format
		wantErr bool
	}{
		{"table", FormatTable, false},
		{"JSON", FormatJSON, false},
		{" csv ", FormatCSV, false},
		{"xlsx", FormatXLSX, false},
		{"yaml", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatContentType(t *testing.T) {
	assert.Equal(t, "application/json", FormatJSON.ContentType())
	assert.Equal(t, "text/csv", FormatCSV.ContentType())
	assert.Contains(t, FormatXLSX.ContentType(), "spreadsheetml")
	assert.Contains(t, FormatTable.ContentType(), "text/plain")
}

func TestRenderValidation_Table(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewRenderer(FormatTable).RenderValidation(&buf, sampleValidation(t)))

	out := buf.String()
	assert.Contains(t, out, "Missing Entries from Timesheet")
	assert.Contains(t, out, "Extra Entries in Timesheet")
	assert.Contains(t, out, "2024-01-02  09:00  10:00  No matching timesheet entry")
	assert.Contains(t, out, "Alpha")
	assert.Contains(t, out, "1 matched")
	assert.Contains(t, out, "1 timesheet entry fall outside the calendar range")
}

func TestRenderValidation_TableClean(t *testing.T) {
	v := Validation{Start: mustDate(t, "2024-01-02"), Days: 1, Report: domain.NewReport()}

	var buf bytes.Buffer
	require.NoError(t, NewRenderer(FormatTable).RenderValidation(&buf, v))

	out := buf.String()
	assert.Contains(t, out, "No missing entries")
	assert.Contains(t, out, "No extra entries")
	assert.NotContains(t, out, "outside the calendar range")
}

func TestRenderValidation_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewRenderer(FormatJSON).RenderValidation(&buf, sampleValidation(t)))

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "2024-01-02", got["start"])
	assert.EqualValues(t, 7, got["days"])

	missing := got["missingEntries"].([]interface{})
	require.Len(t, missing, 1)
	assert.Equal(t, "09:00:00", missing[0].(map[string]interface{})["start"])

	extra := got["extraEntries"].([]interface{})
	require.Len(t, extra, 1)
	assert.Equal(t, "Alpha", extra[0].(map[string]interface{})["project"])

	summary := got["summary"].(map[string]interface{})
	assert.EqualValues(t, 1, summary["unexamined"])
}

func TestRenderValidation_JSONEmptyLists(t *testing.T) {
	v := Validation{Start: mustDate(t, "2024-01-02"), Days: 1, Report: domain.Report{}}

	var buf bytes.Buffer
	require.NoError(t, NewRenderer(FormatJSON).RenderValidation(&buf, v))
	assert.Contains(t, buf.String(), `"missingEntries": []`)
	assert.Contains(t, buf.String(), `"extraEntries": []`)
}

func TestRenderValidation_CSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewRenderer(FormatCSV).RenderValidation(&buf, sampleValidation(t)))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"kind", "date", "start", "end", "project", "reason"}, records[0])
	assert.Equal(t, "missing", records[1][0])
	assert.Equal(t, "", records[1][4])
	assert.Equal(t, []string{"extra", "2024-01-02", "13:00", "14:00", "Alpha", domain.ReasonNoCalendarEvent}, records[2])
}

func TestRenderValidation_XLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewRenderer(FormatXLSX).RenderValidation(&buf, sampleValidation(t)))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Missing Entries", "Extra Entries"}, f.GetSheetList())

	rows, err := f.GetRows("Extra Entries")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"Date", "Start", "End", "Project", "Reason"}, rows[0])
	assert.Equal(t, "Alpha", rows[1][3])
}

func TestRenderValidation_Daily(t *testing.T) {
	v := sampleValidation(t)
	v.Daily = []services.DayStatistics{{
		Date:             mustDate(t, "2024-01-02"),
		CalendarEvents:   2,
		TimesheetEntries: 2,
		Projects:         1,
		CalendarTime:     2 * time.Hour,
		LoggedTime:       90 * time.Minute,
	}}

	t.Run("table", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewRenderer(FormatTable).RenderValidation(&buf, v))
		assert.Contains(t, buf.String(), "Daily Totals")
		assert.Contains(t, buf.String(), "1h 30m")
		assert.Contains(t, buf.String(), "-30m")
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewRenderer(FormatJSON).RenderValidation(&buf, v))
		var got struct {
			Daily []map[string]interface{} `json:"daily"`
		}
		require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
		require.Len(t, got.Daily, 1)
		assert.EqualValues(t, 120, got.Daily[0]["calendarMinutes"])
		assert.EqualValues(t, 90, got.Daily[0]["loggedMinutes"])
	})

	t.Run("xlsx", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewRenderer(FormatXLSX).RenderValidation(&buf, v))
		f, err := excelize.OpenReader(&buf)
		require.NoError(t, err)
		defer f.Close()
		assert.Equal(t, []string{"Missing Entries", "Extra Entries", "Daily Totals"}, f.GetSheetList())
	})

	t.Run("json omits daily when unset", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewRenderer(FormatJSON).RenderValidation(&buf, sampleValidation(t)))
		assert.NotContains(t, buf.String(), "daily")
	})
}

func TestRenderTimesheet(t *testing.T) {
	ts := domain.NewTimesheet([]domain.TimesheetEntry{
		{TimeInterval: mustInterval(t, "2024-01-03", "09:00", "10:00"), Project: "Beta", Line: 2},
		{TimeInterval: mustInterval(t, "2024-01-02", "11:00", "12:30"), Project: "Alpha", Line: 3},
	})

	t.Run("table keeps input order", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewRenderer(FormatTable).RenderTimesheet(&buf, ts))
		out := buf.String()
		assert.Less(t, strings.Index(out, "Beta"), strings.Index(out, "Alpha"))
	})

	t.Run("table control characters stay in the cell", func(t *testing.T) {
		messy := domain.NewTimesheet([]domain.TimesheetEntry{
			{TimeInterval: mustInterval(t, "2024-01-02", "09:00", "10:00"), Project: "Alpha\tBeta\nGamma", Line: 2},
		})
		var buf bytes.Buffer
		require.NoError(t, NewRenderer(FormatTable).RenderTimesheet(&buf, messy))

		var row string
		for _, line := range strings.Split(buf.String(), "\n") {
			assert.False(t, strings.HasPrefix(line, "Gamma"), line)
			if strings.HasPrefix(line, "2024-01-02") {
				row = line
			}
		}
		assert.Contains(t, row, "Alpha Beta Gamma")
	})

	t.Run("csv", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewRenderer(FormatCSV).RenderTimesheet(&buf, ts))
		records, err := csv.NewReader(&buf).ReadAll()
		require.NoError(t, err)
		assert.Equal(t, []string{"date", "start", "end", "project"}, records[0])
		assert.Equal(t, []string{"2024-01-02", "11:00", "12:30", "Alpha"}, records[2])
	})

	t.Run("empty", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewRenderer(FormatTable).RenderTimesheet(&buf, domain.NewTimesheet(nil)))
		assert.Contains(t, buf.String(), "No timesheet entries")

		buf.Reset()
		require.NoError(t, NewRenderer(FormatJSON).RenderTimesheet(&buf, domain.NewTimesheet(nil)))
		assert.JSONEq(t, `[]`, buf.String())
	})
}

func TestRenderCalendar(t *testing.T) {
	cd := domain.NewCalendarDays(mustDate(t, "2024-01-02"), 2)
	cd.Add(domain.CalendarEvent{TimeInterval: mustInterval(t, "2024-01-02", "09:00", "10:00"), ID: "e1", Title: "Project Work 1"})

	t.Run("table marks empty days", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewRenderer(FormatTable).RenderCalendar(&buf, cd))
		out := buf.String()
		assert.Contains(t, out, "Project Work 1")
		assert.Contains(t, out, "2024-01-03")
		assert.Contains(t, out, "(no events)")
		assert.Contains(t, out, "1 event(s) over 2 day(s).")
	})

	t.Run("json lists every day", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewRenderer(FormatJSON).RenderCalendar(&buf, cd))
		assert.JSONEq(t, `[
			{"date":"2024-01-02","events":[{"id":"e1","title":"Project Work 1","start":"09:00:00","end":"10:00:00"}]},
			{"date":"2024-01-03","events":[]}
		]`, buf.String())
	})

	t.Run("csv skips empty days", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewRenderer(FormatCSV).RenderCalendar(&buf, cd))
		records, err := csv.NewReader(&buf).ReadAll()
		require.NoError(t, err)
		assert.Len(t, records, 2)
	})
}
