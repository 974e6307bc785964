package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReport_JSONShape(t *testing.T) {
	date := NewDate(2024, time.January, 2)
	ev := CalendarEvent{ID: "e1", Title: "Project Work 1", TimeInterval: TimeInterval{Date: date, Start: NewClock(9, 0), End: NewClock(10, 0)}}
	ts := TimesheetEntry{Project: "Y", TimeInterval: TimeInterval{Date: date, Start: NewClock(14, 0), End: NewClock(15, 0)}}

	report := NewReport()
	report.MissingEntries = append(report.MissingEntries, NewMissingRecord(ev))
	report.ExtraEntries = append(report.ExtraEntries, NewExtraRecord(ts))

	data, err := json.Marshal(report)
	require.NoError(t, err)

	expected := `{
		"missingEntries": [{"date": "2024-01-02", "start": "09:00:00", "end": "10:00:00", "reason": "No matching timesheet entry"}],
		"extraEntries": [{"date": "2024-01-02", "start": "14:00:00", "end": "15:00:00", "project": "Y", "reason": "No matching calendar event"}]
	}`
	assert.JSONEq(t, expected, string(data))
	assert.False(t, report.IsClean())
}

func TestNewReport_EmptyListsSerializeAsArrays(t *testing.T) {
	data, err := json.Marshal(NewReport())
	require.NoError(t, err)
	assert.JSONEq(t, `{"missingEntries": [], "extraEntries": []}`, string(data))
	assert.True(t, NewReport().IsClean())
}

func TestNewExtraRecord_EmptyProjectIsKept(t *testing.T) {
	rec := NewExtraRecord(TimesheetEntry{})

	assert.True(t, rec.IsExtra())
	require.NotNil(t, rec.Project)
	assert.Equal(t, "", *rec.Project)
	assert.False(t, NewMissingRecord(CalendarEvent{}).IsExtra())
}
