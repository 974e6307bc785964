package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"timeguard/internal/domain"
)

func interval(date domain.Date, startHour, startMinute, endHour, endMinute int) domain.TimeInterval {
	return domain.TimeInterval{
		Date:  date,
		Start: domain.NewClock(startHour, startMinute),
		End:   domain.NewClock(endHour, endMinute),
	}
}

func TestDailyStatistics(t *testing.T) {
	svc := NewStatisticsService()
	jan2 := domain.NewDate(2024, time.January, 2)
	jan3 := domain.NewDate(2024, time.January, 3)

	cal := domain.NewCalendarDays(jan2, 2)
	cal.Add(domain.CalendarEvent{TimeInterval: interval(jan2, 9, 0, 10, 0), ID: "a"})
	cal.Add(domain.CalendarEvent{TimeInterval: interval(jan2, 11, 0, 11, 30), ID: "b"})

	ts := domain.NewTimesheet([]domain.TimesheetEntry{
		{TimeInterval: interval(jan2, 9, 0, 10, 15), Project: "Alpha"},
		{TimeInterval: interval(jan2, 11, 0, 11, 30), Project: "Alpha"},
		{TimeInterval: interval(jan2, 13, 0, 13, 45), Project: ""},
		{TimeInterval: interval(domain.NewDate(2024, time.February, 1), 9, 0, 10, 0), Project: "Outside"},
	})

	stats := svc.DailyStatistics(cal, ts)
	require.Len(t, stats, 2)

	assert.Equal(t, DayStatistics{
		Date:             jan2,
		CalendarEvents:   2,
		TimesheetEntries: 3,
		Projects:         1,
		CalendarTime:     90 * time.Minute,
		LoggedTime:       150 * time.Minute,
	}, stats[0])
	assert.Equal(t, 60*time.Minute, stats[0].Difference())

	assert.Equal(t, DayStatistics{Date: jan3}, stats[1])
}

func TestDailyStatistics_EmptyTimesheet(t *testing.T) {
	svc := NewStatisticsService()
	cal := domain.NewCalendarDays(domain.NewDate(2024, time.January, 2), 3)

	stats := svc.DailyStatistics(cal, domain.NewTimesheet(nil))
	assert.Len(t, stats, 3)
	for _, s := range stats {
		assert.Zero(t, s.LoggedTime)
	}
}

func TestFormatDuration(t *testing.T) {
	svc := NewStatisticsService()

	tests := []struct {
		name     string
		duration time.Duration
		expected string
	}{
		{"zero", 0, "0m"},
		{"minutes only", 45 * time.Minute, "45m"},
		{"hours and minutes", 2*time.Hour + 5*time.Minute, "2h 5m"},
		{"whole hours", 3 * time.Hour, "3h 0m"},
		{"negative", -90 * time.Minute, "-1h 30m"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, svc.FormatDuration(tt.duration))
		})
	}
}
