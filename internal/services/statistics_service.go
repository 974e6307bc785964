// Package services holds computations shared by the reporting surfaces.
package services

import (
	"fmt"
	"time"

	"timeguard/internal/domain"
)

// DayStatistics compares scheduled and logged time for one calendar date
type DayStatistics struct {
	Date             domain.Date
	CalendarEvents   int
	TimesheetEntries int
	Projects         int
	CalendarTime     time.Duration
	LoggedTime       time.Duration
}

// Difference returns logged minus scheduled time
func (d DayStatistics) Difference() time.Duration {
	return d.LoggedTime - d.CalendarTime
}

// StatisticsService defines per-day statistics operations
type StatisticsService interface {
	// DailyStatistics returns one entry per calendar date, in calendar order
	DailyStatistics(cal *domain.CalendarDays, ts *domain.Timesheet) []DayStatistics

	// FormatDuration formats a duration as "Xh Ym" or "Ym"
	FormatDuration(duration time.Duration) string
}

// statisticsServiceImpl implements the StatisticsService interface
type statisticsServiceImpl struct{}

// NewStatisticsService creates a new StatisticsService instance
func NewStatisticsService() StatisticsService {
	return &statisticsServiceImpl{}
}

func (s *statisticsServiceImpl) DailyStatistics(cal *domain.CalendarDays, ts *domain.Timesheet) []DayStatistics {
	days := cal.Days()
	stats := make([]DayStatistics, 0, len(days))

	for _, day := range days {
		stat := DayStatistics{Date: day.Date, CalendarEvents: len(day.Events)}
		for _, ev := range day.Events {
			stat.CalendarTime += ev.Duration()
		}

		// Unnamed entries do not count as a project
		projects := make(map[string]bool)
		for _, entry := range ts.ForDate(day.Date) {
			stat.TimesheetEntries++
			stat.LoggedTime += entry.Duration()
			if entry.Project != "" {
				projects[entry.Project] = true
			}
		}
		stat.Projects = len(projects)

		stats = append(stats, stat)
	}

	return stats
}

func (s *statisticsServiceImpl) FormatDuration(duration time.Duration) string {
	sign := ""
	if duration < 0 {
		sign = "-"
		duration = -duration
	}

	hours := int(duration.Hours())
	minutes := int(duration.Minutes()) % 60

	if hours > 0 {
		return fmt.Sprintf("%s%dh %dm", sign, hours, minutes)
	}
	return fmt.Sprintf("%s%dm", sign, minutes)
}
