package validation

import (
	"strings"

	"timeguard/internal/config"
	"timeguard/internal/domain"
)

// TimesheetValidator turns raw timesheet fields into typed entries
type TimesheetValidator struct {
	limits Limits
}

// NewTimesheetValidator creates a timesheet validator with the default limits
func NewTimesheetValidator() *TimesheetValidator {
	return &TimesheetValidator{limits: DefaultLimits()}
}

// NewTimesheetValidatorWithConfig creates a timesheet validator using configured limits
func NewTimesheetValidatorWithConfig(cfg *config.Config) *TimesheetValidator {
	return &TimesheetValidator{limits: LimitsFromConfig(cfg)}
}

// ValidateRow parses one row. Every field problem of the row is collected
// into the returned *ValidationError.
func (tv *TimesheetValidator) ValidateRow(line int, date, start, end, project string) (domain.TimesheetEntry, error) {
	ve := NewValidationError()

	d, _ := checkDate(ve, date)
	startClock, startOK := checkClock(ve, "start", start)
	endClock, endOK := checkClock(ve, "end", end)
	if startOK && endOK && !startClock.Before(endClock) {
		ve.OutOfRange("time_range", start+"-"+end, "start time must be before end time")
	}

	project = strings.TrimSpace(project)
	switch {
	case project == "" && tv.limits.RequireProject:
		ve.Required("project")
	case runeLen(project) > tv.limits.ProjectMaxLength:
		ve.TooLong("project", project, tv.limits.ProjectMaxLength)
	}

	if err := ve.Err(); err != nil {
		return domain.TimesheetEntry{}, err
	}
	return domain.TimesheetEntry{
		TimeInterval: domain.TimeInterval{Date: d, Start: startClock, End: endClock},
		Project:      project,
		Line:         line,
	}, nil
}
