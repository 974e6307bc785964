package validation

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"timeguard/internal/config"
	"timeguard/internal/domain"
)

const (
	defaultMaxDays          = 366
	defaultProjectMaxLength = 255
)

// Limits are the configurable bounds applied to user input
type Limits struct {
	MaxDays          int
	ProjectMaxLength int
	RequireProject   bool
}

// DefaultLimits are used when no configuration is supplied
func DefaultLimits() Limits {
	return Limits{MaxDays: defaultMaxDays, ProjectMaxLength: defaultProjectMaxLength}
}

// LimitsFromConfig reads the limits from cfg, falling back to the defaults
func LimitsFromConfig(cfg *config.Config) Limits {
	if cfg == nil {
		return DefaultLimits()
	}
	return Limits{
		MaxDays:          cfg.Calendar.MaxDays,
		ProjectMaxLength: cfg.Timesheet.ProjectMaxLength,
		RequireProject:   cfg.Timesheet.RequireProject,
	}
}

// Validator checks request parameters against Limits
type Validator struct {
	limits Limits
}

// NewValidator creates a validator with the default limits
func NewValidator() *Validator {
	return &Validator{limits: DefaultLimits()}
}

// NewValidatorWithConfig creates a validator with the configured limits
func NewValidatorWithConfig(cfg *config.Config) *Validator {
	return &Validator{limits: LimitsFromConfig(cfg)}
}

// Limits returns the bounds in effect
func (v *Validator) Limits() Limits {
	return v.limits
}

// ValidateCalendarRange checks the number of days requested from a calendar source
func (v *Validator) ValidateCalendarRange(days int) error {
	ve := NewValidationError()
	if days < 1 || days > v.limits.MaxDays {
		ve.OutOfRange("days", days, fmt.Sprintf("days must be between 1 and %d", v.limits.MaxDays))
	}
	return ve.Err()
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// runeLen counts characters, not bytes
func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}

func checkDate(ve *ValidationError, value string) (domain.Date, bool) {
	if isBlank(value) {
		ve.Required("date")
		return domain.Date{}, false
	}
	d, err := domain.ParseDate(value)
	if err != nil {
		ve.Format("date", value, "YYYY-MM-DD")
		return domain.Date{}, false
	}
	return d, true
}

func checkClock(ve *ValidationError, field, value string) (domain.Clock, bool) {
	if isBlank(value) {
		ve.Required(field)
		return domain.Clock{}, false
	}
	c, err := domain.ParseClock(value)
	if err != nil {
		ve.Format(field, value, "HH:MM")
		return domain.Clock{}, false
	}
	return c, true
}
