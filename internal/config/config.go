package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"timeguard/internal/logging"
)

// Calendar source kinds.
const (
	SourceMock   = "mock"
	SourceICS    = "ics"
	SourceSQLite = "sqlite"
)

// Output formats understood by the report renderer.
var validFormats = []string{"table", "json", "csv", "xlsx"}

// Config holds all configuration options for timeguard
type Config struct {
	Calendar    CalendarConfig    `yaml:"calendar" toml:"calendar"`
	Timesheet   TimesheetConfig   `yaml:"timesheet" toml:"timesheet"`
	Reconcile   ReconcileConfig   `yaml:"reconcile" toml:"reconcile"`
	Display     DisplayConfig     `yaml:"display" toml:"display"`
	Server      ServerConfig      `yaml:"server" toml:"server"`
	Database    DatabaseConfig    `yaml:"database" toml:"database"`
	Application ApplicationConfig `yaml:"application" toml:"application"`
}

// CalendarConfig selects and tunes the calendar source
type CalendarConfig struct {
	Source  string `env:"TG_CALENDAR_SOURCE" yaml:"source" toml:"source"`
	Path    string `env:"TG_CALENDAR_PATH" yaml:"path" toml:"path"`
	Days    int    `env:"TG_CALENDAR_DAYS" yaml:"days" toml:"days"`
	MaxDays int    `env:"TG_CALENDAR_MAX_DAYS" yaml:"max_days" toml:"max_days"`

	// Mock generator; a zero seed draws a fresh seed per request.
	MockSeed       uint64   `env:"TG_MOCK_SEED" yaml:"mock_seed" toml:"mock_seed"`
	MockMinEvents  int      `env:"TG_MOCK_MIN_EVENTS" yaml:"mock_min_events" toml:"mock_min_events"`
	MockMaxEvents  int      `env:"TG_MOCK_MAX_EVENTS" yaml:"mock_max_events" toml:"mock_max_events"`
	FirstEventHour int      `env:"TG_MOCK_FIRST_EVENT_HOUR" yaml:"first_event_hour" toml:"first_event_hour"`
	EventSpacing   Duration `env:"TG_MOCK_EVENT_SPACING" yaml:"event_spacing" toml:"event_spacing"`
	EventDuration  Duration `env:"TG_MOCK_EVENT_DURATION" yaml:"event_duration" toml:"event_duration"`
}

// TimesheetConfig holds timesheet parsing rules
type TimesheetConfig struct {
	Sheet            string `env:"TG_TIMESHEET_SHEET" yaml:"sheet" toml:"sheet"`
	ProjectMaxLength int    `env:"TG_TIMESHEET_PROJECT_MAX" yaml:"project_max_length" toml:"project_max_length"`
	RequireProject   bool   `env:"TG_TIMESHEET_REQUIRE_PROJECT" yaml:"require_project" toml:"require_project"`
}

// ReconcileConfig holds reconciliation options
type ReconcileConfig struct {
	FlagUncoveredDates bool `env:"TG_FLAG_UNCOVERED_DATES" yaml:"flag_uncovered_dates" toml:"flag_uncovered_dates"`
}

// DisplayConfig holds display formatting configuration
type DisplayConfig struct {
	Format string `env:"TG_DISPLAY_FORMAT" yaml:"format" toml:"format"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Listen         string `env:"TG_SERVER_LISTEN" yaml:"listen" toml:"listen"`
	MaxUploadBytes int64  `env:"TG_SERVER_MAX_UPLOAD_BYTES" yaml:"max_upload_bytes" toml:"max_upload_bytes"`
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	QueryTimeout Duration `env:"TG_DB_QUERY_TIMEOUT" yaml:"query_timeout" toml:"query_timeout"`
}

// ApplicationConfig holds application-level configuration
type ApplicationConfig struct {
	Timeout  Duration `env:"TG_APP_TIMEOUT" yaml:"timeout" toml:"timeout"`
	Verbose  bool     `env:"TG_APP_VERBOSE" yaml:"verbose" toml:"verbose"`
	LogLevel string   `env:"TG_LOG_LEVEL" yaml:"log_level" toml:"log_level"`
}

// NewConfig creates a new configuration with sensible defaults
func NewConfig() *Config {
	return &Config{
		Calendar: CalendarConfig{
			Source:         SourceMock,
			Days:           7,
			MaxDays:        366,
			MockMinEvents:  1,
			MockMaxEvents:  2,
			FirstEventHour: 9,
			EventSpacing:   Duration{2 * time.Hour},
			EventDuration:  Duration{time.Hour},
		},
		Timesheet: TimesheetConfig{
			ProjectMaxLength: 255,
		},
		Display: DisplayConfig{
			Format: "table",
		},
		Server: ServerConfig{
			Listen:         "127.0.0.1:8080",
			MaxUploadBytes: 10 << 20,
		},
		Database: DatabaseConfig{
			QueryTimeout: Duration{10 * time.Second},
		},
		Application: ApplicationConfig{
			Timeout:  Duration{60 * time.Second},
			LogLevel: "info",
		},
	}
}

// GetQueryTimeout returns the database query timeout
func (c *Config) GetQueryTimeout() time.Duration {
	return c.Database.QueryTimeout.Duration
}

// GetAppTimeout returns the timeout applied to a single command
func (c *Config) GetAppTimeout() time.Duration {
	return c.Application.Timeout.Duration
}

// LoadFromEnvironment loads configuration from TG_* environment variables.
// Unset variables leave the current value alone; malformed ones are errors.
func (c *Config) LoadFromEnvironment() error {
	// Calendar configuration
	setString(&c.Calendar.Source, "TG_CALENDAR_SOURCE")
	setString(&c.Calendar.Path, "TG_CALENDAR_PATH")
	if err := setInt(&c.Calendar.Days, "TG_CALENDAR_DAYS"); err != nil {
		return err
	}
	if err := setInt(&c.Calendar.MaxDays, "TG_CALENDAR_MAX_DAYS"); err != nil {
		return err
	}
	if v := os.Getenv("TG_MOCK_SEED"); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return envError("TG_MOCK_SEED", v)
		}
		c.Calendar.MockSeed = seed
	}
	if err := setInt(&c.Calendar.MockMinEvents, "TG_MOCK_MIN_EVENTS"); err != nil {
		return err
	}
	if err := setInt(&c.Calendar.MockMaxEvents, "TG_MOCK_MAX_EVENTS"); err != nil {
		return err
	}
	if err := setInt(&c.Calendar.FirstEventHour, "TG_MOCK_FIRST_EVENT_HOUR"); err != nil {
		return err
	}
	if err := setDuration(&c.Calendar.EventSpacing, "TG_MOCK_EVENT_SPACING"); err != nil {
		return err
	}
	if err := setDuration(&c.Calendar.EventDuration, "TG_MOCK_EVENT_DURATION"); err != nil {
		return err
	}

	// Timesheet configuration
	setString(&c.Timesheet.Sheet, "TG_TIMESHEET_SHEET")
	if err := setInt(&c.Timesheet.ProjectMaxLength, "TG_TIMESHEET_PROJECT_MAX"); err != nil {
		return err
	}
	if err := setBool(&c.Timesheet.RequireProject, "TG_TIMESHEET_REQUIRE_PROJECT"); err != nil {
		return err
	}

	// Reconcile configuration
	if err := setBool(&c.Reconcile.FlagUncoveredDates, "TG_FLAG_UNCOVERED_DATES"); err != nil {
		return err
	}

	// Display configuration
	setString(&c.Display.Format, "TG_DISPLAY_FORMAT")

	// Server configuration
	setString(&c.Server.Listen, "TG_SERVER_LISTEN")
	if v := os.Getenv("TG_SERVER_MAX_UPLOAD_BYTES"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return envError("TG_SERVER_MAX_UPLOAD_BYTES", v)
		}
		c.Server.MaxUploadBytes = n
	}

	// Database configuration
	if err := setDuration(&c.Database.QueryTimeout, "TG_DB_QUERY_TIMEOUT"); err != nil {
		return err
	}

	// Application configuration
	if err := setDuration(&c.Application.Timeout, "TG_APP_TIMEOUT"); err != nil {
		return err
	}
	if err := setBool(&c.Application.Verbose, "TG_APP_VERBOSE"); err != nil {
		return err
	}
	setString(&c.Application.LogLevel, "TG_LOG_LEVEL")

	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return envError(key, v)
	}
	*dst = n
	return nil
}

func setBool(dst *bool, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return envError(key, v)
	}
	*dst = b
	return nil
}

func setDuration(dst *Duration, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return envError(key, v)
	}
	dst.Duration = d
	return nil
}

func envError(key, value string) error {
	return &ConfigError{Field: key, Message: fmt.Sprintf("cannot parse value %q", value)}
}

// Validate validates the configuration and returns any errors
func (c *Config) Validate() error {
	// Validate calendar configuration
	switch c.Calendar.Source {
	case SourceMock:
	case SourceICS, SourceSQLite:
		if c.Calendar.Path == "" {
			return &ConfigError{Field: "calendar.path", Message: "path is required for calendar source " + c.Calendar.Source}
		}
	default:
		return &ConfigError{Field: "calendar.source", Message: fmt.Sprintf("unknown calendar source %q (expected mock, ics or sqlite)", c.Calendar.Source)}
	}
	if c.Calendar.MaxDays < 1 {
		return &ConfigError{Field: "calendar.max_days", Message: "max days must be at least 1"}
	}
	if c.Calendar.Days < 1 || c.Calendar.Days > c.Calendar.MaxDays {
		return &ConfigError{Field: "calendar.days", Message: fmt.Sprintf("days must be between 1 and %d", c.Calendar.MaxDays)}
	}
	if c.Calendar.MockMinEvents < 0 {
		return &ConfigError{Field: "calendar.mock_min_events", Message: "minimum events cannot be negative"}
	}
	if c.Calendar.MockMaxEvents < c.Calendar.MockMinEvents {
		return &ConfigError{Field: "calendar.mock_max_events", Message: "maximum events must not be less than minimum events"}
	}
	if c.Calendar.FirstEventHour < 0 || c.Calendar.FirstEventHour > 23 {
		return &ConfigError{Field: "calendar.first_event_hour", Message: "first event hour must be between 0 and 23"}
	}
	if c.Calendar.EventDuration.Duration <= 0 {
		return &ConfigError{Field: "calendar.event_duration", Message: "event duration must be positive"}
	}
	if c.Calendar.EventSpacing.Duration < c.Calendar.EventDuration.Duration {
		return &ConfigError{Field: "calendar.event_spacing", Message: "event spacing must not be shorter than event duration"}
	}
	if c.Calendar.MockMaxEvents > 0 {
		last := time.Duration(c.Calendar.FirstEventHour)*time.Hour +
			time.Duration(c.Calendar.MockMaxEvents-1)*c.Calendar.EventSpacing.Duration +
			c.Calendar.EventDuration.Duration
		if last >= 24*time.Hour {
			return &ConfigError{Field: "calendar.mock_max_events", Message: "generated events would run past midnight"}
		}
	}

	// Validate timesheet configuration
	if c.Timesheet.ProjectMaxLength < 1 {
		return &ConfigError{Field: "timesheet.project_max_length", Message: "project maximum length must be at least 1"}
	}

	// Validate display configuration
	if !IsValidFormat(c.Display.Format) {
		return &ConfigError{Field: "display.format", Message: fmt.Sprintf("unknown format %q (expected %s)", c.Display.Format, strings.Join(validFormats, ", "))}
	}

	// Validate server configuration
	if c.Server.Listen == "" {
		return &ConfigError{Field: "server.listen", Message: "listen address cannot be empty"}
	}
	if c.Server.MaxUploadBytes <= 0 {
		return &ConfigError{Field: "server.max_upload_bytes", Message: "max upload size must be positive"}
	}

	// Validate database configuration
	if c.Database.QueryTimeout.Duration <= 0 {
		return &ConfigError{Field: "database.query_timeout", Message: "query timeout must be positive"}
	}

	// Validate application configuration
	if c.Application.Timeout.Duration <= 0 {
		return &ConfigError{Field: "application.timeout", Message: "application timeout must be positive"}
	}
	if !logging.IsValidLevel(c.Application.LogLevel) {
		return &ConfigError{Field: "application.log_level", Message: fmt.Sprintf("unknown log level %q", c.Application.LogLevel)}
	}

	return nil
}

// IsValidFormat reports whether format is a known output format
func IsValidFormat(format string) bool {
	for _, f := range validFormats {
		if f == format {
			return true
		}
	}
	return false
}

// ConfigError represents a configuration validation error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}
