package config

import (
	"os"
	"time"
)

// ConfigFileEnvVar names a config file when --config is not given.
const ConfigFileEnvVar = "TG_CONFIG"

// Loader handles loading configuration from multiple sources
type Loader struct {
	config *Config
}

// NewLoader creates a new configuration loader
func NewLoader() *Loader {
	return &Loader{
		config: NewConfig(),
	}
}

// Load loads configuration using the cascading strategy:
// 1. Start with defaults
// 2. Override with the config file named by TG_CONFIG, if any
// 3. Override with environment variables
// 4. Override with command line flags (see LoadWithOverrides)
func (l *Loader) Load() (*Config, error) {
	return l.LoadWithOverrides(nil)
}

// LoadWithOverrides loads configuration and applies command line overrides
func (l *Loader) LoadWithOverrides(overrides *ConfigOverrides) (*Config, error) {
	path := os.Getenv(ConfigFileEnvVar)
	if overrides != nil && overrides.ConfigFile != nil && *overrides.ConfigFile != "" {
		path = *overrides.ConfigFile
	}
	if path != "" {
		if err := l.config.LoadFile(path); err != nil {
			return nil, err
		}
	}

	if err := l.config.LoadFromEnvironment(); err != nil {
		return nil, err
	}

	if overrides != nil {
		l.applyOverrides(l.config, overrides)
	}

	if err := l.config.Validate(); err != nil {
		return nil, err
	}

	return l.config, nil
}

// ConfigOverrides holds command line flag overrides
type ConfigOverrides struct {
	ConfigFile *string

	// Calendar overrides
	CalendarSource *string
	CalendarPath   *string
	Days           *int
	MockSeed       *uint64

	// Timesheet overrides
	Sheet *string

	// Reconcile overrides
	FlagUncoveredDates *bool

	// Display overrides
	Format *string

	// Server overrides
	Listen *string

	// Application overrides
	Timeout  *time.Duration
	Verbose  *bool
	LogLevel *string
}

// applyOverrides applies command line overrides to the configuration
func (l *Loader) applyOverrides(config *Config, overrides *ConfigOverrides) {
	// Calendar overrides
	if overrides.CalendarSource != nil {
		config.Calendar.Source = *overrides.CalendarSource
	}
	if overrides.CalendarPath != nil {
		config.Calendar.Path = *overrides.CalendarPath
	}
	if overrides.Days != nil {
		config.Calendar.Days = *overrides.Days
	}
	if overrides.MockSeed != nil {
		config.Calendar.MockSeed = *overrides.MockSeed
	}

	// Timesheet overrides
	if overrides.Sheet != nil {
		config.Timesheet.Sheet = *overrides.Sheet
	}

	// Reconcile overrides
	if overrides.FlagUncoveredDates != nil {
		config.Reconcile.FlagUncoveredDates = *overrides.FlagUncoveredDates
	}

	// Display overrides
	if overrides.Format != nil {
		config.Display.Format = *overrides.Format
	}

	// Server overrides
	if overrides.Listen != nil {
		config.Server.Listen = *overrides.Listen
	}

	// Application overrides
	if overrides.Timeout != nil {
		config.Application.Timeout = Duration{*overrides.Timeout}
	}
	if overrides.Verbose != nil {
		config.Application.Verbose = *overrides.Verbose
		if *overrides.Verbose && overrides.LogLevel == nil {
			config.Application.LogLevel = "debug"
		}
	}
	if overrides.LogLevel != nil {
		config.Application.LogLevel = *overrides.LogLevel
	}
}
