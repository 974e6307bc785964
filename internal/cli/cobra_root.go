package cli

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"timeguard/internal/api"
	"timeguard/internal/config"
	"timeguard/internal/logging"
)

// ServiceFactory builds the service a command runs against
type ServiceFactory func(cfg *config.Config, logger *slog.Logger) (api.Service, error)

func defaultServiceFactory(cfg *config.Config, logger *slog.Logger) (api.Service, error) {
	return api.New(cfg, logger)
}

// RootCommand represents the base command when called without any subcommands
type RootCommand struct {
	cmd        *cobra.Command
	config     *config.Config
	app        *App
	newService ServiceFactory
	out        io.Writer
	errOut     io.Writer
}

// RootOption customizes the root command
type RootOption func(*RootCommand)

// WithServiceFactory replaces the factory used to build the service
func WithServiceFactory(factory ServiceFactory) RootOption {
	return func(r *RootCommand) { r.newService = factory }
}

// WithOutput redirects command output and log output
func WithOutput(out, errOut io.Writer) RootOption {
	return func(r *RootCommand) {
		r.out = out
		r.errOut = errOut
	}
}

// NewRootCommand creates the root cobra command with global flags
func NewRootCommand(opts ...RootOption) *RootCommand {
	root := &RootCommand{
		newService: defaultServiceFactory,
		out:        os.Stdout,
		errOut:     os.Stderr,
	}
	for _, opt := range opts {
		opt(root)
	}

	root.cmd = &cobra.Command{
		Use:   "timeguard",
		Short: "Check a timesheet against calendar events",
		Long: `TimeGuard (timeguard) reconciles a timesheet against calendar events and
reports calendar events with no matching timesheet entry and timesheet
entries with no matching calendar event.

An entry matches an event on the same date when their time ranges overlap.
Touching ranges (one ends exactly when the other starts) do not overlap.

EXAMPLES:
  timeguard validate timesheet.csv                     # Validate against a mock calendar
  timeguard validate sheet.xlsx --calendar-source ics --calendar-path work.ics
  timeguard validate timesheet.csv --format json       # Machine-readable report
  timeguard validate timesheet.csv --format xlsx --output report.xlsx
  timeguard parse timesheet.csv                        # Show the parsed entries
  timeguard calendar --start 2024-01-01 --days 14      # Show the calendar
  timeguard serve --listen :8080                       # Serve the HTTP API

CONFIGURATION:
  Configuration follows this priority order:
    command-line flags > environment variables > config file > defaults

  A .env file in the working directory is loaded into the environment.
  TG_CONFIG or --config names a YAML (.yaml, .yml) or TOML (.toml) file.

  Calendar Configuration:
    TG_CALENDAR_SOURCE                     mock, ics or sqlite (default: mock)
    TG_CALENDAR_PATH                       Calendar file for ics and sqlite
    TG_CALENDAR_DAYS                       Days to check (default: 7)
    TG_CALENDAR_MAX_DAYS                   Largest accepted range (default: 366)
    TG_MOCK_SEED                           Mock calendar seed, 0 for random (default: 0)

  Timesheet Configuration:
    TG_TIMESHEET_SHEET                     XLSX sheet name (default: first sheet)
    TG_TIMESHEET_PROJECT_MAX               Max project length (default: 255)
    TG_TIMESHEET_REQUIRE_PROJECT           Reject empty projects (default: false)

  Reconcile Configuration:
    TG_FLAG_UNCOVERED_DATES                Report entries outside the range as extra (default: false)

  Display Configuration:
    TG_DISPLAY_FORMAT                      table, json, csv or xlsx (default: table)

  Server Configuration:
    TG_SERVER_LISTEN                       Listen address (default: 127.0.0.1:8080)
    TG_SERVER_MAX_UPLOAD_BYTES             Upload limit (default: 10485760)

  Application Configuration:
    TG_DB_QUERY_TIMEOUT                    Query timeout (default: 10s)
    TG_APP_TIMEOUT                         Application timeout (default: 60s)
    TG_APP_VERBOSE                         Enable verbose output (default: false)
    TG_LOG_LEVEL                           debug, info, warn or error (default: info)

GETTING HELP:
  timeguard [command] --help               # Get help for any specific command
  timeguard completion bash                # Generate bash completion script`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return root.setup(cmd)
		},
	}

	root.cmd.SetOut(root.out)
	root.cmd.SetErr(root.errOut)

	root.addGlobalFlags()
	root.addSubcommands()

	return root
}

// Command returns the underlying cobra command
func (r *RootCommand) Command() *cobra.Command {
	return r.cmd
}

// Execute runs the root command
func (r *RootCommand) Execute() error {
	return r.ExecuteContext(context.Background())
}

// ExecuteContext runs the root command with ctx as the parent of every
// command context
func (r *RootCommand) ExecuteContext(ctx context.Context) error {
	if err := r.cmd.ExecuteContext(ctx); err != nil {
		return NewErrorHandler().HandleSimple(err)
	}
	return nil
}

// addGlobalFlags adds global configuration flags
func (r *RootCommand) addGlobalFlags() {
	flags := r.cmd.PersistentFlags()

	flags.String("config", "", "YAML or TOML config file (overrides TG_CONFIG)")

	// Calendar configuration
	flags.String("calendar-source", "", "Calendar source: mock, ics or sqlite (overrides TG_CALENDAR_SOURCE)")
	flags.String("calendar-path", "", "Calendar file for ics and sqlite sources (overrides TG_CALENDAR_PATH)")
	flags.Int("days", 0, "Number of days to check (overrides TG_CALENDAR_DAYS)")
	flags.Uint64("seed", 0, "Mock calendar seed (overrides TG_MOCK_SEED)")

	// Timesheet configuration
	flags.String("sheet", "", "XLSX sheet name (overrides TG_TIMESHEET_SHEET)")

	// Reconcile configuration
	flags.Bool("flag-uncovered-dates", false, "Report entries outside the calendar range as extra (overrides TG_FLAG_UNCOVERED_DATES)")

	// Display configuration
	flags.String("format", "", "Output format: table, json, csv or xlsx (overrides TG_DISPLAY_FORMAT)")

	// Application configuration
	flags.Duration("app-timeout", 0, "Application timeout (overrides TG_APP_TIMEOUT)")
	flags.Bool("verbose", false, "Enable verbose output (overrides TG_APP_VERBOSE)")
	flags.String("log-level", "", "Log level: debug, info, warn or error (overrides TG_LOG_LEVEL)")
}

// addSubcommands adds all CLI subcommands to the root command
func (r *RootCommand) addSubcommands() {
	// Validate command
	var validateOpts ValidateOptions
	validateCmd := &cobra.Command{
		Use:   "validate <timesheet>",
		Short: "Validate a timesheet against the calendar",
		Long: `Validate a timesheet (.csv, .xlsx, .db, .sqlite or .sqlite3) against the
calendar and report missing and extra entries.

The range starts at --start, or at the earliest timesheet date when not
given, and covers --days days.

Examples:
  timeguard validate timesheet.csv
  timeguard validate timesheet.csv --start 2024-01-01 --days 31
  timeguard validate timesheet.csv --fail-on-discrepancy`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), r.getAppTimeout())
			defer cancel()

			return NewValidateCommand(r.app).Execute(ctx, args[0], validateOpts)
		},
	}
	validateCmd.Flags().StringVar(&validateOpts.Start, "start", "", "First date to check (YYYY-MM-DD)")
	validateCmd.Flags().StringVarP(&validateOpts.Output, "output", "o", "", "Write the report to a file")
	validateCmd.Flags().BoolVar(&validateOpts.ShowTimesheet, "show-timesheet", false, "Print the parsed timesheet before the report")
	validateCmd.Flags().BoolVar(&validateOpts.Daily, "daily", false, "Include per-day scheduled and logged totals")
	validateCmd.Flags().BoolVar(&validateOpts.FailOnDiscrepancy, "fail-on-discrepancy", false, "Exit with an error when the report is not clean")

	// Parse command
	var parseOutput string
	parseCmd := &cobra.Command{
		Use:   "parse <timesheet>",
		Short: "Parse a timesheet and print its entries",
		Long:  "Parse and validate a timesheet without reading the calendar.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), r.getAppTimeout())
			defer cancel()

			return NewParseCommand(r.app).Execute(ctx, args[0], parseOutput)
		},
	}
	parseCmd.Flags().StringVarP(&parseOutput, "output", "o", "", "Write the entries to a file")

	// Calendar command
	var calendarStart, calendarOutput string
	calendarCmd := &cobra.Command{
		Use:   "calendar",
		Short: "Print the calendar for a date range",
		Long: `Print the events of the configured calendar source.

Examples:
  timeguard calendar                                   # From today
  timeguard calendar --start 2024-01-01 --days 7 --seed 42`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), r.getAppTimeout())
			defer cancel()

			return NewCalendarCommand(r.app).Execute(ctx, calendarStart, calendarOutput)
		},
	}
	calendarCmd.Flags().StringVar(&calendarStart, "start", "", "First date (YYYY-MM-DD, default today)")
	calendarCmd.Flags().StringVarP(&calendarOutput, "output", "o", "", "Write the calendar to a file")

	// Serve command
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the validation HTTP API",
		Long: `Serve the validation HTTP API.

Endpoints:
  GET  /healthz
  POST /api/validate   multipart field "timesheet"; query start, days, flag_uncovered_dates, format
  GET  /api/calendar   query start, days`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return NewServeCommand(r.app).Execute(cmd.Context())
		},
	}
	serveCmd.Flags().String("listen", "", "Listen address (overrides TG_SERVER_LISTEN)")

	r.cmd.AddCommand(
		validateCmd,
		parseCmd,
		calendarCmd,
		serveCmd,
	)
}

// setup loads the configuration, applies flag overrides and builds the
// service for the command about to run
func (r *RootCommand) setup(cmd *cobra.Command) error {
	logging.Debugf("loading configuration for %s\n", cmd.CommandPath())
	cfg, err := config.NewLoader().LoadWithOverrides(r.getOverridesFromFlags(cmd))
	if err != nil {
		logging.Debugln("configuration rejected:", err)
		return err
	}
	r.config = cfg

	logger := logging.New(cfg.Application.LogLevel, r.errOut)

	service, err := r.newService(cfg, logger)
	if err != nil {
		return err
	}

	r.app = NewApp(service, cfg, logger, r.out)
	logger.Debug("configuration loaded",
		"calendar_source", cfg.Calendar.Source,
		"days", cfg.Calendar.Days,
		"format", cfg.Display.Format,
	)
	return nil
}

// getAppTimeout returns the configured application timeout
func (r *RootCommand) getAppTimeout() time.Duration {
	if r.config != nil {
		return r.config.GetAppTimeout()
	}
	return 60 * time.Second
}

// getOverridesFromFlags collects the flags given on the command line
func (r *RootCommand) getOverridesFromFlags(cmd *cobra.Command) *config.ConfigOverrides {
	flags := cmd.Flags()
	overrides := &config.ConfigOverrides{}

	if flags.Changed("config") {
		v, _ := flags.GetString("config")
		overrides.ConfigFile = &v
	}

	// Calendar configuration
	if flags.Changed("calendar-source") {
		v, _ := flags.GetString("calendar-source")
		overrides.CalendarSource = &v
	}
	if flags.Changed("calendar-path") {
		v, _ := flags.GetString("calendar-path")
		overrides.CalendarPath = &v
	}
	if flags.Changed("days") {
		v, _ := flags.GetInt("days")
		overrides.Days = &v
	}
	if flags.Changed("seed") {
		v, _ := flags.GetUint64("seed")
		overrides.MockSeed = &v
	}

	// Timesheet configuration
	if flags.Changed("sheet") {
		v, _ := flags.GetString("sheet")
		overrides.Sheet = &v
	}

	// Reconcile configuration
	if flags.Changed("flag-uncovered-dates") {
		v, _ := flags.GetBool("flag-uncovered-dates")
		overrides.FlagUncoveredDates = &v
	}

	// Display configuration
	if flags.Changed("format") {
		v, _ := flags.GetString("format")
		overrides.Format = &v
	}

	// Server configuration
	if flags.Lookup("listen") != nil && flags.Changed("listen") {
		v, _ := flags.GetString("listen")
		overrides.Listen = &v
	}

	// Application configuration
	if flags.Changed("app-timeout") {
		v, _ := flags.GetDuration("app-timeout")
		overrides.Timeout = &v
	}
	if flags.Changed("verbose") {
		v, _ := flags.GetBool("verbose")
		overrides.Verbose = &v
	}
	if flags.Changed("log-level") {
		v, _ := flags.GetString("log-level")
		overrides.LogLevel = &v
	}

	return overrides
}
