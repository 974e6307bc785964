package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"timeguard/internal/api"
	"timeguard/internal/config"
	"timeguard/internal/domain"
	"timeguard/internal/errors"
	"timeguard/internal/logging"
	"timeguard/internal/report"
)

// timeNow is a variable that can be replaced in tests
var timeNow = time.Now

// App holds what command handlers share
type App struct {
	service api.Service
	config  *config.Config
	logger  *slog.Logger
	out     io.Writer
}

// NewApp creates a new CLI application instance with dependency injection
func NewApp(service api.Service, cfg *config.Config, logger *slog.Logger, out io.Writer) *App {
	if out == nil {
		out = os.Stdout
	}
	return &App{
		service: service,
		config:  cfg,
		logger:  logging.OrDiscard(logger),
		out:     out,
	}
}

// renderer returns a renderer for the configured display format
func (a *App) renderer() (*report.Renderer, error) {
	format, err := report.ParseFormat(a.config.Display.Format)
	if err != nil {
		return nil, err
	}
	return report.NewRenderer(format), nil
}

// openOutput returns the destination for a rendered document. An empty
// path means the app's output stream; XLSX output must go to a file.
func (a *App) openOutput(path string, format report.Format) (io.Writer, func() error, error) {
	if path == "" {
		if format == report.FormatXLSX {
			return nil, nil, errors.NewInvalidInputError("output", path, "xlsx output requires --output")
		}
		return a.out, func() error { return nil }, nil
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, f.Close, nil
}

// parseStart parses a --start value; empty means unset
func parseStart(value string) (*domain.Date, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	d, err := domain.ParseDate(value)
	if err != nil {
		return nil, errors.NewInvalidInputError("start", value, "expected YYYY-MM-DD")
	}
	return &d, nil
}

// today returns the current local date
func today() domain.Date {
	return domain.DateOf(timeNow())
}
