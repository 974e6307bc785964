package cli

import (
	"context"
	stderrors "errors"
	"fmt"

	"timeguard/internal/api"
	"timeguard/internal/errors"
	"timeguard/internal/report"
)

// ErrDiscrepancies is returned by validate --fail-on-discrepancy when the
// report is not clean.
var ErrDiscrepancies = stderrors.New("discrepancies found")

// ValidateOptions holds the validate command flags
type ValidateOptions struct {
	Start             string
	Output            string
	ShowTimesheet     bool
	Daily             bool
	FailOnDiscrepancy bool
}

// ValidateCommand handles the validate command
type ValidateCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewValidateCommand creates a new validate command handler
func NewValidateCommand(app *App) *ValidateCommand {
	return &ValidateCommand{app: app, errorHandler: NewErrorHandler()}
}

// Execute validates the timesheet at path against the configured calendar
func (c *ValidateCommand) Execute(ctx context.Context, path string, opts ValidateOptions) error {
	start, err := parseStart(opts.Start)
	if err != nil {
		return c.errorHandler.Handle("validate timesheet", err)
	}

	renderer, err := c.app.renderer()
	if err != nil {
		return c.errorHandler.Handle("validate timesheet", err)
	}
	if opts.ShowTimesheet && renderer.Format() != report.FormatTable {
		return c.errorHandler.Handle("validate timesheet",
			errors.NewInvalidInputError("show-timesheet", true, "only supported with table format"))
	}

	ts, err := c.app.service.LoadTimesheet(ctx, path)
	if err != nil {
		return c.errorHandler.Handle("load timesheet", err)
	}

	result, err := c.app.service.Validate(ctx, ts, api.ValidateOptions{Start: start})
	if err != nil {
		return c.errorHandler.Handle("validate timesheet", err)
	}

	w, closeOutput, err := c.app.openOutput(opts.Output, renderer.Format())
	if err != nil {
		return c.errorHandler.Handle("write report", err)
	}

	if opts.ShowTimesheet {
		if err := renderer.RenderTimesheet(w, result.Timesheet); err != nil {
			closeOutput()
			return fmt.Errorf("failed to render timesheet: %w", err)
		}
		fmt.Fprintln(w)
	}

	view := report.Validation{
		Start:   result.Start,
		Days:    result.Days,
		Report:  result.Report,
		Summary: result.Summary,
	}
	if opts.Daily {
		view.Daily = result.Daily
	}

	err = renderer.RenderValidation(w, view)
	if cerr := closeOutput(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}

	if opts.FailOnDiscrepancy && !result.Report.IsClean() {
		return fmt.Errorf("%w: %d missing, %d extra", ErrDiscrepancies,
			len(result.Report.MissingEntries), len(result.Report.ExtraEntries))
	}
	return nil
}
