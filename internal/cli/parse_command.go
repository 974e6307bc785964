package cli

import (
	"context"
	"fmt"
)

// ParseCommand handles the parse command
type ParseCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewParseCommand creates a new parse command handler
func NewParseCommand(app *App) *ParseCommand {
	return &ParseCommand{app: app, errorHandler: NewErrorHandler()}
}

// Execute parses the timesheet at path and prints its entries
func (c *ParseCommand) Execute(ctx context.Context, path string, output string) error {
	renderer, err := c.app.renderer()
	if err != nil {
		return c.errorHandler.Handle("parse timesheet", err)
	}

	ts, err := c.app.service.LoadTimesheet(ctx, path)
	if err != nil {
		return c.errorHandler.Handle("parse timesheet", err)
	}

	w, closeOutput, err := c.app.openOutput(output, renderer.Format())
	if err != nil {
		return c.errorHandler.Handle("write timesheet", err)
	}

	err = renderer.RenderTimesheet(w, ts)
	if cerr := closeOutput(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("failed to render timesheet: %w", err)
	}
	return nil
}
