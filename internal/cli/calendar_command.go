package cli

import (
	"context"
	"fmt"
)

// CalendarCommand handles the calendar command
type CalendarCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewCalendarCommand creates a new calendar command handler
func NewCalendarCommand(app *App) *CalendarCommand {
	return &CalendarCommand{app: app, errorHandler: NewErrorHandler()}
}

// Execute prints the calendar for calendar.days days from start, today
// when start is empty
func (c *CalendarCommand) Execute(ctx context.Context, start string, output string) error {
	from, err := parseStart(start)
	if err != nil {
		return c.errorHandler.Handle("show calendar", err)
	}
	if from == nil {
		d := today()
		from = &d
	}

	renderer, err := c.app.renderer()
	if err != nil {
		return c.errorHandler.Handle("show calendar", err)
	}

	cal, err := c.app.service.Calendar(ctx, *from, c.app.config.Calendar.Days)
	if err != nil {
		return c.errorHandler.Handle("show calendar", err)
	}

	w, closeOutput, err := c.app.openOutput(output, renderer.Format())
	if err != nil {
		return c.errorHandler.Handle("write calendar", err)
	}

	err = renderer.RenderCalendar(w, cal)
	if cerr := closeOutput(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("failed to render calendar: %w", err)
	}
	return nil
}
