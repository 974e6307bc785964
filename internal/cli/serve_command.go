package cli

import (
	"context"
	"os/signal"
	"syscall"

	"timeguard/internal/server"
)

// ServeCommand handles the serve command
type ServeCommand struct {
	app *App
}

// NewServeCommand creates a new serve command handler
func NewServeCommand(app *App) *ServeCommand {
	return &ServeCommand{app: app}
}

// Execute serves the HTTP API until ctx is cancelled or the process is
// interrupted
func (c *ServeCommand) Execute(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := server.New(c.app.config, c.app.service, c.app.logger)
	return srv.Run(ctx, c.app.config.Server.Listen)
}
