package cli

import (
	stderrors "errors"
	"fmt"

	"timeguard/internal/config"
	"timeguard/internal/errors"
	"timeguard/internal/validation"
)

// ErrorHandler turns structured errors into the single line printed by the CLI
type ErrorHandler struct{}

// NewErrorHandler creates a new error handler
func NewErrorHandler() *ErrorHandler {
	return &ErrorHandler{}
}

// Handle prefixes the user message of err with the failed operation
func (eh *ErrorHandler) Handle(operation string, err error) error {
	if msg, ok := eh.userMessage(err); ok {
		return fmt.Errorf("failed to %s: %s", operation, msg)
	}
	return fmt.Errorf("failed to %s: %w", operation, err)
}

// HandleSimple returns the user message of err. Unstructured errors are
// returned unchanged so callers can still match sentinels.
func (eh *ErrorHandler) HandleSimple(err error) error {
	if msg, ok := eh.userMessage(err); ok {
		return fmt.Errorf("%s", msg)
	}
	return err
}

func (eh *ErrorHandler) userMessage(err error) (string, bool) {
	if _, ok := errors.AsAppError(err); ok {
		return errors.GetUserMessage(err), true
	}

	var validationErr *validation.ValidationError
	if stderrors.As(err, &validationErr) {
		return validationErr.GetUserFriendlyMessage(), true
	}

	var configErr *config.ConfigError
	if stderrors.As(err, &configErr) {
		return fmt.Sprintf("invalid configuration: %s", configErr.Error()), true
	}

	return "", false
}

// ExitCode maps the error returned by a command onto the process exit
// status: 0 on success, 2 when the report found discrepancies, 1 otherwise.
func (eh *ErrorHandler) ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case stderrors.Is(err, ErrDiscrepancies):
		return 2
	default:
		return 1
	}
}
