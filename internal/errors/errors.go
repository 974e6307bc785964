package errors

import (
	"errors"
	"fmt"
)

// NewValidationError creates a new validation error
func NewValidationError(message string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeValidation,
		Code:    "VALIDATION_FAILED",
		Message: message,
		Cause:   cause,
	}
}

// NewNotFoundError reports a missing input file, database row or sheet
func NewNotFoundError(resource string, identifier string) *AppError {
	return &AppError{
		Type:     ErrorTypeNotFound,
		Code:     "NOT_FOUND",
		Message:  fmt.Sprintf("%s not found: %s", resource, identifier),
		Resource: resource,
	}
}

// NewDatabaseError creates a new database error
func NewDatabaseError(operation string, cause error) *AppError {
	return &AppError{
		Type:      ErrorTypeDatabase,
		Code:      "DATABASE_ERROR",
		Message:   fmt.Sprintf("database operation failed: %s", operation),
		Cause:     cause,
		Operation: operation,
	}
}

// NewInvalidInputError rejects a flag, query parameter or file name.
// value is kept out of the message so that it can be echoed by callers.
func NewInvalidInputError(field string, value interface{}, reason string) *AppError {
	return &AppError{
		Type:    ErrorTypeInvalidInput,
		Code:    "INVALID_INPUT",
		Message: fmt.Sprintf("invalid input for %s: %s", field, reason),
		Field:   field,
	}
}

// NewTimeoutError creates a new timeout error
func NewTimeoutError(operation string, cause error) *AppError {
	return &AppError{
		Type:      ErrorTypeTimeout,
		Code:      "TIMEOUT",
		Message:   fmt.Sprintf("operation timed out: %s", operation),
		Cause:     cause,
		Operation: operation,
	}
}

// NewParseError creates an error for timesheet input that could not be
// parsed. line is the 1-based row number in the source file, 0 when unknown.
func NewParseError(line int, message string, cause error) *AppError {
	msg := message
	if line > 0 {
		msg = fmt.Sprintf("line %d: %s", line, message)
	}
	return &AppError{
		Type:    ErrorTypeParse,
		Code:    "PARSE_FAILED",
		Message: msg,
		Cause:   cause,
		Line:    line,
	}
}

// NewCalendarSourceError creates an error for a calendar source that failed to produce events
func NewCalendarSourceError(source string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeCalendarSource,
		Code:    "CALENDAR_SOURCE_ERROR",
		Message: fmt.Sprintf("calendar source %s failed", source),
		Cause:   cause,
		Source:  source,
	}
}

// IsAppError checks if the error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// AsAppError converts an error to an AppError if possible
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsErrorType checks if the error is of the specified type
func IsErrorType(err error, errorType ErrorType) bool {
	if appErr, ok := AsAppError(err); ok {
		return appErr.IsType(errorType)
	}
	return false
}

// LineOf returns the input line of the parse error in err's chain
func LineOf(err error) (int, bool) {
	appErr, ok := AsAppError(err)
	if !ok || appErr.Type != ErrorTypeParse || appErr.Line == 0 {
		return 0, false
	}
	return appErr.Line, true
}

// userMessager is implemented by causes that carry their own user-facing text
type userMessager interface {
	GetUserFriendlyMessage() string
}

// GetUserMessage returns a user-friendly error message
func GetUserMessage(err error) string {
	appErr, ok := AsAppError(err)
	if !ok {
		return err.Error()
	}

	switch appErr.Type {
	case ErrorTypeValidation, ErrorTypeNotFound, ErrorTypeInvalidInput:
		return appErr.Message
	case ErrorTypeParse, ErrorTypeCalendarSource:
		var um userMessager
		if errors.As(appErr.Cause, &um) {
			return fmt.Sprintf("%s: %s", appErr.Message, um.GetUserFriendlyMessage())
		}
		if appErr.Cause != nil {
			return fmt.Sprintf("%s: %v", appErr.Message, appErr.Cause)
		}
		return appErr.Message
	case ErrorTypeDatabase:
		return "A database error occurred. Please check the input database."
	case ErrorTypeTimeout:
		return "The operation timed out. Try a shorter range or a longer --app-timeout."
	default:
		return "An unexpected error occurred."
	}
}

// GetErrorCode returns the error code for the error
func GetErrorCode(err error) string {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code
	}
	return "UNKNOWN_ERROR"
}

// ShouldLogError reports whether err points at a fault rather than bad input
func ShouldLogError(err error) bool {
	appErr, ok := AsAppError(err)
	if !ok {
		return true
	}
	switch appErr.Type {
	case ErrorTypeValidation, ErrorTypeNotFound, ErrorTypeInvalidInput, ErrorTypeParse:
		return false
	default:
		return true
	}
}
