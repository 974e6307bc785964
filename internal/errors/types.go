package errors

import (
	"fmt"
)

// ErrorType represents the category of error
type ErrorType string

const (
	ErrorTypeValidation     ErrorType = "validation"
	ErrorTypeNotFound       ErrorType = "not_found"
	ErrorTypeDatabase       ErrorType = "database"
	ErrorTypeInvalidInput   ErrorType = "invalid_input"
	ErrorTypeTimeout        ErrorType = "timeout"
	ErrorTypeParse          ErrorType = "parse"
	ErrorTypeCalendarSource ErrorType = "calendar_source"
)

// String returns the string representation of the error type
func (et ErrorType) String() string {
	if et == "" {
		return "unknown"
	}
	return string(et)
}

// AppError represents a structured application error. Only the location
// fields that apply to its type are set.
type AppError struct {
	Type    ErrorType
	Code    string
	Message string
	Cause   error

	// Line is the 1-based input line of a parse error, 0 when unknown
	Line int
	// Field names the rejected input of an invalid input error
	Field string
	// Resource names what a not found error looked for
	Resource string
	// Source names the calendar source that failed
	Source string
	// Operation names the database operation that failed or timed out
	Operation string
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error for error unwrapping
func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an AppError with the same type and code
func (e *AppError) Is(target error) bool {
	if appErr, ok := target.(*AppError); ok {
		return e.Type == appErr.Type && e.Code == appErr.Code
	}
	return false
}

// IsType checks if this error is of the specified type
func (e *AppError) IsType(errorType ErrorType) bool {
	return e.Type == errorType
}
