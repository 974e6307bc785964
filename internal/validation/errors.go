package validation

import (
	"errors"
	"fmt"
	"strings"
)

// ProblemKind classifies a rejected field
type ProblemKind string

const (
	KindRequired   ProblemKind = "required"
	KindFormat     ProblemKind = "invalid_format"
	KindTooLong    ProblemKind = "invalid_length"
	KindOutOfRange ProblemKind = "invalid_range"
)

// Problem is one rejected field of a row or request
type Problem struct {
	Field   string
	Kind    ProblemKind
	Message string
	Value   interface{}
}

func (p Problem) String() string {
	return fmt.Sprintf("validation error for field '%s': %s", p.Field, p.Message)
}

// ValidationError collects every problem found in one row or request.
// Values are reported as given and never coerced.
type ValidationError struct {
	Problems []Problem
}

// NewValidationError returns an empty collection
func NewValidationError() *ValidationError {
	return &ValidationError{}
}

func (ve *ValidationError) Error() string {
	switch len(ve.Problems) {
	case 0:
		return "validation error"
	case 1:
		return ve.Problems[0].String()
	}
	parts := make([]string, len(ve.Problems))
	for i, p := range ve.Problems {
		parts[i] = p.String()
	}
	return "multiple validation errors: " + strings.Join(parts, "; ")
}

// Empty reports whether no problem was recorded
func (ve *ValidationError) Empty() bool {
	return len(ve.Problems) == 0
}

// Err returns ve, or nil when it is empty
func (ve *ValidationError) Err() error {
	if ve.Empty() {
		return nil
	}
	return ve
}

// Fields lists the rejected fields in the order they were found
func (ve *ValidationError) Fields() []string {
	fields := make([]string, 0, len(ve.Problems))
	for _, p := range ve.Problems {
		fields = append(fields, p.Field)
	}
	return fields
}

func (ve *ValidationError) add(field string, kind ProblemKind, value interface{}, format string, args ...interface{}) {
	ve.Problems = append(ve.Problems, Problem{
		Field:   field,
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
		Value:   value,
	})
}

// Required records a blank field
func (ve *ValidationError) Required(field string) {
	ve.add(field, KindRequired, nil, "%s is required", field)
}

// Format records a value that does not match layout
func (ve *ValidationError) Format(field string, value string, layout string) {
	ve.add(field, KindFormat, value, "%s %q has invalid format, expected: %s", field, value, layout)
}

// TooLong records a value longer than max characters
func (ve *ValidationError) TooLong(field string, value string, max int) {
	ve.add(field, KindTooLong, value, "%s must be at most %d characters long", field, max)
}

// OutOfRange records a value outside its permitted range
func (ve *ValidationError) OutOfRange(field string, value interface{}, reason string) {
	ve.add(field, KindOutOfRange, value, "%s", reason)
}

// GetUserFriendlyMessage joins the problem messages for display
func (ve *ValidationError) GetUserFriendlyMessage() string {
	if ve.Empty() {
		return "Input validation failed"
	}
	messages := make([]string, len(ve.Problems))
	for i, p := range ve.Problems {
		messages[i] = p.Message
	}
	return strings.Join(messages, "; ")
}

// IsValidationError checks if err is or wraps a ValidationError
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
