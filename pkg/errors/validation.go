package errors

import (
	"errors"
	"fmt"
)

// ValidationCategory identifies what kind of validation failed.
type ValidationCategory string

const (
	// CategoryConfig indicates invalid configuration values.
	CategoryConfig ValidationCategory = "config"

	// CategoryPreflight indicates a failed environment check.
	CategoryPreflight ValidationCategory = "preflight"
)

// ValidationError indicates configuration or preflight validation failed.
// Validation errors always map to ExitConfigError.
type ValidationError struct {
	Category   ValidationCategory
	Field      string
	Message    string
	Resolution string
}

// Error returns the validation error message.
func (e *ValidationError) Error() string {
	switch {
	case e.Category == CategoryPreflight && e.Resolution != "":
		return fmt.Sprintf("command not found: %s\n  Resolution: %s", e.Field, e.Resolution)
	case e.Category == CategoryPreflight:
		return fmt.Sprintf("command not found: %s", e.Field)
	case e.Field != "":
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
	default:
		return e.Message
	}
}

// NewConfigValidationError creates a ValidationError for an invalid
// configuration field.
func NewConfigValidationError(field, message string) *ValidationError {
	return &ValidationError{Category: CategoryConfig, Field: field, Message: message}
}

// NewPreflightValidationError creates a ValidationError for a command
// missing from PATH. Installation guidance is attached when the command
// is known.
func NewPreflightValidationError(command string) *ValidationError {
	resolution, _ := GetHintForCommand(command)
	return &ValidationError{Category: CategoryPreflight, Field: command, Resolution: resolution}
}

// IsValidationError reports whether err is or wraps a ValidationError.
func IsValidationError(err error) bool {
	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}
