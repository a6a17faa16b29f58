package errors

import (
	"errors"
	"fmt"
)

// Exit codes used by crateup commands.
const (
	// ExitSuccess indicates the command completed without errors.
	ExitSuccess = 0

	// ExitPartialFailure indicates some upgrades succeeded and some failed.
	ExitPartialFailure = 1

	// ExitCompleteFailure indicates the command failed entirely.
	ExitCompleteFailure = 2

	// ExitConfigError indicates invalid configuration or a failed preflight check.
	ExitConfigError = 3
)

// ExitError is an error that carries an explicit process exit code.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

// Error returns the error message.
func (e *ExitError) Error() string {
	if e.Message != "" && e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit code %d", e.Code)
}

// Unwrap returns the wrapped error.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates an ExitError with the given code and message.
func NewExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// NewExitErrorf creates an ExitError with a formatted message.
func NewExitErrorf(code int, format string, args ...any) *ExitError {
	return &ExitError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// GetExitCode extracts the exit code from an error.
//
// Returns:
//   - ExitSuccess if err is nil
//   - the carried code if err is or wraps an ExitError
//   - ExitConfigError if err is or wraps a ValidationError
//   - ExitCompleteFailure otherwise
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	var partialErr *PartialSuccessError
	if errors.As(err, &partialErr) {
		return ExitPartialFailure
	}
	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return ExitConfigError
	}
	return ExitCompleteFailure
}

// IsExitError reports whether err is or wraps an ExitError.
func IsExitError(err error) bool {
	var exitErr *ExitError
	return errors.As(err, &exitErr)
}

// PartialSuccessError indicates that some upgrades succeeded while others failed.
type PartialSuccessError struct {
	Succeeded int
	Failed    int
	Errors    []error
}

// Error returns a summary of the partial failure.
func (e *PartialSuccessError) Error() string {
	return fmt.Sprintf("%d succeeded, %d failed", e.Succeeded, e.Failed)
}

// NewPartialSuccessError creates a PartialSuccessError from upgrade counts.
func NewPartialSuccessError(succeeded, failed int, errs []error) *PartialSuccessError {
	return &PartialSuccessError{Succeeded: succeeded, Failed: failed, Errors: errs}
}

// IsPartialSuccessError reports whether err is or wraps a PartialSuccessError.
func IsPartialSuccessError(err error) bool {
	var partialErr *PartialSuccessError
	return errors.As(err, &partialErr)
}

// UnsupportedError indicates an operation is not supported for a dependency.
type UnsupportedError struct {
	Operation string
	Reason    string
	Crate     string
}

// Error returns the unsupported operation message.
func (e *UnsupportedError) Error() string {
	if e.Crate != "" {
		return fmt.Sprintf("%s not supported for %s: %s", e.Operation, e.Crate, e.Reason)
	}
	return fmt.Sprintf("%s not supported: %s", e.Operation, e.Reason)
}

// NewUnsupportedError creates an UnsupportedError.
func NewUnsupportedError(operation, crate, reason string) *UnsupportedError {
	return &UnsupportedError{Operation: operation, Crate: crate, Reason: reason}
}

// IsUnsupportedError reports whether err is or wraps an UnsupportedError.
func IsUnsupportedError(err error) bool {
	var unsupportedErr *UnsupportedError
	return errors.As(err, &unsupportedErr)
}
