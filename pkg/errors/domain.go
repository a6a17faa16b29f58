package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ManifestError indicates that Cargo.toml or Cargo.lock could not be
// read or parsed. Manifest errors are fatal: without a readable manifest
// there is nothing to update.
type ManifestError struct {
	Path string
	Err  error
}

// Error returns the manifest error message.
func (e *ManifestError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("failed to read manifest %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("failed to read manifest: %v", e.Err)
}

// Unwrap returns the wrapped error.
func (e *ManifestError) Unwrap() error {
	return e.Err
}

// NewManifestError creates a ManifestError for the given path.
func NewManifestError(path string, err error) *ManifestError {
	return &ManifestError{Path: path, Err: err}
}

// IsManifestError reports whether err is or wraps a ManifestError.
func IsManifestError(err error) bool {
	var manifestErr *ManifestError
	return errors.As(err, &manifestErr)
}

// RegistryError indicates a crates.io lookup failed for a single crate.
// Registry errors are not fatal: the affected crate is reported with an
// unknown latest version and the remaining crates proceed.
type RegistryError struct {
	Crate      string
	StatusCode int
	Err        error
}

// Error returns the registry error message.
func (e *RegistryError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("registry lookup for %s failed with status %d", e.Crate, e.StatusCode)
	}
	return fmt.Sprintf("registry lookup for %s failed: %v", e.Crate, e.Err)
}

// Unwrap returns the wrapped error.
func (e *RegistryError) Unwrap() error {
	return e.Err
}

// NewRegistryError creates a RegistryError for the given crate.
func NewRegistryError(crate string, statusCode int, err error) *RegistryError {
	return &RegistryError{Crate: crate, StatusCode: statusCode, Err: err}
}

// IsRegistryError reports whether err is or wraps a RegistryError.
func IsRegistryError(err error) bool {
	var registryErr *RegistryError
	return errors.As(err, &registryErr)
}

// SubprocessError indicates a cargo add invocation failed for a single
// crate. The captured output is included so the failure reason reaches
// the summary report.
type SubprocessError struct {
	Crate    string
	Command  string
	ExitCode int
	Output   string
	Err      error
}

// Error returns the subprocess error message with trailing output trimmed.
func (e *SubprocessError) Error() string {
	msg := fmt.Sprintf("command failed for %s with exit code %d", e.Crate, e.ExitCode)
	if out := strings.TrimSpace(e.Output); out != "" {
		msg = fmt.Sprintf("%s: %s", msg, out)
	}
	return msg
}

// Unwrap returns the wrapped error.
func (e *SubprocessError) Unwrap() error {
	return e.Err
}

// NewSubprocessError creates a SubprocessError for the given crate and command.
func NewSubprocessError(crate, command string, exitCode int, output string, err error) *SubprocessError {
	return &SubprocessError{Crate: crate, Command: command, ExitCode: exitCode, Output: output, Err: err}
}

// IsSubprocessError reports whether err is or wraps a SubprocessError.
func IsSubprocessError(err error) bool {
	var subprocessErr *SubprocessError
	return errors.As(err, &subprocessErr)
}
