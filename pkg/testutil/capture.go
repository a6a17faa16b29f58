// Package testutil provides shared test utilities for crateup packages.
package testutil

import (
	"bytes"
	"io"
	"os"
	"testing"
)

// capturePipe swaps *stream for a pipe while fn runs and returns everything
// written to it. The original stream is restored before returning.
func capturePipe(t *testing.T, stream **os.File, fn func()) string {
	t.Helper()

	original := *stream
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("create capture pipe: %v", err)
	}
	*stream = w

	fn()

	_ = w.Close()
	*stream = original

	var buf bytes.Buffer
	_, _ = io.Copy(&buf, r)
	_ = r.Close()

	return buf.String()
}

// CaptureStdout returns everything fn writes to stdout.
//
// Parameters:
//   - t: Testing instance for helper marking
//   - fn: Function to execute while capturing stdout
//
// Returns:
//   - string: All content written to stdout during fn execution
func CaptureStdout(t *testing.T, fn func()) string {
	t.Helper()
	return capturePipe(t, &os.Stdout, fn)
}

// CaptureStderr returns everything fn writes to stderr.
//
// Parameters:
//   - t: Testing instance for helper marking
//   - fn: Function to execute while capturing stderr
//
// Returns:
//   - string: All content written to stderr during fn execution
func CaptureStderr(t *testing.T, fn func()) string {
	t.Helper()
	return capturePipe(t, &os.Stderr, fn)
}

// CaptureOutput captures stdout and stderr at once, for functions that write
// to both streams.
//
// Parameters:
//   - t: Testing instance for helper marking
//   - fn: Function to execute while capturing both streams
//
// Returns:
//   - stdout: All content written to stdout during fn execution
//   - stderr: All content written to stderr during fn execution
func CaptureOutput(t *testing.T, fn func()) (stdout, stderr string) {
	t.Helper()
	stdout = capturePipe(t, &os.Stdout, func() {
		stderr = capturePipe(t, &os.Stderr, fn)
	})
	return stdout, stderr
}
