// Package warnings routes warning output to a swappable writer so tests
// can capture it.
package warnings

import (
	"fmt"
	"io"
	"os"
	"sync"
)

var out = struct {
	sync.RWMutex
	w io.Writer
}{w: os.Stderr}

// Warnf writes a formatted warning to the configured writer.
//
// Parameters:
//   - format: Printf-style format string
//   - args: Values for the format string
func Warnf(format string, args ...any) {
	out.RLock()
	w := out.w
	out.RUnlock()
	_, _ = fmt.Fprintf(w, format, args...)
}

// WarningWriter returns the writer warnings currently go to.
//
// Returns:
//   - io.Writer: The current destination
func WarningWriter() io.Writer {
	out.RLock()
	defer out.RUnlock()
	return out.w
}

// SetWarningWriter redirects warnings and hands back a restore function.
// A nil writer resets to os.Stderr.
//
// Parameters:
//   - w: The new destination
//
// Returns:
//   - func(): Restores the previous destination when called
func SetWarningWriter(w io.Writer) func() {
	out.Lock()
	defer out.Unlock()

	previous := out.w
	if w == nil {
		w = os.Stderr
	}
	out.w = w

	return func() {
		out.Lock()
		defer out.Unlock()
		out.w = previous
	}
}
