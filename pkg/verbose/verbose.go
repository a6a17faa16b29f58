// Package verbose provides gated debug logging for crateup. Output is off
// unless --verbose enables it, goes to a swappable writer (stderr by
// default), and every line carries the [DEBUG] prefix. A framework logger
// would fight the interactive checklist for the terminal; a gated plain
// writer does not.
package verbose

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

// state guards the toggle and destination together; helpers snapshot both
// under one lock.
var state = struct {
	sync.RWMutex
	on   bool
	dest io.Writer
}{dest: os.Stderr}

// Enable turns debug output on.
func Enable() {
	state.Lock()
	defer state.Unlock()
	state.on = true
}

// Disable turns debug output off.
func Disable() {
	state.Lock()
	defer state.Unlock()
	state.on = false
}

// IsEnabled reports whether debug output is on.
//
// Returns:
//   - bool: true when enabled
func IsEnabled() bool {
	state.RLock()
	defer state.RUnlock()
	return state.on
}

// SetWriter redirects debug output, mainly for capturing it in tests. A nil
// writer is ignored.
//
// Parameters:
//   - w: Destination for subsequent debug lines
func SetWriter(w io.Writer) {
	state.Lock()
	defer state.Unlock()
	if w != nil {
		state.dest = w
	}
}

// sink returns the writer when output is enabled, nil otherwise.
func sink() io.Writer {
	state.RLock()
	defer state.RUnlock()
	if !state.on {
		return nil
	}
	return state.dest
}

// Printf writes a formatted debug line when enabled.
//
// Parameters:
//   - format: Printf-style format string
//   - args: Values for the format string
func Printf(format string, args ...any) {
	if w := sink(); w != nil {
		_, _ = fmt.Fprintf(w, "[DEBUG] "+format+"\n", args...)
	}
}

// Info writes a debug line when enabled.
//
// Parameters:
//   - msg: The line to write
func Info(msg string) {
	if w := sink(); w != nil {
		_, _ = fmt.Fprintf(w, "[DEBUG] %s\n", msg)
	}
}

// Infof writes a formatted debug line when enabled.
//
// Parameters:
//   - format: Printf-style format string
//   - args: Values for the format string
func Infof(format string, args ...any) {
	if w := sink(); w != nil {
		_, _ = fmt.Fprintf(w, "[DEBUG] "+format+"\n", args...)
	}
}

// CommandExec traces a subprocess about to run: the command line and its
// working directory.
//
// Parameters:
//   - cmd: The rendered command line
//   - workDir: Directory the command runs in
func CommandExec(cmd, workDir string) {
	w := sink()
	if w == nil {
		return
	}
	_, _ = fmt.Fprintf(w, "[DEBUG] Executing: %s\n", cmd)
	_, _ = fmt.Fprintf(w, "        Working dir: %s\n", workDir)
}

// CommandResult traces a finished subprocess. Commands are truncated to 60
// characters; output longer than 5 lines is cut to 3 plus a count.
//
// Parameters:
//   - cmd: The rendered command line
//   - exitCode: The subprocess exit code (0 on success)
//   - output: Captured stdout/stderr
func CommandResult(cmd string, exitCode int, output string) {
	w := sink()
	if w == nil {
		return
	}

	if exitCode == 0 {
		_, _ = fmt.Fprintf(w, "[DEBUG] Command succeeded: %s\n", truncate(cmd, 60))
	} else {
		_, _ = fmt.Fprintf(w, "[DEBUG] Command failed (exit %d): %s\n", exitCode, truncate(cmd, 60))
	}

	if output == "" {
		return
	}
	lines := strings.Split(strings.TrimSpace(output), "\n")
	shown := lines
	if len(lines) > 5 {
		shown = lines[:3]
	}
	for _, line := range shown {
		_, _ = fmt.Fprintf(w, "        | %s\n", truncate(line, 100))
	}
	if len(lines) > 5 {
		_, _ = fmt.Fprintf(w, "        | ... (%d more lines)\n", len(lines)-3)
	}
}

// ConfigLoaded traces which config file was read.
//
// Parameters:
//   - path: The loaded config file path
func ConfigLoaded(path string) {
	if w := sink(); w != nil {
		_, _ = fmt.Fprintf(w, "[DEBUG] Config loaded: %s\n", path)
	}
}

// CrateSkipped traces a dependency dropped from the update flow.
//
// Parameters:
//   - name: The dependency name
//   - reason: Why it was skipped
func CrateSkipped(name, reason string) {
	if w := sink(); w != nil {
		_, _ = fmt.Fprintf(w, "[DEBUG] Crate '%s' skipped: %s\n", name, reason)
	}
}

// VersionResolved traces where a dependency's installed version came from.
//
// Parameters:
//   - crate: The crate name
//   - version: The resolved version
//   - source: "Cargo.lock" or "manifest requirement"
func VersionResolved(crate, version, source string) {
	if w := sink(); w != nil {
		_, _ = fmt.Fprintf(w, "[DEBUG] Installed version for '%s': %s (from %s)\n", crate, version, source)
	}
}

// truncate caps s at maxLen, ending in "..." when cut. maxLen must be at
// least 3.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
