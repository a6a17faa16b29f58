// Package preflight checks that the executables named by upgrade command
// templates actually resolve before any registry traffic or interactive
// UI is started.
package preflight

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/crateup/crateup/pkg/errors"
	"github.com/crateup/crateup/pkg/verbose"
)

// ValidationError reports a command template whose leading executable
// could not be resolved. Hint carries installation guidance when one is
// known for the command; otherwise a generic PATH hint is rendered.
type ValidationError struct {
	Command string
	Hint    string
}

// Error returns the formatted message with a resolution section.
func (e *ValidationError) Error() string {
	resolution := e.Hint
	if resolution == "" {
		resolution = fmt.Sprintf("Ensure '%s' is installed and available in your PATH.\n             If using a custom command template, install the tool or update your config.", e.Command)
	}
	return fmt.Sprintf("command not found: %s\n  Resolution: %s", e.Command, resolution)
}

// ValidateResult collects the validation errors from one preflight pass.
type ValidateResult struct {
	Errors []ValidationError
}

// HasErrors reports whether any command failed to resolve.
func (r *ValidateResult) HasErrors() bool {
	return len(r.Errors) > 0
}

// ErrorMessage renders all validation errors as a multi-line message with
// one entry per missing command. It returns the empty string when every
// command resolved.
func (r *ValidateResult) ErrorMessage() string {
	if !r.HasErrors() {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("Pre-flight validation failed:\n")
	for i := range r.Errors {
		fmt.Fprintf(&sb, "  - %s\n", r.Errors[i].Error())
	}
	return sb.String()
}

// ValidateCommands extracts the leading executable of every template line
// and pipe segment, then checks each unique name against PATH and the
// user's shell. The returned result is never nil.
func ValidateCommands(templates []string) *ValidateResult {
	var names []string
	seen := make(map[string]bool)
	for _, tpl := range templates {
		for _, name := range extractCommands(tpl) {
			if seen[name] {
				continue
			}
			seen[name] = true
			names = append(names, name)
		}
	}

	result := &ValidateResult{}
	for _, name := range names {
		if verr := validateCommand(name); verr != nil {
			result.Errors = append(result.Errors, *verr)
		}
	}

	verbose.Infof("Preflight: %d unique commands checked, %d errors", len(names), len(result.Errors))
	return result
}

// extractCommands returns the unique command names of a template in
// first-appearance order. Blank lines and comments are skipped, line
// continuations are folded, and every pipe segment contributes its first
// word.
func extractCommands(commands string) []string {
	var out []string
	seen := make(map[string]bool)
	add := func(name string) {
		if !seen[name] {
			seen[name] = true
			out = append(out, name)
		}
	}

	script := strings.ReplaceAll(strings.TrimSpace(commands), "\r\n", "\n")
	for _, line := range strings.Split(script, "\n") {
		line = strings.TrimSuffix(strings.TrimSpace(line), "\\")
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		for _, segment := range strings.Split(line, "|") {
			if fields := strings.Fields(segment); len(fields) > 0 {
				add(fields[0])
			}
		}
	}
	return out
}

// validateCommand resolves one command name. A fast PATH lookup runs
// first; the shell fallback then catches aliases, functions, and
// built-ins that exec.LookPath cannot see.
func validateCommand(name string) *ValidationError {
	if name == "" {
		return nil
	}

	if _, err := exec.LookPath(name); err == nil {
		verbose.Infof("Preflight: command %q found in PATH", name)
		return nil
	}
	if knownToShell(name) {
		verbose.Infof("Preflight: command %q found as shell alias/function", name)
		return nil
	}

	hint, _ := errors.GetHintForCommand(name)
	verbose.Infof("Preflight: command %q not found (hint: %q)", name, hint)
	return &ValidationError{Command: name, Hint: hint}
}
