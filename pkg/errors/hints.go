package errors

import (
	"fmt"
	"strings"
)

// ErrorHint pairs an error pattern with actionable guidance.
type ErrorHint struct {
	Pattern    string
	Hint       string
	Resolution string
}

// CommandResolutionHints maps command names to installation guidance
// shown when the command is not found on PATH.
var CommandResolutionHints = map[string]string{
	"cargo":  "Install Rust: https://rustup.rs/",
	"rustup": "Install Rust: https://rustup.rs/",
	"git":    "Install git: https://git-scm.com/downloads",
}

// CommonErrorHints lists known failure patterns and their guidance.
// Patterns are matched case-insensitively against error messages.
var CommonErrorHints = []ErrorHint{
	{
		Pattern:    "executable file not found",
		Hint:       "A required command is not installed or not on PATH",
		Resolution: "Install the missing tool and ensure it is on your PATH",
	},
	{
		Pattern:    "connection refused",
		Hint:       "The registry is unreachable",
		Resolution: "Check your network connection or the --registry URL",
	},
	{
		Pattern:    "no such host",
		Hint:       "The registry host could not be resolved",
		Resolution: "Check your network connection or the --registry URL",
	},
	{
		Pattern:    "context deadline exceeded",
		Hint:       "A request or command timed out",
		Resolution: "Increase the timeout with --timeout or check your network",
	},
	{
		Pattern:    "status 404",
		Hint:       "The crate does not exist on the registry",
		Resolution: "Check the crate name in Cargo.toml, or whether it uses an alternative registry",
	},
	{
		Pattern:    "status 429",
		Hint:       "The registry is rate limiting requests",
		Resolution: "Lower --concurrency or wait before retrying",
	},
	{
		Pattern:    "toml",
		Hint:       "The manifest contains invalid TOML",
		Resolution: "Run cargo check to pinpoint the syntax error",
	},
	{
		Pattern:    "failed to select a version",
		Hint:       "cargo could not satisfy the requested version",
		Resolution: "Check for conflicting requirements in the dependency tree",
	},
}

// GetHint returns guidance for an error if a known pattern matches.
//
// Returns:
//   - the matching hint and true
//   - zero ErrorHint and false when no pattern matches
func GetHint(err error) (ErrorHint, bool) {
	if err == nil {
		return ErrorHint{}, false
	}
	msg := strings.ToLower(err.Error())
	for _, hint := range CommonErrorHints {
		if strings.Contains(msg, strings.ToLower(hint.Pattern)) {
			return hint, true
		}
	}
	return ErrorHint{}, false
}

// GetHintForCommand returns installation guidance for a missing command.
//
// Returns:
//   - the resolution text and true for known commands
//   - empty string and false otherwise
func GetHintForCommand(command string) (string, bool) {
	hint, ok := CommandResolutionHints[command]
	return hint, ok
}

// RegisterHint adds a custom error hint to the known patterns.
func RegisterHint(hint ErrorHint) {
	CommonErrorHints = append(CommonErrorHints, hint)
}

// RegisterCommandHint adds installation guidance for a command.
func RegisterCommandHint(command, resolution string) {
	CommandResolutionHints[command] = resolution
}

// EnhanceErrorWithHint appends guidance to an error message when a
// known pattern matches. The original error is preserved unchanged
// when nothing matches.
func EnhanceErrorWithHint(err error) error {
	if err == nil {
		return nil
	}
	hint, ok := GetHint(err)
	if !ok {
		return err
	}
	return fmt.Errorf("%w\n  💡 %s: %s", err, hint.Hint, hint.Resolution)
}
