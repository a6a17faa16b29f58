package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestExitCodes verifies the exit code constants match the documented
// convention.
//
// It verifies:
//   - success is 0
//   - partial failure is 1
//   - complete failure is 2
//   - config error is 3
func TestExitCodes(t *testing.T) {
	assert.Equal(t, 0, ExitSuccess)
	assert.Equal(t, 1, ExitPartialFailure)
	assert.Equal(t, 2, ExitCompleteFailure)
	assert.Equal(t, 3, ExitConfigError)
}

// TestExitError verifies ExitError message formatting.
//
// It verifies:
//   - message and wrapped error combine with a colon
//   - message alone is returned verbatim
//   - wrapped error alone is returned verbatim
//   - neither falls back to the exit code
func TestExitError(t *testing.T) {
	t.Run("with message and wrapped error", func(t *testing.T) {
		err := NewExitError(ExitCompleteFailure, "update failed", errors.New("boom"))
		assert.Equal(t, "update failed: boom", err.Error())
		assert.Equal(t, "boom", err.Unwrap().Error())
	})

	t.Run("with message only", func(t *testing.T) {
		err := NewExitError(ExitConfigError, "bad config", nil)
		assert.Equal(t, "bad config", err.Error())
		assert.Nil(t, err.Unwrap())
	})

	t.Run("with wrapped error only", func(t *testing.T) {
		err := NewExitError(ExitCompleteFailure, "", errors.New("boom"))
		assert.Equal(t, "boom", err.Error())
	})

	t.Run("with neither", func(t *testing.T) {
		err := NewExitError(ExitPartialFailure, "", nil)
		assert.Equal(t, "exit code 1", err.Error())
	})
}

// TestNewExitErrorf verifies formatted construction.
func TestNewExitErrorf(t *testing.T) {
	err := NewExitErrorf(ExitConfigError, "invalid concurrency: %d", -1)
	assert.Equal(t, ExitConfigError, err.Code)
	assert.Equal(t, "invalid concurrency: -1", err.Error())
}

// TestGetExitCode verifies exit code extraction across the error taxonomy.
//
// It verifies:
//   - nil maps to success
//   - ExitError carries its own code through wrapping
//   - PartialSuccessError maps to partial failure
//   - ValidationError maps to config error
//   - unknown errors map to complete failure
func TestGetExitCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{name: "nil error", err: nil, expected: ExitSuccess},
		{name: "exit error", err: NewExitError(ExitConfigError, "bad", nil), expected: ExitConfigError},
		{name: "wrapped exit error", err: fmt.Errorf("outer: %w", NewExitError(ExitPartialFailure, "", nil)), expected: ExitPartialFailure},
		{name: "partial success error", err: NewPartialSuccessError(2, 1, nil), expected: ExitPartialFailure},
		{name: "validation error", err: NewConfigValidationError("timeout", "must be positive"), expected: ExitConfigError},
		{name: "manifest error", err: NewManifestError("Cargo.toml", errors.New("no such file")), expected: ExitCompleteFailure},
		{name: "plain error", err: errors.New("boom"), expected: ExitCompleteFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetExitCode(tt.err))
		})
	}
}

// TestPartialSuccessError verifies the partial failure summary message.
func TestPartialSuccessError(t *testing.T) {
	err := NewPartialSuccessError(3, 2, []error{errors.New("a"), errors.New("b")})
	assert.Equal(t, "3 succeeded, 2 failed", err.Error())
	assert.True(t, IsPartialSuccessError(err))
	assert.True(t, IsPartialSuccessError(fmt.Errorf("wrapped: %w", err)))
	assert.False(t, IsPartialSuccessError(errors.New("other")))
	assert.Len(t, err.Errors, 2)
}

// TestManifestError verifies manifest error formatting and detection.
//
// It verifies:
//   - the path appears in the message when present
//   - the message omits the path when absent
//   - the cause is reachable via Unwrap
func TestManifestError(t *testing.T) {
	t.Run("with path", func(t *testing.T) {
		cause := errors.New("no such file or directory")
		err := NewManifestError("/work/Cargo.toml", cause)
		assert.Equal(t, "failed to read manifest /work/Cargo.toml: no such file or directory", err.Error())
		assert.ErrorIs(t, err, cause)
		assert.True(t, IsManifestError(err))
	})

	t.Run("without path", func(t *testing.T) {
		err := NewManifestError("", errors.New("boom"))
		assert.Equal(t, "failed to read manifest: boom", err.Error())
	})

	t.Run("wrapped", func(t *testing.T) {
		err := fmt.Errorf("startup: %w", NewManifestError("Cargo.toml", errors.New("bad toml")))
		assert.True(t, IsManifestError(err))
	})
}

// TestRegistryError verifies registry error formatting and detection.
//
// It verifies:
//   - HTTP status failures report the status code
//   - transport failures report the underlying error
func TestRegistryError(t *testing.T) {
	t.Run("with status code", func(t *testing.T) {
		err := NewRegistryError("serde", 404, nil)
		assert.Equal(t, "registry lookup for serde failed with status 404", err.Error())
		assert.True(t, IsRegistryError(err))
	})

	t.Run("with transport error", func(t *testing.T) {
		cause := errors.New("connection refused")
		err := NewRegistryError("tokio", 0, cause)
		assert.Equal(t, "registry lookup for tokio failed: connection refused", err.Error())
		assert.ErrorIs(t, err, cause)
	})
}

// TestSubprocessError verifies subprocess error formatting and detection.
//
// It verifies:
//   - the crate and exit code appear in the message
//   - captured output is appended when present
//   - whitespace-only output is omitted
func TestSubprocessError(t *testing.T) {
	t.Run("with output", func(t *testing.T) {
		err := NewSubprocessError("serde", "cargo add serde@1.0.200", 101, "error: failed to select a version\n", errors.New("exit status 101"))
		assert.Equal(t, "command failed for serde with exit code 101: error: failed to select a version", err.Error())
		assert.True(t, IsSubprocessError(err))
	})

	t.Run("without output", func(t *testing.T) {
		err := NewSubprocessError("tokio", "cargo add tokio@1.38.0", 1, "   \n", nil)
		assert.Equal(t, "command failed for tokio with exit code 1", err.Error())
	})
}

// TestUnsupportedError verifies unsupported operation messages.
func TestUnsupportedError(t *testing.T) {
	t.Run("with crate", func(t *testing.T) {
		err := NewUnsupportedError("update", "local-util", "path dependency")
		assert.Equal(t, "update not supported for local-util: path dependency", err.Error())
		assert.True(t, IsUnsupportedError(err))
	})

	t.Run("without crate", func(t *testing.T) {
		err := NewUnsupportedError("update", "", "no manifest")
		assert.Equal(t, "update not supported: no manifest", err.Error())
	})
}

// TestValidationError verifies validation error messages per category.
//
// It verifies:
//   - preflight failures include resolution guidance for known commands
//   - config failures name the invalid field
func TestValidationError(t *testing.T) {
	t.Run("preflight with known command", func(t *testing.T) {
		err := NewPreflightValidationError("cargo")
		require.True(t, IsValidationError(err))
		assert.Contains(t, err.Error(), "command not found: cargo")
		assert.Contains(t, err.Error(), "Install Rust: https://rustup.rs/")
	})

	t.Run("preflight with unknown command", func(t *testing.T) {
		err := NewPreflightValidationError("frobnicate")
		assert.Equal(t, "command not found: frobnicate", err.Error())
	})

	t.Run("config field", func(t *testing.T) {
		err := NewConfigValidationError("concurrency", "must be at least 1")
		assert.Equal(t, "invalid concurrency: must be at least 1", err.Error())
		assert.Equal(t, ExitConfigError, GetExitCode(err))
	})
}

// TestGetHint verifies pattern matching against known failure modes.
//
// It verifies:
//   - network failures match case-insensitively
//   - unknown messages return no hint
//   - nil returns no hint
func TestGetHint(t *testing.T) {
	t.Run("matches connection refused", func(t *testing.T) {
		hint, ok := GetHint(errors.New("Get \"https://crates.io\": Connection Refused"))
		require.True(t, ok)
		assert.Contains(t, hint.Resolution, "--registry")
	})

	t.Run("matches rate limit status", func(t *testing.T) {
		hint, ok := GetHint(NewRegistryError("serde", 429, nil))
		require.True(t, ok)
		assert.Contains(t, hint.Resolution, "--concurrency")
	})

	t.Run("no match", func(t *testing.T) {
		_, ok := GetHint(errors.New("mysterious failure"))
		assert.False(t, ok)
	})

	t.Run("nil error", func(t *testing.T) {
		_, ok := GetHint(nil)
		assert.False(t, ok)
	})
}

// TestGetHintForCommand verifies command installation guidance.
func TestGetHintForCommand(t *testing.T) {
	hint, ok := GetHintForCommand("cargo")
	require.True(t, ok)
	assert.Equal(t, "Install Rust: https://rustup.rs/", hint)

	_, ok = GetHintForCommand("frobnicate")
	assert.False(t, ok)
}

// TestRegisterHint verifies custom hints participate in matching.
func TestRegisterHint(t *testing.T) {
	original := make([]ErrorHint, len(CommonErrorHints))
	copy(original, CommonErrorHints)
	defer func() { CommonErrorHints = original }()

	RegisterHint(ErrorHint{Pattern: "quota exceeded", Hint: "Registry quota hit", Resolution: "Wait an hour"})

	hint, ok := GetHint(errors.New("quota exceeded for token"))
	require.True(t, ok)
	assert.Equal(t, "Registry quota hit", hint.Hint)
}

// TestEnhanceErrorWithHint verifies guidance is appended only on matches.
//
// It verifies:
//   - matching errors gain a hint line and remain unwrappable
//   - non-matching errors pass through unchanged
//   - nil passes through
func TestEnhanceErrorWithHint(t *testing.T) {
	t.Run("match", func(t *testing.T) {
		cause := errors.New("dial tcp: no such host")
		enhanced := EnhanceErrorWithHint(cause)
		assert.Contains(t, enhanced.Error(), "💡")
		assert.ErrorIs(t, enhanced, cause)
	})

	t.Run("no match", func(t *testing.T) {
		cause := errors.New("mysterious failure")
		assert.Equal(t, cause, EnhanceErrorWithHint(cause))
	})

	t.Run("nil", func(t *testing.T) {
		assert.Nil(t, EnhanceErrorWithHint(nil))
	})
}

// TestFormatErrorsWithHints verifies multi-error formatting.
func TestFormatErrorsWithHints(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		assert.Equal(t, "", FormatErrorsWithHints(nil))
	})

	t.Run("mixed", func(t *testing.T) {
		out := FormatErrorsWithHints([]error{
			errors.New("plain failure"),
			NewRegistryError("serde", 404, nil),
		})
		lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
		require.Len(t, lines, 3)
		assert.Equal(t, "❌ plain failure", lines[0])
		assert.Contains(t, lines[1], "serde")
		assert.Contains(t, lines[2], "💡")
	})
}

// TestPrintErrorWithHints verifies writer output includes the hint line.
func TestPrintErrorWithHints(t *testing.T) {
	var sb strings.Builder
	PrintErrorWithHints(&sb, NewRegistryError("serde", 404, nil))
	assert.Contains(t, sb.String(), "❌ registry lookup for serde failed with status 404")
	assert.Contains(t, sb.String(), "💡")

	sb.Reset()
	PrintErrorWithHints(&sb, nil)
	assert.Equal(t, "", sb.String())
}
