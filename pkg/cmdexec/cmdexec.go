// Package cmdexec runs the configured cargo commands through the user's
// shell. Command templates may span multiple lines, chain stages with pipes,
// continue lines with a trailing backslash, and carry {{key}} placeholders
// that are filled in with shell-escaped values before execution.
package cmdexec

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/crateup/crateup/pkg/warnings"
)

// ExecuteFunc is the signature of the plain command runner.
//
// Parameters:
//   - commands: Command script, possibly multiline
//   - env: Extra environment variables for the invocation
//   - dir: Working directory
//   - timeoutSeconds: Limit per stage in seconds (0 disables)
//   - replacements: {{key}} placeholder values
//
// Returns:
//   - []byte: Stdout of the last executed stage
//   - error: First failure, nil when every stage succeeded
type ExecuteFunc func(commands string, env map[string]string, dir string, timeoutSeconds int, replacements map[string]string) ([]byte, error)

// ExecuteWithContextFunc is the signature of the context-aware runner. The
// context cancels between stages and bounds each stage together with the
// timeout.
type ExecuteWithContextFunc func(ctx context.Context, commands string, env map[string]string, dir string, timeoutSeconds int, replacements map[string]string) ([]byte, error)

// Execute runs a command script. Swappable for tests.
var Execute ExecuteFunc = func(commands string, env map[string]string, dir string, timeoutSeconds int, replacements map[string]string) ([]byte, error) {
	return run(context.Background(), commands, env, dir, timeoutSeconds, replacements)
}

// ExecuteWithContext runs a command script under a context. Swappable for
// tests.
var ExecuteWithContext ExecuteWithContextFunc = run

// run renders the script and executes its stages in order. A stage is either
// a single command or a pipeline; stages run sequentially and the first
// failure stops the remainder.
func run(ctx context.Context, commands string, env map[string]string, dir string, timeoutSeconds int, replacements map[string]string) ([]byte, error) {
	if strings.TrimSpace(commands) == "" {
		return nil, fmt.Errorf("no commands provided")
	}

	stages := splitScript(RenderCommand(commands, replacements))

	var lastOutput []byte
	for _, stage := range stages {
		if err := ctx.Err(); err != nil {
			return lastOutput, err
		}
		output, err := runStage(ctx, stage, env, dir, timeoutSeconds)
		if err != nil {
			return output, err
		}
		lastOutput = output
	}
	return lastOutput, nil
}

// RenderCommand substitutes {{key}} placeholders with shell-escaped values.
// Empty values remove the placeholder entirely so optional flags don't leave
// a stray '' argument behind. Dry-run output uses the same rendering, so
// what is printed is exactly what would run.
func RenderCommand(commands string, replacements map[string]string) string {
	rendered := commands
	for key, value := range replacements {
		escaped := ""
		if value != "" {
			escaped = quoteArg(value)
		}
		rendered = strings.ReplaceAll(rendered, "{{"+key+"}}", escaped)
	}
	return rendered
}

// BuildReplacements maps the standard template keys for an upgrade command.
// {{package}} is the registry crate name and {{name}} the manifest key; the
// two differ for renamed dependencies.
func BuildReplacements(crate, version, name string) map[string]string {
	return map[string]string{
		"package": crate,
		"version": version,
		"name":    name,
	}
}

// quoteArg makes a value safe to splice into a shell command line. Values
// made of plain characters pass through untouched for readability; anything
// else is single-quoted, with embedded single quotes spliced as '\''.
func quoteArg(s string) string {
	if s == "" {
		return "''"
	}

	plain := true
	for _, r := range s {
		if !plainArg(r) {
			plain = false
			break
		}
	}
	if plain {
		return s
	}

	var b strings.Builder
	b.WriteByte('\'')
	for _, r := range s {
		if r == '\'' {
			b.WriteString(`'\''`)
			continue
		}
		b.WriteRune(r)
	}
	b.WriteByte('\'')
	return b.String()
}

// plainArg reports whether a rune never needs shell quoting.
func plainArg(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	}
	return strings.ContainsRune("-_./@:+=", r)
}

// splitScript breaks a rendered script into execution stages.
//
// Joining rules:
//   - a trailing backslash joins a line with the next one
//   - a trailing pipe keeps the next line in the same pipeline
//   - inline pipes outside quotes split a line into pipeline segments
//   - every other newline starts a new stage
func splitScript(script string) [][]string {
	var stages [][]string
	var pipeline []string
	var joined strings.Builder

	flush := func() {
		if len(pipeline) > 0 {
			stages = append(stages, pipeline)
			pipeline = nil
		}
	}

	for _, line := range strings.Split(strings.ReplaceAll(script, "\r\n", "\n"), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if rest, ok := strings.CutSuffix(line, "\\"); ok {
			joined.WriteString(rest)
			joined.WriteByte(' ')
			continue
		}

		joined.WriteString(line)
		full := strings.TrimSpace(joined.String())
		joined.Reset()

		if rest, ok := strings.CutSuffix(full, "|"); ok {
			if rest = strings.TrimSpace(rest); rest != "" {
				pipeline = append(pipeline, rest)
			}
			continue
		}

		pipeline = append(pipeline, splitPipeline(full)...)
		flush()
	}
	flush()

	return stages
}

// splitPipeline splits a single line on pipe operators, leaving pipes inside
// single or double quotes alone.
func splitPipeline(line string) []string {
	var segments []string
	var current strings.Builder
	var quote rune

	emit := func() {
		if segment := strings.TrimSpace(current.String()); segment != "" {
			segments = append(segments, segment)
		}
		current.Reset()
	}

	prev := rune(0)
	for _, r := range line {
		switch {
		case (r == '\'' || r == '"') && prev != '\\':
			if quote == 0 {
				quote = r
			} else if quote == r {
				quote = 0
			}
			current.WriteRune(r)
		case r == '|' && quote == 0:
			emit()
		default:
			current.WriteRune(r)
		}
		prev = r
	}
	emit()

	return segments
}

// runStage executes one stage. Pipelines are joined back with " | " and
// handed to the shell as a unit, so shell pipe semantics apply.
func runStage(ctx context.Context, stage []string, env map[string]string, dir string, timeoutSeconds int) ([]byte, error) {
	if len(stage) == 0 {
		return nil, fmt.Errorf("no commands in group")
	}

	if timeoutSeconds > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(timeoutSeconds)*time.Second)
		defer cancel()
	}

	environ := os.Environ()
	for key, value := range env {
		environ = append(environ, key+"="+os.ExpandEnv(value))
	}

	return runShell(ctx, strings.Join(stage, " | "), environ, dir, timeoutSeconds)
}

// runShell invokes one command line through the user's shell, in its own
// process group so children die with it on timeout.
func runShell(ctx context.Context, line string, environ []string, dir string, timeoutSeconds int) ([]byte, error) {
	if strings.TrimSpace(line) == "" {
		return nil, fmt.Errorf("empty command")
	}

	shell, shellArgs := getShell()
	cmd := exec.CommandContext(ctx, shell, append(shellArgs, line)...)
	cmd.Env = environ
	if dir != "" {
		cmd.Dir = dir
	}
	intoProcessGroup(cmd)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err == nil {
		return stdout.Bytes(), nil
	}

	if ctx.Err() == context.DeadlineExceeded && timeoutSeconds > 0 {
		if killErr := killProcessGroup(cmd); killErr != nil {
			warnings.Warnf("Warning: failed to kill process group on timeout: %v\n", killErr)
		}
		warnings.Warnf("command timed out after %d seconds\n", timeoutSeconds)
		return nil, fmt.Errorf("command timed out after %d seconds: %w", timeoutSeconds, err)
	}

	detail := strings.TrimSpace(stderr.String())
	if detail == "" {
		detail = strings.TrimSpace(stdout.String())
	}
	if detail != "" {
		return nil, fmt.Errorf("%w: %s", err, detail)
	}
	return nil, err
}

// getShell picks the shell for command execution: $SHELL when set, otherwise
// the platform default. Using the user's shell keeps their aliases and PATH
// setup in effect.
func getShell() (shell string, args []string) {
	if sh := os.Getenv("SHELL"); sh != "" {
		return sh, []string{"-l", "-c"}
	}
	return defaultShell()
}
