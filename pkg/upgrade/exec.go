// Package upgrade applies the confirmed selection by invoking the package
// manager's add command once per dependency. Invocations run sequentially;
// a failing upgrade never stops the remaining ones.
package upgrade

import (
	"context"
	stderrors "errors"
	"fmt"
	"os/exec"
	"path/filepath"

	"github.com/crateup/crateup/pkg/cmdexec"
	"github.com/crateup/crateup/pkg/constants"
	"github.com/crateup/crateup/pkg/errors"
	"github.com/crateup/crateup/pkg/manifest"
	"github.com/crateup/crateup/pkg/outdated"
	"github.com/crateup/crateup/pkg/verbose"
)

// renameFlag is appended to the command template when the declared name
// differs from the crate name, so the manifest keeps its key.
const renameFlag = " --rename {{name}}"

// Commands holds the add-command templates per dependency kind. Templates go
// through cmdexec replacement: {{package}} is the crate name, {{version}} the
// target version, and {{name}} the declared name.
type Commands struct {
	Normal    string `yaml:"normal"`
	Dev       string `yaml:"dev"`
	Build     string `yaml:"build"`
	Workspace string `yaml:"workspace"`
}

// DefaultCommands returns the cargo add templates for each dependency kind.
func DefaultCommands() Commands {
	return Commands{
		Normal:    "cargo add {{package}}@{{version}}",
		Dev:       "cargo add --dev {{package}}@{{version}}",
		Build:     "cargo add --build {{package}}@{{version}}",
		Workspace: "cargo add {{package}}@{{version}}",
	}
}

// ForKind returns the template for a dependency kind, falling back to the
// normal template.
func (c Commands) ForKind(kind manifest.Kind) string {
	switch kind {
	case manifest.KindDev:
		return c.Dev
	case manifest.KindBuild:
		return c.Build
	case manifest.KindWorkspace:
		return c.Workspace
	default:
		return c.Normal
	}
}

// Merge overlays non-empty templates from other on top of c.
func (c Commands) Merge(other Commands) Commands {
	if other.Normal != "" {
		c.Normal = other.Normal
	}
	if other.Dev != "" {
		c.Dev = other.Dev
	}
	if other.Build != "" {
		c.Build = other.Build
	}
	if other.Workspace != "" {
		c.Workspace = other.Workspace
	}
	return c
}

// Result records the outcome of one upgrade attempt.
//
// Fields:
//   - Entry: The checklist entry the attempt was made for
//   - Target: The version the dependency was upgraded towards
//   - Command: The rendered command line (escaped, as executed)
//   - Status: Updated, Failed, Skipped, or Planned for dry runs
//   - Reason: Guidance for Skipped results
//   - Err: The SubprocessError for Failed results
type Result struct {
	Entry   outdated.Entry
	Target  string
	Command string
	Status  string
	Reason  string
	Err     error
}

// Executor runs the configured add command for each selected dependency.
type Executor struct {
	// Commands are the per-kind command templates.
	Commands Commands

	// Dir is the working directory for invocations, normally the manifest
	// directory.
	Dir string

	// Env holds extra environment variables for the invocations.
	Env map[string]string

	// TimeoutSeconds bounds each invocation; zero disables the limit.
	TimeoutSeconds int

	// DryRun renders commands without executing them.
	DryRun bool
}

// Run applies the selection in order and returns one result per entry.
func (e *Executor) Run(ctx context.Context, picked []outdated.Entry) []Result {
	results := make([]Result, 0, len(picked))
	for _, entry := range picked {
		results = append(results, e.apply(ctx, entry))
	}
	return results
}

// apply upgrades a single dependency.
//
// It performs the following operations:
//   - Skips path dependencies, which the add command would rewrite
//   - Renders the kind's command template with the crate and target version
//   - Appends the rename flag for renamed dependencies
//   - Executes through the user shell with the configured timeout
//   - Captures the outcome, folding failures into a SubprocessError
func (e *Executor) apply(ctx context.Context, entry outdated.Entry) Result {
	dep := entry.Dependency
	result := Result{Entry: entry, Target: entry.Latest()}

	if dep.IsLocal() {
		result.Status = constants.StatusSkipped
		result.Reason = fmt.Sprintf("path dependency; bump the version in %s instead",
			filepath.Join(dep.Path, "Cargo.toml"))
		return result
	}

	template := e.Commands.ForKind(dep.Kind)
	if dep.IsRenamed() {
		template += renameFlag
	}
	replacements := cmdexec.BuildReplacements(dep.Crate, result.Target, dep.Name)
	result.Command = cmdexec.RenderCommand(template, replacements)

	if e.DryRun {
		result.Status = constants.StatusPlanned
		return result
	}

	verbose.CommandExec(result.Command, e.Dir)
	output, err := cmdexec.ExecuteWithContext(ctx, template, e.Env, e.Dir, e.TimeoutSeconds, replacements)
	if err != nil {
		code := exitCodeOf(err)
		verbose.CommandResult(result.Command, code, string(output))
		result.Status = constants.StatusFailed
		result.Err = errors.NewSubprocessError(dep.Crate, result.Command, code, string(output), err)
		return result
	}

	verbose.CommandResult(result.Command, 0, string(output))
	result.Status = constants.StatusUpdated
	return result
}

// exitCodeOf extracts the subprocess exit code, or -1 when the process never
// exited normally (killed on timeout, not started).
func exitCodeOf(err error) int {
	var exitErr *exec.ExitError
	if stderrors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}

// Counts aggregates results by status.
type Counts struct {
	Updated int
	Failed  int
	Skipped int
	Planned int
}

// Tally counts the results per status.
func Tally(results []Result) Counts {
	var c Counts
	for _, r := range results {
		switch r.Status {
		case constants.StatusUpdated:
			c.Updated++
		case constants.StatusFailed:
			c.Failed++
		case constants.StatusSkipped:
			c.Skipped++
		case constants.StatusPlanned:
			c.Planned++
		}
	}
	return c
}

// Errors returns the errors of the failed results.
func Errors(results []Result) []error {
	var errs []error
	for _, r := range results {
		if r.Err != nil {
			errs = append(errs, r.Err)
		}
	}
	return errs
}
