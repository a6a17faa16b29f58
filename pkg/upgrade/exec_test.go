package upgrade

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crateup/crateup/pkg/cmdexec"
	"github.com/crateup/crateup/pkg/constants"
	"github.com/crateup/crateup/pkg/errors"
	"github.com/crateup/crateup/pkg/manifest"
	"github.com/crateup/crateup/pkg/outdated"
	"github.com/crateup/crateup/pkg/registry"
)

// entryFor builds an outdated checklist entry for executor tests.
func entryFor(name, crate, installed, latest string, kind manifest.Kind) outdated.Entry {
	return outdated.Entry{
		Dependency: manifest.Dependency{
			Name:        name,
			Crate:       crate,
			Requirement: installed,
			Installed:   installed,
			Kind:        kind,
		},
		Metadata: &registry.CrateMetadata{LatestVersion: latest},
		Status:   constants.StatusOutdated,
	}
}

// mockExec swaps cmdexec.ExecuteWithContext, records every rendered
// command, and restores the original on test cleanup.
func mockExec(t *testing.T, fail func(rendered string) error) *[]string {
	t.Helper()

	var commands []string
	original := cmdexec.ExecuteWithContext
	cmdexec.ExecuteWithContext = func(ctx context.Context, cmds string, env map[string]string, dir string, timeoutSeconds int, replacements map[string]string) ([]byte, error) {
		rendered := cmdexec.RenderCommand(cmds, replacements)
		commands = append(commands, rendered)
		if fail != nil {
			if err := fail(rendered); err != nil {
				return []byte("error: failed to select a version"), err
			}
		}
		return []byte("ok"), nil
	}
	t.Cleanup(func() { cmdexec.ExecuteWithContext = original })

	return &commands
}

// TestExecutorRunInvokesAddPerSelection tests the success path.
//
// It verifies:
//   - One cargo add invocation per selected dependency, in order
//   - The rendered command pins the registry-reported latest version
//   - Results carry the Updated status and target version
func TestExecutorRunInvokesAddPerSelection(t *testing.T) {
	commands := mockExec(t, nil)

	exec := &Executor{Commands: DefaultCommands(), Dir: "/proj"}
	results := exec.Run(context.Background(), []outdated.Entry{
		entryFor("crossterm", "crossterm", "0.28.0", "0.28.1", manifest.KindNormal),
		entryFor("mockall", "mockall", "0.12.0", "0.13.1", manifest.KindDev),
	})

	require.Len(t, results, 2)
	assert.Equal(t, []string{
		"cargo add crossterm@0.28.1",
		"cargo add --dev mockall@0.13.1",
	}, *commands)

	for _, r := range results {
		assert.Equal(t, constants.StatusUpdated, r.Status)
		assert.NoError(t, r.Err)
	}
	assert.Equal(t, "0.28.1", results[0].Target)
}

// TestExecutorZeroSelection tests that confirming an empty selection runs
// nothing.
func TestExecutorZeroSelection(t *testing.T) {
	commands := mockExec(t, nil)

	exec := &Executor{Commands: DefaultCommands()}
	results := exec.Run(context.Background(), nil)

	assert.Empty(t, results)
	assert.Empty(t, *commands)
}

// TestExecutorRenameFlag tests that renamed dependencies keep their declared
// manifest key through --rename.
func TestExecutorRenameFlag(t *testing.T) {
	commands := mockExec(t, nil)

	exec := &Executor{Commands: DefaultCommands()}
	exec.Run(context.Background(), []outdated.Entry{
		entryFor("json", "serde_json", "1.0.0", "1.0.5", manifest.KindNormal),
	})

	require.Len(t, *commands, 1)
	assert.Equal(t, "cargo add serde_json@1.0.5 --rename json", (*commands)[0])
}

// TestExecutorSkipsPathDependencies tests that path dependencies are never
// passed to cargo add.
func TestExecutorSkipsPathDependencies(t *testing.T) {
	commands := mockExec(t, nil)

	entry := entryFor("local-util", "local-util", "0.1.0", "0.2.0", manifest.KindNormal)
	entry.Dependency.Path = "crates/local-util"

	exec := &Executor{Commands: DefaultCommands()}
	results := exec.Run(context.Background(), []outdated.Entry{entry})

	require.Len(t, results, 1)
	assert.Equal(t, constants.StatusSkipped, results[0].Status)
	assert.Contains(t, results[0].Reason, "crates/local-util")
	assert.Empty(t, *commands)
}

// TestExecutorDryRun tests that dry-run renders commands without executing.
func TestExecutorDryRun(t *testing.T) {
	commands := mockExec(t, nil)

	exec := &Executor{Commands: DefaultCommands(), DryRun: true}
	results := exec.Run(context.Background(), []outdated.Entry{
		entryFor("anyhow", "anyhow", "1.0.0", "1.0.98", manifest.KindNormal),
	})

	require.Len(t, results, 1)
	assert.Equal(t, constants.StatusPlanned, results[0].Status)
	assert.Equal(t, "cargo add anyhow@1.0.98", results[0].Command)
	assert.Empty(t, *commands)
}

// TestExecutorFailureDoesNotHaltRemaining tests failure isolation.
//
// It verifies:
//   - A failed invocation produces a SubprocessError carrying the output
//   - The remaining upgrades still run
//   - Tally and Errors aggregate the outcome
func TestExecutorFailureDoesNotHaltRemaining(t *testing.T) {
	boom := stderrors.New("exit status 101")
	commands := mockExec(t, func(rendered string) error {
		if rendered == "cargo add broken@2.0.0" {
			return boom
		}
		return nil
	})

	exec := &Executor{Commands: DefaultCommands()}
	results := exec.Run(context.Background(), []outdated.Entry{
		entryFor("broken", "broken", "1.0.0", "2.0.0", manifest.KindNormal),
		entryFor("fine", "fine", "1.0.0", "1.1.0", manifest.KindNormal),
	})

	require.Len(t, results, 2)
	require.Len(t, *commands, 2)

	assert.Equal(t, constants.StatusFailed, results[0].Status)
	assert.True(t, errors.IsSubprocessError(results[0].Err))
	assert.Contains(t, results[0].Err.Error(), "failed to select a version")
	assert.Equal(t, constants.StatusUpdated, results[1].Status)

	counts := Tally(results)
	assert.Equal(t, 1, counts.Failed)
	assert.Equal(t, 1, counts.Updated)
	require.Len(t, Errors(results), 1)
}

// TestCommandsForKind tests template selection per dependency kind.
func TestCommandsForKind(t *testing.T) {
	commands := DefaultCommands()

	assert.Equal(t, "cargo add {{package}}@{{version}}", commands.ForKind(manifest.KindNormal))
	assert.Equal(t, "cargo add --dev {{package}}@{{version}}", commands.ForKind(manifest.KindDev))
	assert.Equal(t, "cargo add --build {{package}}@{{version}}", commands.ForKind(manifest.KindBuild))
	assert.Equal(t, "cargo add {{package}}@{{version}}", commands.ForKind(manifest.KindWorkspace))
}

// TestCommandsMerge tests that non-empty overrides replace defaults.
func TestCommandsMerge(t *testing.T) {
	merged := DefaultCommands().Merge(Commands{Dev: "cargo add --dev {{package}}@{{version}} --offline"})

	assert.Equal(t, "cargo add --dev {{package}}@{{version}} --offline", merged.Dev)
	assert.Equal(t, "cargo add {{package}}@{{version}}", merged.Normal)
}
