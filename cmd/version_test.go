package cmd

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/crateup/crateup/pkg/testutil"
)

// withBuildInfo overrides the ldflags build variables for one test.
func withBuildInfo(t *testing.T, version, buildOS, buildArch string) {
	t.Helper()

	origVersion, origOS, origArch := Version, BuildOS, BuildArch
	Version, BuildOS, BuildArch = version, buildOS, buildArch
	t.Cleanup(func() {
		Version, BuildOS, BuildArch = origVersion, origOS, origArch
	})
}

// TestGetVersion tests the version accessor.
func TestGetVersion(t *testing.T) {
	assert.Equal(t, Version, GetVersion())

	withBuildInfo(t, "1.2.3", "", "")
	assert.Equal(t, "1.2.3", GetVersion())
}

// TestGetBuildTarget tests build target resolution.
//
// It verifies:
//   - ldflags values are used when set
//   - Dev builds fall back to the runtime platform
func TestGetBuildTarget(t *testing.T) {
	withBuildInfo(t, "dev", "linux", "arm64")
	buildOS, buildArch := getBuildTarget()
	assert.Equal(t, "linux", buildOS)
	assert.Equal(t, "arm64", buildArch)

	withBuildInfo(t, "dev", "", "")
	buildOS, buildArch = getBuildTarget()
	assert.Equal(t, runtime.GOOS, buildOS)
	assert.Equal(t, runtime.GOARCH, buildArch)
}

// TestHasArchMismatch tests platform mismatch detection.
func TestHasArchMismatch(t *testing.T) {
	withBuildInfo(t, "dev", "", "")
	assert.False(t, HasArchMismatch(), "dev builds have no mismatch")

	withBuildInfo(t, "1.0.0", runtime.GOOS, runtime.GOARCH)
	assert.False(t, HasArchMismatch())

	withBuildInfo(t, "1.0.0", "plan9", "mips")
	assert.True(t, HasArchMismatch())
	assert.Contains(t, GetArchMismatchWarning(), "plan9/mips")
}

// TestDevBuildWarning tests the dev build detection and its warning text.
func TestDevBuildWarning(t *testing.T) {
	withBuildInfo(t, "dev", "", "")
	assert.True(t, IsDevBuild())
	assert.Contains(t, GetDevBuildWarning(), "Development build")
	assert.Contains(t, GetBuildWarnings(), "Development build")

	withBuildInfo(t, "1.0.0", "", "")
	assert.False(t, IsDevBuild())
	assert.Empty(t, GetDevBuildWarning())
	assert.Empty(t, GetBuildWarnings())
}

// TestVersionCommand tests the version subcommand output.
//
// It verifies:
//   - The command prints the version and build target
//   - Running it does not touch the update pipeline
func TestVersionCommand(t *testing.T) {
	denySelector(t)
	withBuildInfo(t, "1.0.0", runtime.GOOS, runtime.GOARCH)

	rootCmd.SetArgs([]string{"version", "--skip-build-checks"})
	t.Cleanup(func() {
		rootCmd.SetArgs([]string{})
		resetChangedFlags()
	})

	var err error
	out := testutil.CaptureStdout(t, func() { err = ExecuteTest() })

	assert.NoError(t, err)
	assert.Contains(t, out, "Version: 1.0.0")
	assert.Contains(t, out, "Build:   "+runtime.GOOS+"/"+runtime.GOARCH)
}
