package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/crateup/crateup/pkg/constants"
)

// Build metadata injected via ldflags, e.g.
// go build -ldflags="-X github.com/crateup/crateup/cmd.Version=1.0.0".
// Unset values mean a local dev build.
var (
	Version   = "dev"
	BuildTime = ""
	GitCommit = ""
	BuildOS   = ""
	BuildArch = ""
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version and build information",
	Long:  `Show version, build date, and system information.`,
	Run: func(cmd *cobra.Command, args []string) {
		printVersionOutput()
	},
}

// GetVersion returns the semantic version, "dev" for untagged builds.
func GetVersion() string {
	return Version
}

// getBuildTarget returns the OS/arch the binary was compiled for, falling
// back to the runtime platform when ldflags were not set.
func getBuildTarget() (string, string) {
	buildOS, buildArch := BuildOS, BuildArch
	if buildOS == "" {
		buildOS = runtime.GOOS
	}
	if buildArch == "" {
		buildArch = runtime.GOARCH
	}
	return buildOS, buildArch
}

// HasArchMismatch reports whether the binary runs on a different platform
// than it was built for. Dev builds carry no target, so they never mismatch.
func HasArchMismatch() bool {
	if BuildOS == "" && BuildArch == "" {
		return false
	}
	buildOS, buildArch := getBuildTarget()
	return buildOS != runtime.GOOS || buildArch != runtime.GOARCH
}

// GetArchMismatchWarning returns the mismatch warning, or "" when the
// platforms agree.
func GetArchMismatchWarning() string {
	if !HasArchMismatch() {
		return ""
	}
	buildOS, buildArch := getBuildTarget()
	return fmt.Sprintf("%s  Architecture mismatch: binary built for %s/%s but running on %s/%s\n"+
		"   This may cause unexpected behavior. Please download the correct binary.\n",
		constants.IconWarn, buildOS, buildArch, runtime.GOOS, runtime.GOARCH)
}

// IsDevBuild reports whether this binary was built without a release tag.
func IsDevBuild() bool {
	return Version == "dev"
}

// GetDevBuildWarning returns the dev-build warning, or "" for releases.
func GetDevBuildWarning() string {
	if !IsDevBuild() {
		return ""
	}
	return constants.IconWarn + "  Development build: this is an unreleased version without a version tag.\n" +
		"   For production use, please install a released version.\n"
}

// GetBuildWarnings concatenates every applicable build warning. The root
// command prints the result ahead of normal output.
func GetBuildWarnings() string {
	return GetArchMismatchWarning() + GetDevBuildWarning()
}
