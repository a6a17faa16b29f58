// Package cmd implements the command-line interface for crateup.
// The root command drives the whole pipeline: read Cargo.toml, look up the
// latest versions on the registry, present the interactive checklist, and
// apply the selected upgrades through cargo add.
package cmd

import (
	stderrors "errors"
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/crateup/crateup/pkg/errors"
	"github.com/crateup/crateup/pkg/verbose"
)

var exitFunc = os.Exit
var verboseFlag bool
var versionFlag bool
var skipBuildChecksFlag bool

// Pipeline flags.
var (
	allFlag           bool
	yesFlag           bool
	dryRunFlag        bool
	dirFlag           string
	manifestPathFlag  string
	registryFlag      string
	concurrencyFlag   int
	timeoutFlag       int
	configFlag        string
	skipPreflightFlag bool
)

var rootCmd = &cobra.Command{
	Use:   "crateup",
	Short: "Interactive dependency updater for Cargo projects",
	Long: `Find outdated direct dependencies of a Cargo project and upgrade
the ones you pick. crateup reads Cargo.toml, asks the crates registry for
the latest published versions, shows an interactive checklist, and runs
cargo add for every selected crate.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verboseFlag {
			verbose.Enable()
		}
		// Arch-mismatch and dev-build warnings go to stderr before any
		// command output.
		if !skipBuildChecksFlag {
			if warnings := GetBuildWarnings(); warnings != "" {
				fmt.Fprint(os.Stderr, warnings)
				fmt.Fprintln(os.Stderr)
			}
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if versionFlag {
			printVersionOutput()
			return nil
		}
		return runRoot(cmd, args)
	},
}

// Execute runs the root command and exits with the appropriate code:
//   - 0: Success (including nothing to update and user cancellation)
//   - 1: Partial failure (some upgrades succeeded, some failed)
//   - 2: Complete failure (manifest error, registry unreachable, all upgrades failed)
//   - 3: Configuration or validation error
func Execute() {
	err := rootCmd.Execute()
	if err == nil {
		return
	}
	exitFunc(exitCode(err))
}

// exitCode maps a pipeline error to the process exit code.
func exitCode(err error) int {
	var partialErr *errors.PartialSuccessError
	if stderrors.As(err, &partialErr) {
		verbose.Infof("Exit code %d: partial success - %d succeeded, %d failed",
			errors.ExitPartialFailure, partialErr.Succeeded, partialErr.Failed)
		return errors.ExitPartialFailure
	}

	code := errors.GetExitCode(err)
	verbose.Infof("Exit code %d: %v", code, err)
	return code
}

// ExecuteTest runs the root command and returns the error instead of
// exiting, for use in tests.
func ExecuteTest() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&verboseFlag, "verbose", false, "Enable verbose debug output")
	rootCmd.PersistentFlags().BoolVar(&skipBuildChecksFlag, "skip-build-checks", false, "Skip build validation warnings (dev build, arch mismatch)")

	// Add -v/--version as a LOCAL flag (not persistent) so it only works on root command
	rootCmd.Flags().BoolVarP(&versionFlag, "version", "v", false, "Show version information")

	rootCmd.Flags().BoolVarP(&allFlag, "all", "a", false, "Preselect every outdated dependency in the checklist")
	rootCmd.Flags().BoolVarP(&yesFlag, "yes", "y", false, "Update all outdated dependencies without the checklist")
	rootCmd.Flags().BoolVar(&dryRunFlag, "dry-run", false, "Print the cargo add commands without executing them")
	rootCmd.Flags().StringVarP(&dirFlag, "directory", "d", ".", "Project directory containing Cargo.toml")
	rootCmd.Flags().StringVar(&manifestPathFlag, "manifest-path", "", "Explicit manifest file path (overrides --directory discovery)")
	rootCmd.Flags().StringVar(&registryFlag, "registry", "", "Registry API base URL (default: crates.io)")
	rootCmd.Flags().IntVar(&concurrencyFlag, "concurrency", 0, "Bound on parallel registry lookups")
	rootCmd.Flags().IntVar(&timeoutFlag, "timeout", -1, "Seconds per registry request and per cargo invocation (0 disables)")
	rootCmd.Flags().StringVarP(&configFlag, "config", "c", "", "Config file path")
	rootCmd.Flags().BoolVar(&skipPreflightFlag, "skip-preflight", false, "Skip pre-flight command validation")

	rootCmd.AddCommand(versionCmd)
}

// printVersionOutput prints the build target, the runtime platform when
// it differs, the Go toolchain, and the version metadata baked in at
// link time.
func printVersionOutput() {
	buildOS, buildArch := getBuildTarget()
	fmt.Printf("  Build:   %s/%s\n", buildOS, buildArch)
	if buildOS != runtime.GOOS || buildArch != runtime.GOARCH {
		fmt.Printf("  Runtime: %s/%s\n", runtime.GOOS, runtime.GOARCH)
	}

	fmt.Printf("  Go:      %s\n", runtime.Version())
	if BuildTime != "" {
		fmt.Printf("  Date:    %s\n", BuildTime)
	}
	fmt.Println()
	if GitCommit != "" {
		fmt.Printf("  Git:     %s\n", GitCommit)
	}
	fmt.Printf("  Version: %s\n", Version)
}
