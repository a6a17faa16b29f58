package cmd

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/crateup/crateup/pkg/config"
	"github.com/crateup/crateup/pkg/constants"
	"github.com/crateup/crateup/pkg/errors"
	"github.com/crateup/crateup/pkg/manifest"
	"github.com/crateup/crateup/pkg/outdated"
	"github.com/crateup/crateup/pkg/output"
	"github.com/crateup/crateup/pkg/preflight"
	"github.com/crateup/crateup/pkg/registry"
	"github.com/crateup/crateup/pkg/selector"
	"github.com/crateup/crateup/pkg/upgrade"
	"github.com/crateup/crateup/pkg/verbose"
)

// Testable function variables
var runSelectorFunc = selector.Run
var buildReportFunc = outdated.BuildReport

// runRoot drives the pipeline: manifest, registry scan, checklist, upgrades.
//
// It performs the following operations:
//   - Loads the configuration and applies flag overrides
//   - Parses Cargo.toml and resolves installed versions against Cargo.lock
//   - Validates the cargo commands unless preflight is skipped
//   - Looks up every dependency on the registry with bounded concurrency
//   - Collects the user's selection (or takes every outdated crate with --yes)
//   - Applies the selection through cargo add and prints the outcome summary
//
// Returns:
//   - error: nil on success, cancellation, and nothing-to-update; an error
//     carrying the exit code otherwise
func runRoot(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(configFlag, dirFlag)
	if err != nil {
		return err
	}
	if err := applyFlagOverrides(cmd, cfg); err != nil {
		return err
	}

	manifestPath := cfg.ManifestPath
	if manifestPath == "" {
		manifestPath = manifest.DefaultManifestPath(cfg.WorkingDir)
	}

	// A manifest failure is fatal: no network activity, no UI.
	m, err := manifest.Parse(manifestPath)
	if err != nil {
		return err
	}
	manifest.ResolveInstalled(m.Dependencies, manifest.LoadLockfile(m.Dir))
	m.Dependencies = dropExcluded(m.Dependencies, cfg)

	if len(m.Dependencies) == 0 {
		fmt.Println("No direct dependencies declared; nothing to update.")
		return nil
	}

	commands := upgrade.DefaultCommands().Merge(upgrade.Commands(cfg.Commands))

	if !skipPreflightFlag && !dryRunFlag {
		if err := runPreflight(m.Dependencies, commands); err != nil {
			return err
		}
	}

	ctx := context.Background()
	if cmd != nil && cmd.Context() != nil {
		ctx = cmd.Context()
	}

	client := registry.NewClient(cfg.Registry, time.Duration(cfg.TimeoutSeconds)*time.Second)
	progress := output.NewProgress(os.Stderr, len(m.Dependencies), "Checking crates")
	report := buildReportFunc(ctx, client, m, cfg.Concurrency, progress.Increment)
	progress.Done()

	if report.RegistryUnreachable() {
		printScanIssues(os.Stdout, report)
		return errors.NewExitError(errors.ExitCompleteFailure,
			"registry unreachable: every lookup failed", stderrors.Join(lookupErrors(report)...))
	}

	if len(report.Outdated()) == 0 {
		fmt.Printf("All %d direct dependencies are up to date!\n", report.Total)
		printScanIssues(os.Stdout, report)
		return nil
	}

	picked, confirmed, err := selectEntries(report)
	if err != nil {
		return errors.NewExitError(errors.ExitCompleteFailure, "interactive selection failed", err)
	}
	if !confirmed {
		fmt.Println("No dependencies updated.")
		printScanIssues(os.Stdout, report)
		return nil
	}
	if len(picked) == 0 {
		fmt.Println("Nothing selected; no dependencies updated.")
		printScanIssues(os.Stdout, report)
		return nil
	}

	executor := &upgrade.Executor{
		Commands:       commands,
		Dir:            m.Dir,
		TimeoutSeconds: cfg.TimeoutSeconds,
		DryRun:         dryRunFlag,
	}
	results := executor.Run(ctx, picked)

	fmt.Println()
	upgrade.PrintResults(os.Stdout, results)
	upgrade.PrintSummary(os.Stdout, results, dryRunFlag)
	printScanIssues(os.Stdout, report)
	if errs := upgrade.Errors(results); len(errs) > 0 {
		fmt.Print(errors.FormatErrorsWithHints(errs))
	}

	return upgradeOutcome(results)
}

// applyFlagOverrides copies explicitly set CLI flags over the file-loaded
// configuration and re-validates the result.
func applyFlagOverrides(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("registry") {
		cfg.Registry = registryFlag
	}
	if flags.Changed("concurrency") {
		cfg.Concurrency = concurrencyFlag
	}
	if flags.Changed("timeout") {
		cfg.TimeoutSeconds = timeoutFlag
	}
	if flags.Changed("manifest-path") {
		cfg.ManifestPath = manifestPathFlag
	}
	return cfg.Validate()
}

// dropExcluded removes dependencies matching a configured exclusion pattern.
func dropExcluded(deps []manifest.Dependency, cfg *config.Config) []manifest.Dependency {
	if len(cfg.Exclude) == 0 {
		return deps
	}

	kept := deps[:0]
	for _, dep := range deps {
		if cfg.IsExcluded(dep.Name) {
			verbose.CrateSkipped(dep.Name, "matches exclude pattern")
			continue
		}
		kept = append(kept, dep)
	}
	return kept
}

// runPreflight validates the cargo commands the executor would invoke for
// the dependency kinds present in the manifest.
func runPreflight(deps []manifest.Dependency, commands upgrade.Commands) error {
	seen := make(map[string]bool)
	var templates []string
	for _, dep := range deps {
		template := commands.ForKind(dep.Kind)
		if !seen[template] {
			seen[template] = true
			templates = append(templates, template)
		}
	}

	validation := preflight.ValidateCommands(templates)
	if validation.HasErrors() {
		verbose.Infof("Exit code %d (config error): preflight validation failed", errors.ExitConfigError)
		return errors.NewExitError(errors.ExitConfigError,
			fmt.Sprintf("%s\n  %s Options:\n     --skip-preflight     Bypass validation if commands are available through other means\n     --dry-run            Preview the upgrade commands without executing them",
				validation.ErrorMessage(), constants.IconLightbulb), nil)
	}
	return nil
}

// selectEntries collects the set of dependencies to upgrade, either from
// the --yes shortcut or the interactive checklist.
func selectEntries(report *outdated.Report) ([]outdated.Entry, bool, error) {
	entries := report.Outdated()

	if yesFlag {
		fmt.Printf("Updating all %d outdated dependencies (--yes)\n", len(entries))
		return entries, true, nil
	}

	return runSelectorFunc(entries, report.Total, allFlag)
}

// printScanIssues reports the dependencies that never made it into the
// checklist, so nothing is silently dropped.
func printScanIssues(w io.Writer, report *outdated.Report) {
	if unknown := report.Unknown(); len(unknown) > 0 {
		fmt.Fprintf(w, "\n%s  %d dependencies could not be checked:\n", constants.IconWarn, len(unknown))
		for _, e := range unknown {
			fmt.Fprintf(w, "   - %s: %v\n", e.Dependency.Name, e.Err)
		}
	}

	if skipped := report.Skipped(); len(skipped) > 0 {
		fmt.Fprintf(w, "\n%s  %d dependencies excluded from comparison:\n", constants.IconWarn, len(skipped))
		for _, e := range skipped {
			fmt.Fprintf(w, "   - %s: %s\n", e.Dependency.Name, e.Reason)
		}
	}
}

// lookupErrors collects the per-crate errors behind a failed scan.
func lookupErrors(report *outdated.Report) []error {
	var errs []error
	for _, e := range report.Unknown() {
		if e.Err != nil {
			errs = append(errs, e.Err)
		}
	}
	return errs
}

// upgradeOutcome maps the executor results onto the process exit code.
//
// Returns:
//   - nil when nothing failed
//   - a PartialSuccessError (exit 1) when some upgrades succeeded and some failed
//   - an ExitError with code 2 when every attempted upgrade failed
func upgradeOutcome(results []upgrade.Result) error {
	counts := upgrade.Tally(results)
	if counts.Failed == 0 {
		verbose.Infof("Exit code %d (success): %d upgrades processed", errors.ExitSuccess, len(results))
		return nil
	}

	succeeded := counts.Updated + counts.Planned
	failures := upgrade.Errors(results)

	if succeeded > 0 {
		verbose.Infof("Exit code %d (partial failure): %d succeeded, %d failed", errors.ExitPartialFailure, succeeded, counts.Failed)
		return errors.NewExitError(errors.ExitPartialFailure, "",
			errors.NewPartialSuccessError(succeeded, counts.Failed, failures))
	}

	verbose.Infof("Exit code %d (failure): all %d upgrades failed", errors.ExitCompleteFailure, counts.Failed)
	return errors.NewExitError(errors.ExitCompleteFailure,
		fmt.Sprintf("all %d upgrades failed", counts.Failed), stderrors.Join(failures...))
}
