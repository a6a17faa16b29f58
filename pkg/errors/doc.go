// Package errors provides structured error types and exit code handling
// for crateup commands.
//
// The package defines typed errors for each stage of the update pipeline:
//
//   - ManifestError: Cargo.toml or Cargo.lock could not be read or parsed
//   - RegistryError: a crates.io lookup failed for a single crate
//   - SubprocessError: a cargo add invocation failed for a single crate
//   - ExitError: generic error carrying an explicit process exit code
//   - PartialSuccessError: some upgrades applied, others failed
//   - UnsupportedError: an operation is not supported for a dependency
//   - ValidationError: configuration or preflight validation failed
//
// Exit codes follow the convention:
//
//	0 - success
//	1 - partial failure (some upgrades applied, some failed)
//	2 - complete failure (manifest unreadable, all upgrades failed)
//	3 - configuration or preflight error
//
// Errors can be enhanced with actionable hints via EnhanceErrorWithHint,
// which matches known failure patterns and appends resolution guidance.
package errors
