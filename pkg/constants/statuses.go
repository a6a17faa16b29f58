// Package constants provides centralized string constants used throughout the application.
// This eliminates magic strings and provides a single source of truth for status values.
package constants

// Dependency status constants represent the state of a dependency after the
// registry check and during upgrade execution.
const (
	// StatusUpToDate indicates the resolved version already matches the latest release.
	StatusUpToDate = "UpToDate"

	// StatusOutdated indicates a newer version is available on the registry.
	StatusOutdated = "Outdated"

	// StatusUnknown indicates the registry lookup failed for the dependency.
	StatusUnknown = "Unknown"

	// StatusSkipped indicates the dependency was excluded from comparison,
	// for example because its version could not be parsed.
	StatusSkipped = "Skipped"

	// StatusUpdated indicates the dependency was successfully upgraded.
	StatusUpdated = "Updated"

	// StatusPlanned indicates the upgrade command is planned (dry-run mode).
	StatusPlanned = "Planned"

	// StatusFailed indicates the upgrade command failed.
	StatusFailed = "Failed"
)

// Placeholder values for display when data is not available.
const (
	// PlaceholderNA is used when a value is not available.
	PlaceholderNA = "#N/A"

	// PlaceholderNone is used when an optional field has no value.
	PlaceholderNone = "none"
)

// Icon constants for status display.
// These provide visual indicators for dependency states in CLI output.
const (
	// IconSuccess indicates a successful or positive state (green circle).
	IconSuccess = "🟢"

	// IconWarning indicates a warning or caution state (orange circle).
	IconWarning = "🟠"

	// IconError indicates an error or failed state (red X).
	IconError = "❌"

	// IconPending indicates a pending or planned state (yellow circle).
	IconPending = "🟡"

	// IconCheckmarkBox indicates successful completion (checkmark in box).
	IconCheckmarkBox = "✅"

	// IconLightbulb indicates a hint or suggestion.
	IconLightbulb = "💡"

	// IconWarn is the warning prefix for messages.
	IconWarn = "⚠️"
)
