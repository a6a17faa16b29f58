// Package versions provides semver canonicalization and comparison for
// crate version strings.
//
// Crates.io versions are well-formed semver, but versions derived from
// manifest requirements can be partial ("1", "1.0"). Canonical pads
// missing components so both forms compare correctly.
package versions

import (
	"strings"

	"golang.org/x/mod/semver"
)

// Canonical converts a version string to canonical semver format.
//
// It performs the following operations:
//   - Cleans and validates the input
//   - Adds "v" prefix if missing
//   - Pads missing minor/patch with zeros until valid semver is found
//   - Returns canonical form using semver.Canonical
//
// Parameters:
//   - version: The version string to canonicalize (e.g., "1.2", "v1.2.3")
//
// Returns:
//   - string: Canonical semver string (e.g., "v1.2.0"); empty string if not valid semver
func Canonical(version string) string {
	cleaned := strings.TrimSpace(version)
	if cleaned == "" || cleaned == "#N/A" {
		return ""
	}

	if !strings.HasPrefix(cleaned, "v") {
		cleaned = "v" + cleaned
	}

	trimmed := strings.TrimPrefix(cleaned, "v")
	parts := strings.Split(trimmed, ".")
	for len(parts) > 0 && len(parts) < 3 {
		candidate := "v" + strings.Join(parts, ".")
		if semver.IsValid(candidate) {
			return semver.Canonical(candidate)
		}
		parts = append(parts, "0")
	}

	if semver.IsValid(cleaned) {
		return semver.Canonical(cleaned)
	}

	return ""
}

// IsValid reports whether a version string canonicalizes to valid semver.
//
// Parameters:
//   - version: The version string to check
//
// Returns:
//   - bool: true if the version is usable for comparison
func IsValid(version string) bool {
	return Canonical(version) != ""
}

// Compare compares two version strings after canonicalization.
//
// Versions that cannot be canonicalized sort below valid versions, and
// two invalid versions compare as equal.
//
// Parameters:
//   - a: The first version to compare
//   - b: The second version to compare
//
// Returns:
//   - int: Negative if a < b, zero if a == b, positive if a > b
func Compare(a, b string) int {
	ca := Canonical(a)
	cb := Canonical(b)

	switch {
	case ca == "" && cb == "":
		return 0
	case ca == "":
		return -1
	case cb == "":
		return 1
	}

	return semver.Compare(ca, cb)
}

// IsNewer reports whether latest is strictly newer than current.
//
// Both versions must canonicalize to valid semver; otherwise the result
// is false so callers fall through to their unknown handling.
//
// Parameters:
//   - latest: The candidate newer version
//   - current: The installed version to compare against
//
// Returns:
//   - bool: true only when both versions parse and latest > current
func IsNewer(latest, current string) bool {
	cl := Canonical(latest)
	cc := Canonical(current)
	if cl == "" || cc == "" {
		return false
	}
	return semver.Compare(cl, cc) > 0
}
