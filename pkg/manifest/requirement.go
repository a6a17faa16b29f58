package manifest

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// TrimRequirement strips the leading constraint operator from a cargo version
// requirement, leaving the bare version ("^1.2.3" becomes "1.2.3"). It is the
// installed-version fallback when no lockfile entry matches.
func TrimRequirement(req string) string {
	return strings.TrimLeft(strings.TrimSpace(req), "^~= ")
}

// Constraint converts a cargo version requirement into a semver constraint.
// A bare cargo requirement carries caret semantics, so "1.2" is parsed as
// "^1.2". Comma-separated requirements stay conjunctions.
func Constraint(req string) (*semver.Constraints, error) {
	req = strings.TrimSpace(req)
	if req == "" {
		return nil, fmt.Errorf("empty version requirement")
	}

	parts := strings.Split(req, ",")
	for i, part := range parts {
		parts[i] = caretDefault(strings.TrimSpace(part))
	}

	c, err := semver.NewConstraint(strings.Join(parts, ", "))
	if err != nil {
		return nil, fmt.Errorf("invalid version requirement %q: %w", req, err)
	}
	return c, nil
}

// caretDefault prepends the caret operator to bare version parts. Parts that
// already carry an operator or are a lone wildcard pass through unchanged.
func caretDefault(part string) string {
	if part == "" || part == "*" {
		return part
	}
	c := part[0]
	if (c >= '0' && c <= '9') || c == 'v' {
		return "^" + part
	}
	return part
}

// Satisfies reports whether version matches the cargo requirement. Unparsable
// versions or requirements never match.
func Satisfies(version, req string) bool {
	c, err := Constraint(req)
	if err != nil {
		return false
	}
	v, err := semver.NewVersion(strings.TrimSpace(version))
	if err != nil {
		return false
	}
	return c.Check(v)
}
