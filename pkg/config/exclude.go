package config

import (
	"path"
	"strings"
)

// IsExcluded reports whether a crate name matches any configured exclusion
// pattern.
//
// Patterns use glob syntax: * matches any run of characters, ? matches a
// single character, and a leading ! negates the pattern. A crate is excluded
// when at least one pattern matches it.
//
// Parameters:
//   - name: The declared dependency name to test
//
// Returns:
//   - bool: true when the crate should be left out of the scan
func (c *Config) IsExcluded(name string) bool {
	for _, pattern := range c.Exclude {
		if matchPattern(name, pattern) {
			return true
		}
	}
	return false
}

// matchPattern tests a crate name against one glob pattern. An invalid
// pattern falls back to exact comparison.
func matchPattern(name, pattern string) bool {
	negate := false
	if strings.HasPrefix(pattern, "!") {
		negate = true
		pattern = pattern[1:]
	}

	matched, err := path.Match(pattern, name)
	if err != nil {
		matched = name == pattern
	}

	if negate {
		return !matched
	}
	return matched
}
