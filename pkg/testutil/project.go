package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteCargoToml writes a Cargo.toml with the given body into dir and
// returns its path.
//
// Parameters:
//   - t: Testing instance for helper marking and fatal errors
//   - dir: Directory to write the manifest into
//   - body: Full manifest content
//
// Returns:
//   - string: Path of the written manifest
func WriteCargoToml(t *testing.T, dir, body string) string {
	t.Helper()

	path := filepath.Join(dir, "Cargo.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// WriteCargoLock writes a Cargo.lock listing the given package versions
// into dir and returns its path.
//
// Parameters:
//   - t: Testing instance for helper marking and fatal errors
//   - dir: Directory to write the lockfile into
//   - versions: Package name to locked version
//
// Returns:
//   - string: Path of the written lockfile
func WriteCargoLock(t *testing.T, dir string, versions map[string]string) string {
	t.Helper()

	body := "version = 3\n"
	for name, version := range versions {
		body += "\n[[package]]\nname = \"" + name + "\"\nversion = \"" + version + "\"\n"
	}

	path := filepath.Join(dir, "Cargo.lock")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}
