package manifest

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// LocalMetadata is the package table of a path dependency's own manifest. It
// stands in for registry metadata when a dependency is declared with `path`.
type LocalMetadata struct {
	Name        string
	Version     string
	Description string
	Repository  string
}

type rawLocalManifest struct {
	Package struct {
		Name        string `toml:"name"`
		Version     string `toml:"version"`
		Description string `toml:"description"`
		Repository  string `toml:"repository"`
	} `toml:"package"`
}

// ReadLocal reads the Cargo.toml of a path dependency. Relative paths are
// resolved against baseDir, the directory of the project manifest. The
// description is reduced to its first word, matching the compact listing
// format used for local crates.
func ReadLocal(baseDir, path string) (*LocalMetadata, error) {
	dir := path
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(baseDir, dir)
	}
	manifestPath := filepath.Join(dir, "Cargo.toml")

	var raw rawLocalManifest
	if _, err := toml.DecodeFile(manifestPath, &raw); err != nil {
		return nil, fmt.Errorf("failed to read local manifest %s: %w", manifestPath, err)
	}

	return &LocalMetadata{
		Name:        raw.Package.Name,
		Version:     raw.Package.Version,
		Description: firstWord(raw.Package.Description),
		Repository:  raw.Package.Repository,
	}, nil
}

func firstWord(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
