// Package config handles configuration loading, validation, and merging for
// crateup. It supports an optional YAML configuration file (.crateup.yml)
// with registry, concurrency, command-template, and exclusion settings;
// command-line flags override file values.
package config

// CommandsCfg holds the cargo add command templates per dependency kind.
//
// Templates go through cmdexec replacement before execution: {{package}} is
// the crate name, {{version}} the target version, and {{name}} the declared
// name for renamed dependencies.
//
// Fields:
//   - Normal: Template for [dependencies] entries
//   - Dev: Template for [dev-dependencies] entries
//   - Build: Template for [build-dependencies] entries
//   - Workspace: Template for [workspace.dependencies] entries
type CommandsCfg struct {
	Normal    string `yaml:"normal"`
	Dev       string `yaml:"dev"`
	Build     string `yaml:"build"`
	Workspace string `yaml:"workspace"`
}

// Config is the crateup configuration.
//
// Fields:
//   - Registry: Base URL of the crates registry API ("" selects crates.io)
//   - Concurrency: Bound on parallel registry lookups
//   - TimeoutSeconds: Per registry request and per subprocess limit (0 disables)
//   - ManifestPath: Explicit manifest file path ("" discovers Cargo.toml in
//     the working directory)
//   - Exclude: Crate name patterns (glob-style, * wildcard) left out of the scan
//   - Commands: Cargo add command template overrides per dependency kind
//   - Path: The file the configuration was loaded from (runtime only)
//   - WorkingDir: The project directory the run operates on (runtime only)
type Config struct {
	Registry       string      `yaml:"registry"`
	Concurrency    int         `yaml:"concurrency"`
	TimeoutSeconds int         `yaml:"timeout_seconds"`
	ManifestPath   string      `yaml:"manifest_path"`
	Exclude        []string    `yaml:"exclude"`
	Commands       CommandsCfg `yaml:"commands"`

	// Runtime-only fields, never read from YAML.
	Path       string `yaml:"-"`
	WorkingDir string `yaml:"-"`
}
