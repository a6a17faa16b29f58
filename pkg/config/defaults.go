package config

// Default limits applied when the config file and flags leave them unset.
const (
	// DefaultConcurrency bounds parallel registry lookups.
	DefaultConcurrency = 8

	// DefaultTimeoutSeconds limits each registry request and each
	// subprocess invocation.
	DefaultTimeoutSeconds = 15
)

// ConfigFileName is the config file discovered in the project directory.
const ConfigFileName = ".crateup.yml"

// DefaultConfig returns the built-in configuration used when no config
// file is present.
//
// Returns:
//   - *Config: A configuration with default limits, the crates.io registry,
//     and no command overrides or exclusions
func DefaultConfig() *Config {
	return &Config{
		Concurrency:    DefaultConcurrency,
		TimeoutSeconds: DefaultTimeoutSeconds,
		WorkingDir:     ".",
	}
}
