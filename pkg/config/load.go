package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/crateup/crateup/pkg/errors"
	"github.com/crateup/crateup/pkg/verbose"
)

// LoadConfig loads configuration from the specified path or defaults.
//
// If configPath is provided, it loads that specific config file and fails
// when the file is missing or malformed. Otherwise it looks for .crateup.yml
// in the working directory and falls back to the built-in defaults when none
// is found. File values are merged over the defaults and validated.
//
// Parameters:
//   - configPath: path to the config file, or empty to discover one
//   - workDir: project directory for the run
//
// Returns:
//   - *Config: the loaded, merged, and validated configuration
//   - error: a ValidationError when the file is unreadable, malformed, or
//     carries invalid values
func LoadConfig(configPath, workDir string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		verbose.Infof("Loading config from: %s", configPath)
		loaded, err := loadConfigFile(configPath)
		if err != nil {
			return nil, err
		}
		cfg = merge(cfg, loaded)
		cfg.Path = configPath
		verbose.ConfigLoaded(configPath)
	} else {
		localConfig := filepath.Join(workDir, ConfigFileName)
		if _, err := os.Stat(localConfig); err == nil {
			verbose.Infof("Found local config: %s", localConfig)
			loaded, err := loadConfigFile(localConfig)
			if err != nil {
				return nil, err
			}
			cfg = merge(cfg, loaded)
			cfg.Path = localConfig
			verbose.ConfigLoaded(localConfig)
		} else {
			verbose.Info("Using built-in default configuration")
		}
	}

	if workDir != "" {
		cfg.WorkingDir = workDir
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadConfigFile reads and decodes a single YAML config file.
//
// Unknown keys are rejected so typos surface as errors instead of being
// silently ignored.
//
// Parameters:
//   - path: path to the config file
//
// Returns:
//   - *Config: the decoded configuration
//   - error: a ValidationError when the file cannot be read or decoded
func loadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewConfigValidationError("config", fmt.Sprintf("failed to read config file %s: %v", path, err))
	}

	var cfg Config
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && err != io.EOF {
		return nil, errors.NewConfigValidationError("config", fmt.Sprintf("failed to parse config file %s: %v", path, err))
	}

	return &cfg, nil
}
