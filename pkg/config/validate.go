package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/crateup/crateup/pkg/errors"
)

// Validate checks the configuration for values that would break the run.
//
// It performs the following operations:
//   - Rejects negative concurrency and timeout values
//   - Requires a valid http(s) URL when a registry is configured
//   - Requires every non-empty command template to reference {{package}}
//   - Rejects empty exclusion patterns
//
// Returns:
//   - error: A ValidationError describing the first invalid field; nil when
//     the configuration is usable
func (c *Config) Validate() error {
	if c.Concurrency < 0 {
		return errors.NewConfigValidationError("concurrency", fmt.Sprintf("must not be negative, got %d", c.Concurrency))
	}
	if c.TimeoutSeconds < 0 {
		return errors.NewConfigValidationError("timeout_seconds", fmt.Sprintf("must not be negative, got %d", c.TimeoutSeconds))
	}

	if c.Registry != "" {
		parsed, err := url.Parse(c.Registry)
		if err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
			return errors.NewConfigValidationError("registry", fmt.Sprintf("must be an http(s) URL, got %q", c.Registry))
		}
	}

	if err := validateTemplates(c.Commands); err != nil {
		return err
	}

	for _, pattern := range c.Exclude {
		if strings.TrimSpace(pattern) == "" {
			return errors.NewConfigValidationError("exclude", "patterns must not be empty")
		}
	}

	return nil
}

// validateTemplates checks that every overridden command template still
// names the crate being added.
func validateTemplates(commands CommandsCfg) error {
	templates := map[string]string{
		"commands.normal":    commands.Normal,
		"commands.dev":       commands.Dev,
		"commands.build":     commands.Build,
		"commands.workspace": commands.Workspace,
	}
	for field, template := range templates {
		if template == "" {
			continue
		}
		if !strings.Contains(template, "{{package}}") {
			return errors.NewConfigValidationError(field, "template must contain {{package}}")
		}
	}
	return nil
}
