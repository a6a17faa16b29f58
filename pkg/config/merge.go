package config

// merge overlays non-zero values from overlay on top of base and returns
// the combined configuration.
//
// Numeric zero means "not set" in the file, so a config file cannot select
// a zero concurrency; it can disable timeouts only through the CLI flag.
//
// Parameters:
//   - base: The configuration providing default values
//   - overlay: The configuration whose set fields win
//
// Returns:
//   - *Config: The merged configuration (base is modified in place)
func merge(base, overlay *Config) *Config {
	if overlay == nil {
		return base
	}

	if overlay.Registry != "" {
		base.Registry = overlay.Registry
	}
	if overlay.Concurrency != 0 {
		base.Concurrency = overlay.Concurrency
	}
	if overlay.TimeoutSeconds != 0 {
		base.TimeoutSeconds = overlay.TimeoutSeconds
	}
	if overlay.ManifestPath != "" {
		base.ManifestPath = overlay.ManifestPath
	}
	if len(overlay.Exclude) > 0 {
		base.Exclude = overlay.Exclude
	}
	base.Commands = mergeCommands(base.Commands, overlay.Commands)

	return base
}

// mergeCommands overlays non-empty command templates from overlay on top
// of base.
func mergeCommands(base, overlay CommandsCfg) CommandsCfg {
	if overlay.Normal != "" {
		base.Normal = overlay.Normal
	}
	if overlay.Dev != "" {
		base.Dev = overlay.Dev
	}
	if overlay.Build != "" {
		base.Build = overlay.Build
	}
	if overlay.Workspace != "" {
		base.Workspace = overlay.Workspace
	}
	return base
}
