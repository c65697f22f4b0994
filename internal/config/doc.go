// Package config loads axctl settings from a TOML file.
//
// Load resolves the path (default ~/.config/axctl/config.toml), and a
// missing file is not an error: Default() values are returned instead.
// Every field is optional:
//
//	indent = 2          # spaces per tree level
//	max_depth = 0       # 0 prints every level
//	color = "auto"      # auto, always or never
//	log_level = "info"  # debug, info, warn, error
//	log_dir = "~/.local/state/axctl"
//
// Command-line flags override file values.
package config
