// Package config provides configuration loading for placementwiz.
//
// Configuration is loaded using Viper, supporting YAML config files and
// environment variable overrides. The defaults work out of the box: postings
// go to a YAML file under ./.placementwiz and the built-in flows are used.
//
// Key types:
//   - [Config] is the root configuration container with all settings
//   - [Loader] handles Viper-based configuration loading
//
// Configuration priority (highest to lowest):
//  1. Environment variables (PLACEMENTWIZ_ prefix, dots become underscores,
//     e.g. PLACEMENTWIZ_STORE_DRIVER)
//  2. Config file specified by PLACEMENTWIZ_CONFIG_PATH
//  3. User config directory (platform-standard):
//     - Linux: ~/.config/placementwiz/config.yaml
//     - macOS: ~/Library/Application Support/placementwiz/config.yaml
//     - Windows: %APPDATA%\placementwiz\config.yaml
//  4. ./placementwiz.yaml
//  5. [DefaultConfig] defaults
package config

// Config represents the root configuration structure.
type Config struct {
	// Store selects where submitted postings are kept.
	Store StoreConfig `mapstructure:"store"`

	// Flows configures where posting flows come from.
	Flows FlowsConfig `mapstructure:"flows"`

	// Log configures structured logging.
	Log LogConfig `mapstructure:"log"`

	// Output contains terminal output formatting configuration.
	Output OutputConfig `mapstructure:"output"`

	// Author is recorded on postings created from this machine unless
	// overridden with --author.
	Author string `mapstructure:"author"`
}

// StoreConfig selects the posting store backend.
type StoreConfig struct {
	// Driver is "yaml" (default) or "sqlite".
	Driver string `mapstructure:"driver"`

	// Path is the store file. Empty uses the driver's default under
	// ./.placementwiz. PLACEMENTWIZ_STORE_PATH overrides it.
	Path string `mapstructure:"path"`
}

// FlowsConfig configures posting flows.
type FlowsConfig struct {
	// ManifestPath points at a CSV or YAML flow manifest. Empty uses the
	// built-in job, internship and exam flows.
	ManifestPath string `mapstructure:"manifest_path"`
}

// LogConfig configures the zap logger.
type LogConfig struct {
	// Level is one of debug, info, warn or error.
	// Default: "warn"
	Level string `mapstructure:"level"`

	// File receives log output. Empty logs to stderr.
	File string `mapstructure:"file"`
}

// OutputConfig contains terminal output formatting configuration.
type OutputConfig struct {
	// TruncateLength is the maximum width of a value in posting tables.
	// Longer values are truncated with "..." suffix.
	// Default: 60
	TruncateLength int `mapstructure:"truncate_length"`
}

// DefaultConfig returns a new [Config] with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Store: StoreConfig{
			Driver: "yaml",
		},
		Log: LogConfig{
			Level: "warn",
		},
		Output: OutputConfig{
			TruncateLength: 60,
		},
	}
}
