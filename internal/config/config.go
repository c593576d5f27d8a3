package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	// appName names the user config directory.
	appName = "placementwiz"

	// EnvPrefix prefixes every environment override.
	EnvPrefix = "PLACEMENTWIZ"

	// ConfigPathEnv points at an explicit config file.
	ConfigPathEnv = "PLACEMENTWIZ_CONFIG_PATH"

	// LocalConfigFile is checked in the working directory.
	LocalConfigFile = "placementwiz.yaml"
)

// Loader loads [Config] values with Viper.
type Loader struct {
	v *viper.Viper
}

// NewLoader creates a [Loader] with defaults and environment overrides bound.
func NewLoader() *Loader {
	v := viper.New()

	def := DefaultConfig()
	v.SetDefault("store.driver", def.Store.Driver)
	v.SetDefault("store.path", def.Store.Path)
	v.SetDefault("flows.manifest_path", def.Flows.ManifestPath)
	v.SetDefault("log.level", def.Log.Level)
	v.SetDefault("log.file", def.Log.File)
	v.SetDefault("output.truncate_length", def.Output.TruncateLength)
	v.SetDefault("author", def.Author)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return &Loader{v: v}
}

// Load reads configuration from the first config file found, then applies
// environment overrides. Missing config files are not an error.
func (l *Loader) Load() (*Config, error) {
	path, err := findConfigFile()
	if err != nil {
		return nil, err
	}
	if path != "" {
		l.v.SetConfigFile(path)
		if err := l.v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}
	return l.unmarshal()
}

// LoadFromFile reads configuration from path. The format is taken from the
// file extension (yaml, json, toml).
func (l *Loader) LoadFromFile(path string) (*Config, error) {
	l.v.SetConfigFile(path)
	if err := l.v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	return l.unmarshal()
}

func (l *Loader) unmarshal() (*Config, error) {
	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return &cfg, nil
}

// findConfigFile returns the highest priority config file that exists, or ""
// when there is none. An explicit PLACEMENTWIZ_CONFIG_PATH is returned even
// if it does not exist so the read reports it.
func findConfigFile() (string, error) {
	if p := os.Getenv(ConfigPathEnv); p != "" {
		return p, nil
	}

	candidates := []string{LocalConfigFile}
	if userPath, err := DefaultConfigPath(); err == nil {
		candidates = append([]string{userPath}, candidates...)
	}

	for _, p := range candidates {
		_, err := os.Stat(p)
		if err == nil {
			return p, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("failed to check config %s: %w", p, err)
		}
	}
	return "", nil
}

// ConfigDir returns the placementwiz directory under the user config dir.
func ConfigDir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate user config dir: %w", err)
	}
	return filepath.Join(dir, appName), nil
}

// DefaultConfigPath returns the user-level config file path.
func DefaultConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}
