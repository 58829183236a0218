package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// EnvConfig names a config file when --config is not given.
const EnvConfig = "DUNEHALL_CONFIG"

// Load loads configuration with priority: defaults < file < flags, and
// returns the file it read ("" when none was found).
func Load() (*Config, string, error) {
	return load(cli)
}

func load(o overrides) (*Config, string, error) {
	cfg := Default()

	path := o.config
	if path == "" {
		path = os.Getenv(EnvConfig)
	}
	if path == "" {
		path = findConfigFile()
	}
	if path != "" {
		if err := loadFromFile(cfg, path); err != nil {
			return nil, "", fmt.Errorf("loading config from %s: %w", path, err)
		}
	}

	o.apply(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, path, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, path, nil
}

// findConfigFile returns the first existing file among ./config.yaml and
// the user config directory.
func findConfigFile() string {
	for _, path := range []string{
		"config.yaml",
		filepath.Join(ConfigDir(), "config.yaml"),
	} {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ConfigDir returns the OS-appropriate config directory.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "Dunehall")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "Dunehall")
	default: // Linux and others
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "dunehall")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "dunehall")
	}
}

// loadFromFile merges the YAML file at path over cfg.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return Parse(cfg, data)
}

// Parse merges YAML data over cfg. Unknown keys are errors, so a typo in a
// hand-edited file is reported rather than ignored.
func Parse(cfg *Config, data []byte) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
