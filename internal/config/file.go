package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/Alfex4936/kanacheck/internal/parse"
)

// FileConfig represents the CLI's TOML configuration file.
type FileConfig struct {
	Check CheckConfig `toml:"check"`
}

// CheckConfig maps the [check] table. Unset keys stay nil so that
// flags given on the command line win.
type CheckConfig struct {
	Allow      any     `toml:"allow"`
	StrictMode *bool   `toml:"strict-mode"`
	AllowFile  *string `toml:"allow-file"`
	AllowURL   *string `toml:"allow-url"`
}

// AllowList validates the allow key. nil means the key is absent.
func (c CheckConfig) AllowList() ([]string, error) {
	list, err := parse.AllowList(c.Allow)
	if err != nil {
		return nil, fmt.Errorf("[check] allow: %w", err)
	}
	return list, nil
}

// LoadFile reads a TOML config from path. Missing file is not an error.
func LoadFile(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if _, err := cfg.Check.AllowList(); err != nil {
		return FileConfig{}, err
	}
	return cfg, nil
}

// XDGConfigHome returns the XDG config home or a default fallback.
func XDGConfigHome() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".config")
}

// DefaultConfigPath returns the default TOML config path.
func DefaultConfigPath() string {
	return filepath.Join(XDGConfigHome(), "kanacheck", "config.toml")
}
