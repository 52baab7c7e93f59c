package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// fileConfig mirrors the optional config file at
// ~/.config/opendota/config.toml. Every field may be omitted; command-line
// flags take precedence over file values, and the file takes precedence
// over environment variables.
//
// Example:
//
//	api_key = "00000000-0000-0000-0000-000000000000"
//	auth_method = "header"
//	min_interval = "3s"
//
//	[fantasy]
//	kills = 0.5
type fileConfig struct {
	APIKey      string             `toml:"api_key"`
	AuthMethod  string             `toml:"auth_method"` // "header" or "query"
	BaseURL     string             `toml:"base_url"`
	CacheDir    string             `toml:"cache_dir"`
	MinInterval duration           `toml:"min_interval"`
	Timeout     duration           `toml:"timeout"`
	Fantasy     map[string]float64 `toml:"fantasy"`
}

// duration decodes TOML strings like "3s" or "500ms".
type duration struct {
	time.Duration
}

func (d *duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// configPath returns the config file location using XDG standard
// (~/.config/opendota/config.toml).
func configPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// readConfigFile parses the config file at path. A missing file is not an
// error and yields a zero config.
func readConfigFile(path string) (fileConfig, error) {
	var cfg fileConfig
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return fileConfig{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func (cfg fileConfig) validate() error {
	switch cfg.AuthMethod {
	case "", "header", "query":
		return nil
	}
	return fmt.Errorf("invalid auth_method %q (use \"header\" or \"query\")", cfg.AuthMethod)
}
