// Package config loads and persists the fomodash TOML configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds all fomodash configuration.
type Config struct {
	General    GeneralConfig     `toml:"general"`
	Appearance AppearanceConfig  `toml:"appearance"`
	Synonyms   map[string]string `toml:"synonyms,omitempty"`
}

// GeneralConfig holds general preferences.
type GeneralConfig struct {
	DataPath string `toml:"data_path,omitempty"`
	NoCache  bool   `toml:"no_cache,omitempty"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// defaultSynonyms folds known misspellings in the survey's free-text
// faculty answers onto their canonical form.
var defaultSynonyms = map[string]string{
	"Fakultas Imu Sosial Budaya Dan Politik": "Fakultas Ilmu Sosial Budaya Dan Politik",
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Appearance: AppearanceConfig{
			Theme: "salmon-dark",
		},
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "fomodash")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "fomodash")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(ConfigPath())
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	dir := ConfigDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(ConfigPath(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// EffectiveSynonyms merges the built-in corrections with the user's
// [synonyms] table; user entries win on conflict.
func EffectiveSynonyms(cfg Config) map[string]string {
	out := make(map[string]string, len(defaultSynonyms)+len(cfg.Synonyms))
	for k, v := range defaultSynonyms {
		out[k] = v
	}
	for k, v := range cfg.Synonyms {
		out[k] = v
	}
	return out
}

// DataPath returns the survey file path from env var or config, in that order.
func DataPath(cfg Config) string {
	if p := os.Getenv("FOMODASH_DATA"); p != "" {
		return p
	}
	return cfg.General.DataPath
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}
