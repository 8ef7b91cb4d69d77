package config

import (
	"os"
	"path/filepath"
	"testing"
)

func withTempConfigDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	return dir
}

func TestLoad_DefaultsWhenMissing(t *testing.T) {
	withTempConfigDir(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Appearance.Theme != "salmon-dark" {
		t.Errorf("default theme = %q, want salmon-dark", cfg.Appearance.Theme)
	}
	if cfg.General.DataPath != "" {
		t.Errorf("default data path = %q, want empty", cfg.General.DataPath)
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	withTempConfigDir(t)

	cfg := DefaultConfig()
	cfg.General.DataPath = "/data/fomo.csv"
	cfg.Appearance.Theme = "campus"
	cfg.Synonyms = map[string]string{"Fakultas Tehnik": "Fakultas Teknik"}

	if err := Save(cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.General.DataPath != "/data/fomo.csv" {
		t.Errorf("DataPath = %q", loaded.General.DataPath)
	}
	if loaded.Appearance.Theme != "campus" {
		t.Errorf("Theme = %q", loaded.Appearance.Theme)
	}
	if loaded.Synonyms["Fakultas Tehnik"] != "Fakultas Teknik" {
		t.Errorf("Synonyms = %v", loaded.Synonyms)
	}
}

func TestLoad_BadTOML(t *testing.T) {
	dir := withTempConfigDir(t)
	path := filepath.Join(dir, "fomodash", "config.toml")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("not [valid toml"), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(); err == nil {
		t.Error("expected error for malformed config")
	}
}

func TestEffectiveSynonyms(t *testing.T) {
	cfg := DefaultConfig()
	syn := EffectiveSynonyms(cfg)
	if syn["Fakultas Imu Sosial Budaya Dan Politik"] != "Fakultas Ilmu Sosial Budaya Dan Politik" {
		t.Error("built-in correction missing")
	}

	cfg.Synonyms = map[string]string{
		"Fakultas Imu Sosial Budaya Dan Politik": "Other",
		"Custom": "Mapped",
	}
	syn = EffectiveSynonyms(cfg)
	if syn["Fakultas Imu Sosial Budaya Dan Politik"] != "Other" {
		t.Error("user entry should win over the built-in")
	}
	if syn["Custom"] != "Mapped" {
		t.Error("user entry missing")
	}
}

func TestDataPath_EnvWins(t *testing.T) {
	t.Setenv("FOMODASH_DATA", "/env/fomo.csv")
	cfg := DefaultConfig()
	cfg.General.DataPath = "/cfg/fomo.csv"
	if got := DataPath(cfg); got != "/env/fomo.csv" {
		t.Errorf("DataPath = %q, want env value", got)
	}

	t.Setenv("FOMODASH_DATA", "")
	if got := DataPath(cfg); got != "/cfg/fomo.csv" {
		t.Errorf("DataPath = %q, want config value", got)
	}
}
