package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/kyleking/gh-runwatch/internal/config"
)

func TestLoadFrom_ValidConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")

	content := `repos:
  - acme/widgets
  - acme/gizmos
poll_seconds: 15
log_level: debug
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := config.LoadFrom(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(cfg.Repos) != 2 || cfg.Repos[0] != "acme/widgets" {
		t.Errorf("repos: got %v", cfg.Repos)
	}

	if cfg.Interval() != 15*time.Second {
		t.Errorf("interval: got %v, want 15s", cfg.Interval())
	}

	if cfg.LogLevel != "debug" {
		t.Errorf("log level: got %q, want debug", cfg.LogLevel)
	}

	if cfg.LogFile == "" {
		t.Error("expected default log file to be applied")
	}
}

func TestLoadFrom_MissingFileReturnsDefaults(t *testing.T) {
	dir := t.TempDir()

	cfg, err := config.LoadFrom(filepath.Join(dir, "nope.yml"))
	if err != nil {
		t.Fatalf("unexpected error for missing file: %v", err)
	}

	if len(cfg.Repos) != 0 {
		t.Errorf("repos: got %v, want empty", cfg.Repos)
	}

	if cfg.Interval() != 30*time.Second {
		t.Errorf("interval: got %v, want default 30s", cfg.Interval())
	}
}

func TestLoadFrom_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")

	if err := os.WriteFile(path, []byte("repos: [unclosed"), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	if _, err := config.LoadFrom(path); err == nil {
		t.Error("expected error for malformed YAML")
	}
}

func TestLoadFrom_ZeroIntervalDefaulted(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")

	if err := os.WriteFile(path, []byte("poll_seconds: 0\n"), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := config.LoadFrom(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.PollSeconds != config.DefaultPollSeconds {
		t.Errorf("poll seconds: got %d, want %d", cfg.PollSeconds, config.DefaultPollSeconds)
	}
}

func TestSaveTo_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.yml")

	original := &config.Config{
		Repos:       []string{"acme/widgets"},
		PollSeconds: 45,
		LogFile:     "/tmp/runwatch.log",
		LogLevel:    "warn",
	}

	if err := original.SaveTo(path); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := config.LoadFrom(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if len(loaded.Repos) != 1 || loaded.Repos[0] != "acme/widgets" {
		t.Errorf("repos: got %v", loaded.Repos)
	}

	if loaded.PollSeconds != 45 || loaded.LogLevel != "warn" || loaded.LogFile != "/tmp/runwatch.log" {
		t.Errorf("unexpected loaded config: %+v", loaded)
	}
}
