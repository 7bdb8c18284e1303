// Package config persists the watched repository list and runtime settings
// between sessions.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	appDirName = "gh-runwatch"
	fileName   = "config.yml"
	logName    = "gh-runwatch.log"

	// DefaultPollSeconds is the poll interval applied when the config
	// does not set one.
	DefaultPollSeconds = 30
)

// Config is the on-disk configuration. Repos is the ordered watch list,
// mirrored back out whenever it changes so it survives restarts.
type Config struct {
	Repos       []string `yaml:"repos"`
	PollSeconds int      `yaml:"poll_seconds"`
	LogFile     string   `yaml:"log_file"`
	LogLevel    string   `yaml:"log_level"`
}

// Interval returns the poll interval as a duration.
func (c *Config) Interval() time.Duration {
	return time.Duration(c.PollSeconds) * time.Second
}

// Path returns the default config file location, honoring XDG_CONFIG_HOME.
func Path() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appDirName, fileName)
	}

	home, _ := os.UserHomeDir()

	return filepath.Join(home, ".config", appDirName, fileName)
}

// DefaultLogPath returns the default log file location, honoring
// XDG_STATE_HOME.
func DefaultLogPath() string {
	if xdg := os.Getenv("XDG_STATE_HOME"); xdg != "" {
		return filepath.Join(xdg, appDirName, logName)
	}

	home, _ := os.UserHomeDir()

	return filepath.Join(home, ".local", "state", appDirName, logName)
}

// Default returns a config with all defaults applied.
func Default() *Config {
	return &Config{
		PollSeconds: DefaultPollSeconds,
		LogFile:     DefaultLogPath(),
		LogLevel:    "info",
	}
}

// Load reads the config from the default location.
func Load() (*Config, error) {
	return LoadFrom(Path())
}

// LoadFrom reads the config from a specific path. A missing file is not an
// error: defaults are returned so first runs start with an empty watch list.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}

		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if config.PollSeconds <= 0 {
		config.PollSeconds = DefaultPollSeconds
	}

	if config.LogFile == "" {
		config.LogFile = DefaultLogPath()
	}

	if config.LogLevel == "" {
		config.LogLevel = "info"
	}

	return &config, nil
}

// Save writes the config to the default location.
func (c *Config) Save() error {
	return c.SaveTo(Path())
}

// SaveTo writes the config to a specific path, creating parent directories
// as needed.
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	return os.WriteFile(path, data, 0o644)
}
