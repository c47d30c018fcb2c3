// Package config handles loading and saving application configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const appName = "todo-tui"

// Config represents the application configuration.
type Config struct {
	Storage StorageConfig `yaml:"storage"`
	Sync    SyncConfig    `yaml:"sync"`
	UI      UIConfig      `yaml:"ui"`
	Log     LogConfig     `yaml:"log"`
}

// StorageConfig controls the local todo file.
type StorageConfig struct {
	// Path of the todo file. Empty means DataDir()/todos.json.
	Path string `yaml:"path,omitempty"`
}

// SyncConfig controls background syncing after each save.
type SyncConfig struct {
	URL          string        `yaml:"url,omitempty"`         // HTTP store; empty disables
	SQLitePath   string        `yaml:"sqlite_path,omitempty"` // SQLite mirror; empty disables
	Timeout      time.Duration `yaml:"timeout"`
	Retries      int           `yaml:"retries"`
	FlushTimeout time.Duration `yaml:"flush_timeout"`
}

// UIConfig holds UI-related settings.
type UIConfig struct {
	Title        string `yaml:"title"`
	NotifyErrors bool   `yaml:"notify_errors"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Path  string `yaml:"path,omitempty"`
	Level string `yaml:"level"`
}

// DefaultConfig returns a new Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Sync: SyncConfig{
			Timeout:      10 * time.Second,
			Retries:      2,
			FlushTimeout: 3 * time.Second,
		},
		UI: UIConfig{
			Title:        "Welcome to my cool todo app",
			NotifyErrors: true,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// ConfigDir returns the path to the configuration directory.
// Uses XDG_CONFIG_HOME or defaults to ~/.config/todo-tui/.
// Creates the directory if it doesn't exist.
func ConfigDir() (string, error) {
	return xdgDir("XDG_CONFIG_HOME", ".config")
}

// DataDir returns the path to the data directory.
// Uses XDG_DATA_HOME or defaults to ~/.local/share/todo-tui/.
// Creates the directory if it doesn't exist.
func DataDir() (string, error) {
	return xdgDir("XDG_DATA_HOME", filepath.Join(".local", "share"))
}

func xdgDir(env, fallback string) (string, error) {
	base := os.Getenv(env)
	if base == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		base = filepath.Join(homeDir, fallback)
	}

	dir := filepath.Join(base, appName)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	return dir, nil
}

// ConfigPath returns the full path to the configuration file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load reads the configuration from the config file.
// If the file doesn't exist, returns a default configuration.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom reads the configuration at path. Missing fields keep their defaults.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate rejects settings that cannot work.
func (c *Config) Validate() error {
	if c.Sync.Timeout <= 0 {
		return fmt.Errorf("sync.timeout must be positive, got %s", c.Sync.Timeout)
	}
	if c.Sync.FlushTimeout <= 0 {
		return fmt.Errorf("sync.flush_timeout must be positive, got %s", c.Sync.FlushTimeout)
	}
	if c.Sync.Retries < 0 {
		return fmt.Errorf("sync.retries must not be negative")
	}
	return nil
}

// StoragePath returns the configured todo file path or the default one.
func (c *Config) StoragePath() (string, error) {
	if c.Storage.Path != "" {
		return c.Storage.Path, nil
	}
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "todos.json"), nil
}

// LogPath returns the configured log file path or the default one.
func (c *Config) LogPath() (string, error) {
	if c.Log.Path != "" {
		return c.Log.Path, nil
	}
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appName+".log"), nil
}

// HasRemoteSync returns true if any real remote syncer is configured.
func (c *Config) HasRemoteSync() bool {
	return c.Sync.URL != "" || c.Sync.SQLitePath != ""
}
