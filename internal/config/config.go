// Package config loads the search tool's on-disk configuration, following
// the teacher's pattern of a TOML file under a dotfile directory in the
// user's home, parsed with pelletier/go-toml/v2.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration.
type Config struct {
	Search SearchConfig `toml:"search"`
	Log    LogConfig    `toml:"log"`
	Data   DataConfig   `toml:"data"`
}

// SearchConfig bounds and tunes the search engine itself.
type SearchConfig struct {
	DefaultMaxTurns int    `toml:"default_max_turns"` // turn budget when a trial doesn't specify one
	MaxStates       int64  `toml:"max_states"`        // global search meter state-count cap
	MaxWall         string `toml:"max_wall"`           // global search meter wall-clock cap (e.g. "30s")
	TrackedColors   string `toml:"tracked_colors"`     // e.g. "WUBRG"; narrows the mana algebra to a deck's colors
}

// LogConfig contains structured-logging settings.
type LogConfig struct {
	Level     string `toml:"level"`      // slog level: debug, info, warn, error
	JSON      bool   `toml:"json"`       // emit JSON-handler logs instead of text
	AddSource bool   `toml:"add_source"` // include source file:line in log records
}

// DataConfig locates the card oracle database and trial-result store.
type DataConfig struct {
	CardDataPath string `toml:"card_data_path"` // override for the embedded card database; empty uses the embedded copy
	DBPath       string `toml:"db_path"`        // sqlite database for trial results
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Search: SearchConfig{
			DefaultMaxTurns: 6,
			MaxStates:       200_000,
			MaxWall:         "30s",
			TrackedColors:   "WUBRG",
		},
		Log: LogConfig{
			Level:     "info",
			JSON:      false,
			AddSource: false,
		},
		Data: DataConfig{
			CardDataPath: "",
			DBPath:       "",
		},
	}
}

// configDir returns ~/.amulet-search, creating it if necessary.
func configDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}
	dir := filepath.Join(homeDir, ".amulet-search")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create config directory: %w", err)
	}
	return dir, nil
}

func configPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// DefaultDBPath returns the trial-result database path used when the
// config and CLI both leave it unset.
func DefaultDBPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "results.db"), nil
}

// Load loads the configuration from disk. Returns the default config if the
// file doesn't exist.
func Load() (*Config, error) {
	path, err := configPath()
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}
	return config, nil
}

// Save writes the configuration to disk.
func (c *Config) Save() error {
	path, err := configPath()
	if err != nil {
		return err
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Validate validates the configuration values.
func (c *Config) Validate() error {
	if _, err := time.ParseDuration(c.Search.MaxWall); err != nil {
		return fmt.Errorf("invalid search.max_wall %q: %w", c.Search.MaxWall, err)
	}
	if c.Search.MaxStates < 0 {
		return fmt.Errorf("search.max_states cannot be negative: %d", c.Search.MaxStates)
	}
	if c.Search.DefaultMaxTurns <= 0 {
		return fmt.Errorf("search.default_max_turns must be positive: %d", c.Search.DefaultMaxTurns)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log.level %q", c.Log.Level)
	}
	return nil
}

// MaxWallDuration returns the configured wall-clock search cap as a
// time.Duration.
func (c *Config) MaxWallDuration() (time.Duration, error) {
	return time.ParseDuration(c.Search.MaxWall)
}
