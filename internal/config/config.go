// Package config loads the TOML configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	DefaultConfigFileName = "config.toml"

	BackendSQLite = "sqlite"
	BackendFile   = "file"
	BackendMemory = "memory"

	ViewWeek  = "week"
	ViewLists = "lists"
)

// Env variables that override the file
const (
	EnvConfig   = "WEEKLY_CONFIG"
	EnvDataDir  = "WEEKLY_DATA_DIR"
	EnvBackend  = "WEEKLY_BACKEND"
	EnvLogLevel = "WEEKLY_LOG_LEVEL"
)

type Log struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
	// File is relative to the data dir unless absolute
	File string `toml:"file"`
}

type Config struct {
	// DataDir defaults to ~/.local/share/weekly when empty
	DataDir       string `toml:"data_dir"`
	Backend       string `toml:"backend"`
	SQLiteDriver  string `toml:"sqlite_driver"`
	Theme         string `toml:"theme"`
	StartView     string `toml:"start_view"`
	Notifications bool   `toml:"notifications"`
	Log           Log    `toml:"log"`
}

// DefaultConfigPath is $WEEKLY_CONFIG or config.toml under the user config dir
func DefaultConfigPath() (string, error) {
	if p := os.Getenv(EnvConfig); p != "" {
		return p, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get config directory: %w", err)
	}
	return filepath.Join(dir, "weekly", DefaultConfigFileName), nil
}

// Default returns the settings used when no file exists
func Default() Config {
	return Config{
		Backend:       BackendSQLite,
		SQLiteDriver:  "sqlite3",
		Theme:         "nord",
		StartView:     ViewWeek,
		Notifications: false,
		Log: Log{
			Level:  "info",
			Format: "text",
			File:   "weekly.log",
		},
	}
}

// Load reads path, applies env overrides and validates the result
func Load(path string) (Config, error) {
	cfg, err := LoadOrCreate(path)
	if err != nil {
		return cfg, err
	}
	cfg.ApplyEnv(os.Getenv)
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// LoadOrCreate reads path, writing the defaults there first if it is missing.
// Keys absent from the file keep their default values.
func LoadOrCreate(path string) (Config, error) {
	cfg := Default()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := write(path, cfg); err != nil {
			return cfg, err
		}
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func write(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// ApplyEnv overrides fields from the environment
func (c *Config) ApplyEnv(getenv func(string) string) {
	if v := getenv(EnvDataDir); v != "" {
		c.DataDir = v
	}
	if v := getenv(EnvBackend); v != "" {
		c.Backend = strings.ToLower(v)
	}
	if v := getenv(EnvLogLevel); v != "" {
		c.Log.Level = v
	}
}

// Validate rejects values nothing downstream understands
func (c Config) Validate() error {
	switch c.Backend {
	case BackendSQLite, BackendFile, BackendMemory:
	default:
		return fmt.Errorf("unknown backend %q", c.Backend)
	}
	switch c.SQLiteDriver {
	case "sqlite3", "sqlite":
	default:
		return fmt.Errorf("unknown sqlite_driver %q", c.SQLiteDriver)
	}
	switch c.StartView {
	case ViewWeek, ViewLists:
	default:
		return fmt.Errorf("unknown start_view %q", c.StartView)
	}
	return nil
}

// LogPath resolves the log file against dataDir
func (c Config) LogPath(dataDir string) string {
	if c.Log.File == "" || filepath.IsAbs(c.Log.File) {
		return c.Log.File
	}
	return filepath.Join(dataDir, c.Log.File)
}
