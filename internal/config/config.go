// Package config handles configuration loading from files, defaults, and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/pelletier/go-toml/v2"

	"github.com/javiermolinar/weekendly/internal/db"
	"github.com/javiermolinar/weekendly/internal/plan"
)

// Config holds the application configuration.
type Config struct {
	Plan    PlanConfig    `toml:"plan"`
	LLM     LLMConfig     `toml:"llm"`
	Storage StorageConfig `toml:"storage"`
	UI      UIConfig      `toml:"ui"`
	Log     LogConfig     `toml:"log"`
}

// PlanConfig holds planner behavior settings.
type PlanConfig struct {
	ConflictMode string `toml:"conflict_mode"` // "start-slot" or "spanning"
	EmptyPool    string `toml:"empty_pool"`    // "error" or "skip"
}

// LLMConfig holds LLM provider settings.
type LLMConfig struct {
	Provider string `toml:"provider"` // "ollama", "openai", "lmstudio"
	Model    string `toml:"model"`
	BaseURL  string `toml:"base_url"` // empty uses the provider default
}

// StorageConfig holds snapshot storage settings.
type StorageConfig struct {
	Driver  string `toml:"driver"` // "sqlite" or "json"
	DBPath  string `toml:"db_path"`
	History int    `toml:"history"` // snapshots kept by the sqlite driver
}

// UIConfig holds CLI output settings.
type UIConfig struct {
	NoColor bool `toml:"no_color"`
}

// LogConfig holds log file settings.
type LogConfig struct {
	Level string `toml:"level"` // debug, info, warn, error
	Dir   string `toml:"dir"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Plan: PlanConfig{
			ConflictMode: plan.ModeStartSlot.String(),
			EmptyPool:    plan.PolicyError.String(),
		},
		LLM: LLMConfig{
			Provider: "ollama",
			Model:    "llama3.2",
			BaseURL:  "",
		},
		Storage: StorageConfig{
			Driver:  db.DriverSQLite,
			DBPath:  defaultDBPath(),
			History: db.DefaultHistory,
		},
		Log: LogConfig{
			Level: "warn",
			Dir:   defaultLogDir(),
		},
	}
}

// defaultDBPath returns the default database path.
func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "weekendly.db"
	}
	return filepath.Join(home, ".local", "share", "weekendly", "weekendly.db")
}

func defaultLogDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "logs"
	}
	return filepath.Join(home, ".local", "state", "weekendly")
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "weekendly", "config.toml")
}

// Load loads configuration from the default path, merging with defaults and env vars.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigPath())
}

// LoadFrom loads configuration from the specified path.
// It starts with defaults, overlays file config if it exists, then applies env overrides.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	// Try to load from file (not an error if it doesn't exist)
	if err := loadFromFile(path, cfg); err != nil {
		return nil, err
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	cfg.Storage.DBPath = expandPath(cfg.Storage.DBPath)
	cfg.Log.Dir = expandPath(cfg.Log.Dir)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// loadFromFile loads config from a file if it exists.
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // File doesn't exist, use defaults
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
// Environment variables take precedence over file config.
func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("WEEKENDLY_CONFLICT_MODE"); v != "" {
		cfg.Plan.ConflictMode = v
	}
	if v := os.Getenv("WEEKENDLY_EMPTY_POOL"); v != "" {
		cfg.Plan.EmptyPool = v
	}

	if v := os.Getenv("WEEKENDLY_LLM_PROVIDER"); v != "" {
		cfg.LLM.Provider = v
	}
	if v := os.Getenv("WEEKENDLY_LLM_MODEL"); v != "" {
		cfg.LLM.Model = v
	}
	if v := os.Getenv("WEEKENDLY_LLM_BASE_URL"); v != "" {
		cfg.LLM.BaseURL = v
	}

	if v := os.Getenv("WEEKENDLY_STORAGE_DRIVER"); v != "" {
		cfg.Storage.Driver = v
	}
	if v := os.Getenv("WEEKENDLY_DB_PATH"); v != "" {
		cfg.Storage.DBPath = v
	}
	if v := os.Getenv("WEEKENDLY_HISTORY"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("WEEKENDLY_HISTORY must be an integer, got %q", v)
		}
		cfg.Storage.History = n
	}

	if v := os.Getenv("WEEKENDLY_NO_COLOR"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("WEEKENDLY_NO_COLOR must be a boolean, got %q", v)
		}
		cfg.UI.NoColor = b
	}

	if v := os.Getenv("WEEKENDLY_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	return nil
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if _, err := plan.ParseMode(c.Plan.ConflictMode); err != nil {
		return fmt.Errorf("conflict_mode: %w", err)
	}
	if _, err := plan.ParsePolicy(c.Plan.EmptyPool); err != nil {
		return fmt.Errorf("empty_pool: %w", err)
	}

	switch strings.ToLower(c.Storage.Driver) {
	case "", db.DriverSQLite, db.DriverJSON:
	default:
		return fmt.Errorf("invalid storage driver: %s", c.Storage.Driver)
	}
	if c.Storage.DBPath == "" {
		return errors.New("db_path must be set")
	}
	if c.Storage.History < 0 {
		return errors.New("history cannot be negative")
	}

	if c.Log.Level != "" {
		if _, err := log.ParseLevel(c.Log.Level); err != nil {
			return fmt.Errorf("invalid log level: %s", c.Log.Level)
		}
	}
	return nil
}

// ConflictMode returns the configured conflict detection mode.
func (c *Config) ConflictMode() plan.Mode {
	m, _ := plan.ParseMode(c.Plan.ConflictMode)
	return m
}

// EmptyPoolPolicy returns the configured randomize policy.
func (c *Config) EmptyPoolPolicy() plan.Policy {
	p, _ := plan.ParsePolicy(c.Plan.EmptyPool)
	return p
}

// Save writes the configuration to the default path.
func (c *Config) Save() error {
	return c.SaveTo(DefaultConfigPath())
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
