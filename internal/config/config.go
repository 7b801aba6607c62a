// Package config handles configuration loading from files, defaults, and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Config holds the application configuration.
type Config struct {
	Board   BoardConfig   `toml:"board"`
	Roster  RosterConfig  `toml:"roster"`
	Sources []FeedConfig  `toml:"sources"`
	Storage StorageConfig `toml:"storage"`
	UI      UIConfig      `toml:"ui"`
}

// BoardConfig holds grid display and refresh settings.
type BoardConfig struct {
	PageSize       int `toml:"page_size"`       // resource columns per page
	DayStartHour   int `toml:"day_start_hour"`  // e.g., 7
	DayEndHour     int `toml:"day_end_hour"`    // e.g., 18
	RefreshMinutes int `toml:"refresh_minutes"` // data refresh interval
}

// RosterConfig lists the resources expected on the board. IDs can be
// given inline, fetched from a URL returning a JSON array of strings,
// or both.
type RosterConfig struct {
	IDs []string `toml:"ids"`
	URL string   `toml:"url"`
}

// FeedConfig maps one resource identifier to its ICS feed.
type FeedConfig struct {
	ID  string `toml:"id"`
	URL string `toml:"url"`
}

// StorageConfig holds database settings.
type StorageConfig struct {
	DBPath string `toml:"db_path"`
}

// UIConfig holds TUI settings.
type UIConfig struct {
	Theme string `toml:"theme"` // "mocha", "macchiato", "frappe", "latte"
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Board: BoardConfig{
			PageSize:       10,
			DayStartHour:   7,
			DayEndHour:     18,
			RefreshMinutes: 5,
		},
		Storage: StorageConfig{
			DBPath: defaultDBPath(),
		},
		UI: UIConfig{
			Theme: "frappe",
		},
	}
}

// defaultDBPath returns the default database path.
func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "dulcinea.db"
	}
	return filepath.Join(home, ".local", "share", "dulcinea", "dulcinea.db")
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "dulcinea", "config.toml")
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

	// Apply environment variable overrides
	applyEnvOverrides(cfg)

	// Expand paths
	cfg.Storage.DBPath = expandPath(cfg.Storage.DBPath)

	// Validate
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
func applyEnvOverrides(cfg *Config) {
	if v, ok := envInt("DULCINEA_PAGE_SIZE"); ok {
		cfg.Board.PageSize = v
	}
	if v, ok := envInt("DULCINEA_DAY_START_HOUR"); ok {
		cfg.Board.DayStartHour = v
	}
	if v, ok := envInt("DULCINEA_DAY_END_HOUR"); ok {
		cfg.Board.DayEndHour = v
	}
	if v, ok := envInt("DULCINEA_REFRESH_MINUTES"); ok {
		cfg.Board.RefreshMinutes = v
	}
	if v := os.Getenv("DULCINEA_ROSTER_URL"); v != "" {
		cfg.Roster.URL = v
	}
	if v := os.Getenv("DULCINEA_DB_PATH"); v != "" {
		cfg.Storage.DBPath = v
	}
	if v := os.Getenv("DULCINEA_UI_THEME"); v != "" {
		cfg.UI.Theme = v
	}
}

// envInt reads an integer environment variable. Unset or malformed
// values are ignored.
func envInt(key string) (int, bool) {
	v := os.Getenv(key)
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
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
	if c.Board.PageSize < 1 {
		return errors.New("page_size must be at least 1")
	}
	if c.Board.DayStartHour < 0 || c.Board.DayStartHour > 23 {
		return fmt.Errorf("day_start_hour must be in 0..23, got %d", c.Board.DayStartHour)
	}
	if c.Board.DayEndHour < 1 || c.Board.DayEndHour > 24 {
		return fmt.Errorf("day_end_hour must be in 1..24, got %d", c.Board.DayEndHour)
	}
	if c.Board.DayStartHour >= c.Board.DayEndHour {
		return errors.New("day_start_hour must be before day_end_hour")
	}
	if c.Board.RefreshMinutes < 1 {
		return errors.New("refresh_minutes must be at least 1")
	}

	seen := make(map[string]bool, len(c.Sources))
	for _, s := range c.Sources {
		if s.ID == "" {
			return errors.New("every source needs an id")
		}
		if s.URL == "" {
			return fmt.Errorf("source %q needs a url", s.ID)
		}
		if seen[s.ID] {
			return fmt.Errorf("duplicate source id %q", s.ID)
		}
		seen[s.ID] = true
	}

	if c.Storage.DBPath == "" {
		return errors.New("db_path must be set")
	}
	return nil
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
