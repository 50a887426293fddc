// Package config handles configuration loading from files, defaults, and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/javiermolinar/almanac/internal/dateutil"
	"github.com/javiermolinar/almanac/internal/locale"
	"github.com/javiermolinar/almanac/internal/tui/theme"
	"github.com/pelletier/go-toml/v2"
)

// Calendar views.
const (
	ViewMonth      = "month"
	ViewWeek       = "week"
	ViewExpandable = "expandable"
)

// Views lists the known view names in cycle order.
func Views() []string {
	return []string{ViewMonth, ViewWeek, ViewExpandable}
}

// Config holds the application configuration.
type Config struct {
	Calendar CalendarConfig `toml:"calendar"`
	Storage  StorageConfig  `toml:"storage"`
	UI       UIConfig       `toml:"ui"`
}

// CalendarConfig holds the initial calendar state.
type CalendarConfig struct {
	Date      string `toml:"date"`       // YYYY-MM-DD, empty means today
	MinDate   string `toml:"min_date"`   // YYYY-MM-DD, empty means unbounded
	MaxDate   string `toml:"max_date"`   // YYYY-MM-DD, empty means unbounded
	WeekStart string `toml:"week_start"` // e.g., "sunday", "monday"
	Locale    string `toml:"locale"`     // BCP 47 tag, e.g., "en", "ko"
}

// StorageConfig holds database settings.
type StorageConfig struct {
	DBPath string `toml:"db_path"`
}

// UIConfig holds TUI settings.
type UIConfig struct {
	Theme           string `toml:"theme"` // "mocha", "macchiato", "frappe", "latte", "light"
	View            string `toml:"view"`  // "month", "week", "expandable"
	HideHeader      bool   `toml:"hide_header"`
	TrackDebounceMS int    `toml:"track_debounce_ms"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Calendar: CalendarConfig{
			WeekStart: "sunday",
			Locale:    locale.Default,
		},
		Storage: StorageConfig{
			DBPath: defaultDBPath(),
		},
		UI: UIConfig{
			Theme:           "frappe",
			View:            ViewMonth,
			TrackDebounceMS: 500,
		},
	}
}

// defaultDBPath returns the default database path.
func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "almanac.db"
	}
	return filepath.Join(home, ".local", "share", "almanac", "almanac.db")
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "almanac", "config.toml")
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
	// Calendar overrides
	if v := os.Getenv("ALMANAC_DATE"); v != "" {
		cfg.Calendar.Date = v
	}
	if v := os.Getenv("ALMANAC_MIN_DATE"); v != "" {
		cfg.Calendar.MinDate = v
	}
	if v := os.Getenv("ALMANAC_MAX_DATE"); v != "" {
		cfg.Calendar.MaxDate = v
	}
	if v := os.Getenv("ALMANAC_WEEK_START"); v != "" {
		cfg.Calendar.WeekStart = v
	}
	if v := os.Getenv("ALMANAC_LOCALE"); v != "" {
		cfg.Calendar.Locale = v
	}

	// Storage overrides
	if v := os.Getenv("ALMANAC_DB_PATH"); v != "" {
		cfg.Storage.DBPath = v
	}

	// UI overrides
	if v := os.Getenv("ALMANAC_UI_THEME"); v != "" {
		cfg.UI.Theme = v
	}
	if v := os.Getenv("ALMANAC_UI_VIEW"); v != "" {
		cfg.UI.View = v
	}
	if v := os.Getenv("ALMANAC_UI_HIDE_HEADER"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("ALMANAC_UI_HIDE_HEADER: %w", err)
		}
		cfg.UI.HideHeader = b
	}
	if v := os.Getenv("ALMANAC_TRACK_DEBOUNCE_MS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("ALMANAC_TRACK_DEBOUNCE_MS: %w", err)
		}
		cfg.UI.TrackDebounceMS = n
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
	if c.Calendar.Date != "" {
		if _, err := dateutil.ParseDate(c.Calendar.Date); err != nil {
			return fmt.Errorf("date: %w", err)
		}
	}
	if _, err := c.Bounds(); err != nil {
		return err
	}
	if _, ok := dateutil.WeekdayByName(c.Calendar.WeekStart); !ok {
		return fmt.Errorf("invalid week_start: %s", c.Calendar.WeekStart)
	}
	if _, err := locale.Parse(c.Calendar.Locale); err != nil {
		return err
	}

	if !theme.IsAvailable(c.UI.Theme) {
		return fmt.Errorf("unknown theme %q (available: %s)", c.UI.Theme, strings.Join(theme.Available(), ", "))
	}
	if !isValidView(c.UI.View) {
		return fmt.Errorf("unknown view %q (available: %s)", c.UI.View, strings.Join(Views(), ", "))
	}
	if c.UI.TrackDebounceMS < 0 {
		return errors.New("track_debounce_ms must not be negative")
	}

	if c.Storage.DBPath == "" {
		return errors.New("db_path must be set")
	}
	return nil
}

func isValidView(v string) bool {
	for _, name := range Views() {
		if name == strings.ToLower(v) {
			return true
		}
	}
	return false
}

// Bounds returns the configured selectable range.
func (c *Config) Bounds() (dateutil.Bounds, error) {
	b, err := dateutil.NewBounds(c.Calendar.MinDate, c.Calendar.MaxDate)
	if err != nil {
		return dateutil.Bounds{}, fmt.Errorf("min_date/max_date: %w", err)
	}
	return b, nil
}

// WeekStartDay returns the configured first column of the grid.
func (c *Config) WeekStartDay() time.Weekday {
	wd, _ := dateutil.WeekdayByName(c.Calendar.WeekStart)
	return wd
}

// TrackDebounce returns the agenda tracking window.
func (c *Config) TrackDebounce() time.Duration {
	return time.Duration(c.UI.TrackDebounceMS) * time.Millisecond
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
