package storage

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/nikbrunner/sites/internal/model"
)

// Storage backends for preferences.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// EnvPrefix is the prefix for environment overrides, e.g. SITES_CATALOG.
const EnvPrefix = "SITES_"

// Config holds application configuration.
type Config struct {
	Catalog             string   `koanf:"catalog" yaml:"catalog"`
	Storage             string   `koanf:"storage" yaml:"storage"`
	FaviconURL          string   `koanf:"favicon_url" yaml:"favicon_url"`
	CheckExcludeDomains []string `koanf:"check_exclude_domains" yaml:"check_exclude_domains"`
	CheckConcurrency    int      `koanf:"check_concurrency" yaml:"check_concurrency"`
	CheckRateLimit      float64  `koanf:"check_rate_limit" yaml:"check_rate_limit"`
	DefaultSort         string   `koanf:"default_sort" yaml:"default_sort"`
	LogLevel            string   `koanf:"log_level" yaml:"log_level"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Catalog:             "assets/data.json",
		Storage:             BackendJSON,
		FaviconURL:          model.DefaultFaviconURL,
		CheckExcludeDomains: []string{"github.com", "gitlab.com"},
		CheckConcurrency:    10,
		CheckRateLimit:      2,
		DefaultSort:         string(model.SortDefault),
		LogLevel:            "info",
	}
}

// LoadConfig reads config from the YAML file, then overlays SITES_*
// environment variables. Creates the file with defaults if it doesn't exist.
func LoadConfig(path string) (*Config, error) {
	k := koanf.New(".")
	config := DefaultConfig()

	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if os.IsNotExist(err) {
		// Non-fatal: defaults still apply if the file can't be written
		_ = SaveConfig(path, &config)
	} else {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	if err := k.Load(env.ProviderWithValue(EnvPrefix, ".", envValue), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", &config); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	// Apply defaults for emptied fields
	defaults := DefaultConfig()
	if config.Catalog == "" {
		config.Catalog = defaults.Catalog
	}
	if config.Storage == "" {
		config.Storage = defaults.Storage
	}
	if config.FaviconURL == "" {
		config.FaviconURL = defaults.FaviconURL
	}
	if config.DefaultSort == "" {
		config.DefaultSort = defaults.DefaultSort
	}
	if config.CheckConcurrency <= 0 {
		config.CheckConcurrency = defaults.CheckConcurrency
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// listKeys are config keys given as comma-separated lists in the environment.
var listKeys = map[string]bool{
	"check_exclude_domains": true,
}

// envValue maps SITES_FOO_BAR to foo_bar, splitting list values on commas.
func envValue(key, value string) (string, interface{}) {
	key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
	if !listKeys[key] {
		return key, value
	}

	items := []string{}
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return key, items
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	switch c.Storage {
	case BackendJSON, BackendSQLite:
	default:
		return fmt.Errorf("invalid storage %q: must be one of json, sqlite", c.Storage)
	}
	if model.ParseSortMode(c.DefaultSort) != model.SortMode(c.DefaultSort) {
		return fmt.Errorf("invalid default_sort %q: must be one of default, az, za", c.DefaultSort)
	}
	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// SaveConfig writes config to the YAML file.
// Creates the directory if it doesn't exist.
func SaveConfig(path string, config *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := yamlv3.Marshal(config)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}

	return os.WriteFile(path, data, 0644)
}

// ParseLogLevel maps a config value to a slog level. Empty means info.
func ParseLogLevel(s string) (slog.Level, error) {
	if s == "" {
		return slog.LevelInfo, nil
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("invalid log_level %q: %w", s, err)
	}
	return level, nil
}

// DefaultConfigFilePath returns the default config path: ~/.config/sites/config.yml
func DefaultConfigFilePath() (string, error) {
	dir, err := DefaultConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yml"), nil
}

// OpenKV opens the preferences backend selected by the config.
// The returned close function is never nil.
func OpenKV(config *Config, logger *slog.Logger) (KV, func() error, error) {
	switch config.Storage {
	case BackendSQLite:
		path, err := DefaultSQLitePath()
		if err != nil {
			return nil, nil, err
		}
		s, err := NewSQLiteStorage(path)
		if err != nil {
			return nil, nil, fmt.Errorf("open preferences database: %w", err)
		}
		return s, s.Close, nil
	default:
		path, err := DefaultJSONPath()
		if err != nil {
			return nil, nil, err
		}
		return NewJSONStorage(path, logger), func() error { return nil }, nil
	}
}
