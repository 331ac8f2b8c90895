package config

import (
	"embed"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

//go:embed default_config.yaml
var defaultConfigFS embed.FS

type CacheConfig struct {
	TTL        string `yaml:"ttl"`
	MaxEntries int    `yaml:"max_entries"`
}

type Config struct {
	APIKey   string      `yaml:"api_key"`
	BaseURL  string      `yaml:"base_url"`
	Language string      `yaml:"language"`
	Limit    int         `yaml:"limit"`
	Listen   string      `yaml:"listen"`
	Cache    CacheConfig `yaml:"cache"`
}

// Key returns the resolved API key (config or env var).
func (c *Config) Key() string {
	if c.APIKey != "" {
		return c.APIKey
	}
	return os.Getenv("NEWSDATA_API_KEY")
}

// CacheTTL parses the configured TTL, defaulting to 5 minutes.
func (c *Config) CacheTTL() time.Duration {
	d, err := time.ParseDuration(c.Cache.TTL)
	if err != nil || d <= 0 {
		return 5 * time.Minute
	}
	return d
}

// CacheMaxEntries returns the entry bound, defaulting to 64.
func (c *Config) CacheMaxEntries() int {
	if c.Cache.MaxEntries <= 0 {
		return 64
	}
	return c.Cache.MaxEntries
}

func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, "newsapp", "config.yaml")
}

func loadDefaults() (*Config, error) {
	data, err := defaultConfigFS.ReadFile("default_config.yaml")
	if err != nil {
		return nil, fmt.Errorf("reading embedded config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded config: %w", err)
	}
	return &cfg, nil
}

func Load(path string) (*Config, error) {
	defaults, err := loadDefaults()
	if err != nil {
		return nil, err
	}

	if path == "" {
		path = DefaultConfigPath()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Write defaults to config path on first run
			if err := writeDefaults(path); err != nil {
				// Non-fatal: just use embedded defaults
				return defaults, nil
			}
			return defaults, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	applyDefaults(&cfg, defaults)
	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func writeDefaults(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, _ := defaultConfigFS.ReadFile("default_config.yaml")
	return os.WriteFile(path, data, 0o644)
}

func applyDefaults(cfg, defaults *Config) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaults.BaseURL
	}
	if cfg.Language == "" {
		cfg.Language = defaults.Language
	}
	if cfg.Limit == 0 {
		cfg.Limit = defaults.Limit
	}
	if cfg.Listen == "" {
		cfg.Listen = defaults.Listen
	}
	if cfg.Cache.TTL == "" {
		cfg.Cache.TTL = defaults.Cache.TTL
	}
	if cfg.Cache.MaxEntries == 0 {
		cfg.Cache.MaxEntries = defaults.Cache.MaxEntries
	}
}

func validate(cfg *Config) error {
	if cfg.Limit < 1 || cfg.Limit > 100 {
		return fmt.Errorf("limit must be between 1 and 100, got %d", cfg.Limit)
	}
	u, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid base_url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("base_url scheme must be http or https, got %q", u.Scheme)
	}
	if cfg.Cache.TTL != "" {
		if d, err := time.ParseDuration(cfg.Cache.TTL); err != nil || d <= 0 {
			return fmt.Errorf("cache ttl must be a positive duration, got %q", cfg.Cache.TTL)
		}
	}
	if cfg.Cache.MaxEntries < 0 {
		return fmt.Errorf("cache max_entries must be positive, got %d", cfg.Cache.MaxEntries)
	}
	return nil
}
