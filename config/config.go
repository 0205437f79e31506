// Package config loads the portal's YAML configuration, including the
// category layout the dashboard renders into.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"tool-portal/dashboard"
)

// DefaultPath is used when PORTAL_CONFIG is not set.
const DefaultPath = "portal.yaml"

type Config struct {
	Listen     string               `yaml:"listen"`
	LogLevel   string               `yaml:"log_level"`
	Storage    StorageConfig        `yaml:"storage"`
	Categories []dashboard.Category `yaml:"categories"`
}

type StorageConfig struct {
	Driver   string        `yaml:"driver"`
	Path     string        `yaml:"path"`
	CacheTTL time.Duration `yaml:"cache_ttl"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Listen:   "127.0.0.1:8080",
		LogLevel: "info",
		Storage: StorageConfig{
			Driver: "file",
			Path:   "./data/portal.json",
		},
		Categories: []dashboard.Category{
			{ID: "daily", Title: "Daily Tools", MaxTools: 8},
			{ID: "reference", Title: "Reference", MaxTools: 8},
			{ID: "admin", Title: "Admin", MaxTools: 6},
		},
	}
}

// Load reads path over the defaults, then applies environment overrides:
// PORT replaces the listen port and PORTAL_DATA the storage path. A missing
// file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, err
	}

	if port := os.Getenv("PORT"); port != "" {
		host := cfg.Listen
		if i := strings.LastIndex(host, ":"); i >= 0 {
			host = host[:i]
		}
		cfg.Listen = host + ":" + port
	}
	if dataPath := os.Getenv("PORTAL_DATA"); dataPath != "" {
		cfg.Storage.Path = dataPath
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the layout: category ids must be non-empty and unique and
// limits must not be negative.
func (c *Config) Validate() error {
	seen := make(map[string]bool, len(c.Categories))
	for i, cat := range c.Categories {
		if cat.ID == "" {
			return fmt.Errorf("category %d: id is required", i)
		}
		if seen[cat.ID] {
			return fmt.Errorf("category %q: duplicate id", cat.ID)
		}
		if cat.MaxTools < 0 {
			return fmt.Errorf("category %q: max_tools must not be negative", cat.ID)
		}
		seen[cat.ID] = true
	}
	return nil
}

// Level maps LogLevel to a slog level, defaulting to info.
func (c *Config) Level() slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return l
}
