// Package config loads dexview settings. Defaults are overlaid by an optional
// YAML file and then by environment variables, so containers can override
// single values without shipping a file.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the full dexview configuration.
type Config struct {
	Server ServerConfig `yaml:"server"`
	Source SourceConfig `yaml:"source"`
	View   ViewConfig   `yaml:"view"`
	Audio  AudioConfig  `yaml:"audio"`
	Log    LogConfig    `yaml:"log"`
}

// ServerConfig holds the HTTP server settings.
type ServerConfig struct {
	Port           string   `yaml:"port"`
	DBPath         string   `yaml:"db_path"`
	StaticDir      string   `yaml:"static_dir"` // built web shell, served at "/"
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// SourceConfig describes the remote read-only data source.
type SourceConfig struct {
	BaseURL string        `yaml:"base_url"`
	Limit   int           `yaml:"limit"`
	Timeout time.Duration `yaml:"timeout"` // per request; 0 disables
	// MaxConcurrent bounds in-flight detail fetches during a load. 0 means unbounded.
	MaxConcurrent int `yaml:"max_concurrent"`
}

// ViewConfig holds list page settings.
type ViewConfig struct {
	PageSize    int `yaml:"page_size"`
	NarrowWidth int `yaml:"narrow_width"` // viewports narrower than this get fewer page buttons
}

// AudioConfig selects the external program used to play cries.
type AudioConfig struct {
	Player []string `yaml:"player"`
}

// LogConfig controls the slog handler.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:           "8080",
			DBPath:         "./dexview.db",
			StaticDir:      "../frontend/dist",
			AllowedOrigins: []string{"http://localhost:*"},
		},
		Source: SourceConfig{
			BaseURL: "https://pokeapi.co/api/v2",
			Limit:   151,
			Timeout: 30 * time.Second,
		},
		View: ViewConfig{
			PageSize:    20,
			NarrowWidth: 640,
		},
		Audio: AudioConfig{
			Player: []string{"ffplay", "-nodisp", "-autoexit", "-loglevel", "quiet"},
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// defaultFiles are tried in order when no explicit path is given.
var defaultFiles = []string{"dexview.yaml", "dexview.yml"}

// Load reads the configuration. An explicit path must exist; without one the
// default file names are searched and a missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	var data []byte
	var err error

	if path != "" {
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else {
		for _, name := range defaultFiles {
			data, err = os.ReadFile(name)
			if err == nil {
				path = name
				break
			}
		}
	}

	if data != nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the loader and view model cannot work with.
func (c *Config) Validate() error {
	if c.Source.BaseURL == "" {
		return fmt.Errorf("source.base_url is required")
	}
	if c.Source.Limit < 1 {
		return fmt.Errorf("source.limit must be positive, got %d", c.Source.Limit)
	}
	if c.Source.MaxConcurrent < 0 {
		return fmt.Errorf("source.max_concurrent must not be negative")
	}
	if c.View.PageSize < 1 {
		return fmt.Errorf("view.page_size must be positive, got %d", c.View.PageSize)
	}
	return nil
}

func applyEnv(cfg *Config) {
	cfg.Server.Port = getEnv("PORT", cfg.Server.Port)
	cfg.Server.DBPath = getEnv("DB_PATH", cfg.Server.DBPath)
	cfg.Server.StaticDir = getEnv("STATIC_DIR", cfg.Server.StaticDir)
	cfg.Source.BaseURL = strings.TrimRight(getEnv("POKEAPI_URL", cfg.Source.BaseURL), "/")
	cfg.Source.Limit = getEnvInt("COLLECTION_LIMIT", cfg.Source.Limit)
	cfg.Source.Timeout = getEnvDuration("FETCH_TIMEOUT", cfg.Source.Timeout)
	cfg.Log.Level = getEnv("LOG_LEVEL", cfg.Log.Level)
	cfg.Log.Format = getEnv("LOG_FORMAT", cfg.Log.Format)
	if player := getEnv("CRY_PLAYER", ""); player != "" {
		cfg.Audio.Player = strings.Fields(player)
	}
}

// --- Helper functions for reading environment variables ---

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return fallback
}

// getEnvDuration reads a duration like "45s" or returns the fallback.
func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if val, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return fallback
}
