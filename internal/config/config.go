package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// GatewayConfig describes how the mirror reaches the catalog backend.
type GatewayConfig struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
	// RateLimit is requests per second; 0 disables limiting.
	RateLimit float64 `yaml:"rate_limit"`
	Burst     int     `yaml:"burst"`
}

// MirrorConfig configures the synchronization container and its daemon mode.
type MirrorConfig struct {
	Locale          string        `yaml:"locale"`
	RefreshInterval time.Duration `yaml:"refresh_interval"`
	HealthAddr      string        `yaml:"health_addr"`
}

// ServerConfig configures the reference backend.
type ServerConfig struct {
	Addr            string `yaml:"addr"`
	Storage         string `yaml:"storage"` // memory | spanner
	SpannerDatabase string `yaml:"spanner_database"`
}

type LogConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

type Config struct {
	Gateway GatewayConfig `yaml:"gateway"`
	Mirror  MirrorConfig  `yaml:"mirror"`
	Server  ServerConfig  `yaml:"server"`
	Log     LogConfig     `yaml:"log"`
}

const (
	StorageMemory  = "memory"
	StorageSpanner = "spanner"
)

// Default returns a configuration that runs everything locally.
func Default() *Config {
	return &Config{
		Gateway: GatewayConfig{
			BaseURL: "http://localhost:8080",
			Timeout: 30 * time.Second,
		},
		Mirror: MirrorConfig{
			Locale:          "en",
			RefreshInterval: 30 * time.Second,
			HealthAddr:      ":50051",
		},
		Server: ServerConfig{
			Addr:            ":8080",
			Storage:         StorageMemory,
			SpannerDatabase: "projects/test-project/instances/emulator-instance/databases/test-db",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads path over the defaults, then applies environment overrides.
// An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		file, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}
		defer file.Close()

		if err := yaml.NewDecoder(file).Decode(cfg); err != nil {
			return nil, fmt.Errorf("config: decode %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings no component can run with.
func (c *Config) Validate() error {
	if c.Gateway.BaseURL == "" {
		return fmt.Errorf("config: gateway.base_url is required")
	}
	if c.Gateway.RateLimit < 0 {
		return fmt.Errorf("config: gateway.rate_limit must not be negative")
	}
	if _, err := c.LocaleTag(); err != nil {
		return err
	}
	switch c.Server.Storage {
	case StorageMemory, StorageSpanner:
	default:
		return fmt.Errorf("config: unknown server.storage %q", c.Server.Storage)
	}
	return nil
}

// LocaleTag parses Mirror.Locale for name collation.
func (c *Config) LocaleTag() (language.Tag, error) {
	tag, err := language.Parse(c.Mirror.Locale)
	if err != nil {
		return language.Und, fmt.Errorf("config: mirror.locale: %w", err)
	}
	return tag, nil
}

func (c *Config) applyEnv() error {
	c.Gateway.BaseURL = env("CATALOG_API_URL", c.Gateway.BaseURL)
	c.Mirror.Locale = env("CATALOG_LOCALE", c.Mirror.Locale)
	c.Mirror.HealthAddr = env("CATALOG_HEALTH_ADDR", c.Mirror.HealthAddr)
	c.Server.Addr = env("CATALOG_HTTP_ADDR", c.Server.Addr)
	c.Server.Storage = env("CATALOG_STORAGE", c.Server.Storage)
	c.Server.SpannerDatabase = env("SPANNER_DATABASE", c.Server.SpannerDatabase)
	c.Log.Level = env("LOG_LEVEL", c.Log.Level)

	if v := os.Getenv("CATALOG_RATE_LIMIT"); v != "" {
		rl, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("config: CATALOG_RATE_LIMIT: %w", err)
		}
		c.Gateway.RateLimit = rl
	}
	return nil
}

func env(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
