// Package config loads service configuration from yaml with environment expansion and defaults
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"
	"gopkg.in/yaml.v3"

	"github.com/umputun/newsreel/pkg/domain"
)

//go:generate go run ../../cmd/schema/main.go schema.json

// Config holds the application configuration
type Config struct {
	Server      ServerConfig      `yaml:"server" json:"server" jsonschema:"description=Server configuration"`
	Database    DatabaseConfig    `yaml:"database" json:"database" jsonschema:"description=Database configuration"`
	Fetch       FetchConfig       `yaml:"fetch" json:"fetch" jsonschema:"description=Feed fetching configuration"`
	Aggregation AggregationConfig `yaml:"aggregation" json:"aggregation" jsonschema:"description=Aggregation and source health configuration"`
	Display     DisplayConfig     `yaml:"display" json:"display" jsonschema:"description=Display defaults used until settings are stored"`
	Feeds       []FeedConfig      `yaml:"feeds" json:"feeds" jsonschema:"description=Sources seeded into the registry if their url is missing"`
}

// ServerConfig holds http server settings
type ServerConfig struct {
	Listen  string        `yaml:"listen" json:"listen" jsonschema:"default=:8080,description=HTTP server listen address"`
	Timeout time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=HTTP server timeout"`
	BaseURL string        `yaml:"base_url" json:"base_url" jsonschema:"default=http://localhost:8080,description=Public base URL used in generated feeds"`
}

// DatabaseConfig holds sqlite settings
type DatabaseConfig struct {
	DSN             string `yaml:"dsn" json:"dsn" jsonschema:"default=file:newsreel.db?cache=shared&mode=rwc,description=Database connection string"`
	MaxOpenConns    int    `yaml:"max_open_conns" json:"max_open_conns" jsonschema:"default=10,description=Maximum number of open connections"`
	MaxIdleConns    int    `yaml:"max_idle_conns" json:"max_idle_conns" jsonschema:"default=5,description=Maximum number of idle connections"`
	ConnMaxLifetime int    `yaml:"conn_max_lifetime" json:"conn_max_lifetime" jsonschema:"default=3600,description=Connection maximum lifetime in seconds"`
}

// FetchConfig holds feed http client settings
type FetchConfig struct {
	Timeout    time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=5s,description=Per source request timeout"`
	UserAgent  string        `yaml:"user_agent" json:"user_agent" jsonschema:"description=User agent for feed requests (browser-like by default)"`
	MaxWorkers int           `yaml:"max_workers" json:"max_workers" jsonschema:"default=5,minimum=1,description=Maximum concurrent source fetches"`
}

// AggregationConfig holds ranking and health settings
type AggregationConfig struct {
	Limit          int           `yaml:"limit" json:"limit" jsonschema:"default=10,minimum=1,description=Maximum number of items returned"`
	UpdateInterval time.Duration `yaml:"update_interval" json:"update_interval" jsonschema:"default=0s,description=Background refresh interval (0 disables)"`
	StaleAfter     time.Duration `yaml:"stale_after" json:"stale_after" jsonschema:"default=24h,description=Failing sources are deactivated after this long without a successful fetch"`
}

// DisplayConfig holds display defaults
type DisplayConfig struct {
	DisplayDuration int `yaml:"display_duration" json:"display_duration" jsonschema:"default=10000,description=Milliseconds each item is shown"`
	CacheSize       int `yaml:"cache_size" json:"cache_size" jsonschema:"default=10,description=Number of items kept by the display client"`
	ScreenWidth     int `yaml:"screen_width" json:"screen_width" jsonschema:"default=1920,description=Screen width in pixels"`
	ScreenHeight    int `yaml:"screen_height" json:"screen_height" jsonschema:"default=1080,description=Screen height in pixels"`
	TitleFontSize   int `yaml:"title_font_size" json:"title_font_size" jsonschema:"default=48,description=Title font size in pixels"`
	ContentFontSize int `yaml:"content_font_size" json:"content_font_size" jsonschema:"default=24,description=Content font size in pixels"`
}

// FeedConfig is a source to seed
type FeedConfig struct {
	Name   string `yaml:"name" json:"name" jsonschema:"description=Source name, defaults to url"`
	URL    string `yaml:"url" json:"url" jsonschema:"required,description=Feed URL"`
	Parser string `yaml:"parser" json:"parser" jsonschema:"enum=standard,enum=feedburner,enum=wordpress,enum=custom,description=Extraction profile"`
	Active *bool  `yaml:"active" json:"active,omitempty" jsonschema:"default=true,description=Source is aggregated"`
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // file path comes from CLI flag
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// expand environment variables
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	setDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	if err := VerifyAgainstEmbeddedSchema(&cfg); err != nil {
		// schema check is supplementary, a stale schema shouldn't stop the service
		lgr.Printf("[WARN] schema validation failed: %v", err)
	}

	return &cfg, nil
}

// Default returns configuration with all defaults and no seeded feeds
func Default() *Config {
	var cfg Config
	setDefaults(&cfg)
	return &cfg
}

func setDefaults(cfg *Config) {
	// server
	if cfg.Server.Listen == "" {
		cfg.Server.Listen = ":8080"
	}
	if cfg.Server.Timeout == 0 {
		cfg.Server.Timeout = 30 * time.Second
	}
	if cfg.Server.BaseURL == "" {
		cfg.Server.BaseURL = "http://localhost" + cfg.Server.Listen
		if !strings.HasPrefix(cfg.Server.Listen, ":") {
			cfg.Server.BaseURL = "http://" + cfg.Server.Listen
		}
	}

	// database
	if cfg.Database.DSN == "" {
		cfg.Database.DSN = "file:newsreel.db?cache=shared&mode=rwc&_txlock=immediate"
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 10
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 5
	}
	if cfg.Database.ConnMaxLifetime == 0 {
		cfg.Database.ConnMaxLifetime = 3600
	}

	// fetch
	if cfg.Fetch.Timeout == 0 {
		cfg.Fetch.Timeout = 5 * time.Second
	}
	if cfg.Fetch.MaxWorkers == 0 {
		cfg.Fetch.MaxWorkers = 5
	}

	// aggregation, zero update interval means no background refresh
	if cfg.Aggregation.Limit == 0 {
		cfg.Aggregation.Limit = 10
	}
	if cfg.Aggregation.StaleAfter == 0 {
		cfg.Aggregation.StaleAfter = 24 * time.Hour
	}

	// display
	d := domain.DefaultDisplaySettings()
	if cfg.Display.DisplayDuration == 0 {
		cfg.Display.DisplayDuration = d.DisplayDuration
	}
	if cfg.Display.CacheSize == 0 {
		cfg.Display.CacheSize = d.CacheSize
	}
	if cfg.Display.ScreenWidth == 0 {
		cfg.Display.ScreenWidth = d.Screen.Width
	}
	if cfg.Display.ScreenHeight == 0 {
		cfg.Display.ScreenHeight = d.Screen.Height
	}
	if cfg.Display.TitleFontSize == 0 {
		cfg.Display.TitleFontSize = d.FontSize.Title
	}
	if cfg.Display.ContentFontSize == 0 {
		cfg.Display.ContentFontSize = d.FontSize.Content
	}

	// feeds
	for i := range cfg.Feeds {
		f := &cfg.Feeds[i]
		f.URL = strings.TrimSpace(f.URL)
		if f.Name == "" {
			f.Name = f.URL
		}
		if f.Parser == "" {
			f.Parser = string(domain.DialectStandard)
		}
	}
}

// validate checks configuration for correctness
func validate(cfg *Config) error {
	if cfg.Server.Timeout < time.Second {
		return errors.New("server timeout must be at least 1 second")
	}
	if cfg.Fetch.Timeout < 0 {
		return errors.New("fetch timeout must be non-negative")
	}
	if cfg.Fetch.MaxWorkers < 1 {
		return errors.New("fetch max_workers must be at least 1")
	}
	if cfg.Aggregation.Limit < 1 {
		return errors.New("aggregation limit must be at least 1")
	}
	if cfg.Aggregation.UpdateInterval < 0 {
		return errors.New("aggregation update_interval must be non-negative")
	}
	if cfg.Aggregation.StaleAfter < 0 {
		return errors.New("aggregation stale_after must be non-negative")
	}

	seen := make(map[string]bool, len(cfg.Feeds))
	for i, f := range cfg.Feeds {
		if f.URL == "" {
			return fmt.Errorf("feeds[%d]: url is required", i)
		}
		if u, err := url.Parse(f.URL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("feeds[%d]: invalid url %q", i, f.URL)
		}
		if !domain.Dialect(f.Parser).Valid() {
			return fmt.Errorf("feeds[%d]: unknown parser %q", i, f.Parser)
		}
		if seen[f.URL] {
			return fmt.Errorf("feeds[%d]: duplicate url %q", i, f.URL)
		}
		seen[f.URL] = true
	}

	return nil
}

// DisplaySettings returns display defaults as domain settings
func (c *Config) DisplaySettings() domain.DisplaySettings {
	return domain.DisplaySettings{
		DisplayDuration: c.Display.DisplayDuration,
		CacheSize:       c.Display.CacheSize,
		Screen:          domain.Dimensions{Width: c.Display.ScreenWidth, Height: c.Display.ScreenHeight},
		FontSize:        domain.FontSize{Title: c.Display.TitleFontSize, Content: c.Display.ContentFontSize},
	}
}

// SeedSources returns configured feeds as registry sources
func (c *Config) SeedSources() []domain.Source {
	res := make([]domain.Source, 0, len(c.Feeds))
	for _, f := range c.Feeds {
		active := true
		if f.Active != nil {
			active = *f.Active
		}
		res = append(res, domain.Source{Name: f.Name, URL: f.URL, Dialect: domain.Dialect(f.Parser), Active: active})
	}
	return res
}
