package config

import (
	"fmt"
	"net/url"
	"time"
)

// Config represents the complete application configuration
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Data    DataConfig    `mapstructure:"data"`
	Cache   CacheConfig   `mapstructure:"cache"`
	Auth    AuthConfig    `mapstructure:"auth"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// ServerConfig represents HTTP server configuration
type ServerConfig struct {
	Host     string `mapstructure:"host"`      // Bind address (e.g., 0.0.0.0 for all interfaces)
	HTTPPort int    `mapstructure:"http_port"` // HTTP server port
}

// DataConfig represents data source configuration
type DataConfig struct {
	CommonCrawl CommonCrawlConfig `mapstructure:"common_crawl"`
}

// CommonCrawlConfig represents the Common Crawl statistics source
type CommonCrawlConfig struct {
	StatsURL     string        `mapstructure:"stats_url"`     // URL of the pre-aggregated MIME type statistics CSV
	FetchTimeout time.Duration `mapstructure:"fetch_timeout"` // HTTP timeout for fetching the CSV
}

// CacheConfig represents the Redis statistics cache configuration
type CacheConfig struct {
	Enabled   bool          `mapstructure:"enabled"`    // Enable caching of the fetched statistics file
	URL       string        `mapstructure:"url"`        // Redis URL (e.g., redis://localhost:6379)
	DB        int           `mapstructure:"db"`         // Redis database number
	TTL       time.Duration `mapstructure:"ttl"`        // Cache entry lifetime; the upstream file changes roughly monthly
	KeyPrefix string        `mapstructure:"key_prefix"` // Prefix for cache keys
}

// AuthConfig represents authentication configuration
type AuthConfig struct {
	Enabled bool     `mapstructure:"enabled"`  // Enable/disable API key authentication
	APIKeys []string `mapstructure:"api_keys"` // List of valid API keys
}

// LoggingConfig represents logging configuration
type LoggingConfig struct {
	Level      string `mapstructure:"level"`       // debug, info, warn, error
	Format     string `mapstructure:"format"`      // json, console
	OutputPath string `mapstructure:"output_path"` // stdout, stderr, file path
	TimeFormat string `mapstructure:"time_format"` // RFC3339, Unix, Kitchen
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return fmt.Errorf("server config: %w", err)
	}

	if err := c.Data.Validate(); err != nil {
		return fmt.Errorf("data config: %w", err)
	}

	if err := c.Cache.Validate(); err != nil {
		return fmt.Errorf("cache config: %w", err)
	}

	return nil
}

// Validate validates server configuration
func (c *ServerConfig) Validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid http_port: %d", c.HTTPPort)
	}

	return nil
}

// Validate validates data source configuration
func (c *DataConfig) Validate() error {
	if c.CommonCrawl.StatsURL == "" {
		return fmt.Errorf("common_crawl.stats_url is required")
	}

	u, err := url.Parse(c.CommonCrawl.StatsURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("common_crawl.stats_url is not a valid URL: %s", c.CommonCrawl.StatsURL)
	}

	if c.CommonCrawl.FetchTimeout <= 0 {
		return fmt.Errorf("common_crawl.fetch_timeout must be positive")
	}

	return nil
}

// Validate validates cache configuration
func (c *CacheConfig) Validate() error {
	if !c.Enabled {
		return nil
	}

	if c.URL == "" {
		return fmt.Errorf("cache.url is required when cache is enabled")
	}

	if c.TTL <= 0 {
		return fmt.Errorf("cache.ttl must be positive")
	}

	return nil
}
