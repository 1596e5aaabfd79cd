package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig_Valid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default config must validate: %v", err)
	}
	if cfg.Data.CommonCrawl.StatsURL != DefaultStatsURL {
		t.Errorf("Expected default stats URL, got %s", cfg.Data.CommonCrawl.StatsURL)
	}
}

func TestLoad_NoFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("Expected error for explicitly missing config file")
	}

	// Without an explicit path, defaults apply. Run from an empty
	// directory so a stray config.yaml cannot interfere.
	cwd, _ := os.Getwd()
	defer func() { _ = os.Chdir(cwd) }()
	_ = os.Chdir(t.TempDir())

	cfg, err = Load("")
	if err != nil {
		t.Fatalf("Load with defaults failed: %v", err)
	}
	if cfg.Server.HTTPPort != 8080 {
		t.Errorf("Expected default http_port 8080, got %d", cfg.Server.HTTPPort)
	}
	if cfg.Cache.Enabled {
		t.Error("Cache must be disabled by default")
	}
	if cfg.Data.CommonCrawl.FetchTimeout != 60*time.Second {
		t.Errorf("Expected default fetch timeout 60s, got %v", cfg.Data.CommonCrawl.FetchTimeout)
	}
}

func TestLoad_FromFile(t *testing.T) {
	content := `
server:
  host: 127.0.0.1
  http_port: 9999
data:
  common_crawl:
    stats_url: https://example.com/stats.csv
    fetch_timeout: 10s
cache:
  enabled: true
  url: redis://localhost:6379
  ttl: 1h
logging:
  level: debug
  format: console
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.HTTPPort != 9999 {
		t.Errorf("Expected http_port 9999, got %d", cfg.Server.HTTPPort)
	}
	if cfg.Data.CommonCrawl.StatsURL != "https://example.com/stats.csv" {
		t.Errorf("Unexpected stats_url: %s", cfg.Data.CommonCrawl.StatsURL)
	}
	if cfg.Cache.TTL != time.Hour {
		t.Errorf("Expected cache ttl 1h, got %v", cfg.Cache.TTL)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Expected logging level debug, got %s", cfg.Logging.Level)
	}
}

func TestValidate_BadPort(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Server.HTTPPort = 0

	if err := cfg.Validate(); err == nil {
		t.Error("Expected error for invalid http_port")
	}
}

func TestValidate_MissingStatsURL(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Data.CommonCrawl.StatsURL = ""

	if err := cfg.Validate(); err == nil {
		t.Error("Expected error for missing stats_url")
	}
}

func TestValidate_MalformedStatsURL(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Data.CommonCrawl.StatsURL = "not-a-url"

	if err := cfg.Validate(); err == nil {
		t.Error("Expected error for malformed stats_url")
	}
}

func TestValidate_CacheEnabledWithoutURL(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Cache.Enabled = true
	cfg.Cache.URL = ""

	if err := cfg.Validate(); err == nil {
		t.Error("Expected error for enabled cache without URL")
	}
}

func TestValidate_CacheDisabledSkipsChecks(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Cache.Enabled = false
	cfg.Cache.URL = ""
	cfg.Cache.TTL = 0

	if err := cfg.Validate(); err != nil {
		t.Errorf("Disabled cache must not be validated: %v", err)
	}
}
