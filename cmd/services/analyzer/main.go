package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/crawltrends/crawltrends/internal/cache"
	"github.com/crawltrends/crawltrends/internal/config"
	"github.com/crawltrends/crawltrends/internal/crawlstats"
	"github.com/crawltrends/crawltrends/internal/logging"
	"github.com/crawltrends/crawltrends/internal/router"
	"github.com/crawltrends/crawltrends/internal/services"
)

var (
	Version   = "dev"     // Injected via ldflags during build
	GitCommit = "unknown" // Injected via ldflags during build
	BuildTime = "unknown" // Injected via ldflags during build
)

func main() {
	// Parse command line flags
	configPath := flag.String("config", "", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Setup logger
	logger, err := logging.NewFromConfig(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	logging.SetGlobal(logger)
	logger.Info("Analyzer service starting...",
		"version", Version, "commit", GitCommit, "build_time", BuildTime)

	// Statistics source
	fetcher := crawlstats.NewClient(logger, cfg.Data.CommonCrawl.FetchTimeout)
	logger.Info("Statistics source configured", "url", cfg.Data.CommonCrawl.StatsURL)

	// Optional Redis statistics cache
	var statsCache services.StatsCache
	if cfg.Cache.Enabled {
		redisCache, err := cache.New(cache.Config{
			URL:       cfg.Cache.URL,
			DB:        cfg.Cache.DB,
			TTL:       cfg.Cache.TTL,
			KeyPrefix: cfg.Cache.KeyPrefix,
		})
		if err != nil {
			logger.Fatal("Failed to connect to Redis cache", "error", err)
		}
		defer func() { _ = redisCache.Close() }()
		statsCache = redisCache
		logger.Info("Statistics cache enabled", "url", cfg.Cache.URL, "ttl", cfg.Cache.TTL)
	}

	// Log authentication status
	if cfg.Auth.Enabled {
		logger.Info("API key authentication enabled", "num_keys", len(cfg.Auth.APIKeys))
	} else {
		logger.Warn("API key authentication DISABLED - all requests will be allowed")
	}

	// Initialize router
	app := router.New(logger, fetcher, statsCache, *cfg)

	// Start HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.HTTPPort)
	go func() {
		logger.Info("HTTP server listening", "addr", addr)
		if err := app.Listen(addr); err != nil {
			logger.Fatal("HTTP server failed", "error", err)
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down analyzer service...")
	if err := app.Shutdown(); err != nil {
		logger.Error("Server shutdown failed", "error", err)
	}
	logger.Info("Analyzer service stopped")
}
