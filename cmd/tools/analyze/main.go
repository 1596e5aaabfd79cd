// Command analyze performs one Common Crawl MIME type usage-over-time
// analysis run and logs the declining MIME types.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/crawltrends/crawltrends/internal/cache"
	"github.com/crawltrends/crawltrends/internal/config"
	"github.com/crawltrends/crawltrends/internal/crawlstats"
	"github.com/crawltrends/crawltrends/internal/logging"
	"github.com/crawltrends/crawltrends/internal/services"
)

func main() {
	configPath := flag.String("config", "", "Path to configuration file")
	flag.Parse()

	start := time.Now()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.NewFromConfig(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	logging.SetGlobal(logger)

	fetcher := crawlstats.NewClient(logger, cfg.Data.CommonCrawl.FetchTimeout)

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
	}

	analysis := services.NewAnalysisService(logger, fetcher, statsCache, cfg.Data.CommonCrawl.StatsURL)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if _, err := analysis.Execute(ctx); err != nil {
		logger.Fatal("Analysis failed", "error", err)
	}

	logger.Info("Took", "elapsed", time.Since(start))
}
