package services

import (
	"context"
	"time"

	"github.com/crawltrends/crawltrends/internal/analytics/trend"
	"github.com/crawltrends/crawltrends/internal/crawlstats"
	"github.com/crawltrends/crawltrends/internal/logging"
)

// Fetcher downloads the raw statistics CSV
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// StatsCache caches raw statistics payloads between runs
type StatsCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte) error
}

// AnalysisService orchestrates one analysis run: fetch the statistics,
// parse them, classify declining MIME types and hand the result to the
// (currently empty) downstream analysis step.
type AnalysisService struct {
	logger     *logging.Logger
	fetcher    Fetcher
	cache      StatsCache // nil when caching is disabled
	classifier *trend.Classifier
	statsURL   string
}

// NewAnalysisService creates a new AnalysisService. cache may be nil.
func NewAnalysisService(logger *logging.Logger, fetcher Fetcher, cache StatsCache, statsURL string) *AnalysisService {
	return &AnalysisService{
		logger:     logger,
		fetcher:    fetcher,
		cache:      cache,
		classifier: trend.NewClassifier(logger),
		statsURL:   statsURL,
	}
}

// Execute runs the full analysis and returns the declining MIME types with
// their usage histories. Fetch and parse failures are fatal to the run;
// there are no retries.
func (s *AnalysisService) Execute(ctx context.Context) (*trend.Result, error) {
	start := time.Now()

	data, err := s.fetchStats(ctx)
	if err != nil {
		return nil, NewServiceErrorWithDetails("FETCH_FAILED",
			"Failed to fetch crawl statistics",
			map[string]interface{}{"url": s.statsURL, "error": err.Error()})
	}

	rows, err := crawlstats.Parse(data)
	if err != nil {
		return nil, NewServiceErrorWithDetails("INPUT_ERROR",
			"Failed to parse crawl statistics",
			map[string]interface{}{"error": err.Error()})
	}

	result := s.classifier.Classify(rows)

	s.analyse(result)

	s.logger.Info("Analysis completed",
		"rows", len(rows),
		"declining", len(result.Declining),
		"elapsed_ms", time.Since(start).Milliseconds())

	return result, nil
}

// fetchStats returns the raw CSV, served from cache when possible. Cache
// failures degrade to a plain fetch; a stale cache must not kill a run
// that could succeed against the source.
func (s *AnalysisService) fetchStats(ctx context.Context) ([]byte, error) {
	if s.cache != nil {
		data, ok, err := s.cache.Get(ctx, s.statsURL)
		if err != nil {
			s.logger.Warn("Stats cache read failed, fetching from source", "error", err)
		} else if ok {
			s.logger.Debug("Serving crawl statistics from cache", "url", s.statsURL, "bytes", len(data))
			return data, nil
		}
	}

	data, err := s.fetcher.Fetch(ctx, s.statsURL)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, s.statsURL, data); err != nil {
			s.logger.Warn("Stats cache write failed", "error", err)
		}
	}

	return data, nil
}

// analyse is the downstream consumer of the declining MIME types. It is an
// intentional placeholder until a consumer exists.
func (s *AnalysisService) analyse(result *trend.Result) {
	_ = result
}
