// Package cache provides a Redis-backed cache for the fetched statistics
// file. The upstream CSV changes roughly once per crawl, so repeated
// analysis runs within the TTL skip the download entirely. Payloads are
// snappy-compressed before storage.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang/snappy"
	"github.com/redis/go-redis/v9"
)

// Config holds the cache connection settings.
type Config struct {
	URL       string        // Redis URL (e.g., redis://localhost:6379)
	DB        int           // Database number
	TTL       time.Duration // Entry lifetime
	KeyPrefix string        // Prefix for cache keys
}

// StatsCache caches raw statistics payloads in Redis.
type StatsCache struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
}

// New connects to Redis and returns a StatsCache.
func New(cfg Config) (*StatsCache, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		// Fallback to treating the URL as a plain address
		opts = &redis.Options{
			Addr: cfg.URL,
			DB:   cfg.DB,
		}
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	prefix := cfg.KeyPrefix
	if prefix == "" {
		prefix = "crawltrends"
	}

	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	return &StatsCache{
		client: client,
		ttl:    ttl,
		prefix: prefix,
	}, nil
}

// key namespaces a cache key with the configured prefix
func (c *StatsCache) key(k string) string {
	return fmt.Sprintf("%s:stats:%s", c.prefix, k)
}

// Get returns the cached payload for the key, reporting whether it was
// present. A decode failure is returned as an error; stale or corrupt
// entries should not silently feed the analysis.
func (c *StatsCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	compressed, err := c.client.Get(ctx, c.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cache get failed: %w", err)
	}

	data, err := Decompress(compressed)
	if err != nil {
		return nil, false, err
	}

	return data, true, nil
}

// Set stores the payload under the key with the configured TTL.
func (c *StatsCache) Set(ctx context.Context, key string, data []byte) error {
	if err := c.client.Set(ctx, c.key(key), Compress(data), c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set failed: %w", err)
	}
	return nil
}

// Close releases the Redis connection.
func (c *StatsCache) Close() error {
	return c.client.Close()
}

// Compress compresses a payload using snappy.
func Compress(data []byte) []byte {
	if len(data) == 0 {
		return data
	}
	return snappy.Encode(nil, data)
}

// Decompress decompresses a snappy payload.
func Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return data, nil
	}

	decompressed, err := snappy.Decode(nil, data)
	if err != nil {
		return nil, fmt.Errorf("snappy decompress failed: %w", err)
	}
	return decompressed, nil
}
