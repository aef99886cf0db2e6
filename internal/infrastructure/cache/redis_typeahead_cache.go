// Package cache provides caching implementations for lookup-heavy reads.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	catalogapp "github.com/vintner/backend/internal/application/catalog"
	"go.uber.org/zap"
)

const defaultTypeaheadTTL = 30 * time.Second

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// RedisTypeaheadCache caches typeahead lookups in Redis. Entries are stored
// as JSON under a key derived from the query and limit, so every instance
// behind a load balancer shares the same cache.
type RedisTypeaheadCache struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
	logger    *zap.Logger
}

// RedisTypeaheadCacheOption is a functional option for configuring the cache
type RedisTypeaheadCacheOption func(*RedisTypeaheadCache)

// WithTypeaheadTTL sets how long entries stay cached
func WithTypeaheadTTL(ttl time.Duration) RedisTypeaheadCacheOption {
	return func(c *RedisTypeaheadCache) {
		c.ttl = ttl
	}
}

// WithTypeaheadLogger sets the logger for the cache
func WithTypeaheadLogger(logger *zap.Logger) RedisTypeaheadCacheOption {
	return func(c *RedisTypeaheadCache) {
		c.logger = logger
	}
}

// NewRedisTypeaheadCache creates a Redis-backed typeahead cache
func NewRedisTypeaheadCache(cfg RedisConfig, opts ...RedisTypeaheadCacheOption) (*RedisTypeaheadCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return newRedisTypeaheadCacheWithClient(client, opts...), nil
}

// NewRedisTypeaheadCacheWithClient creates a cache with an existing Redis
// client. Useful for testing or when sharing a client across components.
func NewRedisTypeaheadCacheWithClient(client *redis.Client, opts ...RedisTypeaheadCacheOption) *RedisTypeaheadCache {
	return newRedisTypeaheadCacheWithClient(client, opts...)
}

func newRedisTypeaheadCacheWithClient(client *redis.Client, opts ...RedisTypeaheadCacheOption) *RedisTypeaheadCache {
	c := &RedisTypeaheadCache{
		client:    client,
		keyPrefix: "typeahead:manufacturers:",
		ttl:       defaultTypeaheadTTL,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *RedisTypeaheadCache) key(query string, limit int) string {
	return fmt.Sprintf("%s%s|%d", c.keyPrefix, query, limit)
}

// Get returns the cached entries for a query, or false on a miss.
// Redis errors are treated as misses so a cache outage never breaks lookups.
func (c *RedisTypeaheadCache) Get(ctx context.Context, query string, limit int) ([]catalogapp.TypeaheadEntry, bool) {
	payload, err := c.client.Get(ctx, c.key(query, limit)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("typeahead cache read failed", zap.Error(err))
		}
		return nil, false
	}

	var entries []catalogapp.TypeaheadEntry
	if err := json.Unmarshal(payload, &entries); err != nil {
		c.logger.Warn("typeahead cache entry corrupt", zap.Error(err))
		return nil, false
	}
	return entries, true
}

// Set stores the entries for a query. Failures are logged and swallowed.
func (c *RedisTypeaheadCache) Set(ctx context.Context, query string, limit int, entries []catalogapp.TypeaheadEntry) {
	payload, err := json.Marshal(entries)
	if err != nil {
		c.logger.Warn("typeahead cache marshal failed", zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, c.key(query, limit), payload, c.ttl).Err(); err != nil {
		c.logger.Warn("typeahead cache write failed", zap.Error(err))
	}
}

// Close closes the Redis client
func (c *RedisTypeaheadCache) Close() error {
	return c.client.Close()
}

// Ensure RedisTypeaheadCache implements TypeaheadCache
var _ catalogapp.TypeaheadCache = (*RedisTypeaheadCache)(nil)
