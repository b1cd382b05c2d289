// Package cache keeps rendered public responses in redis so repeated page
// loads skip the database and the markdown renderer.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/bolhadev/blog-backend/config"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	keyPrefix  = "blog:response:"
	defaultTTL = 5 * time.Minute
	scanCount  = 100
)

// Entry is a cached HTTP response body.
type Entry struct {
	ContentType string `json:"contentType"`
	Body        []byte `json:"body"`
}

type ResponseCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func New(rdb *redis.Client, ttl time.Duration) *ResponseCache {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &ResponseCache{rdb: rdb, ttl: ttl}
}

// Open connects to REDIS_ADDR. It returns nil and no error when caching is
// not configured.
func Open(ctx context.Context, cfg map[string]string) (*ResponseCache, error) {
	addr := config.GetString(cfg, "REDIS_ADDR", "")
	if addr == "" {
		log.Info().Msg("REDIS_ADDR not set, response cache disabled")
		return nil, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: config.GetString(cfg, "REDIS_PASSWORD", ""),
		DB:       config.GetInt(cfg, "REDIS_DB", 0),
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("ping redis at %s: %w", addr, err)
	}

	ttl := time.Duration(config.GetInt(cfg, "CACHE_TTL_SECONDS", int(defaultTTL/time.Second))) * time.Second
	return New(rdb, ttl), nil
}

// Get returns the entry stored under key. A miss is not an error.
func (c *ResponseCache) Get(ctx context.Context, key string) (*Entry, bool, error) {
	raw, err := c.rdb.Get(ctx, keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var entry Entry
	if err := json.Unmarshal(raw, &entry); err != nil {
		return nil, false, err
	}
	return &entry, true, nil
}

func (c *ResponseCache) Set(ctx context.Context, key string, entry Entry) error {
	raw, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, keyPrefix+key, raw, c.ttl).Err()
}

// Purge drops every cached response. Called after admin writes.
func (c *ResponseCache) Purge(ctx context.Context) error {
	iter := c.rdb.Scan(ctx, 0, keyPrefix+"*", scanCount).Iterator()

	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return c.rdb.Del(ctx, keys...).Err()
}

func (c *ResponseCache) Close() error {
	return c.rdb.Close()
}
