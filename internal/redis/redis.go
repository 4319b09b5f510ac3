package redis

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"geoquiz/internal/config"

	"github.com/cespare/xxhash/v2"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "geoquiz:overpass:"

// Connect parses redisURL, opens a client and checks it with a ping.
func Connect(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(ctx, config.RedisOpTimeout)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	log.Println("Successfully connected to Redis")
	return client, nil
}

// PayloadCache keeps raw Overpass responses keyed by endpoint and query
type PayloadCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewPayloadCache(client *redis.Client, ttl time.Duration) *PayloadCache {
	return &PayloadCache{client: client, ttl: ttl}
}

// Key hashes endpoint and query into a short cache key.
func Key(endpoint, query string) string {
	h := xxhash.New()
	h.WriteString(endpoint)
	h.WriteString("\x00")
	h.WriteString(query)
	return keyPrefix + strconv.FormatUint(h.Sum64(), 16)
}

// Get returns the cached payload and whether it was found.
func (c *PayloadCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, config.RedisOpTimeout)
	defer cancel()

	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get %s: %w", key, err)
	}
	return data, true, nil
}

// Set stores a payload for the cache TTL.
func (c *PayloadCache) Set(ctx context.Context, key string, payload []byte) error {
	ctx, cancel := context.WithTimeout(ctx, config.RedisOpTimeout)
	defer cancel()

	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// Delete drops a cached payload
func (c *PayloadCache) Delete(ctx context.Context, key string) error {
	ctx, cancel := context.WithTimeout(ctx, config.RedisOpTimeout)
	defer cancel()

	if err := c.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", key, err)
	}
	return nil
}

// Close closes the underlying client
func (c *PayloadCache) Close() error {
	if c.client != nil {
		log.Println("Closing Redis connection...")
		return c.client.Close()
	}
	return nil
}
