package assistant

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache stores generated responses keyed by prompt so repeated questions
// skip the vendor call. A nil *Cache (no redis configured) is a no-op.
type Cache struct {
	redis *redis.Client
	ttl   time.Duration
}

// NewCache creates a response cache over redis. Entries expire after ttl.
func NewCache(redisClient *redis.Client, ttl time.Duration) *Cache {
	if redisClient == nil {
		return nil
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Cache{redis: redisClient, ttl: ttl}
}

func cacheKey(prompt string) string {
	sum := sha256.Sum256([]byte(prompt))
	return "assistant:response:" + hex.EncodeToString(sum[:])
}

// Get returns the cached response for a prompt, if present.
func (c *Cache) Get(ctx context.Context, prompt string) (string, bool, error) {
	if c == nil || c.redis == nil {
		return "", false, nil
	}
	data, err := c.redis.Get(ctx, cacheKey(prompt)).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("assistant: cache get: %w", err)
	}
	return data, true, nil
}

// Set stores a response for a prompt.
func (c *Cache) Set(ctx context.Context, prompt, response string) error {
	if c == nil || c.redis == nil {
		return nil
	}
	if err := c.redis.Set(ctx, cacheKey(prompt), response, c.ttl).Err(); err != nil {
		return fmt.Errorf("assistant: cache set: %w", err)
	}
	return nil
}
