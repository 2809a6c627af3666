package provider

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
)

// Cache is the read-through cache port for directory listings. The directory
// changes rarely and is requested on every visit to the providers page.
type Cache interface {
	Get(ctx context.Context, key string) ([]Provider, error)
	Set(ctx context.Context, key string, providers []Provider) error
}

// ErrCacheMiss doubles as "not cached" for any Cache implementation.
var ErrCacheMiss = redis.Nil

const cacheTTL = 60 * time.Second

type redisCache struct {
	client *redis.Client
}

func NewRedisCache(client *redis.Client) Cache {
	return &redisCache{client: client}
}

func (c *redisCache) Get(ctx context.Context, key string) ([]Provider, error) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, err
	}
	var out []Provider
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *redisCache) Set(ctx context.Context, key string, providers []Provider) error {
	raw, err := json.Marshal(providers)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, raw, cacheTTL).Err()
}
