package cache

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

// Cache is a thin read-through helper over redis, used for dashboard
// statistics that are expensive to recount on every request.
type Cache struct {
	client *redis.Client
}

func NewFromURL(redisURL string) (*Cache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}
	return &Cache{client: redis.NewClient(opts)}, nil
}

func New(client *redis.Client) *Cache {
	return &Cache{client: client}
}

func (c *Cache) Get(ctx context.Context, key string) (string, bool) {
	val, err := c.client.Get(ctx, key).Result()
	if err != nil {
		// redis.Nil and transport errors both mean "recompute".
		return "", false
	}
	return val, true
}

func (c *Cache) Set(ctx context.Context, key, value string, ttl time.Duration) {
	// Best effort; a failed cache write only costs the next recount.
	c.client.Set(ctx, key, value, ttl)
}

func (c *Cache) Invalidate(ctx context.Context, key string) {
	c.client.Del(ctx, key)
}
