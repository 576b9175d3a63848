package cache

import (
	"context"
	"time"
)

// NoOpCache is a cache implementation that does nothing. Used when no cache
// is configured or Redis is unavailable; every lookup is a miss.
type NoOpCache struct{}

// NewNoOpCache creates a new no-op cache instance.
func NewNoOpCache() *NoOpCache {
	return &NoOpCache{}
}

func (c *NoOpCache) GetAnswer(ctx context.Context, key string) (*Answer, error) {
	return nil, nil
}

func (c *NoOpCache) SetAnswer(ctx context.Context, key string, ans *Answer, ttl time.Duration) error {
	return nil
}

func (c *NoOpCache) Invalidate(ctx context.Context) error {
	return nil
}

func (c *NoOpCache) Close() error {
	return nil
}
