package cache

import (
	"context"
	"time"
)

// Cache stores raw bytes under string keys. A miss is (nil, false, nil).
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	// Incr atomically increments the integer stored at key, starting from 0.
	Incr(ctx context.Context, key string) (int64, error)
}
