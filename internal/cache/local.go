package cache

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"sync"
	"time"

	"github.com/coocood/freecache"
)

const megabyte = 1024 * 1024

// LocalCache is an in-process Cache, used when redis is not available.
type LocalCache struct {
	cache *freecache.Cache
	// serializes Incr read-modify-write
	incrMutex sync.Mutex
}

var _ Cache = (*LocalCache)(nil)

func NewLocalCache(sizeMB int) *LocalCache {
	if sizeMB <= 0 {
		sizeMB = 16
	}
	return &LocalCache{
		cache: freecache.NewCache(sizeMB * megabyte),
	}
}

func (c *LocalCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	val, err := c.cache.Get([]byte(key))
	if errors.Is(err, freecache.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("local cache get %s: %w", key, err)
	}
	return val, true, nil
}

func (c *LocalCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if err := c.cache.Set([]byte(key), value, expireSeconds(ttl)); err != nil {
		return fmt.Errorf("local cache set %s: %w", key, err)
	}
	return nil
}

func (c *LocalCache) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		c.cache.Del([]byte(k))
	}
	return nil
}

func (c *LocalCache) Incr(_ context.Context, key string) (int64, error) {
	c.incrMutex.Lock()
	defer c.incrMutex.Unlock()

	var current int64
	val, err := c.cache.Get([]byte(key))
	switch {
	case errors.Is(err, freecache.ErrNotFound):
	case err != nil:
		return 0, fmt.Errorf("local cache incr %s: %w", key, err)
	default:
		current, err = strconv.ParseInt(string(val), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("local cache incr %s: not an integer: %w", key, err)
		}
	}

	current++
	if err := c.cache.Set([]byte(key), []byte(strconv.FormatInt(current, 10)), 0); err != nil {
		return 0, fmt.Errorf("local cache incr %s: %w", key, err)
	}
	return current, nil
}

// freecache works in whole seconds, 0 meaning no expiry
func expireSeconds(ttl time.Duration) int {
	if ttl <= 0 {
		return 0
	}
	return int(math.Ceil(ttl.Seconds()))
}
