package news

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/semearlages/semearapi/internal/cache"
)

const cacheKeyGeneration = "news:gen"

var _ Repository = (*CachedRepo)(nil)

// CachedRepo serves reads from the cache and invalidates on writes.
// List and item entries are keyed by a generation number that every write
// bumps, so stale entries are never read again and simply expire. A fill
// that raced with a write lands under the old generation.
// Cache failures are logged and the underlying repo is used instead.
type CachedRepo struct {
	repo  Repository
	cache cache.Cache
	ttl   time.Duration
	// ability to inject the clock (for unit testing)
	NowFunc func() time.Time
}

func NewCachedRepo(repo Repository, c cache.Cache, ttl time.Duration) *CachedRepo {
	return &CachedRepo{
		repo:    repo,
		cache:   c,
		ttl:     ttl,
		NowFunc: time.Now,
	}
}

func itemKey(generation int64, id int) string {
	return fmt.Sprintf("news:item:%d:%d", generation, id)
}

func listKey(generation int64, skip, limit int) string {
	return fmt.Sprintf("news:list:%d:%d:%d", generation, skip, limit)
}

func (r *CachedRepo) generation(ctx context.Context) (int64, error) {
	val, found, err := r.cache.Get(ctx, cacheKeyGeneration)
	if err != nil {
		return 0, err
	}
	if found {
		gen, err := strconv.ParseInt(string(val), 10, 64)
		if err == nil {
			return gen, nil
		}
		log.Warnf("news cache: bad generation value %q: %s", val, err)
	}

	// a lost counter restarts from a value no earlier list can carry
	gen := r.NowFunc().UnixNano()
	if err := r.cache.Set(ctx, cacheKeyGeneration, []byte(strconv.FormatInt(gen, 10)), 0); err != nil {
		return 0, err
	}
	return gen, nil
}

func (r *CachedRepo) invalidate(ctx context.Context) {
	if _, err := r.cache.Incr(ctx, cacheKeyGeneration); err != nil {
		log.Errorf("news cache: bump generation: %s", err)
	}
}

func (r *CachedRepo) List(ctx context.Context, skip, limit int) ([]News, error) {
	gen, err := r.generation(ctx)
	if err != nil {
		log.Errorf("news cache: get generation: %s", err)
		return r.repo.List(ctx, skip, limit)
	}

	key := listKey(gen, skip, limit)
	if val, found, err := r.cache.Get(ctx, key); err != nil {
		log.Errorf("news cache: get %s: %s", key, err)
	} else if found {
		var items []News
		if err := json.Unmarshal(val, &items); err == nil {
			return items, nil
		}
		log.Warnf("news cache: corrupt entry %s", key)
	}

	items, err := r.repo.List(ctx, skip, limit)
	if err != nil {
		return nil, err
	}

	r.store(ctx, key, items)
	return items, nil
}

func (r *CachedRepo) Get(ctx context.Context, id int) (*News, error) {
	gen, err := r.generation(ctx)
	if err != nil {
		log.Errorf("news cache: get generation: %s", err)
		return r.repo.Get(ctx, id)
	}

	key := itemKey(gen, id)
	if val, found, err := r.cache.Get(ctx, key); err != nil {
		log.Errorf("news cache: get %s: %s", key, err)
	} else if found {
		var n News
		if err := json.Unmarshal(val, &n); err == nil {
			return &n, nil
		}
		log.Warnf("news cache: corrupt entry %s", key)
	}

	n, err := r.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	r.store(ctx, key, n)
	return n, nil
}

func (r *CachedRepo) Add(ctx context.Context, n News) (*News, error) {
	added, err := r.repo.Add(ctx, n)
	if err != nil {
		return nil, err
	}
	r.invalidate(ctx)
	return added, nil
}

func (r *CachedRepo) Update(ctx context.Context, n News) (*News, error) {
	updated, err := r.repo.Update(ctx, n)
	if err != nil {
		return nil, err
	}
	r.invalidate(ctx)
	return updated, nil
}

func (r *CachedRepo) Delete(ctx context.Context, id int) error {
	if err := r.repo.Delete(ctx, id); err != nil {
		return err
	}
	r.invalidate(ctx)
	return nil
}

func (r *CachedRepo) Count(ctx context.Context) (int, error) {
	return r.repo.Count(ctx)
}

func (r *CachedRepo) store(ctx context.Context, key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		log.Errorf("news cache: marshal %s: %s", key, err)
		return
	}
	if err := r.cache.Set(ctx, key, data, r.ttl); err != nil {
		log.Errorf("news cache: set %s: %s", key, err)
	}
}
