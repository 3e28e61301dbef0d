package news

import (
	"context"
	"sort"
	"sync"
)

var _ Repository = (*MemoryRepo)(nil)

// MemoryRepo keeps news in memory. Used in tests and local runs without postgres.
type MemoryRepo struct {
	mutex  sync.RWMutex
	items  map[int]News
	nextID int
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		items:  make(map[int]News),
		nextID: 1,
	}
}

func (r *MemoryRepo) List(_ context.Context, skip, limit int) ([]News, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	all := make([]News, 0, len(r.items))
	for _, n := range r.items {
		all = append(all, n)
	}
	sort.Slice(all, func(i, j int) bool {
		if !all[i].Date.Equal(all[j].Date.Time) {
			return all[i].Date.After(all[j].Date)
		}
		return all[i].ID > all[j].ID
	})

	if skip >= len(all) {
		return []News{}, nil
	}
	all = all[skip:]
	if limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

func (r *MemoryRepo) Get(_ context.Context, id int) (*News, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	n, ok := r.items[id]
	if !ok {
		return nil, ErrNewsNotFound
	}
	return &n, nil
}

func (r *MemoryRepo) Add(_ context.Context, n News) (*News, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	n.ID = r.nextID
	r.nextID++
	r.items[n.ID] = n
	return &n, nil
}

func (r *MemoryRepo) Update(_ context.Context, n News) (*News, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, ok := r.items[n.ID]; !ok {
		return nil, ErrNewsNotFound
	}
	r.items[n.ID] = n
	return &n, nil
}

func (r *MemoryRepo) Delete(_ context.Context, id int) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, ok := r.items[id]; !ok {
		return ErrNewsNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *MemoryRepo) Count(_ context.Context) (int, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	return len(r.items), nil
}
