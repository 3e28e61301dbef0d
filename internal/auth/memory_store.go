package auth

import (
	"context"
	"sync"
)

var _ Store = (*MemoryStore)(nil)

// MemoryStore keeps admins in memory. Used in tests and local runs without postgres.
type MemoryStore struct {
	mutex  sync.RWMutex
	admins map[string]Admin
	nextID int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		admins: make(map[string]Admin),
		nextID: 1,
	}
}

func (s *MemoryStore) GetByEmail(_ context.Context, email string) (*Admin, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	admin, ok := s.admins[email]
	if !ok {
		return nil, ErrAdminNotFound
	}
	return &admin, nil
}

func (s *MemoryStore) Add(_ context.Context, admin Admin) (*Admin, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	admin.Email = NormalizeEmail(admin.Email)
	if _, ok := s.admins[admin.Email]; ok {
		return nil, ErrAdminExists
	}

	admin.ID = s.nextID
	s.nextID++
	s.admins[admin.Email] = admin
	return &admin, nil
}
