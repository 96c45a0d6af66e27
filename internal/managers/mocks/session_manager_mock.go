package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"commerce-core/internal/managers"
	"commerce-core/internal/schemas"
)

// MockSessionManager is a testify mock of managers.SessionMgr.
type MockSessionManager struct {
	mock.Mock
}

func (m *MockSessionManager) Put(ctx context.Context, user *schemas.User, ttl time.Duration) error {
	args := m.Called(ctx, user, ttl)
	return args.Error(0)
}

func (m *MockSessionManager) Get(ctx context.Context, userId string) (*schemas.User, error) {
	args := m.Called(ctx, userId)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*schemas.User), args.Error(1)
}

func (m *MockSessionManager) Delete(ctx context.Context, userId string) error {
	args := m.Called(ctx, userId)
	return args.Error(0)
}

// InMemorySessionManager is a map-backed managers.SessionMgr used by
// route-level tests, where session state has to survive a login call and
// a later auth check within the same test. TTLs are honored so expiry
// behavior stays observable.
type InMemorySessionManager struct {
	mu      sync.Mutex
	entries map[string]inMemoryEntry
}

type inMemoryEntry struct {
	user      schemas.User
	expiresAt time.Time
}

func NewInMemorySessionManager() *InMemorySessionManager {
	return &InMemorySessionManager{entries: make(map[string]inMemoryEntry)}
}

func (s *InMemorySessionManager) Put(_ context.Context, user *schemas.User, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[user.ID.String()] = inMemoryEntry{user: *user, expiresAt: time.Now().Add(ttl)}
	return nil
}

func (s *InMemorySessionManager) Get(_ context.Context, userId string) (*schemas.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[userId]
	if !ok || time.Now().After(entry.expiresAt) {
		delete(s.entries, userId)
		return nil, managers.ErrSessionNotFound
	}
	user := entry.user
	return &user, nil
}

func (s *InMemorySessionManager) Delete(_ context.Context, userId string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, userId)
	return nil
}
