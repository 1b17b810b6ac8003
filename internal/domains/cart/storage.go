package cart

import (
	"context"
	"errors"
	"sync"
	"time"

	"storefront-backend/pkg/cache"
)

// ============================================================
// CACHE STORAGE (Redis in production)
// ============================================================

type cacheStorage struct {
	cache cache.Cache
	ttl   time.Duration
}

// NewCacheStorage persists carts in the shared cache; every write refreshes ttl.
func NewCacheStorage(c cache.Cache, ttl time.Duration) Storage {
	return &cacheStorage{cache: c, ttl: ttl}
}

func (s *cacheStorage) Get(ctx context.Context, key string) ([]byte, bool, error) {
	raw, err := s.cache.GetBytes(ctx, key)
	if errors.Is(err, cache.ErrCacheMiss) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return raw, true, nil
}

func (s *cacheStorage) Set(ctx context.Context, key string, value []byte) error {
	return s.cache.SetBytes(ctx, key, value, s.ttl)
}

// ============================================================
// MEMORY STORAGE
// ============================================================

// MemoryStorage keeps carts in process. Used by tests and local runs without Redis.
type MemoryStorage struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{data: make(map[string][]byte)}
}

func (m *MemoryStorage) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	raw, ok := m.data[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(raw))
	copy(out, raw)
	return out, true, nil
}

func (m *MemoryStorage) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := make([]byte, len(value))
	copy(stored, value)
	m.data[key] = stored
	return nil
}
