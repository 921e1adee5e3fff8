package settings

import (
	"context"
	"errors"
	"sync"
)

// Well-known settings keys.
const (
	KeyCurrency      = "currency"
	KeyTheme         = "theme"
	KeyNotifications = "notifications"
)

var ErrNotFound = errors.New("setting not found")

// Store is durable key-value storage for simple user settings. The engine
// treats it as an opaque durable map.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

// MemoryStore is a non-durable Store for tests and persistence-free runs.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

func (m *MemoryStore) Get(_ context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok := m.values[key]
	if !ok {
		return "", ErrNotFound
	}
	return value, nil
}

func (m *MemoryStore) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}
