package cart

import (
	"context"
	"sync"

	"fundraiser-store/internal/domain"
)

type memoryStorage struct {
	mu    sync.RWMutex
	items map[string][]byte
}

// NewMemory returns a process-local Storage, used in tests and single-node dev runs.
func NewMemory() Storage {
	return &memoryStorage{items: make(map[string][]byte)}
}

func (m *memoryStorage) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.items[key]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return append([]byte(nil), data...), nil
}

func (m *memoryStorage) Put(_ context.Context, key string, data []byte) error {
	m.mu.Lock()
	m.items[key] = append([]byte(nil), data...)
	m.mu.Unlock()
	return nil
}

func (m *memoryStorage) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	delete(m.items, key)
	m.mu.Unlock()
	return nil
}
