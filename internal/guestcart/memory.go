package guestcart

import (
	"context"
	"sync"
)

// MemoryStorage keeps guest carts in process memory.
type MemoryStorage struct {
	mu    sync.RWMutex
	carts map[string][]Item
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{carts: make(map[string][]Item)}
}

func (m *MemoryStorage) Load(_ context.Context, guestID string) ([]Item, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]Item(nil), m.carts[guestID]...), nil
}

func (m *MemoryStorage) Save(_ context.Context, guestID string, items []Item) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(items) == 0 {
		delete(m.carts, guestID)
		return nil
	}
	m.carts[guestID] = append([]Item(nil), items...)
	return nil
}
