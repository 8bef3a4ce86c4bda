package session

import (
	"context"
	"sync"
)

// MemoryStorage is an in-process [Storage] for tests and ephemeral sessions.
// Contents do not survive process exit.
type MemoryStorage struct {
	mu    sync.RWMutex
	slots map[string]string
}

// NewMemoryStorage creates an empty [MemoryStorage].
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{slots: make(map[string]string)}
}

// Load implements [Storage].
func (m *MemoryStorage) Load(_ context.Context, slot string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	value, ok := m.slots[slot]
	if !ok {
		return "", ErrSlotNotFound
	}
	return value, nil
}

// Store implements [Storage].
func (m *MemoryStorage) Store(_ context.Context, slot, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slots[slot] = value
	return nil
}

// Delete implements [Storage]. Deleting an absent slot is a no-op.
func (m *MemoryStorage) Delete(_ context.Context, slot string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.slots, slot)
	return nil
}
