package store

import "sync"

// Memory is an in-memory Store. It is safe for concurrent use and is the
// default backing for tests and throwaway sessions.
type Memory struct {
	mu    sync.RWMutex
	blobs map[string]string
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{blobs: make(map[string]string)}
}

// Load retrieves the blob stored at key.
func (m *Memory) Load(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	value, ok := m.blobs[key]
	return value, ok, nil
}

// Save stores the blob at key, replacing any previous value.
func (m *Memory) Save(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.blobs[key] = value
	return nil
}

// Len returns the number of stored keys.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.blobs)
}
