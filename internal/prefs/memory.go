package prefs

import (
	"context"
	"sync"
)

// MemoryBackend keeps preferences for the life of the process.
type MemoryBackend struct {
	mu   sync.RWMutex
	rows map[string]map[string]string
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{rows: map[string]map[string]string{}}
}

func (m *MemoryBackend) Get(_ context.Context, client, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok := m.rows[client][key]
	return value, ok, nil
}

func (m *MemoryBackend) Set(_ context.Context, client, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	row, ok := m.rows[client]
	if !ok {
		row = map[string]string{}
		m.rows[client] = row
	}
	row[key] = value
	return nil
}
