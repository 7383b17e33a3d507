package store

import (
	"context"
	"sync"
)

// Memory is an in-process KV used by tests and by the server when no
// database is configured.
type Memory struct {
	mu      sync.RWMutex
	records map[string]map[string][]byte
}

func NewMemory() *Memory {
	return &Memory{records: make(map[string]map[string][]byte)}
}

func (m *Memory) Get(_ context.Context, deviceID, key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	device, ok := m.records[deviceID]
	if !ok {
		return nil, false, nil
	}
	raw, ok := device[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(raw))
	copy(out, raw)
	return out, true, nil
}

func (m *Memory) Set(_ context.Context, deviceID, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	device, ok := m.records[deviceID]
	if !ok {
		device = make(map[string][]byte)
		m.records[deviceID] = device
	}
	stored := make([]byte, len(value))
	copy(stored, value)
	device[key] = stored
	return nil
}

func (m *Memory) Delete(_ context.Context, deviceID, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if device, ok := m.records[deviceID]; ok {
		delete(device, key)
	}
	return nil
}
