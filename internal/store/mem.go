package store

import (
	"context"
	"encoding/json"
	"sync"
)

// Mem is an in-memory Blobs implementation for tests and ephemeral
// runs.
type Mem struct {
	mu    sync.Mutex
	blobs map[string]json.RawMessage
}

var _ Blobs = (*Mem)(nil)

// NewMem creates an empty in-memory store.
func NewMem() *Mem {
	return &Mem{blobs: make(map[string]json.RawMessage)}
}

func (m *Mem) Get(_ context.Context, key string) (json.RawMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.blobs[key]
	if !ok {
		return nil, ErrNotFound
	}
	out := make(json.RawMessage, len(v))
	copy(out, v)
	return out, nil
}

func (m *Mem) Set(_ context.Context, key string, value json.RawMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := make(json.RawMessage, len(value))
	copy(stored, value)
	m.blobs[key] = stored
	return nil
}

func (m *Mem) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.blobs, key)
	return nil
}
