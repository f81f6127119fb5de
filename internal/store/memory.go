// internal/store/memory.go
//
// In-memory Backend. State is lost when the process exits; used by tests and by
// hosts that do not need durability.

package store

import (
	"context"
	"sync"
)

// MemoryBackend keeps the record blob in memory.
type MemoryBackend struct {
	mu     sync.RWMutex // guards blob
	blob   []byte
	writes int
}

// NewMemoryBackend returns a backend holding initial (nil means never written).
func NewMemoryBackend(initial []byte) *MemoryBackend {
	return &MemoryBackend{blob: initial}
}

// Read returns a copy of the blob or ErrNoData.
func (m *MemoryBackend) Read(ctx context.Context) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.blob == nil {
		return nil, ErrNoData
	}
	return append([]byte(nil), m.blob...), nil
}

// Write replaces the blob.
func (m *MemoryBackend) Write(ctx context.Context, blob []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.blob = append([]byte(nil), blob...)
	m.writes++
	return nil
}

// Writes reports how many times Write was called.
func (m *MemoryBackend) Writes() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.writes
}
