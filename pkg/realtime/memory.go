package realtime

import (
	"context"
	"sync"
)

type memoryBackend struct {
	mu     sync.RWMutex
	leaves map[string]any
}

// NewMemoryStore returns a process-local store, used for development runs
// and tests.
func NewMemoryStore() Store {
	return newStore(&memoryBackend{leaves: make(map[string]any)})
}

func (m *memoryBackend) load(_ context.Context, path string) (map[string]any, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string]any)
	for p, v := range m.leaves {
		if within(p, path) {
			out[p] = v
		}
	}
	return out, nil
}

func (m *memoryBackend) apply(ctx context.Context, writes []write) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, w := range writes {
		applyTo(m.leaves, w)
	}
	return nil
}
