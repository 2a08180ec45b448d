package cache

import (
	"context"
	"strings"
	"sync"
	"time"
)

var _ ViewCache = (*Memory)(nil)

type entry struct {
	data    []byte
	expires time.Time
}

// Memory is a process local ViewCache.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]entry
	now     func() time.Time
}

func NewMemory() *Memory {
	return &Memory{
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

func (m *Memory) GetView(ctx context.Context, key Key) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.entries[key.String()]
	if !ok || (!e.expires.IsZero() && !m.now().Before(e.expires)) {
		return nil, ErrMiss
	}
	return append([]byte(nil), e.data...), nil
}

func (m *Memory) SetView(ctx context.Context, key Key, data []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	e := entry{data: append([]byte(nil), data...)}
	if ttl > 0 {
		e.expires = m.now().Add(ttl)
	}
	m.entries[key.String()] = e
	return nil
}

func (m *Memory) Invalidate(ctx context.Context, kind, rootID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	prefix := viewKey(kind, rootID) + ":"
	for k := range m.entries {
		if strings.HasPrefix(k, prefix) {
			delete(m.entries, k)
		}
	}
	return nil
}

// Len returns the number of cached views, expired ones included.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}
