package queue

import (
	"context"
	"sync"
)

var _ Publisher = (*Memory)(nil)

// Memory records events in process. It backs tests and deployments without a
// broker.
type Memory struct {
	mu          sync.Mutex
	events      []*EntityChanged
	subscribers []chan *EntityChanged
	// limit bounds the retained events, zero keeps everything.
	limit int
}

func NewMemory() *Memory {
	return &Memory{}
}

// NewBoundedMemory keeps only the last limit events.
func NewBoundedMemory(limit int) *Memory {
	return &Memory{limit: limit}
}

func (m *Memory) Publish(ctx context.Context, events ...*EntityChanged) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.events = append(m.events, events...)
	if m.limit > 0 && len(m.events) > m.limit {
		m.events = append([]*EntityChanged(nil), m.events[len(m.events)-m.limit:]...)
	}
	for _, sub := range m.subscribers {
		for _, e := range events {
			select {
			case sub <- e:
			default:
			}
		}
	}
	return nil
}

// Subscribe returns a channel receiving events published from now on. Events
// are dropped when the buffer is full.
func (m *Memory) Subscribe(buffer int) <-chan *EntityChanged {
	m.mu.Lock()
	defer m.mu.Unlock()

	ch := make(chan *EntityChanged, buffer)
	m.subscribers = append(m.subscribers, ch)
	return ch
}

// Events returns every event published so far.
func (m *Memory) Events() []*EntityChanged {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*EntityChanged(nil), m.events...)
}

func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, sub := range m.subscribers {
		close(sub)
	}
	m.subscribers = nil
	return nil
}
