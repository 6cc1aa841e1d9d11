package cache

import (
	"context"
	"strings"
	"sync"
	"time"
)

type entry struct {
	value     []byte
	expiresAt time.Time
}

// Memory is a process-local Store. A zero ttl keeps entries until deleted.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]entry
	ttl     time.Duration
	now     func() time.Time
}

type MemoryOption func(*Memory)

// WithClock replaces time.Now, for expiry tests.
func WithClock(now func() time.Time) MemoryOption {
	return func(m *Memory) {
		if now != nil {
			m.now = now
		}
	}
}

func NewMemory(ttl time.Duration, opts ...MemoryOption) *Memory {
	m := &Memory{
		entries: make(map[string]entry),
		ttl:     ttl,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, bool) {
	if key == "" {
		return nil, false
	}

	now := m.now()
	m.mu.RLock()
	e, ok := m.entries[key]
	m.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if m.ttl > 0 && !e.expiresAt.After(now) {
		m.mu.Lock()
		delete(m.entries, key)
		m.mu.Unlock()
		return nil, false
	}

	return e.value, true
}

func (m *Memory) Set(_ context.Context, key string, value []byte) {
	if key == "" {
		return
	}

	expiresAt := time.Time{}
	if m.ttl > 0 {
		expiresAt = m.now().Add(m.ttl)
	}

	m.mu.Lock()
	m.entries[key] = entry{
		value:     value,
		expiresAt: expiresAt,
	}
	m.mu.Unlock()
}

func (m *Memory) Delete(_ context.Context, key string) {
	if key == "" {
		return
	}

	m.mu.Lock()
	delete(m.entries, key)
	m.mu.Unlock()
}

func (m *Memory) DeletePrefix(_ context.Context, prefix string) {
	if prefix == "" {
		return
	}

	m.mu.Lock()
	for key := range m.entries {
		if strings.HasPrefix(key, prefix) {
			delete(m.entries, key)
		}
	}
	m.mu.Unlock()
}

func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}
