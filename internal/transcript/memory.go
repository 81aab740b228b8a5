package transcript

import (
	"context"
	"sync"
	"time"
)

// Memory is a TTL-bounded in-memory transcript store. Expired entries
// are dropped lazily on read and swept periodically.
type Memory struct {
	mu    sync.RWMutex
	ttl   time.Duration
	items map[string]*memoryItem
}

type memoryItem struct {
	text       string
	expireTime time.Time
}

func NewMemory(ttl time.Duration) *Memory {
	store := &Memory{
		ttl:   ttl,
		items: make(map[string]*memoryItem),
	}
	go store.cleanupExpired()
	return store
}

func (m *Memory) Get(_ context.Context, videoID string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	item, exists := m.items[videoID]
	if !exists || time.Now().After(item.expireTime) {
		return "", false, nil
	}
	return item.text, true, nil
}

func (m *Memory) Set(_ context.Context, videoID, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.items[videoID] = &memoryItem{
		text:       text,
		expireTime: time.Now().Add(m.ttl),
	}
	return nil
}

func (m *Memory) cleanupExpired() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		m.mu.Lock()
		now := time.Now()
		for key, item := range m.items {
			if now.After(item.expireTime) {
				delete(m.items, key)
			}
		}
		m.mu.Unlock()
	}
}
