package session

import "sync"

// Manager maps an owner key (Telegram chat ID, API session ID) to its
// session state. Lookups may race; each individual State is still
// mutated by a single caller at a time.
type Manager[K comparable] struct {
	m sync.Map // K -> *State
}

func NewManager[K comparable]() *Manager[K] { return &Manager[K]{} }

// Get returns the state for key, creating an empty one on first use.
func (m *Manager[K]) Get(key K) *State {
	if v, ok := m.m.Load(key); ok {
		return v.(*State)
	}
	v, _ := m.m.LoadOrStore(key, New())
	return v.(*State)
}

// Peek returns the state only if one already exists.
func (m *Manager[K]) Peek(key K) (*State, bool) {
	v, ok := m.m.Load(key)
	if !ok {
		return nil, false
	}
	return v.(*State), true
}

func (m *Manager[K]) Delete(key K) { m.m.Delete(key) }
