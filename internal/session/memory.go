package session

import "sync"

// MemoryStore is an in-memory Store for tests and ephemeral use.
type MemoryStore struct {
	mu  sync.Mutex
	s   Session
	set bool
}

var _ Store = (*MemoryStore)(nil)

func (m *MemoryStore) Current() (Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.s, m.set
}

func (m *MemoryStore) Set(s Session) error {
	if s.Token == "" || s.Username == "" {
		return errIncomplete
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.s = s
	m.set = true
	return nil
}

func (m *MemoryStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.s = Session{}
	m.set = false
	return nil
}
