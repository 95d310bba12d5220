package session

import (
	"sync"

	coffrefort "github.com/Azizsaidi66/CoffreFort"
)

// MemoryStore is an in-memory SessionStore for tests and ephemeral use.
type MemoryStore struct {
	mu   sync.RWMutex
	sess coffrefort.Session
}

// compile-time check
var _ coffrefort.SessionStore = (*MemoryStore)(nil)

// NewMemoryStore creates an empty in-memory session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Set replaces the stored session.
func (s *MemoryStore) Set(sess coffrefort.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sess = sess
	return nil
}

// Get returns the stored session, or the zero Session when empty.
func (s *MemoryStore) Get() coffrefort.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sess
}

// Clear removes the stored session. Idempotent.
func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sess = coffrefort.Session{}
	return nil
}
