package session

import "sync"

// Error Contract:
// Store methods never fail. Read returns nil for absent or partial state
// instead of an error, since render-time gating must not branch on failures.
// InMemoryStore keeps the session in memory for tests and embedding.
type InMemoryStore struct {
	mu       sync.RWMutex
	token    string
	user     *Profile
	remember bool
}

// NewInMemoryStore constructs an empty in-memory session store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

func (s *InMemoryStore) Save(user Profile, token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.user = &user
}

func (s *InMemoryStore) Read() *Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.token == "" || s.user == nil {
		return nil
	}
	return &Session{Token: s.token, User: *s.user}
}

func (s *InMemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.user = nil
	s.remember = false
}

func (s *InMemoryStore) HasSession() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != ""
}

func (s *InMemoryStore) SetRemember(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.remember = v
}

func (s *InMemoryStore) Remembered() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.remember
}

// Corrupt forces partial state for tests: a token without a readable profile.
func (s *InMemoryStore) Corrupt() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = nil
}
