package auth

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Session is one logged-in dashboard user. The upstream RT session lives
// in the shared client's cookie jar; this record ties a bearer token to
// that live login.
type Session struct {
	ID        string
	User      string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// SessionStore holds live sessions in memory. Nothing survives a
// restart: a restarted server means logging in again, which also renews
// the upstream cookies.
type SessionStore struct {
	ttl      time.Duration
	now      func() time.Time
	mu       sync.RWMutex
	sessions map[string]Session
}

// NewSessionStore creates a store with the given session TTL. now is
// injectable for tests; pass nil to use time.Now.
func NewSessionStore(ttl time.Duration, now func() time.Time) *SessionStore {
	if now == nil {
		now = time.Now
	}
	return &SessionStore{
		ttl:      ttl,
		now:      now,
		sessions: make(map[string]Session),
	}
}

// Create registers a new session for the user and returns it.
func (s *SessionStore) Create(user string) Session {
	now := s.now()
	session := Session{
		ID:        uuid.NewString(),
		User:      user,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
	s.mu.Lock()
	s.sessions[session.ID] = session
	s.mu.Unlock()
	return session
}

// Get returns a live session, or ok=false for an unknown or expired id.
// Expired sessions are evicted on lookup.
func (s *SessionStore) Get(id string) (Session, bool) {
	s.mu.RLock()
	session, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return Session{}, false
	}
	if s.now().After(session.ExpiresAt) {
		s.Delete(id)
		return Session{}, false
	}
	return session, true
}

// Delete removes a session.
func (s *SessionStore) Delete(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}
