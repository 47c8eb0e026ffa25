package calculator

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// DefaultMaxSessions bounds a SessionStore created with a non-positive limit.
const DefaultMaxSessions = 1024

var (
	// ErrSessionNotFound is returned for an unknown or deleted session id.
	ErrSessionNotFound = errors.New("session not found")
	// ErrSessionLimit is returned by Create when the store is full.
	ErrSessionLimit = errors.New("too many open sessions")
)

// SessionStore keeps in-memory sessions keyed by random ids. Sessions do not
// survive a restart and at most limit are open at once.
type SessionStore struct {
	calc  *Calculator
	limit int

	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewSessionStore(c *Calculator, limit int) *SessionStore {
	if limit <= 0 {
		limit = DefaultMaxSessions
	}
	return &SessionStore{
		calc:     c,
		limit:    limit,
		sessions: make(map[string]*Session),
	}
}

// Create starts a session at initial and returns its id.
func (s *SessionStore) Create(initial float64) (string, *Session, error) {
	session := NewSession(s.calc)
	if err := session.SetState(initial); err != nil {
		return "", nil, err
	}

	id := uuid.New().String()

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.sessions) >= s.limit {
		return "", nil, fmt.Errorf("%w: limit is %d", ErrSessionLimit, s.limit)
	}
	s.sessions[id] = session

	return id, session, nil
}

func (s *SessionStore) Get(id string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return session, nil
}

func (s *SessionStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	delete(s.sessions, id)
	return nil
}

// Len returns the number of live sessions.
func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
