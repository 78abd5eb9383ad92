package testfixtures

import (
	"context"
	"sync"
	"time"

	"github.com/example/dorm-duty-bot/internal/persistence"
)

// SessionStore is an in-memory persistence.SessionStore with the same atomic
// whole-record semantics as the SQLite implementation.
type SessionStore struct {
	mu       sync.Mutex
	now      func() time.Time
	sessions map[string]persistence.Session

	// Fail injections for error-path tests.
	GetErr    error
	PutErr    error
	DeleteErr error
}

// NewSessionStore returns an empty store using the provided clock function.
func NewSessionStore(now func() time.Time) *SessionStore {
	if now == nil {
		now = time.Now
	}
	return &SessionStore{now: now, sessions: make(map[string]persistence.Session)}
}

// Get implements persistence.SessionStore.
func (s *SessionStore) Get(ctx context.Context, chatID string) (persistence.Session, error) {
	if s.GetErr != nil {
		return persistence.Session{}, s.GetErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[chatID]
	if !ok {
		return persistence.Session{}, persistence.ErrNotFound
	}
	return cloneSession(session), nil
}

// Put implements persistence.SessionStore.
func (s *SessionStore) Put(ctx context.Context, session persistence.Session) error {
	if s.PutErr != nil {
		return s.PutErr
	}
	if session.ChatID == "" || session.State == "" {
		return persistence.ErrConstraintViolation
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now().UTC()
	if session.CreatedAt.IsZero() {
		session.CreatedAt = now
	}
	session.UpdatedAt = now
	s.sessions[session.ChatID] = cloneSession(session)
	return nil
}

// Delete implements persistence.SessionStore.
func (s *SessionStore) Delete(ctx context.Context, chatID string) error {
	if s.DeleteErr != nil {
		return s.DeleteErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, chatID)
	return nil
}

// Snapshot returns the stored session for assertions, reporting presence.
func (s *SessionStore) Snapshot(chatID string) (persistence.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[chatID]
	if !ok {
		return persistence.Session{}, false
	}
	return cloneSession(session), true
}

func cloneSession(session persistence.Session) persistence.Session {
	clone := session
	if session.GeneratedAt != nil {
		generated := *session.GeneratedAt
		clone.GeneratedAt = &generated
	}
	return clone
}
