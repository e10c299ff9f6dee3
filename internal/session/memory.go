package session

import (
	"context"
	"sync"
	"time"

	"shopbot/internal/domain"
)

// MemoryStore is an in-process session store. Suitable for a single
// bot instance; sessions are lost on restart.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[int64]*domain.Session
	ttl      time.Duration
}

// NewMemoryStore creates an in-memory store. A zero ttl disables expiry.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		sessions: make(map[int64]*domain.Session),
		ttl:      ttl,
	}
}

// Get returns the user's session, nil when absent or expired.
// The result is a copy: callers can hold it across lock boundaries
// without sharing map state with concurrent writers.
func (s *MemoryStore) Get(_ context.Context, userID int64) (*domain.Session, error) {
	s.mu.RLock()
	sess, ok := s.sessions[userID]
	if ok && !sess.ExpiredAt(time.Now(), s.ttl) {
		sess = sess.Clone()
		s.mu.RUnlock()
		return sess, nil
	}
	s.mu.RUnlock()

	if !ok {
		return nil, nil
	}
	s.Clear(context.Background(), userID)
	return nil, nil
}

// Put stores a copy of the user's session, replacing any previous one
func (s *MemoryStore) Put(_ context.Context, sess *domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.UserID] = sess.Clone()
	return nil
}

// Clear removes the user's session
func (s *MemoryStore) Clear(_ context.Context, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, userID)
	return nil
}

// Sweep drops all expired sessions and returns how many were removed.
// Run periodically so abandoned checkouts do not accumulate.
func (s *MemoryStore) Sweep() int {
	if s.ttl <= 0 {
		return 0
	}

	now := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for userID, sess := range s.sessions {
		if sess.ExpiredAt(now, s.ttl) {
			delete(s.sessions, userID)
			removed++
		}
	}
	return removed
}
