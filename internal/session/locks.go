package session

import "sync"

// Locks serializes session read-modify-write per user id, so two
// concurrent updates from the same user (double-tap) cannot interleave.
// Different users never contend with each other. The map holds one
// mutex per user ever seen and never evicts; at a few dozen bytes per
// user that stays negligible long before anything else does.
type Locks struct {
	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

// NewLocks creates an empty lock set
func NewLocks() *Locks {
	return &Locks{locks: make(map[int64]*sync.Mutex)}
}

// Lock acquires the lock for a user and returns the unlock function
func (l *Locks) Lock(userID int64) func() {
	l.mu.Lock()
	m, ok := l.locks[userID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[userID] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
