package session

import (
	"context"

	"shopbot/internal/domain"
)

// Store holds one in-flight conversation session per user.
// Get returns nil when the user has no session or it has expired.
type Store interface {
	Get(ctx context.Context, userID int64) (*domain.Session, error)
	Put(ctx context.Context, sess *domain.Session) error
	Clear(ctx context.Context, userID int64) error
}
