package postgres

import (
	"context"
	"database/sql"
)

// UserRepo implements repository.UserRepository
type UserRepo struct {
	db *sql.DB
}

// NewUserRepo creates a new user repository
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

// EnsureUser creates the user row on first contact
func (r *UserRepo) EnsureUser(ctx context.Context, userID int64) error {
	query := `
		INSERT INTO users (user_id)
		VALUES ($1)
		ON CONFLICT (user_id) DO UPDATE SET updated_at = NOW()
	`
	_, err := r.db.ExecContext(ctx, query, userID)
	return err
}

// GetAnchor returns the user's live UI message id, 0 when none is stored
func (r *UserRepo) GetAnchor(ctx context.Context, userID int64) (int, error) {
	var anchor sql.NullInt64
	query := `SELECT ui_message_id FROM users WHERE user_id = $1`

	err := r.db.QueryRowContext(ctx, query, userID).Scan(&anchor)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	if !anchor.Valid {
		return 0, nil
	}
	return int(anchor.Int64), nil
}

// SetAnchor stores the user's live UI message id, overwriting any
// previous one. A zero messageID clears the anchor.
func (r *UserRepo) SetAnchor(ctx context.Context, userID int64, messageID int) error {
	var value sql.NullInt64
	if messageID != 0 {
		value = sql.NullInt64{Int64: int64(messageID), Valid: true}
	}

	query := `UPDATE users SET ui_message_id = $1, updated_at = NOW() WHERE user_id = $2`
	_, err := r.db.ExecContext(ctx, query, value, userID)
	return err
}
