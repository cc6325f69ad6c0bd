package postgres

import (
	"context"
	"errors"

	"github.com/and161185/minireddit/internal/errs"
	"github.com/and161185/minireddit/internal/model"
	"github.com/jackc/pgx/v5"
)

// SessionRepo implements SessionRepository using PostgreSQL.
type SessionRepo struct{ db *DB }

// NewSessionRepo constructs a session repository.
func NewSessionRepo(db *DB) *SessionRepo { return &SessionRepo{db: db} }

// Create inserts a session row.
func (r *SessionRepo) Create(ctx context.Context, userID int64, token string) error {
	const q = `INSERT INTO sessions (user_id, token) VALUES ($1, $2)`
	_, err := r.db.Pool.Exec(ctx, q, userID, token)
	return err
}

// GetUserByToken joins sessions to users on token.
func (r *SessionRepo) GetUserByToken(ctx context.Context, token string) (*model.UserSession, error) {
	const q = `
SELECT u.id, u.username, u.password_hash, u.created_at, u.updated_at, s.token
FROM users u
JOIN sessions s ON u.id = s.user_id
WHERE s.token = $1`
	var us model.UserSession
	err := r.db.Pool.QueryRow(ctx, q, token).
		Scan(&us.UserID, &us.Username, &us.PasswordHash, &us.CreatedAt, &us.UpdatedAt, &us.Token)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return &us, nil
}

// Delete removes a session by token.
func (r *SessionRepo) Delete(ctx context.Context, token string) error {
	const q = `DELETE FROM sessions WHERE token = $1`
	_, err := r.db.Pool.Exec(ctx, q, token)
	return err
}
