package postgres

import (
	"context"
	"errors"

	"github.com/and161185/minireddit/internal/errs"
	"github.com/and161185/minireddit/internal/model"
	"github.com/jackc/pgx/v5"
)

// UserRepo implements UserRepository using PostgreSQL.
type UserRepo struct{ db *DB }

// NewUserRepo constructs a user repository.
func NewUserRepo(db *DB) *UserRepo { return &UserRepo{db: db} }

// Create inserts a new user row and returns the generated id.
func (r *UserRepo) Create(ctx context.Context, username, passwordHash string) (int64, error) {
	const q = `
INSERT INTO users (username, password_hash)
VALUES ($1, $2)
RETURNING id`
	var id int64
	err := r.db.Pool.QueryRow(ctx, q, username, passwordHash).Scan(&id)
	if isUniqueViolation(err) {
		return 0, errs.ErrAlreadyExists
	}
	if err != nil {
		return 0, err
	}
	return id, nil
}

// GetByUsername selects a user by username.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	const q = `
SELECT id, username, password_hash, created_at, updated_at
FROM users WHERE username=$1`
	row := r.db.Pool.QueryRow(ctx, q, username)
	var u model.User
	if err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}
