// Package repository defines storage interfaces implemented by concrete backends.
package repository

import (
	"context"

	"github.com/and161185/minireddit/internal/model"
)

// UserRepository provides access to user credentials.
type UserRepository interface {
	// Create inserts a new user and returns its id. Duplicate usernames yield errs.ErrAlreadyExists.
	Create(ctx context.Context, username, passwordHash string) (int64, error)
	// GetByUsername loads a user by username, or errs.ErrNotFound.
	GetByUsername(ctx context.Context, username string) (*model.User, error)
}

// SessionRepository stores opaque session tokens.
type SessionRepository interface {
	// Create inserts a (userID, token) pair.
	Create(ctx context.Context, userID int64, token string) error
	// GetUserByToken joins the session with its user, or errs.ErrNotFound.
	GetUserByToken(ctx context.Context, token string) (*model.UserSession, error)
	// Delete removes the session. Unknown tokens are not an error.
	Delete(ctx context.Context, token string) error
}
