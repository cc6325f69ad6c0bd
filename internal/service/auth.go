package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/and161185/minireddit/internal/crypto"
	"github.com/and161185/minireddit/internal/errs"
	"github.com/and161185/minireddit/internal/model"
)

// CreateUser creates a new user record with a bcrypt password hash.
func (s *RedditAPIImpl) CreateUser(ctx context.Context, u model.NewUser) (int64, error) {
	if u.Username == "" || u.Password == "" {
		return 0, fmt.Errorf("%w: empty username/password", errs.ErrValidation)
	}
	if len(u.Password) > crypto.MaxPasswordBytes {
		return 0, fmt.Errorf("%w: password longer than %d bytes", errs.ErrValidation, crypto.MaxPasswordBytes)
	}
	hash, err := crypto.HashPassword(u.Password, s.hashCost)
	if err != nil {
		return 0, err
	}
	id, err := s.st.Users.Create(ctx, u.Username, hash)
	if err != nil {
		if errors.Is(err, errs.ErrAlreadyExists) {
			return 0, errs.ErrUsernameTaken
		}
		return 0, err
	}
	return id, nil
}

// CheckUserLogin authenticates the user. Unknown user and wrong password fail identically.
func (s *RedditAPIImpl) CheckUserLogin(ctx context.Context, username, password string) (model.PublicUser, error) {
	u, err := s.st.Users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			s.log.Info("login rejected", zap.String("username", username), zap.String("reason", "unknown user"))
			return model.PublicUser{}, errs.ErrInvalidCredentials
		}
		return model.PublicUser{}, err
	}
	if !crypto.VerifyPassword(password, u.PasswordHash) {
		s.log.Info("login rejected", zap.String("username", username), zap.String("reason", "bad password"))
		return model.PublicUser{}, errs.ErrInvalidCredentials
	}
	return model.PublicUser{ID: u.ID, Username: u.Username}, nil
}

// CreateUserSession generates a random token and stores it for the user.
func (s *RedditAPIImpl) CreateUserSession(ctx context.Context, userID int64) (string, error) {
	token, err := crypto.NewSessionToken()
	if err != nil {
		return "", err
	}
	if err := s.st.Sessions.Create(ctx, userID, token); err != nil {
		return "", err
	}
	return token, nil
}

// GetUserFromSession resolves the session token.
func (s *RedditAPIImpl) GetUserFromSession(ctx context.Context, token string) (*model.UserSession, error) {
	if token == "" {
		return nil, errs.ErrInvalidSession
	}
	us, err := s.st.Sessions.GetUserByToken(ctx, token)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return nil, errs.ErrInvalidSession
		}
		return nil, err
	}
	return us, nil
}

// DeleteUserSession removes the session; deleting an unknown token succeeds.
func (s *RedditAPIImpl) DeleteUserSession(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.st.Sessions.Delete(ctx, token)
}
