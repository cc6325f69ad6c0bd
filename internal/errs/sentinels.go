// Package errs contains sentinel errors used across layers for stable error mapping.
package errs

import (
	"errors"
	"fmt"
)

// Error classes. Callers branch on these with errors.Is.
var (
	// ErrNotFound indicates the requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrValidation indicates malformed input rejected before any store call.
	ErrValidation = errors.New("validation")

	// ErrUnauthorized indicates failed authentication (bad credentials or session).
	ErrUnauthorized = errors.New("unauthorized")

	// ErrRateLimited indicates temporary login lock due to rate limiting.
	ErrRateLimited = errors.New("rate limited")

	// ErrAlreadyExists indicates a unique constraint violation (e.g., username taken).
	ErrAlreadyExists = errors.New("already exists")
)

// Domain errors. Each wraps exactly one class above.
var (
	ErrUsernameTaken        = fmt.Errorf("%w: a user with this username already exists", ErrAlreadyExists)
	ErrSubredditTaken       = fmt.Errorf("%w: a subreddit with this name already exists", ErrAlreadyExists)
	ErrInvalidCredentials   = fmt.Errorf("%w: username or password incorrect", ErrUnauthorized)
	ErrInvalidSession       = fmt.Errorf("%w: invalid session", ErrUnauthorized)
	ErrNoSubredditID        = fmt.Errorf("%w: there is no subreddit id", ErrValidation)
	ErrInvalidVoteDirection = fmt.Errorf("%w: voteDirection must be one of -1, 0, 1", ErrValidation)
)
