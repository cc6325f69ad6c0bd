// Package limiter throttles repeated failed logins per (username, client IP).
package limiter

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/and161185/minireddit/internal/errs"
)

// Limiter controls login attempts and temporary lockouts.
type Limiter interface {
	// Allow reports whether login is currently allowed and optional retry-after.
	Allow(ctx context.Context, username string, ipHash []byte) (bool, time.Duration, error)
	// Success resets counters after a successful login.
	Success(ctx context.Context, username string, ipHash []byte) error
	// Failure records a failed attempt; may place a temporary block.
	Failure(ctx context.Context, username string, ipHash []byte) (bool, time.Duration, error)
}

// Policy configures the failure window and the lockout.
type Policy struct {
	Window   time.Duration // failures older than this start a new count
	MaxFails int           // failures within Window that trigger a block
	BlockFor time.Duration
}

// DefaultPolicy blocks for 15 minutes after 5 failures within 15 minutes.
func DefaultPolicy() Policy {
	return Policy{Window: 15 * time.Minute, MaxFails: 5, BlockFor: 15 * time.Minute}
}

// Guard runs check under the limiter. Only errs.ErrUnauthorized results count as failures;
// other errors pass through without touching the counters.
func Guard[T any](ctx context.Context, l Limiter, username, ip string, check func(context.Context) (T, error)) (T, error) {
	var zero T
	ipHash := HashIP(ip)

	allowed, _, err := l.Allow(ctx, username, ipHash)
	if err != nil {
		return zero, err
	}
	if !allowed {
		return zero, errs.ErrRateLimited
	}

	res, err := check(ctx)
	if err != nil {
		if errors.Is(err, errs.ErrUnauthorized) {
			blocked, _, ferr := l.Failure(ctx, username, ipHash)
			if ferr != nil {
				return zero, fmt.Errorf("record login failure: %w", ferr)
			}
			if blocked {
				return zero, errs.ErrRateLimited
			}
		}
		return zero, err
	}

	// best-effort
	_ = l.Success(ctx, username, ipHash)
	return res, nil
}
