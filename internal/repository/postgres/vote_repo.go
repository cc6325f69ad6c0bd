package postgres

import (
	"context"
	"fmt"

	"github.com/and161185/minireddit/internal/errs"

	"github.com/and161185/minireddit/internal/model"
)

// VoteRepo implements VoteRepository using PostgreSQL.
type VoteRepo struct{ db *DB }

// NewVoteRepo constructs a vote repository.
func NewVoteRepo(db *DB) *VoteRepo { return &VoteRepo{db: db} }

// Upsert records the vote in a single statement so racing votes on the same pair leave one row.
func (r *VoteRepo) Upsert(ctx context.Context, v model.Vote) error {
	const q = `
INSERT INTO votes (post_id, user_id, vote_direction)
VALUES ($1, $2, $3)
ON CONFLICT (post_id, user_id)
DO UPDATE SET vote_direction = EXCLUDED.vote_direction, updated_at = now()`
	_, err := r.db.Pool.Exec(ctx, q, v.PostID, v.UserID, v.Direction)
	if isForeignKeyViolation(err) {
		return fmt.Errorf("%w: post %d", errs.ErrNotFound, v.PostID)
	}
	return err
}
