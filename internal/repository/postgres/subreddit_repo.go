package postgres

import (
	"context"
	"errors"

	"github.com/and161185/minireddit/internal/errs"
	"github.com/and161185/minireddit/internal/model"
	"github.com/jackc/pgx/v5"
)

// SubredditRepo implements SubredditRepository using PostgreSQL.
type SubredditRepo struct{ db *DB }

// NewSubredditRepo constructs a subreddit repository.
func NewSubredditRepo(db *DB) *SubredditRepo { return &SubredditRepo{db: db} }

// Create inserts a subreddit and returns the generated id.
func (r *SubredditRepo) Create(ctx context.Context, s model.NewSubreddit) (int64, error) {
	const q = `
INSERT INTO subreddits (name, description)
VALUES ($1, $2)
RETURNING id`
	var id int64
	err := r.db.Pool.QueryRow(ctx, q, s.Name, s.Description).Scan(&id)
	if isUniqueViolation(err) {
		return 0, errs.ErrAlreadyExists
	}
	if err != nil {
		return 0, err
	}
	return id, nil
}

// List returns every subreddit ordered by creation time, newest first.
func (r *SubredditRepo) List(ctx context.Context) ([]model.Subreddit, error) {
	const q = `
SELECT id, name, description, created_at, updated_at
FROM subreddits
ORDER BY created_at DESC, id DESC`
	rows, err := r.db.Pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Subreddit{}
	for rows.Next() {
		var s model.Subreddit
		if err = rows.Scan(&s.ID, &s.Name, &s.Description, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// GetByName returns the subreddit with the exact name.
func (r *SubredditRepo) GetByName(ctx context.Context, name string) (*model.Subreddit, error) {
	const q = `
SELECT id, name, description, created_at, updated_at
FROM subreddits WHERE name = $1`
	var s model.Subreddit
	err := r.db.Pool.QueryRow(ctx, q, name).Scan(&s.ID, &s.Name, &s.Description, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}
