package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/and161185/minireddit/internal/errs"
	"github.com/and161185/minireddit/internal/model"
	"github.com/jackc/pgx/v5"
)

// listLimit matches the LIMIT of every post and comment listing.
const listLimit = 25

const postSelect = `
SELECT
    p.id AS posts_id,
    p.title AS posts_title,
    p.url AS posts_url,
    p.created_at AS posts_created_at,
    p.updated_at AS posts_updated_at,
    u.id AS users_id,
    u.username AS users_username,
    u.created_at AS users_created_at,
    u.updated_at AS users_updated_at,
    s.id AS subreddits_id,
    s.name AS subreddits_name,
    s.description AS subreddits_description,
    s.created_at AS subreddits_created_at,
    s.updated_at AS subreddits_updated_at,
    COALESCE(SUM(v.vote_direction), 0) AS vote_score,
    COUNT(*) FILTER (WHERE v.vote_direction = 1) AS num_upvotes,
    COUNT(*) FILTER (WHERE v.vote_direction = -1) AS num_downvotes
FROM posts p
    JOIN users u ON p.user_id = u.id
    JOIN subreddits s ON p.subreddit_id = s.id
    LEFT JOIN votes v ON p.id = v.post_id`

const postGroup = `
GROUP BY p.id, u.id, s.id`

// postQuery is the closed set of listing variants.
type postQuery int

const (
	queryNewest postQuery = iota
	querySubreddit
	queryTop
	queryHot
)

// choosePostQuery picks exactly one variant: subreddit filter first, then sort method, then default.
func choosePostQuery(subredditID int64, sort model.SortMethod) postQuery {
	switch {
	case subredditID != 0:
		return querySubreddit
	case sort == model.SortTop:
		return queryTop
	case sort == model.SortHot:
		return queryHot
	default:
		return queryNewest
	}
}

// sql renders the variant. Only querySubreddit takes an argument ($1).
func (q postQuery) sql() string {
	switch q {
	case querySubreddit:
		return postSelect + `
WHERE p.subreddit_id = $1` + postGroup + `
ORDER BY p.created_at DESC, p.id DESC
LIMIT 25`
	case queryTop:
		return postSelect + postGroup + `
ORDER BY vote_score DESC, p.created_at DESC, p.id DESC
LIMIT 25`
	case queryHot:
		return postSelect + postGroup + `
ORDER BY COALESCE(SUM(v.vote_direction), 0) / GREATEST(EXTRACT(EPOCH FROM now() - p.created_at), 1) DESC, p.created_at DESC, p.id DESC
LIMIT 25`
	default:
		return postSelect + postGroup + `
ORDER BY p.created_at DESC, p.id DESC
LIMIT 25`
	}
}

// PostRepo implements PostRepository using PostgreSQL.
type PostRepo struct{ db *DB }

// NewPostRepo constructs a post repository.
func NewPostRepo(db *DB) *PostRepo { return &PostRepo{db: db} }

// Create inserts a post row and returns the generated id.
func (r *PostRepo) Create(ctx context.Context, p model.NewPost) (int64, error) {
	const q = `
INSERT INTO posts (user_id, title, url, subreddit_id)
VALUES ($1, $2, $3, $4)
RETURNING id`
	var id int64
	if err := r.db.Pool.QueryRow(ctx, q, p.UserID, p.Title, p.URL, p.SubredditID).Scan(&id); err != nil {
		if isForeignKeyViolation(err) {
			return 0, fmt.Errorf("%w: subreddit %d", errs.ErrNotFound, p.SubredditID)
		}
		return 0, err
	}
	return id, nil
}

// List returns posts for the chosen variant.
func (r *PostRepo) List(ctx context.Context, subredditID int64, sort model.SortMethod) ([]model.Post, error) {
	q := choosePostQuery(subredditID, sort)
	var args []any
	if q == querySubreddit {
		args = append(args, subredditID)
	}
	rows, err := r.db.Pool.Query(ctx, q.sql(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	flat := make([]PostRow, 0, listLimit)
	for rows.Next() {
		var pr PostRow
		if err = rows.Scan(pr.dest()...); err != nil {
			return nil, err
		}
		flat = append(flat, pr)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return ToPosts(flat), nil
}

// Get returns a single post by id.
func (r *PostRepo) Get(ctx context.Context, id int64) (*model.Post, error) {
	const q = postSelect + `
WHERE p.id = $1` + postGroup
	var pr PostRow
	if err := r.db.Pool.QueryRow(ctx, q, id).Scan(pr.dest()...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	p := ToPost(pr)
	return &p, nil
}
