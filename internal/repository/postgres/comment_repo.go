package postgres

import (
	"context"
	"fmt"

	"github.com/and161185/minireddit/internal/errs"

	"github.com/and161185/minireddit/internal/model"
)

// CommentRepo implements CommentRepository using PostgreSQL.
type CommentRepo struct{ db *DB }

// NewCommentRepo constructs a comment repository.
func NewCommentRepo(db *DB) *CommentRepo { return &CommentRepo{db: db} }

// Create inserts a comment and returns the generated id.
func (r *CommentRepo) Create(ctx context.Context, c model.NewComment) (int64, error) {
	const q = `
INSERT INTO comments (user_id, post_id, text)
VALUES ($1, $2, $3)
RETURNING id`
	var id int64
	if err := r.db.Pool.QueryRow(ctx, q, c.UserID, c.PostID, c.Text).Scan(&id); err != nil {
		if isForeignKeyViolation(err) {
			return 0, fmt.Errorf("%w: post %d", errs.ErrNotFound, c.PostID)
		}
		return 0, err
	}
	return id, nil
}

// ListForPost returns the newest comments on a post joined with their authors.
func (r *CommentRepo) ListForPost(ctx context.Context, postID int64) ([]model.Comment, error) {
	const q = `
SELECT
    c.id AS comments_id,
    c.text AS comments_text,
    c.created_at AS comments_created_at,
    c.updated_at AS comments_updated_at,
    u.id AS users_id,
    u.username AS users_username
FROM comments c
    JOIN users u ON c.user_id = u.id
WHERE c.post_id = $1
ORDER BY c.created_at DESC, c.id DESC
LIMIT 25`
	rows, err := r.db.Pool.Query(ctx, q, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Comment, 0, listLimit)
	for rows.Next() {
		var c model.Comment
		if err = rows.Scan(&c.ID, &c.Text, &c.CreatedAt, &c.UpdatedAt, &c.User.ID, &c.User.Username); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
