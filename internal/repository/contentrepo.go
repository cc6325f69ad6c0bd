package repository

import (
	"context"

	"github.com/and161185/minireddit/internal/model"
)

// SubredditRepository provides access to subreddits.
type SubredditRepository interface {
	// Create inserts a subreddit and returns its id. Duplicate names yield errs.ErrAlreadyExists.
	Create(ctx context.Context, s model.NewSubreddit) (int64, error)
	// List returns all subreddits, newest first.
	List(ctx context.Context) ([]model.Subreddit, error)
	// GetByName returns the subreddit with exactly this name, or errs.ErrNotFound.
	GetByName(ctx context.Context, name string) (*model.Subreddit, error)
}

// PostRepository provides access to posts with vote aggregates.
type PostRepository interface {
	// Create inserts a post and returns its id.
	Create(ctx context.Context, p model.NewPost) (int64, error)
	// List returns at most 25 posts. A non-zero subredditID takes priority over sort.
	List(ctx context.Context, subredditID int64, sort model.SortMethod) ([]model.Post, error)
	// Get returns one post, or errs.ErrNotFound.
	Get(ctx context.Context, id int64) (*model.Post, error)
}

// VoteRepository stores one vote per (post, user).
type VoteRepository interface {
	// Upsert inserts the vote or overwrites the direction of an existing one atomically.
	Upsert(ctx context.Context, v model.Vote) error
}

// CommentRepository provides access to comments.
type CommentRepository interface {
	// Create inserts a comment and returns its id.
	Create(ctx context.Context, c model.NewComment) (int64, error)
	// ListForPost returns at most 25 comments on the post, newest first.
	ListForPost(ctx context.Context, postID int64) ([]model.Comment, error)
}
