// Package service implements the core data-access API of the link aggregator.
package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/and161185/minireddit/internal/crypto"
	"github.com/and161185/minireddit/internal/model"
	"github.com/and161185/minireddit/internal/repository"
)

// RedditAPI is the method contract consumed by the web layer.
// Lookup-style reads return (nil, nil) when nothing matches.
type RedditAPI interface {
	// CreateUser hashes the password and stores the user, returning its id.
	CreateUser(ctx context.Context, u model.NewUser) (int64, error)
	// CheckUserLogin verifies credentials and returns the public user record.
	CheckUserLogin(ctx context.Context, username, password string) (model.PublicUser, error)
	// CreateUserSession issues a new session token for the user.
	CreateUserSession(ctx context.Context, userID int64) (string, error)
	// GetUserFromSession resolves a token to its user.
	GetUserFromSession(ctx context.Context, token string) (*model.UserSession, error)
	// DeleteUserSession invalidates a token.
	DeleteUserSession(ctx context.Context, token string) error

	// CreateSubreddit stores a subreddit, returning its id.
	CreateSubreddit(ctx context.Context, s model.NewSubreddit) (int64, error)
	// GetAllSubreddits lists every subreddit, newest first.
	GetAllSubreddits(ctx context.Context) ([]model.Subreddit, error)
	// GetSubredditByName returns the subreddit or nil.
	GetSubredditByName(ctx context.Context, name string) (*model.Subreddit, error)

	// CreatePost stores a post, returning its id.
	CreatePost(ctx context.Context, p model.NewPost) (int64, error)
	// GetAllPosts lists at most 25 posts; subredditID of 0 means no filter.
	GetAllPosts(ctx context.Context, subredditID int64, sort model.SortMethod) ([]model.Post, error)
	// GetSinglePost returns the post or nil.
	GetSinglePost(ctx context.Context, postID int64) (*model.Post, error)

	// CreateVote records or overwrites a user's vote on a post.
	CreateVote(ctx context.Context, v model.Vote) error

	// CreateComment stores a comment, returning its id.
	CreateComment(ctx context.Context, c model.NewComment) (int64, error)
	// GetCommentsForPost lists at most 25 comments, newest first.
	GetCommentsForPost(ctx context.Context, postID int64) ([]model.Comment, error)
}

// Stores bundles the repositories the API reads and writes.
type Stores struct {
	Users      repository.UserRepository
	Sessions   repository.SessionRepository
	Subreddits repository.SubredditRepository
	Posts      repository.PostRepository
	Votes      repository.VoteRepository
	Comments   repository.CommentRepository
}

// RedditAPIImpl is the default RedditAPI. It holds no mutable state.
type RedditAPIImpl struct {
	st       Stores
	hashCost int
	log      *zap.Logger
}

var _ RedditAPI = (*RedditAPIImpl)(nil)

// NewRedditAPI constructs the API. A non-positive hashCost selects crypto.DefaultCost; a nil logger disables logging.
func NewRedditAPI(st Stores, hashCost int, log *zap.Logger) *RedditAPIImpl {
	if hashCost <= 0 {
		hashCost = crypto.DefaultCost
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &RedditAPIImpl{st: st, hashCost: hashCost, log: log}
}
