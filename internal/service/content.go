package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/and161185/minireddit/internal/errs"
	"github.com/and161185/minireddit/internal/model"
)

// CreateSubreddit stores a subreddit. Duplicate names are reported as errs.ErrSubredditTaken.
func (s *RedditAPIImpl) CreateSubreddit(ctx context.Context, sub model.NewSubreddit) (int64, error) {
	if sub.Name == "" {
		return 0, fmt.Errorf("%w: empty subreddit name", errs.ErrValidation)
	}
	id, err := s.st.Subreddits.Create(ctx, sub)
	if err != nil {
		if errors.Is(err, errs.ErrAlreadyExists) {
			return 0, errs.ErrSubredditTaken
		}
		return 0, err
	}
	return id, nil
}

// GetAllSubreddits lists subreddits.
func (s *RedditAPIImpl) GetAllSubreddits(ctx context.Context) ([]model.Subreddit, error) {
	return s.st.Subreddits.List(ctx)
}

// GetSubredditByName returns nil when no subreddit has that exact name.
func (s *RedditAPIImpl) GetSubredditByName(ctx context.Context, name string) (*model.Subreddit, error) {
	sub, err := s.st.Subreddits.GetByName(ctx, name)
	if errors.Is(err, errs.ErrNotFound) {
		return nil, nil
	}
	return sub, err
}

// CreatePost validates the subreddit id, title and url before inserting.
func (s *RedditAPIImpl) CreatePost(ctx context.Context, p model.NewPost) (int64, error) {
	if p.SubredditID == 0 {
		return 0, errs.ErrNoSubredditID
	}
	if p.Title == "" || p.URL == "" {
		return 0, fmt.Errorf("%w: empty title/url", errs.ErrValidation)
	}
	return s.st.Posts.Create(ctx, p)
}

// GetAllPosts lists posts. A subreddit filter takes priority over the sort method.
func (s *RedditAPIImpl) GetAllPosts(ctx context.Context, subredditID int64, sort model.SortMethod) ([]model.Post, error) {
	return s.st.Posts.List(ctx, subredditID, sort)
}

// GetSinglePost returns nil when the post does not exist.
func (s *RedditAPIImpl) GetSinglePost(ctx context.Context, postID int64) (*model.Post, error) {
	p, err := s.st.Posts.Get(ctx, postID)
	if errors.Is(err, errs.ErrNotFound) {
		return nil, nil
	}
	return p, err
}

// CreateVote validates the direction and upserts the vote.
func (s *RedditAPIImpl) CreateVote(ctx context.Context, v model.Vote) error {
	if !model.ValidDirection(v.Direction) {
		return errs.ErrInvalidVoteDirection
	}
	return s.st.Votes.Upsert(ctx, v)
}

// CreateComment stores a comment.
func (s *RedditAPIImpl) CreateComment(ctx context.Context, c model.NewComment) (int64, error) {
	if c.Text == "" {
		return 0, fmt.Errorf("%w: empty comment", errs.ErrValidation)
	}
	return s.st.Comments.Create(ctx, c)
}

// GetCommentsForPost lists comments on a post.
func (s *RedditAPIImpl) GetCommentsForPost(ctx context.Context, postID int64) ([]model.Comment, error) {
	return s.st.Comments.ListForPost(ctx, postID)
}
