package httpapi

import (
	"context"
	"time"

	"github.com/and161185/minireddit/internal/errs"
	"github.com/and161185/minireddit/internal/model"
	"github.com/and161185/minireddit/internal/service"
)

// fakeAPI is a scripted RedditAPI. Unset behaviour returns zero values.
type fakeAPI struct {
	sessions map[string]*model.UserSession
	sessErr  error

	users    map[string]string // username -> password
	userErr  error
	issued   []int64
	deleted  []string
	created  []model.NewUser
	subs     map[string]*model.Subreddit
	posts    map[int64]*model.Post
	comments map[int64][]model.Comment

	lastList struct {
		subredditID int64
		sort        model.SortMethod
	}
	votes       []model.Vote
	newPosts    []model.NewPost
	newComments []model.NewComment
	newSubs     []model.NewSubreddit

	listErr error
	panicOn string
}

var _ service.RedditAPI = (*fakeAPI)(nil)

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		sessions: map[string]*model.UserSession{},
		users:    map[string]string{},
		subs:     map[string]*model.Subreddit{},
		posts:    map[int64]*model.Post{},
		comments: map[int64][]model.Comment{},
	}
}

func (f *fakeAPI) CreateUser(_ context.Context, u model.NewUser) (int64, error) {
	if f.userErr != nil {
		return 0, f.userErr
	}
	if u.Username == "" || u.Password == "" || len(u.Password) > 72 {
		return 0, errs.ErrValidation
	}
	if _, ok := f.users[u.Username]; ok {
		return 0, errs.ErrUsernameTaken
	}
	f.users[u.Username] = u.Password
	f.created = append(f.created, u)
	return int64(len(f.created)), nil
}

func (f *fakeAPI) CheckUserLogin(_ context.Context, username, password string) (model.PublicUser, error) {
	if f.userErr != nil {
		return model.PublicUser{}, f.userErr
	}
	if p, ok := f.users[username]; !ok || p != password {
		return model.PublicUser{}, errs.ErrInvalidCredentials
	}
	return model.PublicUser{ID: 1, Username: username}, nil
}

func (f *fakeAPI) CreateUserSession(_ context.Context, userID int64) (string, error) {
	f.issued = append(f.issued, userID)
	return "tok-1", nil
}

func (f *fakeAPI) GetUserFromSession(_ context.Context, token string) (*model.UserSession, error) {
	if f.sessErr != nil {
		return nil, f.sessErr
	}
	u, ok := f.sessions[token]
	if !ok {
		return nil, errs.ErrInvalidSession
	}
	return u, nil
}

func (f *fakeAPI) DeleteUserSession(_ context.Context, token string) error {
	f.deleted = append(f.deleted, token)
	delete(f.sessions, token)
	return nil
}

func (f *fakeAPI) CreateSubreddit(_ context.Context, s model.NewSubreddit) (int64, error) {
	if _, ok := f.subs[s.Name]; ok {
		return 0, errs.ErrSubredditTaken
	}
	f.newSubs = append(f.newSubs, s)
	id := int64(len(f.newSubs))
	f.subs[s.Name] = &model.Subreddit{ID: id, Name: s.Name, Description: s.Description}
	return id, nil
}

func (f *fakeAPI) GetAllSubreddits(context.Context) ([]model.Subreddit, error) {
	out := make([]model.Subreddit, 0, len(f.subs))
	for _, s := range f.subs {
		out = append(out, *s)
	}
	return out, nil
}

func (f *fakeAPI) GetSubredditByName(_ context.Context, name string) (*model.Subreddit, error) {
	return f.subs[name], nil
}

func (f *fakeAPI) CreatePost(_ context.Context, p model.NewPost) (int64, error) {
	if p.SubredditID == 0 {
		return 0, errs.ErrNoSubredditID
	}
	if p.Title == "" || p.URL == "" {
		return 0, errs.ErrValidation
	}
	f.newPosts = append(f.newPosts, p)
	return 100, nil
}

func (f *fakeAPI) GetAllPosts(_ context.Context, subredditID int64, sort model.SortMethod) ([]model.Post, error) {
	if f.panicOn == "list" {
		panic("list exploded")
	}
	f.lastList.subredditID = subredditID
	f.lastList.sort = sort
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := []model.Post{}
	for _, p := range f.posts {
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakeAPI) GetSinglePost(_ context.Context, postID int64) (*model.Post, error) {
	return f.posts[postID], nil
}

func (f *fakeAPI) CreateVote(_ context.Context, v model.Vote) error {
	if !model.ValidDirection(v.Direction) {
		return errs.ErrInvalidVoteDirection
	}
	f.votes = append(f.votes, v)
	return nil
}

func (f *fakeAPI) CreateComment(_ context.Context, c model.NewComment) (int64, error) {
	if c.Text == "" {
		return 0, errs.ErrValidation
	}
	f.newComments = append(f.newComments, c)
	return 7, nil
}

func (f *fakeAPI) GetCommentsForPost(_ context.Context, postID int64) ([]model.Comment, error) {
	return f.comments[postID], nil
}

type fakeLimiter struct {
	blocked  bool
	failErr  error
	failures int
	success  int
}

func (l *fakeLimiter) Allow(context.Context, string, []byte) (bool, time.Duration, error) {
	if l.blocked {
		return false, time.Minute, nil
	}
	return true, 0, nil
}

func (l *fakeLimiter) Success(context.Context, string, []byte) error {
	l.success++
	return nil
}

func (l *fakeLimiter) Failure(context.Context, string, []byte) (bool, time.Duration, error) {
	l.failures++
	return false, 0, l.failErr
}
