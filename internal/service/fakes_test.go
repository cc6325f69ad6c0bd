package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/and161185/minireddit/internal/errs"
	"github.com/and161185/minireddit/internal/model"
	"github.com/and161185/minireddit/internal/repository"
)

// memStore is an in-memory stand-in for the Postgres repositories.
type memStore struct {
	mu sync.Mutex

	nextID   int64
	clock    time.Time
	users    map[string]*model.User
	sessions map[string]int64
	subs     []model.Subreddit
	posts    []memPost
	votes    map[[2]int64]int
	comments []memComment

	// failure injection
	usersErr    error
	sessionsErr error
	postsErr    error
	votesErr    error

	sessionInserts int
}

type memPost struct {
	model.NewPost
	ID        int64
	CreatedAt time.Time
}

type memComment struct {
	model.NewComment
	ID        int64
	CreatedAt time.Time
}

func newMemStore() *memStore {
	return &memStore{
		clock:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		users:    map[string]*model.User{},
		sessions: map[string]int64{},
		votes:    map[[2]int64]int{},
	}
}

func (m *memStore) stores() Stores {
	return Stores{
		Users:      memUsers{m},
		Sessions:   memSessions{m},
		Subreddits: memSubs{m},
		Posts:      memPosts{m},
		Votes:      memVotes{m},
		Comments:   memComments{m},
	}
}

func (m *memStore) tick() (int64, time.Time) {
	m.nextID++
	m.clock = m.clock.Add(time.Minute)
	return m.nextID, m.clock
}

type memUsers struct{ m *memStore }

var _ repository.UserRepository = memUsers{}

func (r memUsers) Create(_ context.Context, username, hash string) (int64, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if r.m.usersErr != nil {
		return 0, r.m.usersErr
	}
	if _, ok := r.m.users[username]; ok {
		return 0, errs.ErrAlreadyExists
	}
	id, ts := r.m.tick()
	r.m.users[username] = &model.User{ID: id, Username: username, PasswordHash: hash, CreatedAt: ts, UpdatedAt: ts}
	return id, nil
}

func (r memUsers) GetByUsername(_ context.Context, username string) (*model.User, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if r.m.usersErr != nil {
		return nil, r.m.usersErr
	}
	u, ok := r.m.users[username]
	if !ok {
		return nil, errs.ErrNotFound
	}
	c := *u
	return &c, nil
}

func (m *memStore) userByID(id int64) *model.User {
	for _, u := range m.users {
		if u.ID == id {
			return u
		}
	}
	return nil
}

type memSessions struct{ m *memStore }

var _ repository.SessionRepository = memSessions{}

func (r memSessions) Create(_ context.Context, userID int64, token string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.sessionInserts++
	if r.m.sessionsErr != nil {
		return r.m.sessionsErr
	}
	r.m.sessions[token] = userID
	return nil
}

func (r memSessions) GetUserByToken(_ context.Context, token string) (*model.UserSession, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if r.m.sessionsErr != nil {
		return nil, r.m.sessionsErr
	}
	uid, ok := r.m.sessions[token]
	if !ok {
		return nil, errs.ErrNotFound
	}
	u := r.m.userByID(uid)
	if u == nil {
		return nil, errs.ErrNotFound
	}
	return &model.UserSession{
		UserID: u.ID, Username: u.Username, PasswordHash: u.PasswordHash,
		CreatedAt: u.CreatedAt, UpdatedAt: u.UpdatedAt, Token: token,
	}, nil
}

func (r memSessions) Delete(_ context.Context, token string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	delete(r.m.sessions, token)
	return nil
}

type memSubs struct{ m *memStore }

var _ repository.SubredditRepository = memSubs{}

func (r memSubs) Create(_ context.Context, s model.NewSubreddit) (int64, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, e := range r.m.subs {
		if e.Name == s.Name {
			return 0, errs.ErrAlreadyExists
		}
	}
	id, ts := r.m.tick()
	r.m.subs = append(r.m.subs, model.Subreddit{ID: id, Name: s.Name, Description: s.Description, CreatedAt: ts, UpdatedAt: ts})
	return id, nil
}

func (r memSubs) List(context.Context) ([]model.Subreddit, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	out := make([]model.Subreddit, 0, len(r.m.subs))
	for i := len(r.m.subs) - 1; i >= 0; i-- {
		out = append(out, r.m.subs[i])
	}
	return out, nil
}

func (r memSubs) GetByName(_ context.Context, name string) (*model.Subreddit, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, s := range r.m.subs {
		if s.Name == name {
			c := s
			return &c, nil
		}
	}
	return nil, errs.ErrNotFound
}

func (m *memStore) subByID(id int64) model.Subreddit {
	for _, s := range m.subs {
		if s.ID == id {
			return s
		}
	}
	return model.Subreddit{}
}

type memPosts struct{ m *memStore }

var _ repository.PostRepository = memPosts{}

func (r memPosts) Create(_ context.Context, p model.NewPost) (int64, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if r.m.postsErr != nil {
		return 0, r.m.postsErr
	}
	id, ts := r.m.tick()
	r.m.posts = append(r.m.posts, memPost{NewPost: p, ID: id, CreatedAt: ts})
	return id, nil
}

func (m *memStore) aggregate(p memPost) model.Post {
	out := model.Post{ID: p.ID, Title: p.Title, URL: p.URL, CreatedAt: p.CreatedAt, UpdatedAt: p.CreatedAt}
	for k, d := range m.votes {
		if k[0] != p.ID {
			continue
		}
		out.VoteScore += int64(d)
		switch d {
		case 1:
			out.NumUpvotes++
		case -1:
			out.NumDownvotes++
		}
	}
	if u := m.userByID(p.UserID); u != nil {
		out.User = model.PostAuthor{ID: u.ID, Username: u.Username, CreatedAt: u.CreatedAt, UpdatedAt: u.UpdatedAt}
	}
	out.Subreddit = m.subByID(p.SubredditID)
	return out
}

func (r memPosts) List(_ context.Context, subredditID int64, sortBy model.SortMethod) ([]model.Post, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if r.m.postsErr != nil {
		return nil, r.m.postsErr
	}
	out := []model.Post{}
	for _, p := range r.m.posts {
		if subredditID != 0 && p.SubredditID != subredditID {
			continue
		}
		out = append(out, r.m.aggregate(p))
	}
	newest := func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) }
	switch {
	case subredditID == 0 && sortBy == model.SortTop:
		sort.SliceStable(out, func(i, j int) bool {
			if out[i].VoteScore != out[j].VoteScore {
				return out[i].VoteScore > out[j].VoteScore
			}
			return newest(i, j)
		})
	default:
		sort.SliceStable(out, newest)
	}
	if len(out) > 25 {
		out = out[:25]
	}
	return out, nil
}

func (r memPosts) Get(_ context.Context, id int64) (*model.Post, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if r.m.postsErr != nil {
		return nil, r.m.postsErr
	}
	for _, p := range r.m.posts {
		if p.ID == id {
			agg := r.m.aggregate(p)
			return &agg, nil
		}
	}
	return nil, errs.ErrNotFound
}

type memVotes struct{ m *memStore }

var _ repository.VoteRepository = memVotes{}

func (r memVotes) Upsert(_ context.Context, v model.Vote) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if r.m.votesErr != nil {
		return r.m.votesErr
	}
	r.m.votes[[2]int64{v.PostID, v.UserID}] = v.Direction
	return nil
}

type memComments struct{ m *memStore }

var _ repository.CommentRepository = memComments{}

func (r memComments) Create(_ context.Context, c model.NewComment) (int64, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	id, ts := r.m.tick()
	r.m.comments = append(r.m.comments, memComment{NewComment: c, ID: id, CreatedAt: ts})
	return id, nil
}

func (r memComments) ListForPost(_ context.Context, postID int64) ([]model.Comment, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	out := []model.Comment{}
	for i := len(r.m.comments) - 1; i >= 0 && len(out) < 25; i-- {
		c := r.m.comments[i]
		if c.PostID != postID {
			continue
		}
		cm := model.Comment{ID: c.ID, Text: c.Text, CreatedAt: c.CreatedAt, UpdatedAt: c.CreatedAt}
		if u := r.m.userByID(c.UserID); u != nil {
			cm.User = model.CommentAuthor{ID: u.ID, Username: u.Username}
		}
		out = append(out, cm)
	}
	return out, nil
}
