package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/and161185/minireddit/internal/errs"
	"github.com/and161185/minireddit/internal/model"
)

type fixture struct {
	s     *RedditAPIImpl
	m     *memStore
	alice int64
	bob   int64
	sub   int64
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	s, m := newTestAPI(t)
	ctx := context.Background()
	alice, err := s.CreateUser(ctx, model.NewUser{Username: "alice", Password: "pw"})
	require.NoError(t, err)
	bob, err := s.CreateUser(ctx, model.NewUser{Username: "bob", Password: "pw"})
	require.NoError(t, err)
	sub, err := s.CreateSubreddit(ctx, model.NewSubreddit{Name: "golang", Description: "gophers"})
	require.NoError(t, err)
	return fixture{s: s, m: m, alice: alice, bob: bob, sub: sub}
}

func (f fixture) post(t *testing.T, title string) int64 {
	t.Helper()
	id, err := f.s.CreatePost(context.Background(), model.NewPost{UserID: f.alice, Title: title, URL: "https://example.com/" + title, SubredditID: f.sub})
	require.NoError(t, err)
	return id
}

func TestSubreddits(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.s.CreateSubreddit(ctx, model.NewSubreddit{Name: "golang"})
	require.ErrorIs(t, err, errs.ErrSubredditTaken)
	require.ErrorIs(t, err, errs.ErrAlreadyExists)

	_, err = f.s.CreateSubreddit(ctx, model.NewSubreddit{})
	require.ErrorIs(t, err, errs.ErrValidation)

	rust, err := f.s.CreateSubreddit(ctx, model.NewSubreddit{Name: "rust"})
	require.NoError(t, err)

	all, err := f.s.GetAllSubreddits(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.Equal(t, rust, all[0].ID)

	got, err := f.s.GetSubredditByName(ctx, "golang")
	require.NoError(t, err)
	require.Equal(t, f.sub, got.ID)
	require.Equal(t, "gophers", got.Description)

	missing, err := f.s.GetSubredditByName(ctx, "gol")
	require.NoError(t, err)
	require.Nil(t, missing)
}

func TestCreatePost_RequiresSubreddit(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	_, err := f.s.CreatePost(context.Background(), model.NewPost{UserID: f.alice, Title: "t", URL: "u"})
	require.ErrorIs(t, err, errs.ErrNoSubredditID)
	require.ErrorIs(t, err, errs.ErrValidation)
	require.Empty(t, f.m.posts, "no insert may be attempted")
}

func TestCreatePost_RequiresTitleAndURL(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	for _, p := range []model.NewPost{
		{UserID: f.alice, Title: "", URL: "https://go.dev", SubredditID: f.sub},
		{UserID: f.alice, Title: "go", URL: "", SubredditID: f.sub},
		{UserID: f.alice, SubredditID: f.sub},
	} {
		_, err := f.s.CreatePost(ctx, p)
		require.ErrorIs(t, err, errs.ErrValidation)
	}
	require.Empty(t, f.m.posts, "no insert may be attempted")
}

func TestCreatePost_StoreError(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	boom := errors.New("fk violation")
	f.m.postsErr = boom

	_, err := f.s.CreatePost(context.Background(), model.NewPost{UserID: f.alice, Title: "t", URL: "u", SubredditID: 99})
	require.ErrorIs(t, err, boom)
}

func TestCreateVote_Validation(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	p := f.post(t, "a")

	for _, d := range []int{2, -2, 10} {
		err := f.s.CreateVote(context.Background(), model.Vote{PostID: p, UserID: f.bob, Direction: d})
		require.ErrorIs(t, err, errs.ErrInvalidVoteDirection)
		require.ErrorIs(t, err, errs.ErrValidation)
	}
	require.Empty(t, f.m.votes)
}

func TestCreateVote_OverwritesAndAggregates(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()
	p := f.post(t, "a")

	require.NoError(t, f.s.CreateVote(ctx, model.Vote{PostID: p, UserID: f.alice, Direction: 1}))
	require.NoError(t, f.s.CreateVote(ctx, model.Vote{PostID: p, UserID: f.alice, Direction: -1}))
	require.Len(t, f.m.votes, 1)
	require.Equal(t, -1, f.m.votes[[2]int64{p, f.alice}])

	require.NoError(t, f.s.CreateVote(ctx, model.Vote{PostID: p, UserID: f.bob, Direction: 1}))

	got, err := f.s.GetSinglePost(ctx, p)
	require.NoError(t, err)
	require.Equal(t, int64(0), got.VoteScore)
	require.Equal(t, int64(1), got.NumUpvotes)
	require.Equal(t, int64(1), got.NumDownvotes)
	require.Equal(t, "alice", got.User.Username)
	require.Equal(t, "golang", got.Subreddit.Name)
}

func TestCreateVote_ZeroKeepsRowButCountsNothing(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()
	p := f.post(t, "a")

	require.NoError(t, f.s.CreateVote(ctx, model.Vote{PostID: p, UserID: f.bob, Direction: 1}))
	require.NoError(t, f.s.CreateVote(ctx, model.Vote{PostID: p, UserID: f.bob, Direction: 0}))
	require.Len(t, f.m.votes, 1)

	got, err := f.s.GetSinglePost(ctx, p)
	require.NoError(t, err)
	require.Equal(t, int64(0), got.VoteScore)
	require.Zero(t, got.NumUpvotes)
	require.Zero(t, got.NumDownvotes)
}

func TestCreateVote_StoreError(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	boom := errors.New("boom")
	f.m.votesErr = boom
	require.ErrorIs(t, f.s.CreateVote(context.Background(), model.Vote{PostID: 1, UserID: 1, Direction: 1}), boom)
}

func TestGetSinglePost_Missing(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	p, err := f.s.GetSinglePost(context.Background(), 12345)
	require.NoError(t, err)
	require.Nil(t, p)

	boom := errors.New("boom")
	f.m.postsErr = boom
	_, err = f.s.GetSinglePost(context.Background(), 1)
	require.ErrorIs(t, err, boom)
}

func TestGetAllPosts_Orderings(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	older := f.post(t, "older")
	newer := f.post(t, "newer")
	require.NoError(t, f.s.CreateVote(ctx, model.Vote{PostID: older, UserID: f.bob, Direction: 1}))

	posts, err := f.s.GetAllPosts(ctx, 0, model.SortDefault)
	require.NoError(t, err)
	require.Equal(t, []int64{newer, older}, ids(posts))

	posts, err = f.s.GetAllPosts(ctx, 0, model.SortTop)
	require.NoError(t, err)
	require.Equal(t, []int64{older, newer}, ids(posts))
	require.Equal(t, int64(1), posts[0].VoteScore)

	rust, err := f.s.CreateSubreddit(ctx, model.NewSubreddit{Name: "rust"})
	require.NoError(t, err)
	posts, err = f.s.GetAllPosts(ctx, rust, model.SortTop)
	require.NoError(t, err)
	require.Empty(t, posts)

	posts, err = f.s.GetAllPosts(ctx, f.sub, model.SortTop)
	require.NoError(t, err)
	require.Equal(t, []int64{newer, older}, ids(posts), "subreddit listing is newest first regardless of sort")
}

func TestGetAllPosts_Capped(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	for i := 0; i < 30; i++ {
		f.post(t, "p")
	}
	posts, err := f.s.GetAllPosts(context.Background(), 0, model.SortDefault)
	require.NoError(t, err)
	require.Len(t, posts, 25)
}

func TestComments(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()
	p := f.post(t, "a")

	_, err := f.s.CreateComment(ctx, model.NewComment{UserID: f.bob, PostID: p})
	require.ErrorIs(t, err, errs.ErrValidation)

	c1, err := f.s.CreateComment(ctx, model.NewComment{UserID: f.bob, PostID: p, Text: "first"})
	require.NoError(t, err)
	c2, err := f.s.CreateComment(ctx, model.NewComment{UserID: f.alice, PostID: p, Text: "second"})
	require.NoError(t, err)

	cs, err := f.s.GetCommentsForPost(ctx, p)
	require.NoError(t, err)
	require.Len(t, cs, 2)
	require.Equal(t, c2, cs[0].ID)
	require.Equal(t, "alice", cs[0].User.Username)
	require.Equal(t, c1, cs[1].ID)

	none, err := f.s.GetCommentsForPost(ctx, 999)
	require.NoError(t, err)
	require.Empty(t, none)
}

func ids(ps []model.Post) []int64 {
	out := make([]int64, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.ID)
	}
	return out
}
