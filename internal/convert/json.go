// Package convert maps domain values to the JSON views served by the web layer.
package convert

import (
	"time"

	"github.com/and161185/minireddit/internal/model"
)

// UserView is a user as exposed to clients.
type UserView struct {
	ID        int64      `json:"id"`
	Username  string     `json:"username"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// SubredditView is a subreddit as exposed to clients.
type SubredditView struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// PostView is the nested post shape with its vote aggregates.
type PostView struct {
	ID           int64         `json:"id"`
	Title        string        `json:"title"`
	URL          string        `json:"url"`
	CreatedAt    time.Time     `json:"createdAt"`
	UpdatedAt    time.Time     `json:"updatedAt"`
	VoteScore    int64         `json:"voteScore"`
	NumUpvotes   int64         `json:"numUpvotes"`
	NumDownvotes int64         `json:"numDownvotes"`
	User         UserView      `json:"user"`
	Subreddit    SubredditView `json:"subreddit"`
}

// CommentView is a comment with its author.
type CommentView struct {
	ID        int64     `json:"id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	User      UserView  `json:"user"`
}

// PostDetailView is a post together with its latest comments.
type PostDetailView struct {
	Post     PostView      `json:"post"`
	Comments []CommentView `json:"comments"`
}

// CreatedView acknowledges an insert.
type CreatedView struct {
	ID int64 `json:"id"`
}

func tp(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

// ToPublicUserView converts the login result.
func ToPublicUserView(u model.PublicUser) UserView {
	return UserView{ID: u.ID, Username: u.Username}
}

// ToSessionUserView converts a session owner. The password hash is never copied.
func ToSessionUserView(s *model.UserSession) *UserView {
	if s == nil {
		return nil
	}
	return &UserView{
		ID:        s.UserID,
		Username:  s.Username,
		CreatedAt: tp(s.CreatedAt),
		UpdatedAt: tp(s.UpdatedAt),
	}
}

// ToSubredditView converts a subreddit.
func ToSubredditView(s model.Subreddit) SubredditView {
	return SubredditView{
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

// ToSubredditViews converts a listing; nil input yields an empty slice so it encodes as [].
func ToSubredditViews(ss []model.Subreddit) []SubredditView {
	out := make([]SubredditView, 0, len(ss))
	for _, s := range ss {
		out = append(out, ToSubredditView(s))
	}
	return out
}

// ToPostView converts a post.
func ToPostView(p model.Post) PostView {
	return PostView{
		ID:           p.ID,
		Title:        p.Title,
		URL:          p.URL,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
		VoteScore:    p.VoteScore,
		NumUpvotes:   p.NumUpvotes,
		NumDownvotes: p.NumDownvotes,
		User: UserView{
			ID:        p.User.ID,
			Username:  p.User.Username,
			CreatedAt: tp(p.User.CreatedAt),
			UpdatedAt: tp(p.User.UpdatedAt),
		},
		Subreddit: ToSubredditView(p.Subreddit),
	}
}

// ToPostViews converts a listing.
func ToPostViews(ps []model.Post) []PostView {
	out := make([]PostView, 0, len(ps))
	for _, p := range ps {
		out = append(out, ToPostView(p))
	}
	return out
}

// ToCommentView converts a comment.
func ToCommentView(c model.Comment) CommentView {
	return CommentView{
		ID:        c.ID,
		Text:      c.Text,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
		User:      UserView{ID: c.User.ID, Username: c.User.Username},
	}
}

// ToCommentViews converts a listing.
func ToCommentViews(cs []model.Comment) []CommentView {
	out := make([]CommentView, 0, len(cs))
	for _, c := range cs {
		out = append(out, ToCommentView(c))
	}
	return out
}

// ToPostDetailView composes the post page.
func ToPostDetailView(p model.Post, cs []model.Comment) PostDetailView {
	return PostDetailView{Post: ToPostView(p), Comments: ToCommentViews(cs)}
}
