package postgres

import (
	"time"

	"github.com/and161185/minireddit/internal/model"
)

// PostRow is one flat, prefixed row of a post query. Field order matches postColumns.
type PostRow struct {
	PostsID        int64
	PostsTitle     string
	PostsURL       string
	PostsCreatedAt time.Time
	PostsUpdatedAt time.Time

	UsersID        int64
	UsersUsername  string
	UsersCreatedAt time.Time
	UsersUpdatedAt time.Time

	SubredditsID          int64
	SubredditsName        string
	SubredditsDescription string
	SubredditsCreatedAt   time.Time
	SubredditsUpdatedAt   time.Time

	VoteScore    int64
	NumUpvotes   int64
	NumDownvotes int64
}

// postColumns lists the aliases selected by postSelect, in scan order.
var postColumns = []string{
	"posts_id", "posts_title", "posts_url", "posts_created_at", "posts_updated_at",
	"users_id", "users_username", "users_created_at", "users_updated_at",
	"subreddits_id", "subreddits_name", "subreddits_description", "subreddits_created_at", "subreddits_updated_at",
	"vote_score", "num_upvotes", "num_downvotes",
}

// dest returns scan destinations in postColumns order.
func (r *PostRow) dest() []any {
	return []any{
		&r.PostsID, &r.PostsTitle, &r.PostsURL, &r.PostsCreatedAt, &r.PostsUpdatedAt,
		&r.UsersID, &r.UsersUsername, &r.UsersCreatedAt, &r.UsersUpdatedAt,
		&r.SubredditsID, &r.SubredditsName, &r.SubredditsDescription, &r.SubredditsCreatedAt, &r.SubredditsUpdatedAt,
		&r.VoteScore, &r.NumUpvotes, &r.NumDownvotes,
	}
}

// ToPost nests a flat row into a Post.
func ToPost(r PostRow) model.Post {
	return model.Post{
		ID:           r.PostsID,
		Title:        r.PostsTitle,
		URL:          r.PostsURL,
		CreatedAt:    r.PostsCreatedAt,
		UpdatedAt:    r.PostsUpdatedAt,
		VoteScore:    r.VoteScore,
		NumUpvotes:   r.NumUpvotes,
		NumDownvotes: r.NumDownvotes,
		User: model.PostAuthor{
			ID:        r.UsersID,
			Username:  r.UsersUsername,
			CreatedAt: r.UsersCreatedAt,
			UpdatedAt: r.UsersUpdatedAt,
		},
		Subreddit: model.Subreddit{
			ID:          r.SubredditsID,
			Name:        r.SubredditsName,
			Description: r.SubredditsDescription,
			CreatedAt:   r.SubredditsCreatedAt,
			UpdatedAt:   r.SubredditsUpdatedAt,
		},
	}
}

// FromPost flattens a Post back into its row form. It is the inverse of ToPost.
func FromPost(p model.Post) PostRow {
	return PostRow{
		PostsID:               p.ID,
		PostsTitle:            p.Title,
		PostsURL:              p.URL,
		PostsCreatedAt:        p.CreatedAt,
		PostsUpdatedAt:        p.UpdatedAt,
		UsersID:               p.User.ID,
		UsersUsername:         p.User.Username,
		UsersCreatedAt:        p.User.CreatedAt,
		UsersUpdatedAt:        p.User.UpdatedAt,
		SubredditsID:          p.Subreddit.ID,
		SubredditsName:        p.Subreddit.Name,
		SubredditsDescription: p.Subreddit.Description,
		SubredditsCreatedAt:   p.Subreddit.CreatedAt,
		SubredditsUpdatedAt:   p.Subreddit.UpdatedAt,
		VoteScore:             p.VoteScore,
		NumUpvotes:            p.NumUpvotes,
		NumDownvotes:          p.NumDownvotes,
	}
}

// ToPosts applies ToPost to every row.
func ToPosts(rows []PostRow) []model.Post {
	out := make([]model.Post, 0, len(rows))
	for _, r := range rows {
		out = append(out, ToPost(r))
	}
	return out
}
