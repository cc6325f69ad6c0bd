// Package model defines domain entities used by services and repositories.
package model

import "time"

// User represents an account stored on the server. The password is kept only as a bcrypt hash.
type User struct {
	ID           int64  // PK
	Username     string // unique, immutable
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PublicUser is the minimal user record returned after a successful login.
type PublicUser struct {
	ID       int64
	Username string
}

// UserSession is a session joined with its owner.
// PasswordHash is carried for parity with the store row; views must not expose it.
type UserSession struct {
	UserID       int64
	Username     string
	PasswordHash string
	CreatedAt    time.Time // user's creation time
	UpdatedAt    time.Time
	Token        string
}

// Subreddit groups posts under a unique name.
type Subreddit struct {
	ID          int64
	Name        string // unique
	Description string // optional, empty when unset
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// PostAuthor is the author projection embedded into a Post.
type PostAuthor struct {
	ID        int64
	Username  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Post is a link post with its author, subreddit and vote aggregates computed at read time.
type Post struct {
	ID           int64
	Title        string
	URL          string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	VoteScore    int64 // sum of directions
	NumUpvotes   int64 // count of +1
	NumDownvotes int64 // count of -1
	User         PostAuthor
	Subreddit    Subreddit
}

// CommentAuthor is the author projection embedded into a Comment.
type CommentAuthor struct {
	ID       int64
	Username string
}

// Comment is a text reply on a post.
type Comment struct {
	ID        int64
	Text      string
	CreatedAt time.Time
	UpdatedAt time.Time
	User      CommentAuthor
}

// Vote is a single user's direction on a post. (PostID, UserID) is unique.
type Vote struct {
	PostID    int64
	UserID    int64
	Direction int
}

// Allowed vote directions.
const (
	VoteDown    = -1
	VoteNeutral = 0
	VoteUp      = 1
)

// ValidDirection reports whether d is one of -1, 0, 1.
func ValidDirection(d int) bool {
	return d == VoteDown || d == VoteNeutral || d == VoteUp
}

// NewUser carries registration input.
type NewUser struct {
	Username string
	Password string
}

// NewSubreddit carries subreddit creation input.
type NewSubreddit struct {
	Name        string
	Description string
}

// NewPost carries post creation input. SubredditID must be non-zero.
type NewPost struct {
	UserID      int64
	Title       string
	URL         string
	SubredditID int64
}

// NewComment carries comment creation input.
type NewComment struct {
	UserID int64
	PostID int64
	Text   string
}

// SortMethod selects the ordering of a post listing.
type SortMethod string

// Supported sort methods. SortDefault and SortNew both order by creation time.
const (
	SortDefault SortMethod = ""
	SortNew     SortMethod = "new"
	SortTop     SortMethod = "top"
	SortHot     SortMethod = "hot"
)

// ParseSortMethod converts user input into a SortMethod.
func ParseSortMethod(s string) (SortMethod, bool) {
	switch m := SortMethod(s); m {
	case SortDefault, SortNew, SortTop, SortHot:
		return m, true
	default:
		return SortDefault, false
	}
}
