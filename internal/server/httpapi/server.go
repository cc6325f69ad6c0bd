// Package httpapi exposes the link aggregator over a JSON HTTP API built on gin.
package httpapi

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/and161185/minireddit/internal/limiter"
	"github.com/and161185/minireddit/internal/service"
)

// Options tunes the HTTP layer.
type Options struct {
	// CookieSecure marks the session cookie Secure.
	CookieSecure bool
	// Health is probed by GET /healthz. Nil always reports ok.
	Health func(ctx context.Context) error
}

// Server wires the core API into gin handlers.
type Server struct {
	api  service.RedditAPI
	lim  limiter.Limiter
	log  *zap.Logger
	opts Options
}

// New constructs the HTTP server. A nil limiter disables login throttling.
func New(api service.RedditAPI, lim limiter.Limiter, log *zap.Logger, opts Options) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{api: api, lim: lim, log: log, opts: opts}
}

// Router builds the gin engine with middleware and routes.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(
		RequestID(),
		Logging(s.log),
		Recover(s.log),
		LoadUser(s.api),
	)

	r.GET("/healthz", s.health)

	auth := r.Group("/auth")
	auth.POST("/signup", s.signup)
	auth.POST("/login", s.login)
	auth.POST("/logout", s.logout)

	r.GET("/", s.listPosts)
	r.GET("/sort/:method", s.listSorted)
	r.GET("/r/:subreddit", s.listSubreddit)
	r.GET("/subreddits", s.listSubreddits)
	r.GET("/post/:postId", s.postDetail)

	priv := r.Group("/", RequireUser())
	priv.GET("/me", s.me)
	priv.POST("/subreddits", s.createSubreddit)
	priv.POST("/createPost", s.createPost)
	priv.POST("/vote", s.vote)
	priv.POST("/post/:postId/comments", s.createComment)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, errorBody{Error: "not found"})
	})
	return r
}

func (s *Server) health(c *gin.Context) {
	if s.opts.Health != nil {
		if err := s.opts.Health(c.Request.Context()); err != nil {
			s.log.Warn("health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
