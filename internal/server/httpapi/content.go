package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/and161185/minireddit/internal/convert"
	"github.com/and161185/minireddit/internal/errs"
	"github.com/and161185/minireddit/internal/model"
)

func (s *Server) listPosts(c *gin.Context) {
	s.writePosts(c, 0, model.SortDefault)
}

func (s *Server) listSorted(c *gin.Context) {
	m, ok := model.ParseSortMethod(c.Param("method"))
	if !ok || m == model.SortDefault {
		abortWithError(c, fmt.Errorf("%w: unknown sort method %q", errs.ErrNotFound, c.Param("method")))
		return
	}
	s.writePosts(c, 0, m)
}

func (s *Server) listSubreddit(c *gin.Context) {
	name := c.Param("subreddit")
	sub, err := s.api.GetSubredditByName(c.Request.Context(), name)
	if err != nil {
		abortWithError(c, err)
		return
	}
	if sub == nil {
		abortWithError(c, fmt.Errorf("%w: subreddit %q", errs.ErrNotFound, name))
		return
	}
	s.writePosts(c, sub.ID, model.SortDefault)
}

func (s *Server) writePosts(c *gin.Context, subredditID int64, sort model.SortMethod) {
	posts, err := s.api.GetAllPosts(c.Request.Context(), subredditID, sort)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, convert.ToPostViews(posts))
}

func (s *Server) listSubreddits(c *gin.Context) {
	subs, err := s.api.GetAllSubreddits(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, convert.ToSubredditViews(subs))
}

type subredditRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (s *Server) createSubreddit(c *gin.Context) {
	var req subredditRequest
	if !bindJSON(c, &req) {
		return
	}
	id, err := s.api.CreateSubreddit(c.Request.Context(), model.NewSubreddit{Name: plainText(req.Name), Description: plainText(req.Description)})
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, convert.CreatedView{ID: id})
}

func postIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("postId"), 10, 64)
	if err != nil || id <= 0 {
		abortWithError(c, fmt.Errorf("%w: bad post id", errs.ErrValidation))
		return 0, false
	}
	return id, true
}

func (s *Server) postDetail(c *gin.Context) {
	id, ok := postIDParam(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	p, err := s.api.GetSinglePost(ctx, id)
	if err != nil {
		abortWithError(c, err)
		return
	}
	if p == nil {
		abortWithError(c, fmt.Errorf("%w: post %d", errs.ErrNotFound, id))
		return
	}
	cs, err := s.api.GetCommentsForPost(ctx, id)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, convert.ToPostDetailView(*p, cs))
}

type postRequest struct {
	SubredditID int64  `json:"subredditId"`
	Title       string `json:"title"`
	URL         string `json:"url"`
}

func (s *Server) createPost(c *gin.Context) {
	var req postRequest
	if !bindJSON(c, &req) {
		return
	}
	u, _ := UserFromCtx(c)
	id, err := s.api.CreatePost(c.Request.Context(), model.NewPost{
		UserID:      u.UserID,
		Title:       plainText(req.Title),
		URL:         strings.TrimSpace(req.URL),
		SubredditID: req.SubredditID,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, convert.CreatedView{ID: id})
}

type voteRequest struct {
	PostID        int64 `json:"postId" binding:"required"`
	VoteDirection *int  `json:"voteDirection" binding:"required"`
}

func (s *Server) vote(c *gin.Context) {
	var req voteRequest
	if !bindJSON(c, &req) {
		return
	}
	u, _ := UserFromCtx(c)
	err := s.api.CreateVote(c.Request.Context(), model.Vote{
		PostID:    req.PostID,
		UserID:    u.UserID,
		Direction: *req.VoteDirection,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type commentRequest struct {
	Text string `json:"text"`
}

func (s *Server) createComment(c *gin.Context) {
	id, ok := postIDParam(c)
	if !ok {
		return
	}
	var req commentRequest
	if !bindJSON(c, &req) {
		return
	}
	ctx := c.Request.Context()
	p, err := s.api.GetSinglePost(ctx, id)
	if err != nil {
		abortWithError(c, err)
		return
	}
	if p == nil {
		abortWithError(c, fmt.Errorf("%w: post %d", errs.ErrNotFound, id))
		return
	}
	u, _ := UserFromCtx(c)
	cid, err := s.api.CreateComment(ctx, model.NewComment{UserID: u.UserID, PostID: id, Text: plainText(req.Text)})
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, convert.CreatedView{ID: cid})
}
