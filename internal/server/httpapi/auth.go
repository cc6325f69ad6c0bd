package httpapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/and161185/minireddit/internal/convert"
	"github.com/and161185/minireddit/internal/errs"
	"github.com/and161185/minireddit/internal/limiter"
	"github.com/and161185/minireddit/internal/model"
)

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		abortWithError(c, fmt.Errorf("%w: %v", errs.ErrValidation, err))
		return false
	}
	return true
}

func (s *Server) signup(c *gin.Context) {
	var req credentialsRequest
	if !bindJSON(c, &req) {
		return
	}
	id, err := s.api.CreateUser(c.Request.Context(), model.NewUser{Username: req.Username, Password: req.Password})
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, convert.CreatedView{ID: id})
}

// login checks credentials under the limiter and only then issues a session.
func (s *Server) login(c *gin.Context) {
	var req credentialsRequest
	if !bindJSON(c, &req) {
		return
	}
	ctx := c.Request.Context()

	check := func(ctx context.Context) (model.PublicUser, error) {
		return s.api.CheckUserLogin(ctx, req.Username, req.Password)
	}
	var (
		u   model.PublicUser
		err error
	)
	if s.lim != nil {
		u, err = limiter.Guard(ctx, s.lim, req.Username, c.ClientIP(), check)
	} else {
		u, err = check(ctx)
	}
	if err != nil {
		abortWithError(c, err)
		return
	}

	token, err := s.api.CreateUserSession(ctx, u.ID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, token, 0, "/", "", s.opts.CookieSecure, true)
	c.JSON(http.StatusOK, convert.ToPublicUserView(u))
}

func (s *Server) logout(c *gin.Context) {
	if token, err := c.Cookie(SessionCookie); err == nil && token != "" {
		if err := s.api.DeleteUserSession(c.Request.Context(), token); err != nil {
			abortWithError(c, err)
			return
		}
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, "", -1, "/", "", s.opts.CookieSecure, true)
	c.Status(http.StatusNoContent)
}

func (s *Server) me(c *gin.Context) {
	u, _ := UserFromCtx(c)
	c.JSON(http.StatusOK, convert.ToSessionUserView(u))
}
