package httpapi

import (
	"github.com/gin-gonic/gin"

	"github.com/and161185/minireddit/internal/model"
)

const (
	userKey      = "mr.user"
	requestIDKey = "mr.requestID"
)

// SessionCookie is the cookie carrying the session token.
const SessionCookie = "SESSION"

// WithUser stores the authenticated session owner on the request.
func WithUser(c *gin.Context, u *model.UserSession) {
	c.Set(userKey, u)
}

// UserFromCtx fetches the session owner set by LoadUser.
func UserFromCtx(c *gin.Context) (*model.UserSession, bool) {
	v, ok := c.Get(userKey)
	if !ok {
		return nil, false
	}
	u, ok := v.(*model.UserSession)
	return u, ok && u != nil
}

// RequestIDFromCtx returns the id assigned by RequestID.
func RequestIDFromCtx(c *gin.Context) string {
	return c.GetString(requestIDKey)
}
