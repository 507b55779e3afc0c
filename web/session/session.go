// Package session wraps the cookie-backed gin session: the logged-in user id,
// flash messages and the CSRF token.
package session

import (
	"encoding/gob"

	"github.com/mhsanaei/blog/database/model"
	"github.com/mhsanaei/blog/web/entity"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	loginUserId = "LOGIN_USER_ID"
	csrfToken   = "CSRF_TOKEN"

	// contextUser is the gin context key holding the *model.User resolved for this request.
	contextUser = "login_user"
)

func init() {
	gob.Register(entity.Flash{})
}

// SetLoginUser starts a session for user.
func SetLoginUser(c *gin.Context, user *model.User) error {
	s := sessions.Default(c)
	s.Set(loginUserId, user.Id)
	SetCurrentUser(c, user)
	return s.Save()
}

// GetLoginUserId returns the user id stored in the session cookie, or 0 when anonymous.
func GetLoginUserId(c *gin.Context) int {
	s := sessions.Default(c)
	if id, ok := s.Get(loginUserId).(int); ok {
		return id
	}
	return 0
}

// SetCurrentUser attaches the resolved user to the request.
func SetCurrentUser(c *gin.Context, user *model.User) {
	c.Set(contextUser, user)
}

// GetLoginUser returns the user attached to this request, or nil for anonymous visitors.
func GetLoginUser(c *gin.Context) *model.User {
	if obj, ok := c.Get(contextUser); ok {
		if user, ok := obj.(*model.User); ok {
			return user
		}
	}
	return nil
}

func IsLogin(c *gin.Context) bool {
	return GetLoginUser(c) != nil
}

// ClearSession ends the session and forgets the request's user.
func ClearSession(c *gin.Context) error {
	s := sessions.Default(c)
	s.Clear()
	c.Set(contextUser, nil)
	return s.Save()
}

// AddFlash queues a message for the next rendered page.
func AddFlash(c *gin.Context, category string, message string) error {
	s := sessions.Default(c)
	s.AddFlash(entity.Flash{Category: category, Message: message})
	return s.Save()
}

// Flashes pops every queued message.
func Flashes(c *gin.Context) ([]entity.Flash, error) {
	s := sessions.Default(c)
	raw := s.Flashes()
	if len(raw) == 0 {
		return nil, nil
	}
	flashes := make([]entity.Flash, 0, len(raw))
	for _, f := range raw {
		if flash, ok := f.(entity.Flash); ok {
			flashes = append(flashes, flash)
		}
	}
	return flashes, s.Save()
}

// GetCSRFToken returns the session's CSRF token, or "" before one was issued.
func GetCSRFToken(c *gin.Context) string {
	token, _ := sessions.Default(c).Get(csrfToken).(string)
	return token
}

// CSRFToken returns the session's CSRF token, issuing one if needed.
func CSRFToken(c *gin.Context) (string, error) {
	if token := GetCSRFToken(c); token != "" {
		return token, nil
	}
	s := sessions.Default(c)
	token := uuid.NewString()
	s.Set(csrfToken, token)
	return token, s.Save()
}
