// Package middleware provides the gin handlers run ahead of the blog's controllers:
// identity resolution, login and admin gates, CSRF checks and request metrics.
package middleware

import (
	"errors"
	"net/http"

	"github.com/mhsanaei/blog/logger"
	"github.com/mhsanaei/blog/web/entity"
	"github.com/mhsanaei/blog/web/locale"
	"github.com/mhsanaei/blog/web/service"
	"github.com/mhsanaei/blog/web/session"

	"github.com/gin-gonic/gin"
)

// CurrentUser loads the user named by the session cookie and attaches it to the request.
// A session pointing at a missing user is cleared.
func CurrentUser() gin.HandlerFunc {
	userService := service.UserService{}

	return func(c *gin.Context) {
		id := session.GetLoginUserId(c)
		if id == 0 {
			c.Next()
			return
		}

		user, err := userService.GetUserById(id)
		switch {
		case err == nil:
			session.SetCurrentUser(c, user)
		case errors.Is(err, service.ErrUserNotFound):
			logger.Warningf("session refers to missing user %d, clearing it", id)
			if err := session.ClearSession(c); err != nil {
				logger.Warning("Unable to clear session:", err)
			}
		default:
			logger.Error("load session user failed:", err)
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}
		c.Next()
	}
}

// RequireLogin redirects anonymous visitors to the login page.
func RequireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", "no-store")
		if !session.IsLogin(c) {
			if err := session.AddFlash(c, entity.FlashError, locale.I18n("flash.loginRequired")); err != nil {
				logger.Warning("Unable to save flash:", err)
			}
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		c.Next()
	}
}
