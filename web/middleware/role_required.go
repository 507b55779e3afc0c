package middleware

import (
	"net/http"

	"github.com/mhsanaei/blog/logger"
	"github.com/mhsanaei/blog/util/metrics"
	"github.com/mhsanaei/blog/web/session"

	"github.com/gin-gonic/gin"
)

// AdminRequired rejects every request whose user is not the admin with 403.
// It must run after RequireLogin.
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := session.GetLoginUser(c)
		if !user.IsAdmin() {
			if user != nil {
				logger.Warningf("user %d denied %s %s", user.Id, c.Request.Method, c.Request.URL.Path)
			}
			metrics.Forbidden.Inc()
			c.AbortWithStatus(http.StatusForbidden)
			return
		}
		c.Next()
	}
}
