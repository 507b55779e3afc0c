package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/mhsanaei/blog/logger"
	"github.com/mhsanaei/blog/web/session"

	"github.com/gin-gonic/gin"
)

const (
	CSRFField  = "csrf_token"
	CSRFHeader = "X-CSRF-Token"
)

// CSRF rejects state-changing requests whose token does not match the session's.
func CSRF() gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}

		token := c.PostForm(CSRFField)
		if token == "" {
			token = c.GetHeader(CSRFHeader)
		}
		expected := session.GetCSRFToken(c)
		if expected == "" || subtle.ConstantTimeCompare([]byte(token), []byte(expected)) != 1 {
			logger.Warningf("CSRF token mismatch on %s %s from %s", c.Request.Method, c.Request.URL.Path, c.ClientIP())
			c.AbortWithStatus(http.StatusBadRequest)
			return
		}
		c.Next()
	}
}
