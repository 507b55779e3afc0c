package controller

import (
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/mhsanaei/blog/config"
	"github.com/mhsanaei/blog/logger"
	"github.com/mhsanaei/blog/web/entity"
	"github.com/mhsanaei/blog/web/session"

	"github.com/gin-gonic/gin"
)

// getRemoteIp extracts the real IP address from the request headers or remote address.
func getRemoteIp(c *gin.Context) string {
	value := c.GetHeader("X-Real-IP")
	if value != "" {
		return value
	}
	value = c.GetHeader("X-Forwarded-For")
	if value != "" {
		ips := strings.Split(value, ",")
		return strings.TrimSpace(ips[0])
	}
	addr := c.Request.RemoteAddr
	ip, _, _ := net.SplitHostPort(addr)
	return ip
}

// baseURL returns scheme and host of the site as seen by the client.
func baseURL(c *gin.Context) string {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	if proto := c.GetHeader("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}
	host := c.GetHeader("X-Forwarded-Host")
	if host == "" {
		host = c.Request.Host
	}
	return scheme + "://" + host
}

// html renders the page template name with status 200.
func html(c *gin.Context, name string, title string, data gin.H) {
	htmlStatus(c, http.StatusOK, name, title, data)
}

// htmlStatus renders an HTML template with the common page context: title, current user,
// pending flashes and the CSRF token. Session writes happen before the body is written.
func htmlStatus(c *gin.Context, status int, name string, title string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	if _, ok := data["errors"]; !ok {
		data["errors"] = entity.FieldErrors{}
	}
	data["title"] = title
	data["request_uri"] = c.Request.RequestURI

	user := session.GetLoginUser(c)
	data["user"] = user
	data["is_admin"] = user.IsAdmin()

	flashes, err := session.Flashes(c)
	if err != nil {
		logger.Warning("Unable to consume flashes:", err)
	}
	data["flashes"] = flashes

	token, err := session.CSRFToken(c)
	if err != nil {
		logger.Warning("Unable to save CSRF token:", err)
	}
	data["csrf_token"] = token

	c.HTML(status, name, getContext(data))
}

// getContext adds version and site name to the provided gin.H.
func getContext(h gin.H) gin.H {
	a := gin.H{
		"cur_ver":   config.GetVersion(),
		"site_name": config.GetName(),
	}
	for key, value := range h {
		a[key] = value
	}
	return a
}

// NotFound renders the 404 page.
func NotFound(c *gin.Context) {
	htmlStatus(c, http.StatusNotFound, "404.html", I18nWeb(c, "pages.notFound.title"), nil)
	c.Abort()
}

// serverError logs err and renders the 500 page.
func serverError(c *gin.Context, err error) {
	logger.Errorf("%s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)
	htmlStatus(c, http.StatusInternalServerError, "500.html", I18nWeb(c, "pages.serverError.title"), nil)
	c.Abort()
}

// paramId parses the numeric :id path parameter; ok is false for anything else.
func paramId(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
