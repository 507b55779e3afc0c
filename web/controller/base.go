// Package controller provides the HTTP handlers of the blog: pages, authentication,
// post authoring and the JSON feed.
package controller

import (
	"github.com/mhsanaei/blog/logger"
	"github.com/mhsanaei/blog/web/locale"
	"github.com/mhsanaei/blog/web/session"

	"github.com/gin-gonic/gin"
)

// BaseController provides helpers shared by all controllers.
type BaseController struct{}

// flash queues a translated message for the next rendered page.
func (a *BaseController) flash(c *gin.Context, category string, key string, params ...string) {
	if err := session.AddFlash(c, category, I18nWeb(c, key, params...)); err != nil {
		logger.Warning("Unable to save flash:", err)
	}
}

// I18nWeb retrieves a translated message for the web interface.
func I18nWeb(c *gin.Context, name string, params ...string) string {
	anyfunc, funcExists := c.Get("I18n")
	if !funcExists {
		logger.Warning("I18n function not exists in gin context!")
		return locale.I18n(name, params...)
	}
	i18nFunc, _ := anyfunc.(func(key string, keyParams ...string) string)
	return i18nFunc(name, params...)
}
