package controller

import (
	"errors"
	"net/http"

	"github.com/mhsanaei/blog/logger"
	"github.com/mhsanaei/blog/util/metrics"
	"github.com/mhsanaei/blog/web/entity"
	"github.com/mhsanaei/blog/web/middleware"
	"github.com/mhsanaei/blog/web/service"
	"github.com/mhsanaei/blog/web/session"

	"github.com/gin-gonic/gin"
)

// IndexController serves the post listing, the static pages and account routes.
type IndexController struct {
	BaseController

	userService service.UserService
	postService service.PostService
}

// NewIndexController creates a new IndexController and initializes its routes.
func NewIndexController(g *gin.RouterGroup) *IndexController {
	a := &IndexController{}
	a.initRouter(g)
	return a
}

func (a *IndexController) initRouter(g *gin.RouterGroup) {
	g.GET("/", a.index)
	g.GET("/about", a.about)
	g.GET("/contact", a.contact)

	g.GET("/register", a.showRegister)
	g.POST("/register", a.register)
	g.GET("/login", a.showLogin)
	g.POST("/login", a.login)
	g.GET("/logout", middleware.RequireLogin(), a.logout)
}

// index lists every post.
func (a *IndexController) index(c *gin.Context) {
	posts, err := a.postService.GetPosts()
	if err != nil {
		serverError(c, err)
		return
	}
	html(c, "index.html", I18nWeb(c, "pages.index.title"), gin.H{"posts": posts})
}

func (a *IndexController) about(c *gin.Context) {
	html(c, "about.html", I18nWeb(c, "pages.about.title"), nil)
}

func (a *IndexController) contact(c *gin.Context) {
	html(c, "contact.html", I18nWeb(c, "pages.contact.title"), nil)
}

func (a *IndexController) showRegister(c *gin.Context) {
	html(c, "register.html", I18nWeb(c, "pages.register.title"), gin.H{"form": entity.RegisterForm{}})
}

// register creates an account and logs it in.
func (a *IndexController) register(c *gin.Context) {
	var form entity.RegisterForm
	title := I18nWeb(c, "pages.register.title")

	if err := c.ShouldBind(&form); err != nil {
		form.Password = ""
		html(c, "register.html", title, gin.H{"form": form, "errors": entity.NewFieldErrors(&form, err)})
		return
	}

	user, err := a.userService.Register(form)
	if errors.Is(err, service.ErrPasswordTooLong) {
		form.Password = ""
		html(c, "register.html", title, gin.H{"form": form, "errors": entity.FieldErrors{"password": entity.PasswordTooLongKey}})
		return
	} else if errors.Is(err, service.ErrEmailTaken) {
		a.flash(c, entity.FlashError, "flash.emailTaken")
		form.Password = ""
		html(c, "register.html", title, gin.H{"form": form})
		return
	} else if err != nil {
		serverError(c, err)
		return
	}

	metrics.RegisterSuccess.Inc()
	logger.Infof("user %d registered from %s", user.Id, getRemoteIp(c))

	if err := session.SetLoginUser(c, user); err != nil {
		logger.Warning("Unable to save session:", err)
	}
	c.Redirect(http.StatusFound, "/")
}

func (a *IndexController) showLogin(c *gin.Context) {
	html(c, "login.html", I18nWeb(c, "pages.login.title"), gin.H{"form": entity.LoginForm{}})
}

// login checks the submitted credentials and starts a session.
func (a *IndexController) login(c *gin.Context) {
	var form entity.LoginForm
	title := I18nWeb(c, "pages.login.title")

	if err := c.ShouldBind(&form); err != nil {
		form.Password = ""
		html(c, "login.html", title, gin.H{"form": form, "errors": entity.NewFieldErrors(&form, err)})
		return
	}

	user, err := a.userService.CheckUser(form.Email, form.Password)
	switch {
	case errors.Is(err, service.ErrEmailNotFound):
		metrics.LoginFailure.WithLabelValues("email").Inc()
		a.flash(c, entity.FlashError, "flash.emailNotFound")
	case errors.Is(err, service.ErrInvalidPassword):
		metrics.LoginFailure.WithLabelValues("password").Inc()
		logger.Warningf("wrong password for %q, IP: %q", form.Email, getRemoteIp(c))
		a.flash(c, entity.FlashError, "flash.invalidPassword")
	case err != nil:
		serverError(c, err)
		return
	default:
		metrics.LoginSuccess.Inc()
		logger.Infof("user %d logged in successfully, Ip Address: %s", user.Id, getRemoteIp(c))
		if err := session.SetLoginUser(c, user); err != nil {
			logger.Warning("Unable to save session:", err)
		}
		c.Redirect(http.StatusFound, "/")
		return
	}

	form.Password = ""
	html(c, "login.html", title, gin.H{"form": form})
}

// logout ends the session and returns to the post listing.
func (a *IndexController) logout(c *gin.Context) {
	if user := session.GetLoginUser(c); user != nil {
		logger.Infof("user %d logged out successfully", user.Id)
	}
	if err := session.ClearSession(c); err != nil {
		logger.Warning("Unable to save session after clearing:", err)
	}
	c.Redirect(http.StatusFound, "/")
}
