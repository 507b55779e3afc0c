package controller

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/mhsanaei/blog/database/model"
	"github.com/mhsanaei/blog/logger"
	"github.com/mhsanaei/blog/util/metrics"
	"github.com/mhsanaei/blog/web/entity"
	"github.com/mhsanaei/blog/web/middleware"
	"github.com/mhsanaei/blog/web/service"
	"github.com/mhsanaei/blog/web/session"

	"github.com/gin-gonic/gin"
)

// PostController serves post pages, comments and the admin authoring routes.
type PostController struct {
	BaseController

	postService    service.PostService
	commentService service.CommentService
}

// NewPostController creates a new PostController and initializes its routes.
func NewPostController(g *gin.RouterGroup) *PostController {
	a := &PostController{}
	a.initRouter(g)
	return a
}

func (a *PostController) initRouter(g *gin.RouterGroup) {
	g.GET("/post/:id", a.showPost)
	g.POST("/post/:id", a.addComment)

	admin := g.Group("/", middleware.RequireLogin(), middleware.AdminRequired())
	admin.GET("/new-post", a.showNewPost)
	admin.POST("/new-post", a.addPost)
	admin.GET("/edit-post/:id", a.showEditPost)
	admin.POST("/edit-post/:id", a.editPost)
	admin.GET("/delete/:id", a.deletePost)
}

// loadPost resolves :id to a post, rendering 404 when it does not exist.
func (a *PostController) loadPost(c *gin.Context) (*model.Post, bool) {
	id, ok := paramId(c)
	if !ok {
		NotFound(c)
		return nil, false
	}
	post, err := a.postService.GetPost(id)
	if errors.Is(err, service.ErrPostNotFound) {
		NotFound(c)
		return nil, false
	} else if err != nil {
		serverError(c, err)
		return nil, false
	}
	return post, true
}

func postPath(id int) string {
	return fmt.Sprintf("/post/%d", id)
}

func (a *PostController) showPost(c *gin.Context) {
	post, ok := a.loadPost(c)
	if !ok {
		return
	}
	html(c, "post.html", post.Title, gin.H{"post": post, "form": entity.CommentForm{}})
}

// addComment stores a comment from a logged-in user. Anonymous visitors are sent to the login page.
func (a *PostController) addComment(c *gin.Context) {
	id, ok := paramId(c)
	if !ok {
		NotFound(c)
		return
	}

	var form entity.CommentForm
	if err := c.ShouldBind(&form); err != nil {
		post, ok := a.loadPost(c)
		if !ok {
			return
		}
		html(c, "post.html", post.Title, gin.H{
			"post":   post,
			"form":   form,
			"errors": entity.NewFieldErrors(&form, err),
		})
		return
	}

	user := session.GetLoginUser(c)
	if user == nil {
		a.flash(c, entity.FlashError, "flash.commentLogin")
		c.Redirect(http.StatusFound, "/login")
		return
	}

	_, err := a.commentService.AddComment(user, id, form.Text)
	if errors.Is(err, service.ErrPostNotFound) {
		NotFound(c)
		return
	} else if err != nil {
		serverError(c, err)
		return
	}
	metrics.CommentsPosted.Inc()
	c.Redirect(http.StatusFound, postPath(id))
}

func (a *PostController) showNewPost(c *gin.Context) {
	html(c, "make-post.html", I18nWeb(c, "pages.makePost.newTitle"), gin.H{"form": entity.PostForm{}, "is_edit": false})
}

func (a *PostController) addPost(c *gin.Context) {
	var form entity.PostForm
	title := I18nWeb(c, "pages.makePost.newTitle")

	if err := c.ShouldBind(&form); err != nil {
		html(c, "make-post.html", title, gin.H{"form": form, "is_edit": false, "errors": entity.NewFieldErrors(&form, err)})
		return
	}

	user := session.GetLoginUser(c)
	post, err := a.postService.AddPost(user, form, time.Now())
	if errors.Is(err, service.ErrTitleTaken) {
		a.flash(c, entity.FlashError, "flash.titleTaken")
		html(c, "make-post.html", title, gin.H{"form": form, "is_edit": false})
		return
	} else if err != nil {
		serverError(c, err)
		return
	}

	metrics.PostsWritten.WithLabelValues("create").Inc()
	logger.Infof("post %d created by user %d", post.Id, user.Id)
	c.Redirect(http.StatusFound, "/")
}

func (a *PostController) showEditPost(c *gin.Context) {
	post, ok := a.loadPost(c)
	if !ok {
		return
	}
	form := entity.PostForm{
		Title:    post.Title,
		Subtitle: post.Subtitle,
		ImgUrl:   post.ImgUrl,
		Body:     post.Body,
	}
	html(c, "make-post.html", I18nWeb(c, "pages.makePost.editTitle"), gin.H{"form": form, "is_edit": true, "post_id": post.Id})
}

func (a *PostController) editPost(c *gin.Context) {
	id, ok := paramId(c)
	if !ok {
		NotFound(c)
		return
	}

	var form entity.PostForm
	title := I18nWeb(c, "pages.makePost.editTitle")
	data := gin.H{"form": &form, "is_edit": true, "post_id": id}

	if err := c.ShouldBind(&form); err != nil {
		data["errors"] = entity.NewFieldErrors(&form, err)
		html(c, "make-post.html", title, data)
		return
	}

	_, err := a.postService.UpdatePost(id, form)
	switch {
	case errors.Is(err, service.ErrPostNotFound):
		NotFound(c)
		return
	case errors.Is(err, service.ErrTitleTaken):
		a.flash(c, entity.FlashError, "flash.titleTaken")
		html(c, "make-post.html", title, data)
		return
	case err != nil:
		serverError(c, err)
		return
	}

	metrics.PostsWritten.WithLabelValues("update").Inc()
	logger.Infof("post %d updated", id)
	c.Redirect(http.StatusFound, postPath(id))
}

func (a *PostController) deletePost(c *gin.Context) {
	id, ok := paramId(c)
	if !ok {
		NotFound(c)
		return
	}

	err := a.postService.DeletePost(id)
	if errors.Is(err, service.ErrPostNotFound) {
		NotFound(c)
		return
	} else if err != nil {
		serverError(c, err)
		return
	}

	metrics.PostsWritten.WithLabelValues("delete").Inc()
	logger.Infof("post %d deleted", id)
	c.Redirect(http.StatusFound, "/")
}
