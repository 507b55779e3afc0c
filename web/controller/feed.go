package controller

import (
	"net/http"
	"strconv"
	"time"

	"github.com/mhsanaei/blog/config"
	"github.com/mhsanaei/blog/util/common"
	"github.com/mhsanaei/blog/web/entity"
	"github.com/mhsanaei/blog/web/service"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
)

const feedVersion = "https://jsonfeed.org/version/1.1"

// FeedController publishes the posts as a JSON Feed.
type FeedController struct {
	BaseController

	postService service.PostService
}

func NewFeedController(g *gin.RouterGroup) *FeedController {
	a := &FeedController{}
	a.initRouter(g)
	return a
}

func (a *FeedController) initRouter(g *gin.RouterGroup) {
	g.GET("/feed.json", a.feed)
}

func (a *FeedController) feed(c *gin.Context) {
	posts, err := a.postService.GetPosts()
	if err != nil {
		serverError(c, err)
		return
	}

	base := baseURL(c)
	feed := entity.Feed{
		Version:     feedVersion,
		Title:       config.GetName(),
		HomePageURL: base + "/",
		FeedURL:     base + "/feed.json",
		Items:       make([]entity.FeedItem, 0, len(posts)),
	}
	for _, post := range posts {
		item := entity.FeedItem{
			Id:          strconv.Itoa(post.Id),
			URL:         base + postPath(post.Id),
			Title:       post.Title,
			Summary:     post.Subtitle,
			ContentHTML: post.Body,
			Image:       post.ImgUrl,
		}
		if t, err := time.Parse(common.PostDateLayout, post.Date); err == nil {
			item.DatePublished = t.Format(time.RFC3339)
		}
		if post.Author.Name != "" {
			item.Authors = []entity.FeedUser{{Name: post.Author.Name}}
		}
		feed.Items = append(feed.Items, item)
	}

	data, err := json.Marshal(feed)
	if err != nil {
		serverError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/feed+json; charset=utf-8", data)
}
