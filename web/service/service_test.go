package service

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mhsanaei/blog/database"
	"github.com/mhsanaei/blog/database/model"
	"github.com/mhsanaei/blog/web/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) {
	t.Helper()
	t.Setenv("BLOG_SECRET", "")
	require.NoError(t, database.InitDB(filepath.Join(t.TempDir(), "test.db")))
	t.Cleanup(func() {
		_ = database.CloseDB()
	})
}

func countRows(t *testing.T, m any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, database.GetDB().Model(m).Count(&n).Error)
	return n
}

func register(t *testing.T, email, password, name string) *model.User {
	t.Helper()
	userService := UserService{}
	user, err := userService.Register(entity.RegisterForm{Email: email, Password: password, Name: name})
	require.NoError(t, err)
	return user
}

var samplePost = entity.PostForm{
	Title:    "First post",
	Subtitle: "Hello",
	ImgUrl:   "https://example.com/a.jpg",
	Body:     "<p>body</p>",
}

func TestRegisterAndLoginSequence(t *testing.T) {
	setup(t)
	userService := UserService{}

	user := register(t, "a@x.com", "pw1", "Ann")
	assert.True(t, user.IsAdmin(), "first user is admin")
	assert.NotEqual(t, "pw1", user.Password)

	_, err := userService.Register(entity.RegisterForm{Email: "a@x.com", Password: "pw2", Name: "Ann again"})
	assert.ErrorIs(t, err, ErrEmailTaken)
	assert.Equal(t, int64(1), countRows(t, &model.User{}))

	_, err = userService.CheckUser("a@x.com", "pw2")
	assert.ErrorIs(t, err, ErrInvalidPassword)

	got, err := userService.CheckUser("a@x.com", "pw1")
	require.NoError(t, err)
	assert.Equal(t, user.Id, got.Id)

	_, err = userService.CheckUser("nobody@x.com", "pw1")
	assert.ErrorIs(t, err, ErrEmailNotFound)
}

func TestOnlyFirstUserIsAdmin(t *testing.T) {
	setup(t)
	admin := register(t, "admin@x.com", "pw", "Admin")
	reader := register(t, "reader@x.com", "pw", "Reader")

	assert.True(t, admin.IsAdmin())
	assert.False(t, reader.IsAdmin())

	userService := UserService{}
	got, err := userService.GetAdmin()
	require.NoError(t, err)
	assert.Equal(t, "admin@x.com", got.Email)

	_, err = userService.GetUserById(999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUpdateAdminPassword(t *testing.T) {
	setup(t)
	userService := UserService{}

	assert.ErrorIs(t, userService.UpdateAdminPassword("new"), ErrUserNotFound)

	register(t, "admin@x.com", "old", "Admin")
	assert.Error(t, userService.UpdateAdminPassword(""))
	require.NoError(t, userService.UpdateAdminPassword("new"))

	_, err := userService.CheckUser("admin@x.com", "old")
	assert.ErrorIs(t, err, ErrInvalidPassword)
	_, err = userService.CheckUser("admin@x.com", "new")
	assert.NoError(t, err)
}

func TestAddPost(t *testing.T) {
	setup(t)
	admin := register(t, "admin@x.com", "pw", "Admin")
	postService := PostService{}

	now := time.Date(2024, 8, 24, 12, 0, 0, 0, time.UTC)
	post, err := postService.AddPost(admin, samplePost, now)
	require.NoError(t, err)
	assert.Equal(t, "August 24, 2024", post.Date)
	assert.Equal(t, admin.Id, post.AuthorId)

	_, err = postService.AddPost(admin, samplePost, now)
	assert.ErrorIs(t, err, ErrTitleTaken)
	assert.Equal(t, int64(1), countRows(t, &model.Post{}))

	posts, err := postService.GetPosts()
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "Admin", posts[0].Author.Name)
}

func TestUpdatePostKeepsAuthorAndComments(t *testing.T) {
	setup(t)
	admin := register(t, "admin@x.com", "pw", "Admin")
	reader := register(t, "reader@x.com", "pw", "Reader")
	postService := PostService{}
	commentService := CommentService{}

	post, err := postService.AddPost(admin, samplePost, time.Now())
	require.NoError(t, err)
	_, err = commentService.AddComment(reader, post.Id, "nice")
	require.NoError(t, err)

	edit := entity.PostForm{
		Title:    "Renamed",
		Subtitle: "New subtitle",
		ImgUrl:   "https://example.com/b.jpg",
		Body:     "<p>changed</p>",
	}
	updated, err := postService.UpdatePost(post.Id, edit)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Title)

	got, err := postService.GetPost(post.Id)
	require.NoError(t, err)
	assert.Equal(t, post.Id, got.Id)
	assert.Equal(t, admin.Id, got.AuthorId)
	assert.Equal(t, post.Date, got.Date)
	assert.Equal(t, "New subtitle", got.Subtitle)
	assert.Equal(t, "https://example.com/b.jpg", got.ImgUrl)
	assert.Equal(t, "<p>changed</p>", got.Body)
	require.Len(t, got.Comments, 1)
	assert.Equal(t, "Reader", got.Comments[0].Author.Name)
}

func TestUpdatePostErrors(t *testing.T) {
	setup(t)
	admin := register(t, "admin@x.com", "pw", "Admin")
	postService := PostService{}

	first, err := postService.AddPost(admin, samplePost, time.Now())
	require.NoError(t, err)
	other := samplePost
	other.Title = "Second post"
	_, err = postService.AddPost(admin, other, time.Now())
	require.NoError(t, err)

	_, err = postService.UpdatePost(first.Id, other)
	assert.ErrorIs(t, err, ErrTitleTaken)

	// keeping its own title is not a conflict
	_, err = postService.UpdatePost(first.Id, samplePost)
	assert.NoError(t, err)

	_, err = postService.UpdatePost(404, samplePost)
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestDeletePostRemovesComments(t *testing.T) {
	setup(t)
	admin := register(t, "admin@x.com", "pw", "Admin")
	postService := PostService{}
	commentService := CommentService{}

	post, err := postService.AddPost(admin, samplePost, time.Now())
	require.NoError(t, err)
	_, err = commentService.AddComment(admin, post.Id, "first!")
	require.NoError(t, err)

	require.NoError(t, postService.DeletePost(post.Id))
	assert.Equal(t, int64(0), countRows(t, &model.Post{}))
	assert.Equal(t, int64(0), countRows(t, &model.Comment{}))

	assert.ErrorIs(t, postService.DeletePost(post.Id), ErrPostNotFound)
	_, err = postService.GetPost(post.Id)
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestComments(t *testing.T) {
	setup(t)
	admin := register(t, "admin@x.com", "pw", "Admin")
	reader := register(t, "reader@x.com", "pw", "Reader")
	postService := PostService{}
	commentService := CommentService{}

	post, err := postService.AddPost(admin, samplePost, time.Now())
	require.NoError(t, err)

	_, err = commentService.AddComment(reader, 999, "lost")
	assert.ErrorIs(t, err, ErrPostNotFound)

	_, err = commentService.AddComment(reader, post.Id, "one")
	require.NoError(t, err)
	_, err = commentService.AddComment(admin, post.Id, "two")
	require.NoError(t, err)

	got, err := postService.GetPost(post.Id)
	require.NoError(t, err)
	comments := got.Comments
	require.Len(t, comments, 2)
	assert.Equal(t, "one", comments[0].Text)
	assert.Equal(t, "Reader", comments[0].Author.Name)
	assert.Equal(t, "two", comments[1].Text)
	assert.Equal(t, "Admin", comments[1].Author.Name)
}

func TestRegisterRejectsLongPassword(t *testing.T) {
	setup(t)
	userService := UserService{}

	long := strings.Repeat("p", 80)
	_, err := userService.Register(entity.RegisterForm{Email: "a@x.com", Password: long, Name: "Ann"})
	assert.ErrorIs(t, err, ErrPasswordTooLong)
	assert.Equal(t, int64(0), countRows(t, &model.User{}))

	register(t, "a@x.com", "old", "Ann")
	assert.ErrorIs(t, userService.UpdateAdminPassword(long), ErrPasswordTooLong)
	_, err = userService.CheckUser("a@x.com", "old")
	assert.NoError(t, err)
}

func TestSettings(t *testing.T) {
	setup(t)
	settingService := SettingService{}

	port, err := settingService.GetPort()
	require.NoError(t, err)
	assert.Equal(t, 5000, port)

	require.NoError(t, settingService.SetPort(8080))
	port, err = settingService.GetPort()
	require.NoError(t, err)
	assert.Equal(t, 8080, port)
	assert.Error(t, settingService.SetPort(70000))

	maxAge, err := settingService.GetSessionMaxAge()
	require.NoError(t, err)
	assert.Equal(t, 0, maxAge)
	assert.Error(t, settingService.SetSessionMaxAge(-1))

	secret, err := settingService.GetSecret()
	require.NoError(t, err)
	assert.Len(t, secret, secretLength)
	again, err := settingService.GetSecret()
	require.NoError(t, err)
	assert.Equal(t, secret, again, "secret is persisted")

	require.NoError(t, settingService.ResetSecret())
	reset, err := settingService.GetSecret()
	require.NoError(t, err)
	assert.NotEqual(t, secret, reset)

	t.Setenv("BLOG_SECRET", "from-env")
	fromEnv, err := settingService.GetSecret()
	require.NoError(t, err)
	assert.Equal(t, []byte("from-env"), fromEnv)
}
