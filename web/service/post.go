package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/mhsanaei/blog/database"
	"github.com/mhsanaei/blog/database/model"
	"github.com/mhsanaei/blog/util/common"
	"github.com/mhsanaei/blog/web/entity"

	"gorm.io/gorm"
)

var (
	ErrPostNotFound = errors.New("post not found")
	ErrTitleTaken   = errors.New("post title already used")
)

// PostService manages blog posts. Callers are responsible for the admin check.
type PostService struct{}

// GetPosts returns every post with its author, in storage order.
func (s *PostService) GetPosts() ([]*model.Post, error) {
	db := database.GetDB()
	var posts []*model.Post
	err := db.Model(model.Post{}).
		Preload("Author").
		Order("id").
		Find(&posts).
		Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// GetPost loads one post with its author and its comments' authors.
func (s *PostService) GetPost(id int) (*model.Post, error) {
	db := database.GetDB()
	post := &model.Post{}
	err := db.Model(model.Post{}).
		Preload("Author").
		Preload("Comments", func(tx *gorm.DB) *gorm.DB { return tx.Order("id") }).
		Preload("Comments.Author").
		Where("id = ?", id).
		First(post).
		Error
	if database.IsNotFound(err) {
		return nil, ErrPostNotFound
	} else if err != nil {
		return nil, err
	}
	return post, nil
}

func (s *PostService) titleTaken(title string, exceptId int) (bool, error) {
	var count int64
	err := database.GetDB().Model(model.Post{}).
		Where("title = ? AND id <> ?", title, exceptId).
		Count(&count).
		Error
	return count > 0, err
}

// AddPost stores a new post written by author and dated now.
func (s *PostService) AddPost(author *model.User, form entity.PostForm, now time.Time) (*model.Post, error) {
	taken, err := s.titleTaken(form.Title, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrTitleTaken
	}

	post := &model.Post{
		AuthorId: author.Id,
		Title:    form.Title,
		Subtitle: form.Subtitle,
		Body:     form.Body,
		ImgUrl:   form.ImgUrl,
		Date:     common.FormatPostDate(now),
	}
	err = database.GetDB().Omit("Author", "Comments").Create(post).Error
	if database.IsDuplicate(err) {
		return nil, ErrTitleTaken
	} else if err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	post.Author = *author
	return post, nil
}

// UpdatePost overwrites title, subtitle, body and image of post id.
// Author, date and comments are left untouched.
func (s *PostService) UpdatePost(id int, form entity.PostForm) (*model.Post, error) {
	db := database.GetDB()
	post := &model.Post{}
	err := db.Model(model.Post{}).Where("id = ?", id).First(post).Error
	if database.IsNotFound(err) {
		return nil, ErrPostNotFound
	} else if err != nil {
		return nil, err
	}

	taken, err := s.titleTaken(form.Title, id)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrTitleTaken
	}

	post.Title = form.Title
	post.Subtitle = form.Subtitle
	post.Body = form.Body
	post.ImgUrl = form.ImgUrl
	err = db.Model(post).
		Select("title", "subtitle", "body", "img_url").
		Updates(post).
		Error
	if database.IsDuplicate(err) {
		return nil, ErrTitleTaken
	} else if err != nil {
		return nil, fmt.Errorf("update post %d: %w", id, err)
	}
	return post, nil
}

// DeletePost removes post id together with its comments.
func (s *PostService) DeletePost(id int) error {
	return database.GetDB().Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&model.Comment{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&model.Post{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrPostNotFound
		}
		return nil
	})
}
