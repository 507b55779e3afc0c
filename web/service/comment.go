package service

import (
	"fmt"

	"github.com/mhsanaei/blog/database"
	"github.com/mhsanaei/blog/database/model"
)

// CommentService stores comments. They are read back through PostService.GetPost.
type CommentService struct{}

// AddComment stores text as a comment by author on post postId.
func (s *CommentService) AddComment(author *model.User, postId int, text string) (*model.Comment, error) {
	db := database.GetDB()

	var count int64
	if err := db.Model(model.Post{}).Where("id = ?", postId).Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, ErrPostNotFound
	}

	comment := &model.Comment{
		Text:     text,
		AuthorId: author.Id,
		PostId:   postId,
	}
	if err := db.Omit("Author").Create(comment).Error; err != nil {
		return nil, fmt.Errorf("create comment on post %d: %w", postId, err)
	}
	comment.Author = *author
	return comment, nil
}
