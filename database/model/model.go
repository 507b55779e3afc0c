// Package model defines the gorm models persisted by the blog.
package model

// AdminUserId is the id of the first user ever created; that user administers the blog.
const AdminUserId = 1

type User struct {
	Id       int       `json:"id" gorm:"primaryKey;autoIncrement"`
	Email    string    `json:"email" gorm:"size:100;not null;unique"`
	Password string    `json:"-" gorm:"size:255;not null"`
	Name     string    `json:"name" gorm:"size:100;not null"`
	Posts    []Post    `json:"-" gorm:"foreignKey:AuthorId"`
	Comments []Comment `json:"-" gorm:"foreignKey:AuthorId"`
}

// IsAdmin reports whether u is the blog's administrator.
func (u *User) IsAdmin() bool {
	return u != nil && u.Id == AdminUserId
}

type Post struct {
	Id       int       `json:"id" gorm:"primaryKey;autoIncrement"`
	AuthorId int       `json:"authorId" gorm:"not null"`
	Author   User      `json:"author" gorm:"foreignKey:AuthorId"`
	Title    string    `json:"title" gorm:"size:100;not null;unique"`
	Subtitle string    `json:"subtitle" gorm:"size:100;not null"`
	Date     string    `json:"date" gorm:"size:100;not null"`
	Body     string    `json:"body" gorm:"type:text;not null"`
	ImgUrl   string    `json:"imgUrl" gorm:"size:255;not null"`
	Comments []Comment `json:"-" gorm:"foreignKey:PostId"`
}

func (Post) TableName() string {
	return "blog_posts"
}

type Comment struct {
	Id       int    `json:"id" gorm:"primaryKey;autoIncrement"`
	Text     string `json:"text" gorm:"type:text;not null"`
	AuthorId int    `json:"authorId" gorm:"not null"`
	Author   User   `json:"author" gorm:"foreignKey:AuthorId"`
	PostId   int    `json:"postId" gorm:"not null;index"`
}

type Setting struct {
	Id    int    `json:"id" form:"id" gorm:"primaryKey;autoIncrement"`
	Key   string `json:"key" form:"key" gorm:"unique"`
	Value string `json:"value" form:"value"`
}
