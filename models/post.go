// File: /models/post.go
package models

import (
	"time"
)

type Post struct {
	ID       uint      `json:"id" gorm:"primaryKey"`
	Text     string    `json:"text" gorm:"type:text;not null"`
	PubDate  time.Time `json:"pub_date" gorm:"autoCreateTime;index"`
	AuthorID string    `json:"-" gorm:"not null;size:191;index"`
	GroupID  *uint     `json:"group_id" gorm:"index"`
	Image    string    `json:"image,omitempty" gorm:"size:255"`
	ImageURL string    `json:"image_url,omitempty" gorm:"-"`

	Author   User      `json:"author" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	Group    *Group    `json:"group,omitempty" gorm:"foreignKey:GroupID;constraint:OnDelete:SET NULL"`
	Comments []Comment `json:"-" gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
}

func (p Post) String() string {
	return p.Text
}

// PostDetail is a single post together with its discussion.
type PostDetail struct {
	Post             Post      `json:"post"`
	Comments         []Comment `json:"comments"`
	AuthorPostsCount int64     `json:"author_posts_count"`
}
