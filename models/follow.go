package models

import "time"

// Follow links a follower (User) to a followed author. The pair is unique.
// Self-follows are rejected by a guard that database.Migrate installs per
// dialect.
type Follow struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    string    `json:"user_id" gorm:"not null;size:191;uniqueIndex:uk_follows_user_author"`
	AuthorID  string    `json:"author_id" gorm:"not null;size:191;uniqueIndex:uk_follows_user_author;index"`
	CreatedAt time.Time `json:"created_at"`

	User   User `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Author User `json:"-" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
}

// Profile is an author's page: their posts plus the viewer's relation to them.
type Profile struct {
	Author     User  `json:"author"`
	PostsCount int64 `json:"posts_count"`
	Following  bool  `json:"following"`
}
