package models

// Group is a topical collection of posts, managed by administrators.
type Group struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	Title       string `json:"title" gorm:"not null;size:200"`
	Slug        string `json:"slug" gorm:"uniqueIndex;not null;size:50"`
	Description string `json:"description" gorm:"type:text"`
}

func (g Group) String() string {
	return g.Title
}
