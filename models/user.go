// File: /models/user.go
package models

import (
	"strings"
	"time"
)

type User struct {
	ID        string    `json:"id" gorm:"primaryKey;size:191"`
	Username  string    `json:"username" gorm:"uniqueIndex;not null;size:150"`
	Email     string    `json:"-" gorm:"size:255"`
	Password  string    `json:"-" gorm:"not null;size:255"`
	FirstName string    `json:"first_name" gorm:"size:150"`
	LastName  string    `json:"last_name" gorm:"size:150"`
	IsAdmin   bool      `json:"-" gorm:"default:false"`
	CreatedAt time.Time `json:"created_at"`
}

// FullName falls back to the username when no name is set.
func (u User) FullName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return u.Username
	}
	return name
}
