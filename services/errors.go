package services

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrPostNotFound       = errors.New("post not found")
	ErrGroupNotFound      = errors.New("group not found")
	ErrNotAuthor          = errors.New("only the author can change this post")
	ErrSelfFollow         = errors.New("cannot follow yourself")
	ErrSlugTaken          = errors.New("slug already taken")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidImage       = errors.New("invalid image")
	ErrInvalidGroup       = errors.New("group does not exist")
	ErrInvalidSlug        = errors.New("slug may contain only letters, digits, hyphens and underscores")
	ErrEmptyText          = errors.New("text is required")
	ErrPasswordTooLong    = errors.New("password is longer than 72 bytes")
)
