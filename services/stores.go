package services

import (
	"context"

	"yatube-api/models"
	"yatube-api/repositories"
	"yatube-api/utils"
)

type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	Delete(ctx context.Context, id string) ([]string, error)
}

type GroupStore interface {
	List(ctx context.Context) ([]models.Group, error)
	FindBySlug(ctx context.Context, slug string) (*models.Group, error)
	FindByID(ctx context.Context, id uint) (*models.Group, error)
	Create(ctx context.Context, group *models.Group) error
	Delete(ctx context.Context, id uint) error
}

type PostStore interface {
	Page(ctx context.Context, filter repositories.PostFilter, rawPage string, perPage int) (*utils.Page[models.Post], error)
	FindByID(ctx context.Context, id uint) (*models.Post, error)
	CountByAuthor(ctx context.Context, authorID string) (int64, error)
	Create(ctx context.Context, post *models.Post) error
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id uint) error
}

type CommentStore interface {
	Create(ctx context.Context, comment *models.Comment) error
	ListByPost(ctx context.Context, postID uint) ([]models.Comment, error)
}

type FollowStore interface {
	IsFollowing(ctx context.Context, userID, authorID string) (bool, error)
	Create(ctx context.Context, follow *models.Follow) error
	Delete(ctx context.Context, userID, authorID string) (bool, error)
	Followers(ctx context.Context, authorID string) ([]models.User, error)
	Following(ctx context.Context, userID string) ([]models.User, error)
}

// FollowNotifier is told about every new follow edge.
type FollowNotifier interface {
	NotifyNewFollower(ctx context.Context, author, follower models.User) error
}
