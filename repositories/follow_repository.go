package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"yatube-api/models"
)

type FollowRepository struct {
	db *gorm.DB
}

func NewFollowRepository(db *gorm.DB) *FollowRepository {
	return &FollowRepository{db: db}
}

func (r *FollowRepository) IsFollowing(ctx context.Context, userID, authorID string) (bool, error) {
	var follow models.Follow
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		First(&follow).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}

	return true, nil
}

// Create returns gorm.ErrDuplicatedKey if the edge already exists.
func (r *FollowRepository) Create(ctx context.Context, follow *models.Follow) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(follow).Error
}

// Delete reports whether an edge was removed.
func (r *FollowRepository) Delete(ctx context.Context, userID, authorID string) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Delete(&models.Follow{})
	return result.RowsAffected > 0, result.Error
}

// Followers lists the users following authorID.
func (r *FollowRepository) Followers(ctx context.Context, authorID string) ([]models.User, error) {
	users := []models.User{}
	err := r.db.WithContext(ctx).
		Where("id IN (?)", r.db.Model(&models.Follow{}).Select("user_id").Where("author_id = ?", authorID)).
		Order("username ASC").
		Find(&users).Error
	return users, err
}

// Following lists the authors userID follows.
func (r *FollowRepository) Following(ctx context.Context, userID string) ([]models.User, error) {
	users := []models.User{}
	err := r.db.WithContext(ctx).
		Where("id IN (?)", r.db.Model(&models.Follow{}).Select("author_id").Where("user_id = ?", userID)).
		Order("username ASC").
		Find(&users).Error
	return users, err
}
