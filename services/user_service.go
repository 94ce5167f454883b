package services

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"yatube-api/logs"
	"yatube-api/models"
	"yatube-api/storage"
)

type UserService struct {
	users   UserStore
	storage storage.FileStorage
}

func NewUserService(users UserStore, fileStorage storage.FileStorage) *UserService {
	return &UserService{users: users, storage: fileStorage}
}

func (s *UserService) Get(ctx context.Context, id string) (*models.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

// Delete removes the user and all of their content, images included.
func (s *UserService) Delete(ctx context.Context, username string) error {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("find user: %w", err)
	}

	images, err := s.users.Delete(ctx, user.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("delete user: %w", err)
	}

	for _, key := range images {
		if err := s.storage.Delete(ctx, key); err != nil {
			logs.LogJSON("WARN", "Could not delete image of removed user", map[string]interface{}{
				"error":  err.Error(),
				"userID": user.ID,
				"image":  key,
			})
		}
	}
	return nil
}
