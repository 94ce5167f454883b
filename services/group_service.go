package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"yatube-api/models"
	"yatube-api/utils"
)

type GroupService struct {
	groups GroupStore
}

func NewGroupService(groups GroupStore) *GroupService {
	return &GroupService{groups: groups}
}

func (s *GroupService) List(ctx context.Context) ([]models.Group, error) {
	groups, err := s.groups.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}
	return groups, nil
}

type GroupInput struct {
	Title       string
	Slug        string
	Description string
}

func (s *GroupService) Create(ctx context.Context, in GroupInput) (*models.Group, error) {
	slug := strings.TrimSpace(in.Slug)
	if !utils.IsValidSlug(slug) {
		return nil, ErrInvalidSlug
	}

	group := &models.Group{
		Title:       strings.TrimSpace(in.Title),
		Slug:        slug,
		Description: in.Description,
	}
	if err := s.groups.Create(ctx, group); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrSlugTaken
		}
		return nil, fmt.Errorf("create group: %w", err)
	}
	return group, nil
}

// Delete removes the group. Its posts stay, without a group.
func (s *GroupService) Delete(ctx context.Context, slug string) error {
	group, err := s.groups.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrGroupNotFound
		}
		return fmt.Errorf("find group: %w", err)
	}
	if err := s.groups.Delete(ctx, group.ID); err != nil {
		return fmt.Errorf("delete group: %w", err)
	}
	return nil
}
