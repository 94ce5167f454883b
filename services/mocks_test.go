package services

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"yatube-api/models"
	"yatube-api/repositories"
	"yatube-api/utils"
)

type mockUserStore struct{ mock.Mock }

func (m *mockUserStore) Create(ctx context.Context, user *models.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserStore) FindByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *mockUserStore) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *mockUserStore) Delete(ctx context.Context, id string) ([]string, error) {
	args := m.Called(ctx, id)
	images, _ := args.Get(0).([]string)
	return images, args.Error(1)
}

type mockGroupStore struct{ mock.Mock }

func (m *mockGroupStore) List(ctx context.Context) ([]models.Group, error) {
	args := m.Called(ctx)
	groups, _ := args.Get(0).([]models.Group)
	return groups, args.Error(1)
}

func (m *mockGroupStore) FindBySlug(ctx context.Context, slug string) (*models.Group, error) {
	args := m.Called(ctx, slug)
	group, _ := args.Get(0).(*models.Group)
	return group, args.Error(1)
}

func (m *mockGroupStore) FindByID(ctx context.Context, id uint) (*models.Group, error) {
	args := m.Called(ctx, id)
	group, _ := args.Get(0).(*models.Group)
	return group, args.Error(1)
}

func (m *mockGroupStore) Create(ctx context.Context, group *models.Group) error {
	return m.Called(ctx, group).Error(0)
}

func (m *mockGroupStore) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

type mockPostStore struct{ mock.Mock }

func (m *mockPostStore) Page(ctx context.Context, filter repositories.PostFilter, rawPage string, perPage int) (*utils.Page[models.Post], error) {
	args := m.Called(ctx, filter, rawPage, perPage)
	page, _ := args.Get(0).(*utils.Page[models.Post])
	return page, args.Error(1)
}

func (m *mockPostStore) FindByID(ctx context.Context, id uint) (*models.Post, error) {
	args := m.Called(ctx, id)
	post, _ := args.Get(0).(*models.Post)
	return post, args.Error(1)
}

func (m *mockPostStore) CountByAuthor(ctx context.Context, authorID string) (int64, error) {
	args := m.Called(ctx, authorID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockPostStore) Create(ctx context.Context, post *models.Post) error {
	return m.Called(ctx, post).Error(0)
}

func (m *mockPostStore) Update(ctx context.Context, post *models.Post) error {
	return m.Called(ctx, post).Error(0)
}

func (m *mockPostStore) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

type mockCommentStore struct{ mock.Mock }

func (m *mockCommentStore) Create(ctx context.Context, comment *models.Comment) error {
	return m.Called(ctx, comment).Error(0)
}

func (m *mockCommentStore) ListByPost(ctx context.Context, postID uint) ([]models.Comment, error) {
	args := m.Called(ctx, postID)
	comments, _ := args.Get(0).([]models.Comment)
	return comments, args.Error(1)
}

type mockFollowStore struct{ mock.Mock }

func (m *mockFollowStore) IsFollowing(ctx context.Context, userID, authorID string) (bool, error) {
	args := m.Called(ctx, userID, authorID)
	return args.Bool(0), args.Error(1)
}

func (m *mockFollowStore) Create(ctx context.Context, follow *models.Follow) error {
	return m.Called(ctx, follow).Error(0)
}

func (m *mockFollowStore) Delete(ctx context.Context, userID, authorID string) (bool, error) {
	args := m.Called(ctx, userID, authorID)
	return args.Bool(0), args.Error(1)
}

func (m *mockFollowStore) Followers(ctx context.Context, authorID string) ([]models.User, error) {
	args := m.Called(ctx, authorID)
	users, _ := args.Get(0).([]models.User)
	return users, args.Error(1)
}

func (m *mockFollowStore) Following(ctx context.Context, userID string) ([]models.User, error) {
	args := m.Called(ctx, userID)
	users, _ := args.Get(0).([]models.User)
	return users, args.Error(1)
}

type mockNotifier struct{ mock.Mock }

func (m *mockNotifier) NotifyNewFollower(ctx context.Context, author, follower models.User) error {
	return m.Called(ctx, author, follower).Error(0)
}

type mockStorage struct{ mock.Mock }

func (m *mockStorage) Save(ctx context.Context, key string, body io.Reader, contentType string) error {
	data, _ := io.ReadAll(body)
	return m.Called(ctx, key, data, contentType).Error(0)
}

func (m *mockStorage) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func (m *mockStorage) URL(key string) string {
	return "/media/" + key
}
