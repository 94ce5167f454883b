package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"yatube-api/logs"
	"yatube-api/models"
)

const notifyTimeout = 30 * time.Second

type FollowService struct {
	users    UserStore
	follows  FollowStore
	notifier FollowNotifier
}

// NewFollowService builds the service. notifier may be nil.
func NewFollowService(users UserStore, follows FollowStore, notifier FollowNotifier) *FollowService {
	return &FollowService{users: users, follows: follows, notifier: notifier}
}

// Follow makes userID follow the author named username. created is false
// when the edge already existed.
func (s *FollowService) Follow(ctx context.Context, userID, username string) (created bool, err error) {
	author, err := s.findUser(ctx, username)
	if err != nil {
		return false, err
	}
	if author.ID == userID {
		return false, ErrSelfFollow
	}

	exists, err := s.follows.IsFollowing(ctx, userID, author.ID)
	if err != nil {
		return false, fmt.Errorf("check following: %w", err)
	}
	if exists {
		return false, nil
	}

	if err := s.follows.Create(ctx, &models.Follow{UserID: userID, AuthorID: author.ID}); err != nil {
		// A concurrent request created the same edge.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return false, nil
		}
		return false, fmt.Errorf("create follow: %w", err)
	}

	s.notify(*author, userID)
	return true, nil
}

// Unfollow removes the edge if there is one.
func (s *FollowService) Unfollow(ctx context.Context, userID, username string) error {
	author, err := s.findUser(ctx, username)
	if err != nil {
		return err
	}
	if _, err := s.follows.Delete(ctx, userID, author.ID); err != nil {
		return fmt.Errorf("delete follow: %w", err)
	}
	return nil
}

func (s *FollowService) Followers(ctx context.Context, username string) ([]models.User, error) {
	author, err := s.findUser(ctx, username)
	if err != nil {
		return nil, err
	}
	users, err := s.follows.Followers(ctx, author.ID)
	if err != nil {
		return nil, fmt.Errorf("list followers: %w", err)
	}
	return users, nil
}

func (s *FollowService) Following(ctx context.Context, username string) ([]models.User, error) {
	user, err := s.findUser(ctx, username)
	if err != nil {
		return nil, err
	}
	users, err := s.follows.Following(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("list following: %w", err)
	}
	return users, nil
}

func (s *FollowService) findUser(ctx context.Context, username string) (*models.User, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

// notify sends the new follower email in the background. Failures are only
// logged.
func (s *FollowService) notify(author models.User, followerID string) {
	if s.notifier == nil {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()

		follower, err := s.users.FindByID(ctx, followerID)
		if err != nil {
			logs.LogJSON("WARN", "Could not load follower for notification", map[string]interface{}{
				"error":      err.Error(),
				"followerID": followerID,
			})
			return
		}

		if err := s.notifier.NotifyNewFollower(ctx, author, *follower); err != nil {
			logs.LogJSON("ERROR", "Failed to send new follower email", map[string]interface{}{
				"error":    err.Error(),
				"authorID": author.ID,
			})
		}
	}()
}
