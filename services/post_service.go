package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"yatube-api/logs"
	"yatube-api/models"
	"yatube-api/repositories"
	"yatube-api/storage"
	"yatube-api/utils"
)

// sniffLen is how much of an upload http.DetectContentType looks at.
const sniffLen = 512

type PostService struct {
	posts         PostStore
	groups        GroupStore
	users         UserStore
	comments      CommentStore
	follows       FollowStore
	storage       storage.FileStorage
	perPage       int
	maxImageBytes int64
}

type PostServiceConfig struct {
	PerPage       int
	MaxImageBytes int64
}

func NewPostService(posts PostStore, groups GroupStore, users UserStore, comments CommentStore, follows FollowStore, fileStorage storage.FileStorage, cfg PostServiceConfig) *PostService {
	if cfg.PerPage < 1 {
		cfg.PerPage = utils.PostsLimit
	}
	return &PostService{
		posts:         posts,
		groups:        groups,
		users:         users,
		comments:      comments,
		follows:       follows,
		storage:       fileStorage,
		perPage:       cfg.PerPage,
		maxImageBytes: cfg.MaxImageBytes,
	}
}

// ImageUpload is an image file received with a post form.
type ImageUpload struct {
	Filename string
	Size     int64
	Body     io.Reader
}

// PostInput carries the editable fields of a post. A zero GroupID means no
// group and a nil Image leaves the current image in place.
type PostInput struct {
	Text    string
	GroupID uint
	Image   *ImageUpload
}

type GroupPage struct {
	Group models.Group             `json:"group"`
	Posts *utils.Page[models.Post] `json:"posts"`
}

type ProfilePage struct {
	models.Profile
	Posts *utils.Page[models.Post] `json:"posts"`
}

func (s *PostService) Index(ctx context.Context, rawPage string) (*utils.Page[models.Post], error) {
	return s.page(ctx, repositories.PostFilter{}, rawPage)
}

func (s *PostService) GroupPosts(ctx context.Context, slug, rawPage string) (*GroupPage, error) {
	group, err := s.groups.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGroupNotFound
		}
		return nil, fmt.Errorf("find group: %w", err)
	}

	page, err := s.page(ctx, repositories.PostFilter{GroupID: group.ID}, rawPage)
	if err != nil {
		return nil, err
	}
	return &GroupPage{Group: *group, Posts: page}, nil
}

// Profile shows the author's posts. viewerID is empty for anonymous requests.
func (s *PostService) Profile(ctx context.Context, username, viewerID, rawPage string) (*ProfilePage, error) {
	author, err := s.findUser(ctx, username)
	if err != nil {
		return nil, err
	}

	page, err := s.page(ctx, repositories.PostFilter{AuthorID: author.ID}, rawPage)
	if err != nil {
		return nil, err
	}

	following := false
	if viewerID != "" && viewerID != author.ID {
		following, err = s.follows.IsFollowing(ctx, viewerID, author.ID)
		if err != nil {
			return nil, fmt.Errorf("check following: %w", err)
		}
	}

	return &ProfilePage{
		Profile: models.Profile{
			Author:     *author,
			PostsCount: page.Count,
			Following:  following,
		},
		Posts: page,
	}, nil
}

func (s *PostService) Detail(ctx context.Context, id uint) (*models.PostDetail, error) {
	post, err := s.findPost(ctx, id)
	if err != nil {
		return nil, err
	}

	comments, err := s.comments.ListByPost(ctx, post.ID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}

	count, err := s.posts.CountByAuthor(ctx, post.AuthorID)
	if err != nil {
		return nil, fmt.Errorf("count author posts: %w", err)
	}

	return &models.PostDetail{
		Post:             *post,
		Comments:         comments,
		AuthorPostsCount: count,
	}, nil
}

func (s *PostService) Comments(ctx context.Context, postID uint) ([]models.Comment, error) {
	if _, err := s.findPost(ctx, postID); err != nil {
		return nil, err
	}
	comments, err := s.comments.ListByPost(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	return comments, nil
}

// FollowFeed lists posts by the authors userID follows.
func (s *PostService) FollowFeed(ctx context.Context, userID, rawPage string) (*utils.Page[models.Post], error) {
	return s.page(ctx, repositories.PostFilter{FollowerID: userID}, rawPage)
}

func (s *PostService) Create(ctx context.Context, authorID string, in PostInput) (*models.Post, error) {
	groupID, err := s.validate(ctx, in)
	if err != nil {
		return nil, err
	}

	post := &models.Post{
		Text:     in.Text,
		AuthorID: authorID,
		GroupID:  groupID,
	}

	if in.Image != nil {
		key, err := s.saveImage(ctx, in.Image)
		if err != nil {
			return nil, err
		}
		post.Image = key
	}

	if err := s.posts.Create(ctx, post); err != nil {
		s.discardImage(ctx, post.Image)
		return nil, fmt.Errorf("create post: %w", err)
	}

	return s.findPost(ctx, post.ID)
}

// Update lets the author replace text, group and image. pub_date is kept.
func (s *PostService) Update(ctx context.Context, id uint, userID string, in PostInput) (*models.Post, error) {
	post, err := s.findPost(ctx, id)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != userID {
		return nil, ErrNotAuthor
	}

	groupID, err := s.validate(ctx, in)
	if err != nil {
		return nil, err
	}

	oldImage := post.Image
	post.Text = in.Text
	post.GroupID = groupID
	if in.Image != nil {
		key, err := s.saveImage(ctx, in.Image)
		if err != nil {
			return nil, err
		}
		post.Image = key
	}

	if err := s.posts.Update(ctx, post); err != nil {
		if post.Image != oldImage {
			s.discardImage(ctx, post.Image)
		}
		return nil, fmt.Errorf("update post: %w", err)
	}
	if post.Image != oldImage {
		s.discardImage(ctx, oldImage)
	}

	return s.findPost(ctx, post.ID)
}

func (s *PostService) Delete(ctx context.Context, id uint, userID string) error {
	post, err := s.findPost(ctx, id)
	if err != nil {
		return err
	}
	if post.AuthorID != userID {
		return ErrNotAuthor
	}

	if err := s.posts.Delete(ctx, post.ID); err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	s.discardImage(ctx, post.Image)
	return nil
}

func (s *PostService) AddComment(ctx context.Context, postID uint, authorID, text string) (*models.Comment, error) {
	if utils.IsBlank(text) {
		return nil, ErrEmptyText
	}
	if _, err := s.findPost(ctx, postID); err != nil {
		return nil, err
	}

	author, err := s.users.FindByID(ctx, authorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	comment := &models.Comment{
		PostID:   postID,
		AuthorID: author.ID,
		Text:     text,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	comment.Author = *author
	return comment, nil
}

func (s *PostService) page(ctx context.Context, filter repositories.PostFilter, rawPage string) (*utils.Page[models.Post], error) {
	page, err := s.posts.Page(ctx, filter, rawPage, s.perPage)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	for i := range page.Results {
		s.withImageURL(&page.Results[i])
	}
	return page, nil
}

func (s *PostService) findPost(ctx context.Context, id uint) (*models.Post, error) {
	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("find post: %w", err)
	}
	s.withImageURL(post)
	return post, nil
}

func (s *PostService) findUser(ctx context.Context, username string) (*models.User, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

func (s *PostService) withImageURL(post *models.Post) {
	if post.Image != "" {
		post.ImageURL = s.storage.URL(post.Image)
	}
}

// validate checks the text and resolves the group reference.
func (s *PostService) validate(ctx context.Context, in PostInput) (*uint, error) {
	if utils.IsBlank(in.Text) {
		return nil, ErrEmptyText
	}
	if in.GroupID == 0 {
		return nil, nil
	}

	group, err := s.groups.FindByID(ctx, in.GroupID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidGroup
		}
		return nil, fmt.Errorf("find group: %w", err)
	}
	return &group.ID, nil
}

// saveImage checks the upload and stores it under posts/.
func (s *PostService) saveImage(ctx context.Context, img *ImageUpload) (string, error) {
	ext, ok := utils.ImageExtension(img.Filename)
	if !ok {
		return "", fmt.Errorf("%w: unsupported file extension %q", ErrInvalidImage, ext)
	}
	if s.maxImageBytes > 0 && img.Size > s.maxImageBytes {
		return "", fmt.Errorf("%w: file is larger than %d bytes", ErrInvalidImage, s.maxImageBytes)
	}

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(img.Body, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read image: %w", err)
	}
	head = head[:n]

	contentType := http.DetectContentType(head)
	if !strings.HasPrefix(contentType, "image/") {
		return "", fmt.Errorf("%w: content is %s", ErrInvalidImage, contentType)
	}

	key := "posts/" + uuid.New().String() + ext
	body := io.MultiReader(bytes.NewReader(head), img.Body)
	if err := s.storage.Save(ctx, key, body, contentType); err != nil {
		return "", fmt.Errorf("save image: %w", err)
	}
	return key, nil
}

func (s *PostService) discardImage(ctx context.Context, key string) {
	if key == "" {
		return
	}
	if err := s.storage.Delete(ctx, key); err != nil {
		logs.LogJSON("WARN", "Could not delete image", map[string]interface{}{
			"error": err.Error(),
			"image": key,
		})
	}
}
