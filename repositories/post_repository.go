package repositories

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"yatube-api/models"
	"yatube-api/utils"
)

type PostRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) *PostRepository {
	return &PostRepository{db: db}
}

// PostFilter narrows a post listing. Zero fields do not filter.
type PostFilter struct {
	GroupID    uint
	AuthorID   string
	FollowerID string // posts by authors this user follows
}

func (f PostFilter) apply(db *gorm.DB) *gorm.DB {
	if f.GroupID != 0 {
		db = db.Where("group_id = ?", f.GroupID)
	}
	if f.AuthorID != "" {
		db = db.Where("author_id = ?", f.AuthorID)
	}
	if f.FollowerID != "" {
		db = db.Where("author_id IN (?)",
			db.Session(&gorm.Session{NewDB: true}).Model(&models.Follow{}).Select("author_id").Where("user_id = ?", f.FollowerID),
		)
	}
	return db
}

// newestFirst is the feed order. The id breaks ties between posts published
// within the same clock tick.
func newestFirst(db *gorm.DB) *gorm.DB {
	return db.Order("pub_date DESC").Order("id DESC")
}

func withRelations(db *gorm.DB) *gorm.DB {
	return db.Preload("Author").Preload("Group")
}

func (r *PostRepository) Page(ctx context.Context, filter PostFilter, rawPage string, perPage int) (*utils.Page[models.Post], error) {
	query := filter.apply(r.db.WithContext(ctx).Model(&models.Post{}))
	return utils.Paginate[models.Post](query, rawPage, perPage, withRelations, newestFirst)
}

func (r *PostRepository) FindByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).Scopes(withRelations).First(&post, id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *PostRepository) CountByAuthor(ctx context.Context, authorID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Post{}).Where("author_id = ?", authorID).Count(&count).Error
	return count, err
}

func (r *PostRepository) Create(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(post).Error
}

// Update writes the editable columns only. pub_date and author never change.
func (r *PostRepository) Update(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Model(&models.Post{}).
		Where("id = ?", post.ID).
		Select("text", "group_id", "image").
		Updates(map[string]interface{}{
			"text":     post.Text,
			"group_id": post.GroupID,
			"image":    post.Image,
		}).Error
}

// Delete removes the post and its comments.
func (r *PostRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Post{}, id).Error
	})
}
