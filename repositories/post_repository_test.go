package repositories

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"yatube-api/database"
	"yatube-api/models"
)

func newSQLiteDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Initialize("sqlite", ":memory:", "silent")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func seedUsers(t *testing.T, db *gorm.DB, ids ...string) {
	t.Helper()
	for _, id := range ids {
		require.NoError(t, db.Create(&models.User{ID: id, Username: id, Password: "x"}).Error)
	}
}

func TestPostPageFilters(t *testing.T) {
	ctx := context.Background()
	db := newSQLiteDB(t)
	repo := NewPostRepository(db)
	seedUsers(t, db, "leo", "anna", "bob")

	group := models.Group{Title: "Cats", Slug: "cats"}
	require.NoError(t, db.Create(&group).Error)

	require.NoError(t, repo.Create(ctx, &models.Post{Text: "leo cats", AuthorID: "leo", GroupID: &group.ID}))
	require.NoError(t, repo.Create(ctx, &models.Post{Text: "leo plain", AuthorID: "leo"}))
	require.NoError(t, repo.Create(ctx, &models.Post{Text: "anna plain", AuthorID: "anna"}))
	require.NoError(t, NewFollowRepository(db).Create(ctx, &models.Follow{UserID: "bob", AuthorID: "anna"}))

	tests := []struct {
		name   string
		filter PostFilter
		want   []string
	}{
		{name: "all", filter: PostFilter{}, want: []string{"anna plain", "leo plain", "leo cats"}},
		{name: "group", filter: PostFilter{GroupID: group.ID}, want: []string{"leo cats"}},
		{name: "author", filter: PostFilter{AuthorID: "leo"}, want: []string{"leo plain", "leo cats"}},
		{name: "followed authors", filter: PostFilter{FollowerID: "bob"}, want: []string{"anna plain"}},
		{name: "follows nobody", filter: PostFilter{FollowerID: "leo"}, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := repo.Page(ctx, tt.filter, "", 10)
			require.NoError(t, err)

			texts := make([]string, 0, len(page.Results))
			for _, post := range page.Results {
				texts = append(texts, post.Text)
				assert.NotEmpty(t, post.Author.Username, "author is preloaded")
			}
			assert.Equal(t, tt.want, texts)
			assert.Equal(t, int64(len(tt.want)), page.Count)
		})
	}
}

func TestPostUpdateKeepsPubDate(t *testing.T) {
	ctx := context.Background()
	db := newSQLiteDB(t)
	repo := NewPostRepository(db)
	seedUsers(t, db, "leo")

	post := &models.Post{Text: "before", AuthorID: "leo"}
	require.NoError(t, repo.Create(ctx, post))
	created, err := repo.FindByID(ctx, post.ID)
	require.NoError(t, err)

	created.Text = "after"
	require.NoError(t, repo.Update(ctx, created))

	updated, err := repo.FindByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "after", updated.Text)
	assert.True(t, created.PubDate.Equal(updated.PubDate))
}

func TestGroupDeleteDetachesPosts(t *testing.T) {
	ctx := context.Background()
	db := newSQLiteDB(t)
	seedUsers(t, db, "leo")

	groups := NewGroupRepository(db)
	group := &models.Group{Title: "Cats", Slug: "cats"}
	require.NoError(t, groups.Create(ctx, group))
	assert.ErrorIs(t, groups.Create(ctx, &models.Group{Title: "Again", Slug: "cats"}), gorm.ErrDuplicatedKey)

	posts := NewPostRepository(db)
	post := &models.Post{Text: "cat", AuthorID: "leo", GroupID: &group.ID}
	require.NoError(t, posts.Create(ctx, post))

	require.NoError(t, groups.Delete(ctx, group.ID))

	kept, err := posts.FindByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Nil(t, kept.GroupID)
	assert.Nil(t, kept.Group)
}

func TestUserDeleteCascades(t *testing.T) {
	ctx := context.Background()
	db := newSQLiteDB(t)
	seedUsers(t, db, "leo", "anna")

	posts := NewPostRepository(db)
	comments := NewCommentRepository(db)
	follows := NewFollowRepository(db)

	leoPost := &models.Post{Text: "leo", AuthorID: "leo", Image: "posts/leo.gif"}
	annaPost := &models.Post{Text: "anna", AuthorID: "anna"}
	require.NoError(t, posts.Create(ctx, leoPost))
	require.NoError(t, posts.Create(ctx, annaPost))
	require.NoError(t, comments.Create(ctx, &models.Comment{PostID: leoPost.ID, AuthorID: "anna", Text: "on leo"}))
	require.NoError(t, comments.Create(ctx, &models.Comment{PostID: annaPost.ID, AuthorID: "leo", Text: "by leo"}))
	require.NoError(t, comments.Create(ctx, &models.Comment{PostID: annaPost.ID, AuthorID: "anna", Text: "by anna"}))
	require.NoError(t, follows.Create(ctx, &models.Follow{UserID: "anna", AuthorID: "leo"}))

	images, err := NewUserRepository(db).Delete(ctx, "leo")
	require.NoError(t, err)
	assert.Equal(t, []string{"posts/leo.gif"}, images)

	left, err := comments.ListByPost(ctx, annaPost.ID)
	require.NoError(t, err)
	require.Len(t, left, 1)
	assert.Equal(t, "by anna", left[0].Text)

	count, err := posts.CountByAuthor(ctx, "leo")
	require.NoError(t, err)
	assert.Zero(t, count)

	following, err := follows.Following(ctx, "anna")
	require.NoError(t, err)
	assert.Empty(t, following)

	_, err = NewUserRepository(db).Delete(ctx, "leo")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestFollowConstraints(t *testing.T) {
	ctx := context.Background()
	db := newSQLiteDB(t)
	seedUsers(t, db, "leo", "anna")
	follows := NewFollowRepository(db)

	require.NoError(t, follows.Create(ctx, &models.Follow{UserID: "anna", AuthorID: "leo"}))
	assert.ErrorIs(t, follows.Create(ctx, &models.Follow{UserID: "anna", AuthorID: "leo"}), gorm.ErrDuplicatedKey)

	removed, err := follows.Delete(ctx, "anna", "leo")
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = follows.Delete(ctx, "anna", "leo")
	require.NoError(t, err)
	assert.False(t, removed)
}
