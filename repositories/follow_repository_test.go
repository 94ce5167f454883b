package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	mockDB, mock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	dialector := postgres.New(postgres.Config{
		Conn:                 mockDB,
		DriverName:           "postgres",
		PreferSimpleProtocol: true,
	})

	db, err := gorm.Open(dialector, &gorm.Config{})
	assert.NoError(t, err)
	return db, mock
}

func TestIsFollowing(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewFollowRepository(db)

	columns := []string{"id", "user_id", "author_id", "created_at"}

	tests := []struct {
		name           string
		userID         string
		authorID       string
		mockRows       *sqlmock.Rows
		mockErr        error
		expectedResult bool
		expectedError  bool
	}{
		{
			name:           "User is following",
			userID:         "user1",
			authorID:       "user2",
			mockRows:       sqlmock.NewRows(columns).AddRow(1, "user1", "user2", time.Now()),
			expectedResult: true,
		},
		{
			name:           "User is not following",
			userID:         "user1",
			authorID:       "user2",
			mockRows:       sqlmock.NewRows(columns),
			expectedResult: false,
		},
		{
			name:          "Database error",
			userID:        "user1",
			authorID:      "user2",
			mockErr:       errors.New("connection reset"),
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query := `SELECT`
			if tt.mockErr != nil {
				mock.ExpectQuery(query).WillReturnError(tt.mockErr)
			} else {
				mock.ExpectQuery(query).WillReturnRows(tt.mockRows)
			}

			result, err := repo.IsFollowing(context.Background(), tt.userID, tt.authorID)

			assert.Equal(t, tt.expectedResult, result)
			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostCountByAuthor(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostRepository(db)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "posts"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	count, err := repo.CountByAuthor(context.Background(), "user1")
	assert.NoError(t, err)
	assert.Equal(t, int64(3), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}
