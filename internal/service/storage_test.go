package service

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/pageza/tomato/backend/internal/apperrors"
	"github.com/pageza/tomato/backend/internal/logging"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func TestRecipeListStorageFailure(t *testing.T) {
	db, mock := setupMockDB(t)
	cause := errors.New("connection reset by peer")
	mock.ExpectQuery(`SELECT \* FROM "recipes"`).WillReturnError(cause)

	svc := NewRecipeService(db, nil, logging.Discard(), nil)
	_, err := svc.List(context.Background())

	require.Error(t, err)
	assert.True(t, apperrors.IsStorage(err))
	assert.ErrorIs(t, err, cause)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecipeDeleteStorageFailure(t *testing.T) {
	db, mock := setupMockDB(t)
	mock.ExpectQuery(`SELECT \* FROM "recipes"`).WillReturnError(errors.New("database is down"))

	svc := NewRecipeService(db, nil, logging.Discard(), nil)
	err := svc.Delete(context.Background(), "some-id")

	assert.True(t, apperrors.IsStorage(err), "got %v", err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecipeCreateInsertFailureRemovesImage(t *testing.T) {
	db, mock := setupMockDB(t)
	mock.ExpectQuery(`INSERT INTO "recipes"`).WillReturnError(errors.New("disk full"))

	images := &recordingImageStore{}
	svc := NewRecipeService(db, images, logging.Discard(), nil)

	_, err := svc.Create(context.Background(), tomatoSoup(), &ImageUpload{Filename: "soup.jpg"})
	assert.True(t, apperrors.IsStorage(err), "got %v", err)
	require.Len(t, images.saved, 1)
	assert.Equal(t, images.saved, images.removed)
}

func TestReviewListStorageFailure(t *testing.T) {
	db, mock := setupMockDB(t)
	mock.ExpectQuery(`SELECT \* FROM "reviews"`).WillReturnError(errors.New("timeout"))

	svc := NewReviewService(db, logging.Discard(), nil)
	_, err := svc.List(context.Background())
	assert.True(t, apperrors.IsStorage(err), "got %v", err)
}

func TestReviewLikeLookupFailureIsNotNotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	mock.ExpectQuery(`SELECT \* FROM "reviews"`).WillReturnError(errors.New("timeout"))

	svc := NewReviewService(db, logging.Discard(), nil)
	_, err := svc.Like(context.Background(), "some-id")
	assert.True(t, apperrors.IsStorage(err), "got %v", err)
	assert.False(t, apperrors.IsNotFound(err))
}

func TestStorageErrMapsConstraintViolations(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		field string
	}{
		{
			name:  "postgres check",
			err:   &pq.Error{Code: "23514", Constraint: "chk_reviews_rating", Message: "new row violates check constraint"},
			field: "rating",
		},
		{
			name:  "postgres not null",
			err:   &pq.Error{Code: "23502", Column: "title"},
			field: "title",
		},
		{
			name:  "sqlite check",
			err:   errors.New("CHECK constraint failed: chk_recipes_servings"),
			field: "servings",
		},
		{
			name:  "sqlite not null",
			err:   errors.New("NOT NULL constraint failed: reviews.comment"),
			field: "comment",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, ok := apperrors.AsValidation(storageErr("create", tt.err))
			require.True(t, ok)
			assert.Equal(t, tt.field, v.Field)
		})
	}
}

func TestStorageErrPassThrough(t *testing.T) {
	assert.NoError(t, storageErr("op", nil))

	verr := apperrors.Validation("name", "name is required")
	assert.Equal(t, verr, storageErr("op", verr))

	err := storageErr("op", &pq.Error{Code: "23505", Message: "duplicate key"})
	assert.True(t, apperrors.IsStorage(err))
}
