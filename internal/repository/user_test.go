package repository

import (
	"context"
	"errors"
	"testing"

	"devconnector/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestUserRepository_GetByEmail_Absent(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(`SELECT (.+) FROM "users"`).
		WillReturnError(gorm.ErrRecordNotFound)

	user, err := repo.GetByEmail(ctx, "ghost@example.com")
	require.NoError(t, err)
	assert.Nil(t, user)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Create_DuplicateEmailIsConflict(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "users"`).
		WillReturnError(errors.New(`duplicate key value violates unique constraint "uni_users_email" (SQLSTATE 23505)`))
	mock.ExpectRollback()

	err := repo.Create(ctx, &models.User{Name: "Alice", Email: "alice@example.com", Password: "hash"})
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeConflict, appErr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIsUniqueConstraintError(t *testing.T) {
	t.Parallel()

	assert.False(t, isUniqueConstraintError(nil))
	assert.False(t, isUniqueConstraintError(errors.New("connection refused")))
	assert.True(t, isUniqueConstraintError(errors.New("ERROR: duplicate key value violates unique constraint")))
	assert.True(t, isUniqueConstraintError(errors.New("SQLSTATE 23505")))
}
