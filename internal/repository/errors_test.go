package repository

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"testing"

	"github.com/theandrewmo/warbler/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	require.NoError(t, err)

	return gormDB, mock
}

func TestIsUniqueViolation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		err       error
		wantField string
		wantOK    bool
	}{
		{
			name:      "postgres username constraint",
			err:       &pgconn.PgError{Code: "23505", ConstraintName: "idx_users_username"},
			wantField: "username",
			wantOK:    true,
		},
		{
			name:      "postgres email constraint",
			err:       &pgconn.PgError{Code: "23505", ConstraintName: "idx_users_email"},
			wantField: "email",
			wantOK:    true,
		},
		{
			name:   "postgres non-unique error",
			err:    &pgconn.PgError{Code: "23503"},
			wantOK: false,
		},
		{
			name:      "sqlite message",
			err:       fmt.Errorf("UNIQUE constraint failed: users.username"),
			wantField: "username",
			wantOK:    true,
		},
		{
			name:   "unrelated error",
			err:    errors.New("connection refused"),
			wantOK: false,
		},
		{
			name:   "nil",
			err:    nil,
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			field, ok := isUniqueViolation(tt.err)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantField, field)
		})
	}
}

// Exercises the Postgres error path end to end: the driver returns a
// PgError and the repository maps it to a uniqueness AppError.
func TestUserRepository_Create_PostgresUniqueViolation(t *testing.T) {
	t.Parallel()
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "users"`)).
		WillReturnError(&pgconn.PgError{
			Code:           "23505",
			ConstraintName: "idx_users_username",
			Detail:         "Key (username)=(taken) already exists.",
		})
	mock.ExpectRollback()

	err := repo.Create(context.Background(), &models.User{
		Username: "taken",
		Email:    "taken@example.com",
		Password: "hash",
	})
	require.Error(t, err)
	assert.True(t, models.HasCode(err, models.CodeUniqueness), "got %#v", err)

	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "username is already taken", appErr.Message)

	assert.NoError(t, mock.ExpectationsWereMet())
}
