package repository_test

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopnow/shopnow-backend/internal/models"
	repository "github.com/shopnow/shopnow-backend/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupUserRepoTest(t *testing.T) (repository.UserRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err, "Failed to create sqlmock")

	t.Cleanup(func() {
		db.Close()
	})

	repo := repository.NewUserRepo(db)
	require.NotNil(t, repo, "NewUserRepo should return a non-nil repository")

	return repo, mock
}

func TestUserRepositoryCreateUser(t *testing.T) {
	repo, mock := setupUserRepoTest(t)
	ctx := t.Context()
	now := time.Now()

	user := &models.User{
		Email:     "jane@example.com",
		Password:  "$2a$10$hash",
		FirstName: "Jane",
		LastName:  "Doe",
	}

	t.Run("Success", func(t *testing.T) {
		// Arrange
		newID := uuid.New()
		mock.ExpectQuery(`INSERT INTO users`).
			WithArgs(user.Email, user.Password, user.FirstName, user.LastName).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).
				AddRow(newID, now, now))

		// Act
		err := repo.CreateUser(ctx, user)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, newID, user.ID)
		assert.WithinDuration(t, now, user.CreatedAt, time.Second)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Duplicate Email", func(t *testing.T) {
		// Arrange
		dbError := errors.New(`pq: duplicate key value violates unique constraint "users_email_key"`)
		mock.ExpectQuery(`INSERT INTO users`).
			WithArgs(user.Email, user.Password, user.FirstName, user.LastName).
			WillReturnError(dbError)

		// Act
		err := repo.CreateUser(ctx, user)

		// Assert
		require.Error(t, err)
		assert.ErrorIs(t, err, dbError)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserRepositoryGetUserByEmail(t *testing.T) {
	repo, mock := setupUserRepoTest(t)
	ctx := t.Context()
	now := time.Now()
	userID := uuid.New()

	columns := []string{"id", "email", "password_hash", "first_name", "last_name", "created_at", "updated_at"}

	t.Run("Success", func(t *testing.T) {
		// Arrange
		mock.ExpectQuery(`SELECT id, email, password_hash`).
			WithArgs("jane@example.com").
			WillReturnRows(sqlmock.NewRows(columns).
				AddRow(userID, "jane@example.com", "$2a$10$hash", "Jane", "Doe", now, now))

		// Act
		user, err := repo.GetUserByEmail(ctx, "jane@example.com")

		// Assert
		require.NoError(t, err)
		assert.Equal(t, userID, user.ID)
		assert.Equal(t, "$2a$10$hash", user.Password)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Not Found", func(t *testing.T) {
		// Arrange
		mock.ExpectQuery(`SELECT id, email, password_hash`).
			WithArgs("nobody@example.com").
			WillReturnError(sql.ErrNoRows)

		// Act
		user, err := repo.GetUserByEmail(ctx, "nobody@example.com")

		// Assert
		require.Error(t, err)
		assert.Nil(t, user)
		assert.ErrorIs(t, err, sql.ErrNoRows)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserRepositoryGetUserByID(t *testing.T) {
	repo, mock := setupUserRepoTest(t)
	ctx := t.Context()
	now := time.Now()
	userID := uuid.New()

	columns := []string{"id", "email", "first_name", "last_name", "created_at", "updated_at"}

	t.Run("Success - Password Not Selected", func(t *testing.T) {
		// Arrange
		mock.ExpectQuery(`SELECT id, email, first_name`).
			WithArgs(userID).
			WillReturnRows(sqlmock.NewRows(columns).
				AddRow(userID, "jane@example.com", "Jane", "Doe", now, now))

		// Act
		user, err := repo.GetUserByID(ctx, userID)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "jane@example.com", user.Email)
		assert.Empty(t, user.Password)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Not Found", func(t *testing.T) {
		// Arrange
		mock.ExpectQuery(`SELECT id, email, first_name`).
			WithArgs(userID).
			WillReturnError(sql.ErrNoRows)

		// Act
		user, err := repo.GetUserByID(ctx, userID)

		// Assert
		require.Error(t, err)
		assert.Nil(t, user)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserRepositoryExistsByID(t *testing.T) {
	repo, mock := setupUserRepoTest(t)
	ctx := t.Context()
	userID := uuid.New()

	t.Run("Exists", func(t *testing.T) {
		// Arrange
		mock.ExpectQuery(`SELECT EXISTS`).
			WithArgs(userID).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

		// Act
		exists, err := repo.ExistsByID(ctx, userID)

		// Assert
		require.NoError(t, err)
		assert.True(t, exists)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Does Not Exist", func(t *testing.T) {
		// Arrange
		mock.ExpectQuery(`SELECT EXISTS`).
			WithArgs(userID).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

		// Act
		exists, err := repo.ExistsByID(ctx, userID)

		// Assert
		require.NoError(t, err)
		assert.False(t, exists)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
