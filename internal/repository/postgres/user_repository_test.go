package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/bagdasarian/task-groups/internal/domain"
	"github.com/bagdasarian/task-groups/internal/repository"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupUserRepo создает мок БД и репозиторий для User
func setupUserRepo(t *testing.T) (*userRepository, sqlmock.Sqlmock) {
	db, mock := setupMockDB(t)
	return NewUserRepository(db), mock
}

var userRowColumns = []string{"id", "email", "username", "password_hash", "created_at"}

func TestUserRepository_Create(t *testing.T) {
	t.Run("успешное создание пользователя", func(t *testing.T) {
		repo, mock := setupUserRepo(t)

		now := time.Now()
		user := &domain.User{
			Email:        "alice@example.com",
			Username:     "alice",
			PasswordHash: "hash",
		}

		rows := sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(5), now)
		mock.ExpectQuery("INSERT INTO users").
			WithArgs("alice@example.com", "alice", "hash", sqlmock.AnyArg()).
			WillReturnRows(rows)

		err := repo.Create(context.Background(), user)

		require.NoError(t, err)
		assert.Equal(t, int64(5), user.ID)
		assert.Equal(t, now, user.CreatedAt)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("email уже занят", func(t *testing.T) {
		// Уникальный индекс по email превращается в ErrDuplicate
		repo, mock := setupUserRepo(t)

		mock.ExpectQuery("INSERT INTO users").
			WithArgs("alice@example.com", "alice", "hash", sqlmock.AnyArg()).
			WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "users_email_key"})

		err := repo.Create(context.Background(), &domain.User{
			Email:        "alice@example.com",
			Username:     "alice",
			PasswordHash: "hash",
		})

		assert.ErrorIs(t, err, repository.ErrDuplicate)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserRepository_GetByID(t *testing.T) {
	t.Run("пользователь найден", func(t *testing.T) {
		repo, mock := setupUserRepo(t)

		now := time.Now()
		rows := sqlmock.NewRows(userRowColumns).
			AddRow(int64(1), "alice@example.com", "alice", "hash", now)
		mock.ExpectQuery("SELECT (.+) FROM users WHERE id = \\$1").
			WithArgs(int64(1)).
			WillReturnRows(rows)

		user, err := repo.GetByID(context.Background(), 1)

		require.NoError(t, err)
		assert.Equal(t, int64(1), user.ID)
		assert.Equal(t, "alice@example.com", user.Email)
		assert.Equal(t, "alice", user.Username)
		assert.Equal(t, "hash", user.PasswordHash)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("пользователь не найден", func(t *testing.T) {
		repo, mock := setupUserRepo(t)

		mock.ExpectQuery("SELECT (.+) FROM users WHERE id = \\$1").
			WithArgs(int64(999)).
			WillReturnRows(sqlmock.NewRows(userRowColumns))

		user, err := repo.GetByID(context.Background(), 999)

		assert.Nil(t, user)
		assert.ErrorIs(t, err, repository.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserRepository_GetByEmail(t *testing.T) {
	t.Run("пользователь найден", func(t *testing.T) {
		repo, mock := setupUserRepo(t)

		rows := sqlmock.NewRows(userRowColumns).
			AddRow(int64(2), "bob@example.com", "bob", "hash", time.Now())
		mock.ExpectQuery("SELECT (.+) FROM users WHERE email = \\$1").
			WithArgs("bob@example.com").
			WillReturnRows(rows)

		user, err := repo.GetByEmail(context.Background(), "bob@example.com")

		require.NoError(t, err)
		assert.Equal(t, int64(2), user.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("пользователь не найден", func(t *testing.T) {
		repo, mock := setupUserRepo(t)

		mock.ExpectQuery("SELECT (.+) FROM users WHERE email = \\$1").
			WithArgs("nobody@example.com").
			WillReturnRows(sqlmock.NewRows(userRowColumns))

		_, err := repo.GetByEmail(context.Background(), "nobody@example.com")

		assert.ErrorIs(t, err, repository.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserRepository_List(t *testing.T) {
	t.Run("список пользователей по возрастанию id", func(t *testing.T) {
		repo, mock := setupUserRepo(t)

		now := time.Now()
		rows := sqlmock.NewRows(userRowColumns).
			AddRow(int64(1), "alice@example.com", "alice", "h1", now).
			AddRow(int64(2), "bob@example.com", "bob", "h2", now)
		mock.ExpectQuery("SELECT (.+) FROM users ORDER BY id").WillReturnRows(rows)

		users, err := repo.List(context.Background())

		require.NoError(t, err)
		require.Len(t, users, 2)
		assert.Equal(t, "alice", users[0].Username)
		assert.Equal(t, "bob", users[1].Username)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("пустая таблица", func(t *testing.T) {
		repo, mock := setupUserRepo(t)

		mock.ExpectQuery("SELECT (.+) FROM users ORDER BY id").
			WillReturnRows(sqlmock.NewRows(userRowColumns))

		users, err := repo.List(context.Background())

		require.NoError(t, err)
		assert.NotNil(t, users, "пустой список, а не nil")
		assert.Empty(t, users)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
