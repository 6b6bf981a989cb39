package postgres

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupMockDB создает мок базы данных для тестов
// Автоматически закрывает соединение при завершении теста
func setupMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err, "не удалось создать мок БД")
	t.Cleanup(func() { db.Close() })
	return sqlx.NewDb(db, "pgx"), mock
}

func TestTxManager_WithinTransaction(t *testing.T) {
	t.Run("коммит при успешном выполнении", func(t *testing.T) {
		db, mock := setupMockDB(t)
		manager := NewTxManager(db)

		mock.ExpectBegin()
		mock.ExpectExec("DELETE FROM tasks").
			WithArgs(int64(1)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		repo := NewTaskRepository(db)
		err := manager.WithinTransaction(context.Background(), func(ctx context.Context) error {
			return repo.Delete(ctx, 1)
		})

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("откат при ошибке", func(t *testing.T) {
		db, mock := setupMockDB(t)
		manager := NewTxManager(db)
		errBoom := errors.New("boom")

		mock.ExpectBegin()
		mock.ExpectRollback()

		err := manager.WithinTransaction(context.Background(), func(ctx context.Context) error {
			return errBoom
		})

		assert.ErrorIs(t, err, errBoom)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("откат при панике", func(t *testing.T) {
		db, mock := setupMockDB(t)
		manager := NewTxManager(db)

		mock.ExpectBegin()
		mock.ExpectRollback()

		assert.Panics(t, func() {
			_ = manager.WithinTransaction(context.Background(), func(ctx context.Context) error {
				panic("unexpected")
			})
		})
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("вложенный вызов использует внешнюю транзакцию", func(t *testing.T) {
		db, mock := setupMockDB(t)
		manager := NewTxManager(db)

		// Ровно один BEGIN и один COMMIT
		mock.ExpectBegin()
		mock.ExpectCommit()

		err := manager.WithinTransaction(context.Background(), func(ctx context.Context) error {
			return manager.WithinTransaction(ctx, func(ctx context.Context) error {
				return nil
			})
		})

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ошибка начала транзакции", func(t *testing.T) {
		db, mock := setupMockDB(t)
		manager := NewTxManager(db)

		mock.ExpectBegin().WillReturnError(errors.New("connection refused"))

		called := false
		err := manager.WithinTransaction(context.Background(), func(ctx context.Context) error {
			called = true
			return nil
		})

		require.Error(t, err)
		assert.False(t, called)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPgErrorClassification(t *testing.T) {
	unique := &pgconn.PgError{Code: pgerrcode.UniqueViolation}
	foreignKey := &pgconn.PgError{Code: pgerrcode.ForeignKeyViolation}

	assert.True(t, isUniqueViolation(unique))
	assert.True(t, isUniqueViolation(fmt.Errorf("wrapped: %w", unique)))
	assert.False(t, isUniqueViolation(foreignKey))
	assert.False(t, isUniqueViolation(errors.New("plain")))

	assert.True(t, isForeignKeyViolation(foreignKey))
	assert.False(t, isForeignKeyViolation(unique))
}
