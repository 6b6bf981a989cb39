//go:build integration
// +build integration

package integration

import (
	"context"
	"testing"
	"time"

	"github.com/bagdasarian/task-groups/internal/auth"
	"github.com/bagdasarian/task-groups/internal/db"
	"github.com/bagdasarian/task-groups/internal/repository/postgres"
	"github.com/bagdasarian/task-groups/internal/service"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

const testSecret = "integration-secret-0123456789abcdef"

// startPostgres поднимает контейнер Postgres и возвращает DSN
func startPostgres(t *testing.T) string {
	ctx := context.Background()

	// Создаём контейнер Postgres через testcontainers
	postgresContainer, err := tcpostgres.Run(ctx,
		"postgres:17.7",
		tcpostgres.WithDatabase("test_db"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, postgresContainer.Terminate(ctx))
	})

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	return connStr
}

func openDB(t *testing.T, connStr string) *sqlx.DB {
	database, err := sqlx.Open("pgx", connStr)
	require.NoError(t, err)
	require.NoError(t, database.PingContext(context.Background()))
	t.Cleanup(func() {
		database.Close()
	})
	return database
}

func setupTestDB(t *testing.T) *sqlx.DB {
	connStr := startPostgres(t)

	// Накатываем встроенные миграции
	require.NoError(t, db.MigrateUp(connStr), "не удалось применить миграции")

	return openDB(t, connStr)
}

// app - сервисы поверх настоящей БД
type app struct {
	users  service.UserService
	auth   service.AuthService
	groups service.GroupService
	tasks  service.TaskService
}

func setupApp(t *testing.T) *app {
	database := setupTestDB(t)
	logger := zerolog.Nop()

	userRepo := postgres.NewUserRepository(database)
	groupRepo := postgres.NewGroupRepository(database)
	membershipRepo := postgres.NewMembershipRepository(database)
	inviteRepo := postgres.NewInviteRepository(database)
	taskRepo := postgres.NewTaskRepository(database)
	txManager := postgres.NewTxManager(database)

	tokens, err := auth.NewTokenService(testSecret, "HS256", time.Hour)
	require.NoError(t, err)
	hasher := auth.NewPasswordHasher(4)

	return &app{
		users:  service.NewUserService(userRepo),
		auth:   service.NewAuthService(userRepo, tokens, hasher, logger),
		groups: service.NewGroupService(txManager, groupRepo, membershipRepo, inviteRepo, 0, logger),
		tasks:  service.NewTaskService(taskRepo, groupRepo, membershipRepo, logger),
	}
}
