package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/bagdasarian/task-groups/internal/auth"
	"github.com/bagdasarian/task-groups/internal/config"
	"github.com/bagdasarian/task-groups/internal/db"
	"github.com/bagdasarian/task-groups/internal/handler"
	"github.com/bagdasarian/task-groups/internal/handler/server"
	"github.com/bagdasarian/task-groups/internal/logger"
	"github.com/bagdasarian/task-groups/internal/repository/postgres"
	"github.com/bagdasarian/task-groups/internal/service"
	"github.com/spf13/cobra"
)

func newServeCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), *configPath)
		},
	}
}

func runServe(ctx context.Context, configPath string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	log := logger.New(cfg.Log)

	database, err := db.NewPostgres(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer database.Close()
	log.Info().Str("host", cfg.Database.Host).Str("dbname", cfg.Database.DBName).Msg("connected to database")

	if cfg.Database.AutoMigrate {
		if err := db.MigrateUp(cfg.Database.DSN()); err != nil {
			return err
		}
		log.Info().Msg("migrations applied")
	}

	tokens, err := auth.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.JWTAlgorithm, cfg.Auth.TokenTTL)
	if err != nil {
		return err
	}
	hasher := auth.NewPasswordHasher(cfg.Auth.BcryptCost)

	txManager := postgres.NewTxManager(database)
	userRepo := postgres.NewUserRepository(database)
	groupRepo := postgres.NewGroupRepository(database)
	membershipRepo := postgres.NewMembershipRepository(database)
	inviteRepo := postgres.NewInviteRepository(database)
	taskRepo := postgres.NewTaskRepository(database)

	authService := service.NewAuthService(userRepo, tokens, hasher, log.With().Str("component", "auth").Logger())
	userService := service.NewUserService(userRepo)
	groupService := service.NewGroupService(
		txManager,
		groupRepo,
		membershipRepo,
		inviteRepo,
		cfg.Invite.TTL,
		log.With().Str("component", "groups").Logger(),
	)
	taskService := service.NewTaskService(taskRepo, groupRepo, membershipRepo, log.With().Str("component", "tasks").Logger())

	h := handler.NewHandler(authService, userService, groupService, taskService, cfg.HTTP.PublicURL, log)
	router := server.NewRouter(h, server.RouterOptions{
		AllowedOrigins: cfg.HTTP.AllowedOrigins,
		StaticDir:      cfg.HTTP.StaticDir,
	}, log)
	srv := server.NewServer(router, cfg.HTTP.Addr, log)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()
	log.Info().Dur("token_ttl", tokens.TTL()).Dur("invite_ttl", cfg.Invite.TTL).Msg("auth configured")

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	return nil
}
