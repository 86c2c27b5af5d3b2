package main

import (
	"context"
	"database/sql"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/techpro/techpromanager/application/port/outbound"
	"github.com/techpro/techpromanager/application/usecase"
	"github.com/techpro/techpromanager/application/usecase/user_management"
	"github.com/techpro/techpromanager/infrastructure/config"
	"github.com/techpro/techpromanager/infrastructure/http/server"
	"github.com/techpro/techpromanager/infrastructure/persistence/memory"
	"github.com/techpro/techpromanager/infrastructure/persistence/postgres"
	"github.com/techpro/techpromanager/infrastructure/service/jwt"
	"github.com/techpro/techpromanager/infrastructure/service/logger"
	"github.com/techpro/techpromanager/infrastructure/service/password"
)

type repositories struct {
	users    outbound.UserRepository
	projects outbound.ProjectRepository
	tasks    outbound.TaskRepository
	db       *sql.DB
}

func main() {
	ctx := context.Background()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	structuredLogger := logger.NewStructuredLogger(logger.LoggerConfig{
		Level:       cfg.LogLevel,
		Format:      cfg.LogFormat,
		ServiceName: "techpromanager",
	})
	structuredLogger.Info(ctx, "Application starting", cfg.LogFields())

	repos, err := openRepositories(ctx, cfg, structuredLogger)
	if err != nil {
		structuredLogger.Error(ctx, "Failed to initialize storage", err, map[string]interface{}{
			"database_type": cfg.DatabaseType,
			"database_url":  cfg.RedactedDatabaseURL(),
		})
		os.Exit(1)
	}
	if repos.db != nil {
		defer repos.db.Close()
	}

	tokenService, err := jwt.NewJWTService(cfg)
	if err != nil {
		structuredLogger.Error(ctx, "Failed to initialize JWT service", err, nil)
		os.Exit(1)
	}
	passwordService := password.NewPBKDF2PasswordService(password.Params{Iterations: cfg.PasswordIterations})

	srv := server.NewServer(server.Config{
		Addr:                 cfg.Address(),
		CORSEnabled:          cfg.CORSEnabled,
		CORSAllowedOrigins:   cfg.CORSAllowedOrigins,
		CORSAllowCredentials: cfg.CORSAllowCredentials,
	}, server.Dependencies{
		AuthUseCase:           usecase.NewAuthUseCase(repos.users, tokenService, passwordService, tokenService.TTL(), structuredLogger),
		UserManagementUseCase: user_management.NewUserManagementUseCase(repos.users, passwordService),
		ProjectUseCase:        usecase.NewProjectUseCase(repos.projects),
		TaskUseCase:           usecase.NewTaskUseCase(repos.tasks, repos.projects, repos.users),
		TokenService:          tokenService,
		Logger:                structuredLogger,
	})

	go func() {
		if err := srv.Start(); err != nil {
			structuredLogger.Error(ctx, "Server failed", err, map[string]interface{}{
				"addr": cfg.Address(),
			})
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(ctx, cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		structuredLogger.Error(ctx, "Server forced to shutdown", err, nil)
	}
	structuredLogger.Info(ctx, "Server exited", nil)
}

func openRepositories(ctx context.Context, cfg *config.Config, log logger.Logger) (*repositories, error) {
	if cfg.DatabaseType == config.DatabaseTypeMemory {
		log.Warn(ctx, "Using in-memory storage; data is lost on restart", nil)
		store := memory.NewStore()
		return &repositories{
			users:    store.Users(),
			projects: store.Projects(),
			tasks:    store.Tasks(),
		}, nil
	}

	db, err := postgres.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	log.Info(ctx, "Database connection established", map[string]interface{}{
		"database_url": cfg.RedactedDatabaseURL(),
	})

	if cfg.DatabaseAutoMigrate {
		if err := postgres.MigrateUp(ctx, db); err != nil {
			_ = db.Close()
			return nil, err
		}
		log.Info(ctx, "Database migrations applied", nil)
	}

	return &repositories{
		users:    postgres.NewUserRepository(db),
		projects: postgres.NewProjectRepository(db),
		tasks:    postgres.NewTaskRepository(db),
		db:       db,
	}, nil
}
