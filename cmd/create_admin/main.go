package main

import (
	"context"
	"flag"
	"log"

	"github.com/techpro/techpromanager/application/port/inbound"
	"github.com/techpro/techpromanager/application/usecase/user_management"
	"github.com/techpro/techpromanager/domain/entity"
	"github.com/techpro/techpromanager/infrastructure/config"
	"github.com/techpro/techpromanager/infrastructure/persistence/postgres"
	"github.com/techpro/techpromanager/infrastructure/service/password"
)

func main() {
	email := flag.String("email", "", "admin email (required)")
	userPassword := flag.String("password", "", "admin password (required, at least 6 characters)")
	name := flag.String("name", "Administrator", "display name")
	flag.Parse()

	if *email == "" || *userPassword == "" {
		flag.Usage()
		log.Fatal("-email and -password are required")
	}

	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.DatabaseType != config.DatabaseTypePostgres {
		log.Fatal("create_admin requires DATABASE_TYPE=postgres; the in-memory store lives inside the server process")
	}

	db, err := postgres.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	userRepo := postgres.NewUserRepository(db)
	passwordService := password.NewPBKDF2PasswordService(password.Params{Iterations: cfg.PasswordIterations})
	createUser := user_management.NewCreateUserUseCase(userRepo, passwordService)

	admin, err := createUser.Execute(ctx, inbound.CreateUserRequest{
		Name:     *name,
		Email:    *email,
		Password: *userPassword,
		Role:     entity.RoleAdmin,
	})
	if err != nil {
		log.Fatalf("Failed to create admin user: %v", err)
	}

	log.Printf("Admin user created: id=%s email=%s", admin.ID, admin.Email)
}
