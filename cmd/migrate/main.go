package main

import (
	"context"
	"flag"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/techpro/techpromanager/infrastructure/persistence/postgres"
)

func main() {
	mode := flag.String("mode", "up", "migration mode: up, down or status")
	flag.Parse()

	_ = godotenv.Load()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	ctx := context.Background()
	db, err := postgres.Open(ctx, dsn)
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	defer db.Close()

	switch strings.ToLower(*mode) {
	case "up":
		err = postgres.MigrateUp(ctx, db)
	case "down":
		err = postgres.MigrateDown(ctx, db)
	case "status":
		err = postgres.MigrationStatus(ctx, db)
	default:
		log.Fatalf("unknown mode %q (use up, down or status)", *mode)
	}
	if err != nil {
		log.Fatalf("migration %s failed: %v", *mode, err)
	}
	log.Printf("migration %s completed", *mode)
}
