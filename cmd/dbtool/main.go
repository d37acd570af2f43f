package main

import (
	"context"
	"log"
	"os"
	"strings"

	"traffic-route-service/internal/adapters/repositories"
	"traffic-route-service/internal/adapters/traffic"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if strings.TrimSpace(databaseURL) == "" {
		log.Fatal("DATABASE_URL is required")
	}

	ctx := context.Background()

	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer pool.Close()

	log.Println("Initializing database schema...")
	if err := traffic.NewPGStore(pool).CreateSchema(ctx); err != nil {
		log.Fatalf("traffic schema initialization failed: %v", err)
	}
	if err := repositories.NewPGDamageRepository(pool).CreateSchema(ctx); err != nil {
		log.Fatalf("damage schema initialization failed: %v", err)
	}
	log.Println("Schema ready.")
}
