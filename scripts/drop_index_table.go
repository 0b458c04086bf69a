package main

import (
	"context"
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"scrapbook/internal/config"
	"scrapbook/internal/repository/postgres"
)

// Drops the postgres index table of the current environment so the next
// mount starts from an empty index. Usage: go run ./scripts
func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	table := postgres.NewTableNames(cfg.TablePrefix).Index
	if _, err := pool.Exec(ctx, fmt.Sprintf("DROP TABLE IF EXISTS %s", table)); err != nil {
		log.Fatalf("Failed to drop %s: %v", table, err)
	}

	fmt.Printf("Index table dropped (table: %s)\n", table)
}
