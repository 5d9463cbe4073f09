package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"go-fixture-summary/internal/config"
	"go-fixture-summary/internal/database"
)

func main() {
	cfg := config.Load()
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL environment variable is not set. Please check your .env file.")
	}

	fmt.Println("Attempting to connect to PostgreSQL...")

	// Set a timeout context
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	repo, err := database.ConnectDB(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("❌ Failed to connect to the database: %v", err)
	}
	defer repo.Close()
	fmt.Println("✅ Connected.")

	if err := repo.EnsureSchema(ctx); err != nil {
		log.Fatalf("❌ %v", err)
	}
	fmt.Println("✅ Schema ready.")

	latest, err := repo.GetLatest(ctx)
	if errors.Is(err, database.ErrNotFound) {
		fmt.Println("ℹ️ No summaries stored yet.")
		return
	}
	if err != nil {
		log.Fatalf("❌ %v", err)
	}
	fmt.Printf("✅ Latest summary: match %s (run %s, selectors %s) at %s\n",
		latest.MatchID, latest.RunID, latest.SelectorVersion, latest.ScrapedAt.Format(time.RFC3339))
}
