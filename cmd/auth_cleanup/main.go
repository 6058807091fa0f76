package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"

	"authbox/internal/database"
	"authbox/internal/repository"
)

// Deletes expired sessions and refresh tokens plus expired or consumed email
// verifications. Meant to run from cron; rows already gone are fine.
func main() {
	_ = godotenv.Load()

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	db, err := database.Connect(databaseURL)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}

	ctx := context.Background()

	tokens, err := repository.NewAuthTokenRepository(db).DeleteExpired(ctx)
	if err != nil {
		log.Fatalf("cleanup sessions/refresh tokens failed: %v", err)
	}

	verifications, err := repository.NewEmailVerificationRepository(db).DeleteExpired(ctx)
	if err != nil {
		log.Fatalf("cleanup email verifications failed: %v", err)
	}

	log.Printf("auth cleanup completed: tokens_and_sessions=%d email_verifications=%d", tokens, verifications)
}
