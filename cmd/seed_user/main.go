package main

import (
	"context"
	"flag"
	"log"
	"os"
	"strings"

	"taskboard/internal/db"
	"taskboard/internal/domain"
	"taskboard/internal/repository"
	"taskboard/internal/service"
)

// Registers a user from the command line, idempotently, and prints a
// ready-to-use session token. Handy for local development and smoke
// testing the feed.
func main() {
	username := flag.String("username", "testuser", "username to create")
	password := flag.String("password", "testpass", "password for the account")
	flag.Parse()

	// expects DATABASE_URL and SESSION_SECRET env vars
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL not set")
	}
	secret := os.Getenv("SESSION_SECRET")
	if secret == "" {
		log.Fatal("SESSION_SECRET not set")
	}

	pool := db.Connect(dsn)
	defer pool.Close()

	repo := repository.NewUserRepository(pool)
	ctx := context.Background()

	name := strings.ToLower(*username)

	existing, err := repo.GetByUsername(ctx, name)
	var u *domain.User
	if err == nil {
		u = existing
		log.Printf("user already exists id=%d\n", u.ID)
	} else {
		hash, err := service.HashPassword(*password)
		if err != nil {
			log.Fatalf("hash password failed: %v", err)
		}

		u = &domain.User{Username: name, PasswordHash: hash}
		if err := repo.Create(ctx, u); err != nil {
			log.Fatalf("create user failed: %v", err)
		}

		log.Printf("user created id=%d\n", u.ID)
	}

	sessions := service.NewSessionManager(secret)
	token, err := sessions.Token(u.Username)
	if err != nil {
		log.Fatalf("failed to generate token: %v", err)
	}
	log.Printf("session token=%s\n", token)
}
