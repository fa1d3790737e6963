package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"golang.org/x/crypto/bcrypt"

	"github.com/johnquangdev/meeting-scribe/internal/adapter/repository"
	"github.com/johnquangdev/meeting-scribe/internal/domain/entities"
	"github.com/johnquangdev/meeting-scribe/internal/infrastructure/database"
	"github.com/johnquangdev/meeting-scribe/pkg/config"
)

func main() {
	migrateOnly := flag.Bool("migrate", false, "apply migrations and exit")
	flag.Parse()

	if *migrateOnly {
		runMigrations()
		return
	}

	log.Println("🚀 Starting test users creation...")

	// Load configuration from .env
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if cfg.IsProduction() {
		log.Fatalf("Refusing to create test users in production")
	}

	// Initialize database
	log.Println("📦 Connecting to database...")
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.CloseDB(db)

	userRepo := repository.NewUserRepository(db)
	ctx := context.Background()

	// Define test users
	testUsers := []struct {
		Email    string
		Name     string
		Password string
	}{
		{Email: "alice@test.local", Name: "Alice", Password: "alice-password"},
		{Email: "bob@test.local", Name: "Bob", Password: "bob-password"},
		{Email: "charlie@test.local", Name: "Charlie", Password: "charlie-password"},
	}

	for _, tu := range testUsers {
		if _, err := userRepo.FindByEmail(ctx, tu.Email); err == nil {
			log.Printf("⏭️  User %s already exists, skipping", tu.Email)
			continue
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(tu.Password), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("Failed to hash password for %s: %v", tu.Email, err)
		}

		name := tu.Name
		user := entities.NewUser(tu.Email, string(hash), &name)
		if err := userRepo.Create(ctx, user); err != nil {
			log.Fatalf("Failed to create user %s: %v", tu.Email, err)
		}

		fmt.Printf("✅ Created %s (%s) with password %q\n", tu.Name, tu.Email, tu.Password)
	}

	log.Println("✅ Test users ready")
}
