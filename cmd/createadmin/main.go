package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/askgate/askgate/internal/adapter/postgres"
	"github.com/askgate/askgate/internal/config"
	"github.com/askgate/askgate/internal/domain"
	"github.com/askgate/askgate/internal/service/password"
)

// Bootstraps the first admin account. Usage:
//
//	createadmin [email] [password] [name]
func main() {
	ctx := context.Background()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		log.Fatalf("failed to ping database: %v", err)
	}

	userRepo := postgres.NewUserRepository(db)
	passwordService := password.NewBcryptService(cfg.Security.BcryptCost)

	email := "admin@askgate.local"
	adminPassword := "changeme123"
	name := "Administrator"

	if len(os.Args) > 1 {
		email = os.Args[1]
	}
	if len(os.Args) > 2 {
		adminPassword = os.Args[2]
	}
	if len(os.Args) > 3 {
		name = os.Args[3]
	}

	if len(adminPassword) < 8 {
		log.Fatal("password must be at least 8 characters")
	}

	if existing, err := userRepo.FindByEmail(ctx, email); err == nil && existing != nil {
		log.Fatalf("user already exists: %s", email)
	} else if err != nil && !domain.IsCode(err, domain.CodeNotFound) {
		log.Fatalf("failed to check existing user: %v", err)
	}

	hash, err := passwordService.Hash(adminPassword)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	admin := domain.NewUser(email, name, hash, domain.RoleAdmin)
	if err := userRepo.Create(ctx, admin); err != nil {
		log.Fatalf("failed to create admin user: %v", err)
	}

	fmt.Printf("Admin user created\n  ID:    %s\n  Email: %s\n  Name:  %s\n", admin.ID, admin.Email, admin.Name)
}
