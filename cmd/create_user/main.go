package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"finance-analyzer/pkg/auth"
	"finance-analyzer/pkg/config"
	"finance-analyzer/pkg/finance"
	"finance-analyzer/pkg/logging"
	"finance-analyzer/pkg/store"
)

func main() {
	if len(os.Args) < 3 {
		fmt.Println("usage: go run ./cmd/create_user <username> <password> [email]")
		os.Exit(2)
	}
	username := os.Args[1]
	password := os.Args[2]
	email := username + "@localhost"
	if len(os.Args) > 3 {
		email = os.Args[3]
	}

	cfg := config.Load()
	if cfg.DBDSN == "" {
		log.Fatal("DB_DSN not set in environment")
	}
	st, err := store.Connect(cfg.DBDriver, cfg.DBDSN, cfg.DBAutoMigrate)
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer st.Close()

	ctx := context.Background()
	if existing, err := st.Users.ByUsername(ctx, username); err == nil {
		fmt.Printf("user %s already exists (id=%d)\n", username, existing.ID)
		os.Exit(0)
	}

	users := finance.NewUserService(st, auth.BcryptHasher{}, logging.New(cfg.LogLevel, cfg.LogFormat, os.Stderr))
	user, err := users.Signup(ctx, finance.SignupInput{Username: username, Email: email, Password: password})
	if err != nil {
		log.Fatalf("failed to create user: %v", err)
	}
	fmt.Printf("created user %s id=%d with %d default categories\n", user.Username, user.ID, len(finance.DefaultCategories(user.ID)))
}
