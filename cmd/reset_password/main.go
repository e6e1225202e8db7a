package main

import (
	"context"
	"flag"
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
	username := flag.String("username", "", "username to reset")
	password := flag.String("password", "", "new plaintext password (min 6 chars)")
	flag.Parse()
	if *username == "" || *password == "" {
		log.Fatal("--username and --password are required")
	}

	cfg := config.Load()
	if cfg.DBDSN == "" {
		log.Fatal("DB_DSN not set in env")
	}
	st, err := store.Connect(cfg.DBDriver, cfg.DBDSN, false)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer st.Close()

	users := finance.NewUserService(st, auth.BcryptHasher{}, logging.New(cfg.LogLevel, cfg.LogFormat, os.Stderr))
	if err := users.ResetPassword(context.Background(), *username, *password); err != nil {
		log.Fatalf("reset failed: %v", err)
	}
	fmt.Printf("Password reset for user %s\n", *username)
}
