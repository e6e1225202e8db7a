package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"finance-analyzer/pkg/config"
	"finance-analyzer/pkg/report"
	"finance-analyzer/pkg/store"
)

func main() {
	username := flag.String("username", "", "username to report for")
	month := flag.String("month", time.Now().UTC().Format(report.MonthLayout), "month to report (YYYY-MM)")
	list := flag.Bool("list", false, "list matching rows")
	flag.Parse()
	if *username == "" {
		fmt.Fprintln(os.Stderr, "--username is required")
		os.Exit(2)
	}

	cfg := config.Load()
	if cfg.DBDSN == "" {
		fmt.Fprintln(os.Stderr, "DB_DSN not set; export DB_DSN and retry")
		os.Exit(2)
	}
	st, err := store.Connect(cfg.DBDriver, cfg.DBDSN, false)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer st.Close()

	ctx := context.Background()
	user, err := st.Users.ByUsername(ctx, *username)
	if err != nil {
		log.Fatalf("user not found: %v", err)
	}
	m, err := report.Build(ctx, st.Transactions, user.ID, *month)
	if err != nil {
		log.Fatalf("report failed: %v", err)
	}
	m.Print(os.Stdout, user.Username, *list)
}
