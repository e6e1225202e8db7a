package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"finance-analyzer/pkg/config"
	"finance-analyzer/pkg/csvimport"
	"finance-analyzer/pkg/logging"
	"finance-analyzer/pkg/store"
)

// import_csv runs the same pipeline as POST /files/upload against a local file.
func main() {
	username := flag.String("username", "", "owner of the imported transactions")
	path := flag.String("file", "", "path to the CSV file")
	flag.Parse()
	if *username == "" || *path == "" {
		fmt.Fprintln(os.Stderr, "usage: import_csv --username <name> --file <path.csv>")
		os.Exit(2)
	}

	cfg := config.Load()
	if cfg.DBDSN == "" {
		fmt.Fprintln(os.Stderr, "DB_DSN not set; export DB_DSN and retry")
		os.Exit(2)
	}
	st, err := store.Connect(cfg.DBDriver, cfg.DBDSN, cfg.DBAutoMigrate)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer st.Close()

	f, err := os.Open(filepath.Clean(*path))
	if err != nil {
		log.Fatalf("open file: %v", err)
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		log.Fatalf("stat file: %v", err)
	}

	logger := logging.New(cfg.LogLevel, cfg.LogFormat, os.Stderr)
	p := csvimport.New(st.Uploads, st.Users, st.Transactions, logger)
	up, err := p.Process(context.Background(), csvimport.Source{
		Name:        filepath.Base(*path),
		Size:        info.Size(),
		ContentType: "text/csv",
		Body:        f,
	}, *username)
	if err != nil {
		log.Fatalf("import failed: %v", err)
	}
	fmt.Printf("upload id=%d status=%s records=%d\n", up.ID, up.Status, up.RecordsCount)
}
