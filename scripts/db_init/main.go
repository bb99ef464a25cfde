package main

import (
	"context"
	"fmt"
	"os"
	"time"

	dbfs "github.com/hackercoop/coop/db"
	"github.com/hackercoop/coop/internal/config"
	"github.com/hackercoop/coop/internal/db"
)

func main() {
	ctx := context.Background()
	cfg, err := config.LoadConfig("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}
	database, err := db.New(ctx, cfg.DatabasePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "DB init error: %v\n", err)
		os.Exit(1)
	}
	defer database.Close()

	if err := db.Migrate(ctx, database, dbfs.Migrations); err != nil {
		fmt.Fprintf(os.Stderr, "Migration runner error: %v\n", err)
		os.Exit(1)
	}

	// seed a sample cohort so a fresh install has something to look at
	now := time.Now().UTC().UnixMilli()
	if _, err := database.Exec(ctx,
		`INSERT INTO cohorts (name, status, created, updated)
		 SELECT 'cohort-0', 'forming', ?, ?
		 WHERE NOT EXISTS (SELECT 1 FROM cohorts WHERE name = 'cohort-0')`, now, now); err != nil {
		fmt.Fprintf(os.Stderr, "Seed error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Database initialized successfully.")
}
