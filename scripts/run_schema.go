package main

import (
	"context"
	"database/sql"
	"log"
	"os"

	_ "github.com/lib/pq"
	"github.com/safar/ecom-analytics/internal/config"
	"github.com/safar/ecom-analytics/internal/schema"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: go run scripts/run_schema.go [up|down]")
	}

	direction := os.Args[1]
	if direction != "up" && direction != "down" {
		log.Fatal("Direction must be 'up' or 'down'")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Load config: %v", err)
	}

	db, err := sql.Open("postgres", cfg.Database.URL)
	if err != nil {
		log.Fatalf("Connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("Ping database: %v", err)
	}

	ctx := context.Background()

	switch direction {
	case "up":
		if err := schema.Apply(ctx, db, cfg.Ecom.Schema); err != nil {
			log.Fatalf("Apply schema: %v", err)
		}
		if err := schema.Verify(ctx, db, cfg.Ecom.Schema); err != nil {
			log.Fatalf("Verify schema: %v", err)
		}
		log.Printf("Schema %s is in place (%d tables, %d indexes)",
			cfg.Ecom.Schema, len(schema.Tables), len(schema.Indexes))
	case "down":
		if err := schema.Drop(ctx, db, cfg.Ecom.Schema); err != nil {
			log.Fatalf("Drop schema: %v", err)
		}
		log.Printf("Schema %s dropped", cfg.Ecom.Schema)
	}
}
