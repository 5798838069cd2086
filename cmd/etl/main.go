package main

import (
	"context"
	"flag"
	"log"

	"github.com/safar/ecom-analytics/internal/config"
	"github.com/safar/ecom-analytics/internal/database"
	"github.com/safar/ecom-analytics/internal/etl"
	"github.com/safar/ecom-analytics/internal/schema"
)

func main() {
	dataDir := flag.String("dir", "", "directory holding the CSV exports (default: ECOM_DATA_DIR)")
	chunkSize := flag.Int("chunk", etl.DefaultChunkSize, "rows per COPY batch")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Load config: %v", err)
	}

	if *dataDir == "" {
		*dataDir = cfg.Ecom.DataDir
	}

	db, err := database.NewConnection(&cfg.Database)
	if err != nil {
		log.Fatalf("Connect to database: %v", err)
	}
	defer db.Close()

	ctx := context.Background()

	loader := etl.NewLoader(db, cfg.Ecom.Schema, *dataDir, log.Default())
	loader.SetChunkSize(*chunkSize)

	stats, err := loader.Run(ctx)
	if err != nil {
		log.Fatalf("ETL run: %v", err)
	}

	log.Printf("Row counts after run %s:", stats.RunID)
	for _, table := range schema.Tables {
		log.Printf("  %s.%s: %d", cfg.Ecom.Schema, table, stats.RowCounts[table])
	}
}
