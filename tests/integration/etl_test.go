package integration

import (
	"context"
	"io"
	"log"
	"testing"
	"time"

	"github.com/safar/ecom-analytics/internal/etl"
	"github.com/safar/ecom-analytics/internal/seed"
	"github.com/safar/ecom-analytics/internal/store"
)

func generateFixtures(t *testing.T) (string, seed.Profile) {
	t.Helper()

	profile := seed.DefaultProfile()
	profile.Users = 50
	profile.Products = 20
	profile.Orders = 100
	profile.Reviews = 30

	dir := t.TempDir()
	_, err := seed.NewGenerator(profile, time.Now()).Generate(dir)
	if err != nil {
		t.Fatalf("Generate fixtures: %v", err)
	}
	return dir, profile
}

func quietLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func TestETLLoadsAllTables(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	dir, profile := generateFixtures(t)

	loader := etl.NewLoader(db, testSchema, dir, quietLogger())
	loader.SetChunkSize(32)

	stats, err := loader.Run(ctx)
	if err != nil {
		t.Fatalf("ETL run: %v", err)
	}

	if stats.RunID == "" {
		t.Error("Run should have an id")
	}
	if stats.RowCounts["users"] != int64(profile.Users) {
		t.Errorf("Expected %d users, got %d", profile.Users, stats.RowCounts["users"])
	}
	if stats.RowCounts["products"] != int64(profile.Products) {
		t.Errorf("Expected %d products, got %d", profile.Products, stats.RowCounts["products"])
	}
	if stats.RowCounts["orders"] != int64(profile.Orders) {
		t.Errorf("Expected %d orders, got %d", profile.Orders, stats.RowCounts["orders"])
	}
	if stats.RowCounts["product_reviews"] != int64(profile.Reviews) {
		t.Errorf("Expected %d reviews, got %d", profile.Reviews, stats.RowCounts["product_reviews"])
	}
	if stats.RowCounts["order_items"] < int64(profile.Orders) {
		t.Errorf("Expected at least one item per order, got %d", stats.RowCounts["order_items"])
	}
	if stats.ChunkP95 <= 0 {
		t.Error("Chunk latency percentiles should be recorded")
	}
}

func TestETLRepeatable(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	dir, _ := generateFixtures(t)

	loader := etl.NewLoader(db, testSchema, dir, quietLogger())

	first, err := loader.Run(ctx)
	if err != nil {
		t.Fatalf("First run: %v", err)
	}

	// Replace semantics: a second run over the same files ends with the
	// same row counts, not duplicates or key failures.
	second, err := loader.Run(ctx)
	if err != nil {
		t.Fatalf("Second run: %v", err)
	}

	for table, count := range first.RowCounts {
		if second.RowCounts[table] != count {
			t.Errorf("Table %s: first run %d rows, second run %d",
				table, count, second.RowCounts[table])
		}
	}
}

func TestETLSkipsMissingFiles(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	// An empty directory loads nothing but still succeeds.
	loader := etl.NewLoader(db, testSchema, t.TempDir(), quietLogger())
	stats, err := loader.Run(ctx)
	if err != nil {
		t.Fatalf("ETL run with no files: %v", err)
	}

	if len(stats.RowsLoaded) != 0 {
		t.Errorf("Expected no tables loaded, got %v", stats.RowsLoaded)
	}
	for table, count := range stats.RowCounts {
		if count != 0 {
			t.Errorf("Table %s should be empty, has %d rows", table, count)
		}
	}
}

func TestETLStampsProductCreatedAt(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	dir, _ := generateFixtures(t)

	loader := etl.NewLoader(db, testSchema, dir, quietLogger())
	if _, err := loader.Run(ctx); err != nil {
		t.Fatalf("ETL run: %v", err)
	}

	// products.csv carries no created_at; the column default fills it.
	s := store.New(testSchema)
	product, err := s.GetProduct(ctx, db, 1)
	if err != nil {
		t.Fatalf("Get product: %v", err)
	}
	if product.CreatedAt.IsZero() {
		t.Error("Loaded product should have a created_at from the column default")
	}
}
