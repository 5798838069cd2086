// Package etl loads the five ecom CSV exports into Postgres. The load is
// repeatable: it ensures the schema first, loads tables in foreign-key
// order, and skips files that are not present.
package etl

import (
	"context"
	"database/sql"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/safar/ecom-analytics/internal/database"
	"github.com/safar/ecom-analytics/internal/schema"
)

// DefaultChunkSize matches the original loader's 5000-row batches.
const DefaultChunkSize = 5000

type Loader struct {
	db        *sql.DB
	schema    string
	dataDir   string
	chunkSize int
	logger    *log.Logger
}

func NewLoader(db *sql.DB, schemaName, dataDir string, logger *log.Logger) *Loader {
	return &Loader{
		db:        db,
		schema:    schemaName,
		dataDir:   dataDir,
		chunkSize: DefaultChunkSize,
		logger:    logger,
	}
}

// SetChunkSize overrides the batch size; values below one are ignored.
func (l *Loader) SetChunkSize(n int) {
	if n > 0 {
		l.chunkSize = n
	}
}

// RunStats summarizes one load run.
type RunStats struct {
	RunID      string
	RowsLoaded map[string]int64
	RowCounts  map[string]int64
	Elapsed    time.Duration
	ChunkP50   time.Duration
	ChunkP95   time.Duration
	ChunkP99   time.Duration
}

// tableFiles maps CSVs to tables in foreign-key-safe order. reviews.csv
// keeps its historical name even though the table is product_reviews.
var tableFiles = []struct {
	table string
	file  string
}{
	{"users", "users.csv"},
	{"products", "products.csv"},
	{"orders", "orders.csv"},
	{"order_items", "order_items.csv"},
	{"product_reviews", "reviews.csv"},
}

// Run applies the schema, loads every present CSV, and verifies row counts.
func (l *Loader) Run(ctx context.Context) (*RunStats, error) {
	runID := uuid.New().String()
	start := time.Now()
	l.logger.Printf("ETL run %s starting (schema=%s dir=%s)", runID, l.schema, l.dataDir)

	if err := schema.Apply(ctx, l.db, l.schema); err != nil {
		return nil, err
	}
	l.logger.Printf("Schema %s ensured", l.schema)

	// Chunk latencies up to 10s, three significant figures.
	histogram := hdrhistogram.New(1, 10_000_000_000, 3)

	stats := &RunStats{
		RunID:      runID,
		RowsLoaded: make(map[string]int64),
	}

	for _, tf := range tableFiles {
		path := filepath.Join(l.dataDir, tf.file)
		if _, err := os.Stat(path); os.IsNotExist(err) {
			l.logger.Printf("SKIP: %s not found", path)
			continue
		}

		spec, ok := tableSpecs[tf.table]
		if !ok {
			return nil, fmt.Errorf("no table spec for %s", tf.table)
		}

		// Replace semantics: each present CSV fully replaces its table.
		// CASCADE clears dependent rows, which the remaining files in
		// foreign-key order then repopulate.
		truncate := fmt.Sprintf("TRUNCATE %s.%s CASCADE", l.schema, tf.table)
		if _, err := l.db.ExecContext(ctx, truncate); err != nil {
			return nil, fmt.Errorf("truncate %s: %w", tf.table, err)
		}

		rows, err := l.loadFile(ctx, path, tf.table, spec, histogram)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", tf.file, err)
		}

		stats.RowsLoaded[tf.table] = rows
		l.logger.Printf("Loaded %d rows into %s.%s", rows, l.schema, tf.table)
	}

	counts, err := schema.RowCounts(ctx, l.db, l.schema)
	if err != nil {
		return nil, err
	}
	stats.RowCounts = counts

	stats.Elapsed = time.Since(start)
	if histogram.TotalCount() > 0 {
		stats.ChunkP50 = time.Duration(histogram.ValueAtQuantile(50))
		stats.ChunkP95 = time.Duration(histogram.ValueAtQuantile(95))
		stats.ChunkP99 = time.Duration(histogram.ValueAtQuantile(99))
	}

	l.logger.Printf("ETL run %s finished in %s (chunk p50=%s p95=%s p99=%s)",
		runID, stats.Elapsed, stats.ChunkP50, stats.ChunkP95, stats.ChunkP99)

	return stats, nil
}

func (l *Loader) loadFile(ctx context.Context, path, table string, spec tableSpec, histogram *hdrhistogram.Histogram) (int64, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	header, err := reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read header: %w", err)
	}
	if len(header) != len(spec.columns) {
		return 0, fmt.Errorf("expected %d columns, got %d", len(spec.columns), len(header))
	}

	var total int64
	chunk := make([][]any, 0, l.chunkSize)

	flush := func() error {
		if len(chunk) == 0 {
			return nil
		}

		// COPY under concurrent load can hit serialization or deadlock
		// failures; those classify as retryable and get backoff.
		chunkStart := time.Now()
		err := database.WithRetry(ctx, l.db, database.DefaultTxOptions(), func(tx *sql.Tx) error {
			return l.copyChunk(ctx, tx, table, spec.columns, chunk)
		})
		if err != nil {
			return err
		}

		_ = histogram.RecordValue(time.Since(chunkStart).Nanoseconds())
		total += int64(len(chunk))
		chunk = chunk[:0]
		return nil
	}

	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, fmt.Errorf("read record: %w", err)
		}
		line++

		values, err := spec.parse(record)
		if err != nil {
			return 0, fmt.Errorf("line %d: %w", line, err)
		}

		chunk = append(chunk, values)
		if len(chunk) >= l.chunkSize {
			if err := flush(); err != nil {
				return 0, err
			}
		}
	}

	if err := flush(); err != nil {
		return 0, err
	}

	return total, nil
}

func (l *Loader) copyChunk(ctx context.Context, tx *sql.Tx, table string, columns []string, chunk [][]any) error {
	stmt, err := tx.PrepareContext(ctx, pq.CopyInSchema(l.schema, table, columns...))
	if err != nil {
		return fmt.Errorf("prepare copy: %w", err)
	}

	for _, values := range chunk {
		if _, err := stmt.ExecContext(ctx, values...); err != nil {
			stmt.Close()
			return fmt.Errorf("copy row: %w", err)
		}
	}

	if _, err := stmt.ExecContext(ctx); err != nil {
		stmt.Close()
		return fmt.Errorf("flush copy: %w", err)
	}

	return stmt.Close()
}
