package schema

import (
	"context"
	"database/sql"
	"fmt"
)

// TableExists checks information_schema for the table.
func TableExists(ctx context.Context, db *sql.DB, schema, table string) (bool, error) {
	var exists bool
	err := db.QueryRowContext(ctx,
		`SELECT EXISTS(
			SELECT 1 FROM information_schema.tables
			WHERE table_schema = $1 AND table_name = $2
		)`,
		schema, table).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check table %s.%s: %w", schema, table, err)
	}
	return exists, nil
}

// IndexExists checks pg_indexes for the named index within the schema.
func IndexExists(ctx context.Context, db *sql.DB, schema, index string) (bool, error) {
	var exists bool
	err := db.QueryRowContext(ctx,
		`SELECT EXISTS(
			SELECT 1 FROM pg_indexes
			WHERE schemaname = $1 AND indexname = $2
		)`,
		schema, index).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check index %s.%s: %w", schema, index, err)
	}
	return exists, nil
}

// Verify confirms every table and index is present, returning an error
// naming the first missing object.
func Verify(ctx context.Context, db *sql.DB, schema string) error {
	for _, table := range Tables {
		ok, err := TableExists(ctx, db, schema, table)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("table %s.%s missing", schema, table)
		}
	}

	for _, index := range Indexes {
		ok, err := IndexExists(ctx, db, schema, index)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("index %s.%s missing", schema, index)
		}
	}

	return nil
}

// RowCounts returns the row count of each table, keyed by table name.
func RowCounts(ctx context.Context, db *sql.DB, schema string) (map[string]int64, error) {
	counts := make(map[string]int64, len(Tables))
	for _, table := range Tables {
		var count int64
		query := fmt.Sprintf("SELECT COUNT(*) FROM %s.%s", schema, table)
		if err := db.QueryRowContext(ctx, query).Scan(&count); err != nil {
			return nil, fmt.Errorf("count %s.%s: %w", schema, table, err)
		}
		counts[table] = count
	}
	return counts, nil
}
