// Package store is the typed row-access layer over the ecom schema. Writes
// take caller-assigned identifiers, matching the plain integer primary keys
// the schema declares.
package store

import (
	"context"
	"database/sql"
)

// DBTX is satisfied by both *sql.DB and *sql.Tx, so the same queries run
// standalone or inside a transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Store qualifies every query with the schema name it was built for.
type Store struct {
	schema string
}

func New(schema string) *Store {
	return &Store{schema: schema}
}

func (s *Store) Schema() string {
	return s.schema
}
