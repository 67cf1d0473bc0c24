// Package db defines the storage engine abstraction: a connection
// Operator plus the Dialect differences between the supported engines.
package db

import (
	"context"

	"github.com/econdata/cpidb/pkg/config"
	"github.com/jmoiron/sqlx"
)

// Operator defines the interface for basic database management
// operations. It provides connection lifecycle management and exposes
// the sqlx handle for higher-level components (SchemaManager, Loader,
// ViewBuilder, Verifier) to execute their specialized SQL internally.
//
// Design rationale:
// - Keeps interface minimal to avoid bloat with mixed semantics
// - DB() enables components to run transactions and bulk inserts
// - One Operator serves both engines; Dialect() carries the difference
type Operator interface {
	// Connect opens the storage target from cfg.URL: a postgres:// or
	// postgresql:// connection string, or a SQLite file path (created
	// when absent). A single connection is held for the whole run.
	Connect(context.Context, *config.DatabaseConfig) error

	// Close closes the database connection.
	Close() error

	// DB returns the underlying sqlx handle for higher-level components
	// to execute specialized SQL operations: transactions, bulk
	// inserts, and custom queries.
	DB() *sqlx.DB

	// Dialect reports which engine the operator is connected to.
	Dialect() Dialect

	// TableExists checks if a table exists in the database.
	TableExists(ctx context.Context, tableName string) (bool, error)

	// HasTables checks if any of the schema tables exist.
	// Used to decide whether update can run or create must run first.
	HasTables(ctx context.Context) (bool, error)
}
