// Package iodb implements database operations over database/sql with
// sqlx. This is an impure I/O package that implements contracts
// defined in pkg/.
//
// The operator serves two engines behind one interface: SQLite when
// the target is a file path, PostgreSQL when it is a postgres:// URL.
package iodb

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/econdata/cpidb/pkg/config"
	"github.com/econdata/cpidb/pkg/db"
	"github.com/econdata/cpidb/pkg/schema"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"

	// Registers the pure-Go "sqlite" driver with database/sql.
	_ "modernc.org/sqlite"
)

func init() {
	// modernc registers itself as "sqlite", a driver name sqlx does
	// not know. Teach sqlx its placeholder style so Rebind works.
	sqlx.BindDriver("sqlite", sqlx.QUESTION)
}

// sqlOperator implements db.Operator for both supported engines.
type sqlOperator struct {
	db      *sqlx.DB
	dialect db.Dialect
}

var _ db.Operator = (*sqlOperator)(nil)

// New creates a new database operator (without connecting).
func New() db.Operator {
	return &sqlOperator{}
}

// Connect opens the storage target. A postgres:// or postgresql://
// URL selects PostgreSQL; anything else is treated as a SQLite file
// path, created when absent.
//
// The pool is capped at one connection: SQLite allows a single
// writer, and the pipeline runs its steps sequentially anyway.
func (op *sqlOperator) Connect(
	ctx context.Context,
	cfg *config.DatabaseConfig,
) error {
	if cfg.URL == "" {
		return NoTargetError()
	}

	var sqlDB *sqlx.DB
	if strings.HasPrefix(cfg.URL, "postgres://") ||
		strings.HasPrefix(cfg.URL, "postgresql://") {
		connCfg, err := pgx.ParseConfig(cfg.URL)
		if err != nil {
			return ConnectionError(cfg.URL, err)
		}
		sqlDB = sqlx.NewDb(stdlib.OpenDB(*connCfg), "pgx")
		op.dialect = db.Postgres
	} else {
		dsn := fmt.Sprintf(
			"file:%s?_pragma=busy_timeout(5000)", cfg.URL,
		)
		conn, err := sql.Open("sqlite", dsn)
		if err != nil {
			return ConnectionError(cfg.URL, err)
		}
		sqlDB = sqlx.NewDb(conn, "sqlite")
		op.dialect = db.SQLite
	}

	sqlDB.SetMaxOpenConns(1)

	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		return ConnectionError(cfg.URL, err)
	}

	op.db = sqlDB
	return nil
}

// Close closes the database connection.
func (op *sqlOperator) Close() error {
	if op.db != nil {
		return op.db.Close()
	}
	return nil
}

// DB returns the underlying sqlx handle.
func (op *sqlOperator) DB() *sqlx.DB {
	return op.db
}

// Dialect reports the connected engine.
func (op *sqlOperator) Dialect() db.Dialect {
	return op.dialect
}

// TableExists checks if a table exists in the current database.
func (op *sqlOperator) TableExists(
	ctx context.Context,
	tableName string,
) (bool, error) {
	if op.db == nil {
		return false, NotConnectedError()
	}

	var query string
	switch op.dialect {
	case db.Postgres:
		query = `
			SELECT EXISTS (
				SELECT FROM information_schema.tables
				WHERE table_schema = 'public'
				AND table_name = ?
			)
		`
	default:
		query = `
			SELECT EXISTS (
				SELECT 1 FROM sqlite_master
				WHERE type = 'table' AND name = ?
			)
		`
	}

	var exists bool
	err := op.db.QueryRowContext(
		ctx, op.db.Rebind(query), tableName,
	).Scan(&exists)
	if err != nil {
		return false, TableExistsCheckError(tableName, err)
	}

	return exists, nil
}

// HasTables checks if any of the schema tables exist.
func (op *sqlOperator) HasTables(ctx context.Context) (bool, error) {
	if op.db == nil {
		return false, NotConnectedError()
	}

	for _, model := range schema.AllModels() {
		exists, err := op.TableExists(ctx, model.TableName())
		if err != nil {
			return false, TableCheckError(err)
		}
		if exists {
			return true, nil
		}
	}
	return false, nil
}
