// Package ioschema implements schema creation for the star schema.
// This is an impure I/O package that implements contracts defined
// in pkg/.
package ioschema

import (
	"context"
	"errors"
	"log/slog"

	"github.com/econdata/cpidb/pkg/cpidb"
	"github.com/econdata/cpidb/pkg/db"
	"github.com/econdata/cpidb/pkg/schema"
)

// manager implements the cpidb.SchemaManager interface using DDL
// generated from the schema models.
type manager struct {
	operator db.Operator
}

// NewManager creates a new SchemaManager.
func NewManager(op db.Operator) cpidb.SchemaManager {
	return &manager{operator: op}
}

// Ensure creates every missing table. Existing tables are reported
// and left untouched together with their data, so running create
// against a populated database is harmless.
//
// Each table is attempted even when an earlier one fails; the
// failures come back joined.
func (m *manager) Ensure(ctx context.Context) error {
	sqlDB := m.operator.DB()
	if sqlDB == nil {
		return NotConnectedError()
	}

	var errs []error
	for _, model := range schema.AllModels() {
		name := model.TableName()

		exists, err := m.operator.TableExists(ctx, name)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if exists {
			slog.Info("Table already exists", "table", name)
			continue
		}

		if _, err := sqlDB.ExecContext(
			ctx, model.TableDDL(),
		); err != nil {
			err = CreateSchemaError(name, err)
			slog.Error("Cannot create table",
				"table", name, "error", err)
			errs = append(errs, err)
			continue
		}
		slog.Info("Created table", "table", name)
	}

	return errors.Join(errs...)
}
