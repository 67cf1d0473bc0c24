// Package ioview rebuilds the denormalized reporting view. This is
// an impure I/O package that implements contracts defined in pkg/.
package ioview

import (
	"context"
	"log/slog"

	"github.com/dustin/go-humanize"
	"github.com/econdata/cpidb/pkg/cpidb"
	"github.com/econdata/cpidb/pkg/db"
	"github.com/econdata/cpidb/pkg/schema"
)

// builder implements cpidb.ViewBuilder.
type builder struct {
	operator db.Operator
}

// New creates a ViewBuilder.
func New(op db.Operator) cpidb.ViewBuilder {
	return &builder{operator: op}
}

// Rebuild drops and recreates data_view, then counts its rows.
//
// Workflow:
//  1. Drop the existing view if present
//  2. Create the view joining data to the dimension tables
//  3. Count its rows for reporting
//
// The view is plain, not materialized, so the rebuild is cheap and
// the view always reflects the current tables. Observations whose
// codes miss a dimension row stay visible with NULL names.
func (b *builder) Rebuild(ctx context.Context) (int64, error) {
	sqlDB := b.operator.DB()
	if sqlDB == nil {
		return 0, NotConnectedError()
	}

	slog.Info("Rebuilding view", "view", schema.ViewName)

	if _, err := sqlDB.ExecContext(
		ctx, schema.DropViewDDL,
	); err != nil {
		return 0, DropViewError(err)
	}

	if _, err := sqlDB.ExecContext(ctx, schema.ViewDDL); err != nil {
		return 0, CreateViewError(err)
	}

	var count int64
	q := "SELECT COUNT(*) FROM " + schema.ViewName
	if err := sqlDB.QueryRowContext(ctx, q).Scan(&count); err != nil {
		return 0, CountViewError(err)
	}

	slog.Info("Created view",
		"view", schema.ViewName,
		"records", humanize.Comma(count),
	)

	return count, nil
}
