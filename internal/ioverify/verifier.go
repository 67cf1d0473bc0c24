// Package ioverify checks referential consistency between the fact
// table and the dimension tables. This is an impure I/O package that
// implements contracts defined in pkg/.
//
// The schema stores area_code, item_code and period as plain columns
// without foreign-key constraints, so loads never fail on ordering,
// and orphaned references are possible. Verify counts them instead of
// fixing them: orphans usually mean a dimension file failed to load
// and the next update repairs them.
package ioverify

import (
	"context"
	"log/slog"

	"github.com/econdata/cpidb/pkg/cpidb"
	"github.com/econdata/cpidb/pkg/db"
	"github.com/econdata/cpidb/pkg/schema"
	"golang.org/x/sync/errgroup"
)

// verifier implements cpidb.Verifier.
type verifier struct {
	operator db.Operator
}

// New creates a Verifier over an established connection.
func New(op db.Operator) cpidb.Verifier {
	return &verifier{operator: op}
}

// Verify counts fact rows, view rows and orphaned references. The
// checks are read-only and independent, so they run concurrently;
// the shared connection serializes them without extra coordination.
func (v *verifier) Verify(ctx context.Context) (*cpidb.Report, error) {
	if v.operator.DB() == nil {
		return nil, NotConnectedError()
	}

	var rep cpidb.Report
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return v.countObservations(gCtx, &rep.Observations)
	})
	g.Go(func() error {
		return v.countViewRows(gCtx, &rep.ViewRows)
	})
	g.Go(func() error {
		return v.countOrphanAreas(gCtx, &rep.OrphanAreas)
	})
	g.Go(func() error {
		return v.countOrphanItems(gCtx, &rep.OrphanItems)
	})
	g.Go(func() error {
		return v.countOrphanPeriods(gCtx, &rep.OrphanPeriods)
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &rep, nil
}

// countObservations counts rows in the fact table.
func (v *verifier) countObservations(
	ctx context.Context, dst *int64,
) error {
	query := "SELECT COUNT(*) FROM data"

	err := v.operator.DB().GetContext(ctx, dst, query)
	if err != nil {
		return QueryError("observations", err)
	}

	slog.Info("Counted observations", "count", *dst)
	return nil
}

// countViewRows counts data_view rows. A database where update never
// ran has no view yet; that reports as zero rows, not an error.
func (v *verifier) countViewRows(
	ctx context.Context, dst *int64,
) error {
	sqlDB := v.operator.DB()

	var existsQuery string
	switch v.operator.Dialect() {
	case db.Postgres:
		existsQuery = `
SELECT EXISTS (
	SELECT FROM information_schema.views
	WHERE table_schema = 'public' AND table_name = ?
)`
	default:
		existsQuery = `
SELECT EXISTS (
	SELECT 1 FROM sqlite_master
	WHERE type = 'view' AND name = ?
)`
	}

	var exists bool
	err := sqlDB.QueryRowContext(
		ctx, sqlDB.Rebind(existsQuery), schema.ViewName,
	).Scan(&exists)
	if err != nil {
		return QueryError("view", err)
	}
	if !exists {
		slog.Warn("View does not exist yet", "view", schema.ViewName)
		return nil
	}

	query := "SELECT COUNT(*) FROM " + schema.ViewName
	if err = sqlDB.GetContext(ctx, dst, query); err != nil {
		return QueryError("view", err)
	}

	slog.Info("Counted view rows", "count", *dst)
	return nil
}

// countOrphanAreas counts fact rows whose area_code has no areas row.
// Uses the LEFT OUTER JOIN anti-join pattern.
func (v *verifier) countOrphanAreas(
	ctx context.Context, dst *int64,
) error {
	query := `
SELECT COUNT(*)
FROM data d
LEFT OUTER JOIN areas a
	ON a.area_code = d.area_code
WHERE a.area_code IS NULL`

	err := v.operator.DB().GetContext(ctx, dst, query)
	if err != nil {
		return QueryError("areas", err)
	}

	slog.Info("Checked area references", "orphans", *dst)
	return nil
}

// countOrphanItems counts fact rows whose item_code has no items row.
func (v *verifier) countOrphanItems(
	ctx context.Context, dst *int64,
) error {
	query := `
SELECT COUNT(*)
FROM data d
LEFT OUTER JOIN items i
	ON i.item_code = d.item_code
WHERE i.item_code IS NULL`

	err := v.operator.DB().GetContext(ctx, dst, query)
	if err != nil {
		return QueryError("items", err)
	}

	slog.Info("Checked item references", "orphans", *dst)
	return nil
}

// countOrphanPeriods counts fact rows whose period has no periods row.
func (v *verifier) countOrphanPeriods(
	ctx context.Context, dst *int64,
) error {
	query := `
SELECT COUNT(*)
FROM data d
LEFT OUTER JOIN periods p
	ON p.period = d.period
WHERE p.period IS NULL`

	err := v.operator.DB().GetContext(ctx, dst, query)
	if err != nil {
		return QueryError("periods", err)
	}

	slog.Info("Checked period references", "orphans", *dst)
	return nil
}
