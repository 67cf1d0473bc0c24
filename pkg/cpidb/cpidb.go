// Package cpidb defines the contracts between the command layer and
// the I/O implementations in internal/. Commands depend on these
// interfaces only; the concrete implementations are wired in cmd/.
package cpidb

import (
	"context"

	"github.com/econdata/cpidb/pkg/sources"
)

// Fetcher retrieves source files from the BLS download site.
type Fetcher interface {
	// Fetch downloads one source file and returns its body as text.
	// The body is tab-delimited; parsing is left to the caller.
	Fetch(ctx context.Context, url string) (string, error)
}

// SchemaManager creates the database schema.
// Schema creation is idempotent - safe to run multiple times.
// Config is provided during construction.
type SchemaManager interface {
	// Ensure creates every missing table. Tables that already exist
	// are left untouched, together with their data.
	Ensure(ctx context.Context) error
}

// Pipeline runs a full data refresh: fetch each catalog file, load
// it into its table, then rebuild the reporting view.
//
// Design rationale:
// - A failed source is reported and skipped; later sources still run
// - Loads within one source are transactional
// - The view is rebuilt even when some sources failed
type Pipeline interface {
	// Run processes every file in the catalog and returns a summary
	// of per-step outcomes. The error is non-nil only when the run
	// could not proceed at all.
	Run(ctx context.Context, catalog *sources.Catalog) (*RunSummary, error)
}

// ViewBuilder rebuilds the denormalized reporting view.
type ViewBuilder interface {
	// Rebuild drops and recreates the view, then reports its row
	// count.
	Rebuild(ctx context.Context) (int64, error)
}

// Verifier checks referential consistency between the fact table and
// the dimension tables. The schema carries no foreign keys, so
// orphaned references are possible and surface as NULL names in the
// view; Verify counts them.
type Verifier interface {
	Verify(ctx context.Context) (*Report, error)
}

// Report holds the results of a consistency check.
type Report struct {
	// Observations is the number of rows in the fact table.
	Observations int64
	// ViewRows is the number of rows in the reporting view.
	ViewRows int64
	// OrphanAreas counts observations whose area_code has no match
	// in the areas table. OrphanItems and OrphanPeriods are the
	// same for items and periods.
	OrphanAreas   int64
	OrphanItems   int64
	OrphanPeriods int64
}

// Clean reports whether every observation resolves all three
// dimensions.
func (r *Report) Clean() bool {
	return r.OrphanAreas == 0 &&
		r.OrphanItems == 0 &&
		r.OrphanPeriods == 0
}
