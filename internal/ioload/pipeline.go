package ioload

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/econdata/cpidb/pkg/bls"
	"github.com/econdata/cpidb/pkg/config"
	"github.com/econdata/cpidb/pkg/cpidb"
	"github.com/econdata/cpidb/pkg/db"
	"github.com/econdata/cpidb/pkg/schema"
	"github.com/econdata/cpidb/pkg/sources"
	"github.com/econdata/cpidb/pkg/term"
)

// pipeline implements the Pipeline interface.
type pipeline struct {
	cfg      *config.Config
	operator db.Operator
	fetcher  cpidb.Fetcher
	view     cpidb.ViewBuilder
	loader   *loader
}

// NewPipeline creates a Pipeline over an established connection.
func NewPipeline(
	cfg *config.Config,
	op db.Operator,
	fetcher cpidb.Fetcher,
	view cpidb.ViewBuilder,
) cpidb.Pipeline {
	return &pipeline{
		cfg:      cfg,
		operator: op,
		fetcher:  fetcher,
		view:     view,
		loader:   newLoader(cfg, op),
	}
}

// Run fetches and loads every catalog file, then rebuilds the
// reporting view. A failed file is reported and skipped; the view is
// rebuilt regardless, so it always reflects what the tables hold.
func (p *pipeline) Run(
	ctx context.Context,
	catalog *sources.Catalog,
) (*cpidb.RunSummary, error) {
	if p.operator.DB() == nil {
		return nil, NotConnectedError()
	}

	summary := cpidb.NewRunSummary()
	slog.Info("Starting data update",
		"run_id", summary.RunID,
		"files", len(catalog.Files),
	)

	for i, file := range catalog.Files {
		fmt.Println() // Blank line between sources
		fmt.Println(strings.Repeat("─", 60))
		term.Info("Source [%d/%d]: <em>%s</em> → <em>%s</em>",
			i+1, len(catalog.Files), file.Name, file.Table)
		fmt.Println(strings.Repeat("─", 60))

		slog.Info("Processing source",
			"index", i+1,
			"total", len(catalog.Files),
			"file", file.Name,
			"table", file.Table,
		)

		// Check context cancellation
		select {
		case <-ctx.Done():
			return summary, CancelledError(ctx.Err())
		default:
		}

		start := time.Now()
		rows, err := p.processFile(ctx, catalog, file)
		if err != nil {
			summary.Add(cpidb.StepResult{
				Name:     file.Name,
				Duration: time.Since(start),
				Err:      err,
			})
			slog.Error("Failed to process source",
				"file", file.Name,
				"table", file.Table,
				"error", err,
			)
			// Continue with next source instead of failing
			continue
		}

		summary.Add(cpidb.StepResult{
			Name:     file.Name,
			Rows:     rows,
			Duration: time.Since(start),
		})
		term.Info("Inserted %s records to the table.",
			humanize.Comma(rows))
		slog.Info("Source processed",
			"file", file.Name,
			"rows", rows,
			"duration", time.Since(start).Round(time.Millisecond),
		)
	}

	p.rebuildView(ctx, summary)

	steps := "step"
	if summary.Succeeded() != 1 {
		steps += "s"
	}
	slog.Info("Update complete",
		"run_id", summary.RunID,
		"succeeded", summary.Succeeded(),
		"failed", summary.Failed(),
		"duration", summary.Duration().Round(time.Millisecond),
	)
	fmt.Println()
	term.Info("Update complete: %d %s succeeded, %d failed. "+
		"Elapsed time: <em>%s</em>",
		summary.Succeeded(), steps, summary.Failed(),
		summary.Duration().Round(time.Millisecond))

	if summary.Failed() > 0 {
		slog.Warn("Some steps failed",
			"failed", summary.Failed(),
			"succeeded", summary.Succeeded(),
		)
	}
	return summary, nil
}

// processFile downloads, parses and loads one catalog file.
func (p *pipeline) processFile(
	ctx context.Context,
	catalog *sources.Catalog,
	file sources.File,
) (int64, error) {
	url := catalog.URL(file)
	slog.Info("Fetching source file", "url", url)

	body, err := p.fetcher.Fetch(ctx, url)
	if err != nil {
		return 0, err
	}

	tbl, err := bls.Parse(body, catalog.Delimiter)
	if err != nil {
		return 0, ParseError(file.Name, err)
	}

	switch file.Kind {
	case sources.KindObservations:
		return p.loader.LoadObservations(ctx, file.Table, tbl)
	default:
		return p.loader.LoadDimension(ctx, file.Table, tbl)
	}
}

// rebuildView recreates the reporting view and records the outcome as
// one more step. It runs even when source files failed: the view must
// match the tables, not the run.
func (p *pipeline) rebuildView(
	ctx context.Context,
	summary *cpidb.RunSummary,
) {
	fmt.Println()
	fmt.Println(strings.Repeat("─", 60))
	term.Info("Rebuilding view <em>%s</em>", schema.ViewName)
	fmt.Println(strings.Repeat("─", 60))

	start := time.Now()
	count, err := p.view.Rebuild(ctx)
	if err != nil {
		summary.Add(cpidb.StepResult{
			Name:     schema.ViewName,
			Duration: time.Since(start),
			Err:      err,
		})
		slog.Error("Failed to rebuild view",
			"view", schema.ViewName,
			"error", err,
		)
		return
	}

	summary.Add(cpidb.StepResult{
		Name:     schema.ViewName,
		Rows:     count,
		Duration: time.Since(start),
	})
	term.Info("Created view with %s records.", humanize.Comma(count))
}
