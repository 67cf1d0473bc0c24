package cmd

import (
	"context"

	"github.com/econdata/cpidb/internal/iodb"
	"github.com/econdata/cpidb/internal/iofetch"
	"github.com/econdata/cpidb/internal/ioload"
	"github.com/econdata/cpidb/internal/iosources"
	"github.com/econdata/cpidb/internal/ioview"
	"github.com/econdata/cpidb/pkg/term"
	"github.com/spf13/cobra"
)

// getUpdateCmd returns the update command.
// Extracted as a function to facilitate testing and dynamic
// command registration.
func getUpdateCmd() *cobra.Command {
	updateCmd := &cobra.Command{
		Use:   "update",
		Short: "Download BLS files and load them into the database",
		Long: `Refresh the database from the BLS download site.

This command:
  1. Connects to the target from DATABASE_URL or config.yaml
  2. Reads ~/.config/cpidb/sources.yaml to discover source files
  3. Downloads and loads each file: areas, periods, items, data
  4. Rebuilds the data_view reporting view

Rows already present are skipped, so update is safe to re-run;
a monthly run appends the newly published periods.

A source that fails to download or load is reported and skipped;
the remaining sources still load and the view is still rebuilt.

Examples:
  cpidb update
  DATABASE_URL=prices.db cpidb update`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUpdate(cmd, args)
		},
	}

	return updateCmd
}

func runUpdate(
	_ *cobra.Command,
	_ []string,
) error {
	ctx := context.Background()

	if cfg.Database.URL == "" {
		err := iodb.NoTargetError()
		term.PrintError(err)
		return err
	}

	op := iodb.New()
	if err := op.Connect(ctx, &cfg.Database); err != nil {
		term.PrintError(err)
		return err
	}
	defer op.Close()

	term.Info("Connected to database: <em>%s</em>",
		iodb.DisplayTarget(cfg.Database.URL))

	// Check if database has tables
	hasTables, err := op.HasTables(ctx)
	if err != nil {
		term.PrintError(err)
		return err
	}

	if !hasTables {
		term.Warn(`Warning: Database appears to be empty.
Run 'cpidb create' first to initialize the schema.`)
		return nil
	}

	catalog, err := iosources.New(cfg).Load()
	if err != nil {
		term.PrintError(err)
		return err
	}

	fetcher := iofetch.New(&cfg.Fetch)
	view := ioview.New(op)
	pipeline := ioload.NewPipeline(cfg, op, fetcher, view)

	summary, err := pipeline.Run(ctx, catalog)
	if err != nil {
		term.PrintError(err)
		return err
	}

	// Failed steps are reported in the summary; a partial refresh
	// still leaves the database consistent, so the command exits
	// clean either way.
	if summary.Failed() > 0 {
		term.Warn("%d of %d steps failed; see the log for details.",
			summary.Failed(), len(summary.Steps))
	}

	return nil
}
