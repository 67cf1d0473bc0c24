package cmd

import (
	"context"

	"github.com/dustin/go-humanize"
	"github.com/econdata/cpidb/internal/iodb"
	"github.com/econdata/cpidb/internal/ioverify"
	"github.com/econdata/cpidb/pkg/term"
	"github.com/spf13/cobra"
)

// getVerifyCmd returns the verify command.
// Extracted as a function to facilitate testing and dynamic
// command registration.
func getVerifyCmd() *cobra.Command {
	verifyCmd := &cobra.Command{
		Use:   "verify",
		Short: "Report observations with unknown dimension codes",
		Long: `Check referential consistency of the loaded data.

The schema stores area, item and period codes without foreign-key
constraints, so a fact row may reference a code with no dimension
row; such rows show NULL names in data_view. This command counts
them per dimension, along with the total observation and view rows.

The check is read-only and advisory. Orphans usually mean a
dimension file failed during update; re-running 'cpidb update'
repairs them.

Examples:
  cpidb verify
  DATABASE_URL=prices.db cpidb verify`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVerify(cmd, args)
		},
	}

	return verifyCmd
}

func runVerify(
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

	rep, err := ioverify.New(op).Verify(ctx)
	if err != nil {
		term.PrintError(err)
		return err
	}

	term.Info("Observations: <em>%s</em>",
		humanize.Comma(rep.Observations))
	term.Info("View rows:    <em>%s</em>",
		humanize.Comma(rep.ViewRows))

	if rep.Clean() {
		term.Info("All observations resolve their area, item " +
			"and period codes.")
		return nil
	}

	term.Warn("Orphaned references found:")
	term.Warn("  unknown area codes:   %s",
		humanize.Comma(rep.OrphanAreas))
	term.Warn("  unknown item codes:   %s",
		humanize.Comma(rep.OrphanItems))
	term.Warn("  unknown period codes: %s",
		humanize.Comma(rep.OrphanPeriods))
	term.Warn("Re-run 'cpidb update' to reload the dimension files.")

	return nil
}
