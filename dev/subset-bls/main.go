// subset-bls extracts a representative subset from the full BLS CPI-U
// flat files.
//
// This tool creates smaller test fixtures that preserve:
//   - Edge cases (unadjusted series, regional areas, annual M13
//     averages, rows with footnote codes)
//   - Dimension consistency (every area, item and period referenced by
//     a kept observation stays in the subset lookup files)
//   - Representative sampling across the full series list
//
// Uses pkg/bls for parsing to ensure the subsets stay format-correct.
//
// Usage:
//
//	go run . <source> <output-dir>
//
// Examples:
//
//	go run . "https://download.bls.gov/pub/time.series/cu/" testdata
//	go run . /path/to/local/cu-files testdata
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/econdata/cpidb/internal/iofetch"
	"github.com/econdata/cpidb/pkg/bls"
	"github.com/econdata/cpidb/pkg/config"
	"github.com/econdata/cpidb/pkg/cpidb"
	"github.com/econdata/cpidb/pkg/sources"
)

// Configuration constants
const (
	// Target number of series to keep from the observations file
	targetSeries = 40

	// Minimum series to include from each edge case category
	minEdgeCaseSeries = 5

	// Years of monthly history to keep per series; annual M13
	// averages are kept regardless of age
	recentYears = 3
)

func main() {
	// Parse positional arguments
	if len(os.Args) != 3 {
		fmt.Fprintf(os.Stderr, "Usage: %s <source> <output-dir>\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Arguments:\n")
		fmt.Fprintf(os.Stderr, "  source      base URL or local directory holding the cu.* files\n")
		fmt.Fprintf(os.Stderr, "  output-dir  directory for the subset files\n\n")
		fmt.Fprintf(os.Stderr, "Examples:\n")
		fmt.Fprintf(os.Stderr, "  %s https://download.bls.gov/pub/time.series/cu/ testdata\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s /path/to/local/cu-files testdata\n", os.Args[0])
		os.Exit(1)
	}

	source := os.Args[1]
	outputDir := os.Args[2]

	// Setup logger
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	ctx := context.Background()

	logger.Info("starting BLS subset extraction",
		"source", source,
		"target_series", targetSeries,
		"output", outputDir,
	)

	if err := createSubset(ctx, logger, source, outputDir); err != nil {
		logger.Error("subset extraction failed", "error", err)
		os.Exit(1)
	}

	logger.Info("subset extraction complete", "output", outputDir)
}

// seriesTraits records which edge case categories a series falls into,
// accumulated over all of its observation rows.
type seriesTraits struct {
	id         string
	unadjusted bool
	regional   bool
	annual     bool
	footnote   bool
}

// dimensionRefs holds the dimension keys referenced by the kept
// observation rows. Lookup files are filtered down to these keys so
// the subset stays referentially complete.
type dimensionRefs struct {
	areas   map[string]bool
	items   map[string]bool
	periods map[string]bool
}

// createSubset extracts a representative subset from a BLS source.
//
// Implementation:
//  1. Read all catalog files (base URL via the retrying fetcher, or a
//     local directory) and parse them with pkg/bls
//  2. Scan the observations file and classify each series by edge case
//  3. Select series: edge cases first, then fill in file order
//  4. Keep recent rows of the selected series plus all their annual
//     averages, collecting the dimension keys they reference
//  5. Filter each lookup file to the referenced keys
//  6. Write the subset files with the same names as the originals
func createSubset(ctx context.Context, logger *slog.Logger, source, outputDir string) error {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	var fetcher cpidb.Fetcher
	if sources.IsValidURL(source) {
		cfg := config.New()
		fetcher = iofetch.New(&cfg.Fetch)
	}

	catalog := sources.Default()

	// Read and parse every file before filtering anything, so a
	// missing or malformed source fails the run up front.
	tables := make(map[string]*bls.Table)
	var dataFile sources.File
	for _, f := range catalog.Files {
		text, err := readSource(ctx, fetcher, source, f.Name)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", f.Name, err)
		}

		tbl, err := bls.Parse(text, catalog.Delimiter)
		if err != nil {
			return fmt.Errorf("failed to parse %s: %w", f.Name, err)
		}
		tables[f.Name] = tbl
		logger.Info("source file parsed", "file", f.Name, "rows", len(tbl.Rows))

		if f.Kind == sources.KindObservations {
			dataFile = f
		}
	}
	if dataFile.Name == "" {
		return fmt.Errorf("catalog has no observations file")
	}

	data := tables[dataFile.Name]
	sidIdx, err := data.ColumnIndex("series_id")
	if err != nil {
		return err
	}
	yearIdx, err := data.ColumnIndex("year")
	if err != nil {
		return err
	}
	periodIdx, err := data.ColumnIndex("period")
	if err != nil {
		return err
	}

	// The published files carry footnote_codes, but the column is not
	// required for subsetting. Without it that edge case is skipped.
	footIdx, err := data.ColumnIndex("footnote_codes")
	if err != nil {
		logger.Warn("no footnote_codes column in observations file")
		footIdx = -1
	}

	traits := collectSeries(logger, data, sidIdx, periodIdx, footIdx)
	selected := selectSeries(logger, traits)
	keptRows, refs := filterObservations(logger, data, selected, sidIdx, yearIdx, periodIdx)

	// Write the subset files, filtering each lookup file down to the
	// keys the kept observations reference.
	for _, f := range catalog.Files {
		tbl := tables[f.Name]

		var rows [][]string
		switch f.Table {
		case "data":
			rows = keptRows
		case "areas":
			rows = filterDimension(tbl, refs.areas)
		case "items":
			rows = filterDimension(tbl, refs.items)
		case "periods":
			rows = filterDimension(tbl, refs.periods)
		default:
			return fmt.Errorf("no filter for table %q", f.Table)
		}

		if err := writeSubset(outputDir, f.Name, tbl.Columns, rows); err != nil {
			return err
		}
		logger.Info("subset file written",
			"file", f.Name,
			"kept", len(rows),
			"total", len(tbl.Rows),
		)
	}

	logger.Info("subset summary",
		"series", len(selected),
		"observations", len(keptRows),
		"areas", len(refs.areas),
		"items", len(refs.items),
		"periods", len(refs.periods),
	)

	return nil
}

// readSource returns the raw text of one source file. URLs go through
// the retrying fetcher; anything else is read as a local directory.
func readSource(ctx context.Context, fetcher cpidb.Fetcher, source, name string) (string, error) {
	if fetcher != nil {
		base := strings.TrimSuffix(source, "/")
		return fetcher.Fetch(ctx, base+"/"+name)
	}

	body, err := os.ReadFile(filepath.Join(source, name))
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// collectSeries scans the observation rows and returns one traits
// record per series, in file order. Traits accumulate across rows: a
// series is "annual" if any of its rows is an M13 average.
func collectSeries(logger *slog.Logger, tbl *bls.Table, sidIdx, periodIdx, footIdx int) []*seriesTraits {
	byID := make(map[string]*seriesTraits)
	var ordered []*seriesTraits
	skipped := 0

	for _, row := range tbl.Rows {
		if sidIdx >= len(row) || periodIdx >= len(row) {
			skipped++
			continue
		}

		id := row[sidIdx]
		tr, ok := byID[id]
		if !ok {
			parts := bls.DecomposeSeriesID(id)
			tr = &seriesTraits{
				id:         id,
				unadjusted: parts.Seasonal == "U",
				regional:   parts.AreaCode != "0000",
			}
			byID[id] = tr
			ordered = append(ordered, tr)
		}

		if row[periodIdx] == "M13" {
			tr.annual = true
		}
		if footIdx >= 0 && footIdx < len(row) &&
			strings.TrimSpace(row[footIdx]) != "" {
			tr.footnote = true
		}
	}

	if skipped > 0 {
		logger.Warn("short observation rows skipped", "count", skipped)
	}
	logger.Info("series collected", "count", len(ordered))
	return ordered
}

// selectSeries picks the series to keep: a minimum from each edge case
// category first, then series in file order until the target is
// reached.
func selectSeries(logger *slog.Logger, traits []*seriesTraits) map[string]bool {
	selected := make(map[string]bool)

	take := func(category string, pred func(*seriesTraits) bool) {
		n := 0
		for _, tr := range traits {
			if n >= minEdgeCaseSeries {
				break
			}
			if selected[tr.id] || !pred(tr) {
				continue
			}
			selected[tr.id] = true
			n++
		}
		logger.Info("edge case series selected", "category", category, "count", n)
	}

	take("unadjusted", func(tr *seriesTraits) bool { return tr.unadjusted })
	take("regional area", func(tr *seriesTraits) bool { return tr.regional })
	take("annual average", func(tr *seriesTraits) bool { return tr.annual })
	take("footnote codes", func(tr *seriesTraits) bool { return tr.footnote })

	// Fill the remainder in file order so the sample reads naturally
	// next to the original file.
	for _, tr := range traits {
		if len(selected) >= targetSeries {
			break
		}
		selected[tr.id] = true
	}

	logger.Info("series selected", "count", len(selected), "target", targetSeries)
	return selected
}

// filterObservations keeps the recent rows of the selected series plus
// all of their annual averages, and collects the dimension keys those
// rows reference.
func filterObservations(
	logger *slog.Logger,
	tbl *bls.Table,
	selected map[string]bool,
	sidIdx, yearIdx, periodIdx int,
) ([][]string, *dimensionRefs) {
	// The cutoff is relative to the newest year among selected series,
	// so the tool keeps working as new months are published.
	maxYear := 0
	for _, row := range tbl.Rows {
		if sidIdx >= len(row) || yearIdx >= len(row) {
			continue
		}
		if !selected[row[sidIdx]] {
			continue
		}
		if y, err := strconv.Atoi(strings.TrimSpace(row[yearIdx])); err == nil && y > maxYear {
			maxYear = y
		}
	}
	cutoff := maxYear - recentYears + 1

	refs := &dimensionRefs{
		areas:   make(map[string]bool),
		items:   make(map[string]bool),
		periods: make(map[string]bool),
	}

	var kept [][]string
	for _, row := range tbl.Rows {
		if sidIdx >= len(row) || yearIdx >= len(row) || periodIdx >= len(row) {
			continue
		}

		id := row[sidIdx]
		if !selected[id] {
			continue
		}

		year, err := strconv.Atoi(strings.TrimSpace(row[yearIdx]))
		if err != nil {
			continue
		}
		period := row[periodIdx]
		if year < cutoff && period != "M13" {
			continue
		}

		parts := bls.DecomposeSeriesID(id)
		refs.areas[parts.AreaCode] = true
		refs.items[parts.ItemCode] = true
		refs.periods[period] = true
		kept = append(kept, row)
	}

	logger.Info("observations filtered",
		"kept", len(kept),
		"total", len(tbl.Rows),
		"cutoff_year", cutoff,
	)
	return kept, refs
}

// filterDimension keeps the rows whose key is referenced by a kept
// observation. The key is the first column in every BLS lookup file.
func filterDimension(tbl *bls.Table, keep map[string]bool) [][]string {
	var kept [][]string
	for _, row := range tbl.Rows {
		if len(row) == 0 {
			continue
		}
		if keep[strings.TrimSpace(row[0])] {
			kept = append(kept, row)
		}
	}
	return kept
}

// writeSubset writes one tab-delimited subset file: the trimmed header
// line followed by the kept rows verbatim.
func writeSubset(outputDir string, name string, cols []string, rows [][]string) error {
	var b strings.Builder
	b.WriteString(strings.Join(cols, "\t"))
	b.WriteString("\n")
	for _, row := range rows {
		b.WriteString(strings.Join(row, "\t"))
		b.WriteString("\n")
	}

	path := filepath.Join(outputDir, name)
	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
