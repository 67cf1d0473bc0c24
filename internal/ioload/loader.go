// Package ioload bulk-loads parsed source files into the star schema
// and orchestrates a full data refresh. This is an impure I/O package
// that implements contracts defined in pkg/.
package ioload

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/econdata/cpidb/pkg/bls"
	"github.com/econdata/cpidb/pkg/config"
	"github.com/econdata/cpidb/pkg/db"
	"github.com/econdata/cpidb/pkg/schema"
)

// loader performs the bulk inserts for one storage target.
type loader struct {
	cfg      *config.Config
	operator db.Operator
}

// newLoader creates a loader sharing the pipeline's connection.
func newLoader(cfg *config.Config, op db.Operator) *loader {
	return &loader{cfg: cfg, operator: op}
}

// LoadDimension bulk-inserts a parsed lookup file into table. Values
// are stored raw; the file's columns map onto the table's leading
// columns in order, so a file carrying only area_code and area_name
// fills those two columns and leaves the rest NULL.
//
// Duplicate keys are skipped, which makes reloading the same file a
// no-op. The whole load runs in one transaction; the returned count
// covers newly inserted rows only.
func (l *loader) LoadDimension(
	ctx context.Context,
	table string,
	tbl *bls.Table,
) (int64, error) {
	// The first data row fixes the arity for the whole file.
	width := len(tbl.Rows[0])
	columns, err := dimensionColumns(table, width)
	if err != nil {
		return 0, err
	}

	for i, row := range tbl.Rows {
		if len(row) != width {
			return 0, MalformedRowError(table, i+2,
				fmt.Sprintf("has %d fields, want %d", len(row), width))
		}
	}

	tx, err := l.operator.DB().BeginTxx(ctx, nil)
	if err != nil {
		return 0, InsertError(table, err)
	}
	defer tx.Rollback()

	dialect := l.operator.Dialect()
	batchSize := l.cfg.Database.BatchSize

	bar := newProgressBar(
		l.cfg.Load.Progress, "Loading "+table+": ", len(tbl.Rows),
	)

	var total int64
	for start := 0; start < len(tbl.Rows); start += batchSize {
		end := min(start+batchSize, len(tbl.Rows))
		batch := tbl.Rows[start:end]

		stmt := dialect.InsertIgnoreColumns(table, columns, len(batch))
		args := make([]any, 0, len(batch)*width)
		for _, row := range batch {
			for _, field := range row {
				args = append(args, field)
			}
		}

		res, err := tx.ExecContext(
			ctx, l.operator.DB().Rebind(stmt), args...,
		)
		if err != nil {
			barFinish(bar)
			return 0, InsertError(table, err)
		}
		if n, err := res.RowsAffected(); err == nil {
			total += n
		}
		barAdd(bar, len(batch))
	}
	barFinish(bar)

	if err := tx.Commit(); err != nil {
		return 0, InsertError(table, err)
	}

	return total, nil
}

// LoadObservations bulk-inserts the parsed fact file. Each row gets a
// 1-based surrogate id in source order, its series_id is decomposed
// into the survey components, and the value is parsed as a float;
// unparseable values, such as the "-" placeholder, load as NULL.
//
// Rows that already exist under the (series_id, year, period)
// constraint are skipped, so re-running a load over overlapping data
// appends only the new periods. The whole load runs in one
// transaction; a malformed row rolls all of it back.
func (l *loader) LoadObservations(
	ctx context.Context,
	table string,
	tbl *bls.Table,
) (int64, error) {
	idx, err := observationIndex(tbl)
	if err != nil {
		return 0, err
	}

	columns := schema.Columns(schema.Observation{})

	tx, err := l.operator.DB().BeginTxx(ctx, nil)
	if err != nil {
		return 0, InsertError(table, err)
	}
	defer tx.Rollback()

	// Ids continue past the table's current maximum: a fresh load
	// numbers rows 1..N in source order, and a later load over
	// overlapping data cannot collide with ids already assigned.
	var base int64
	err = tx.GetContext(ctx, &base,
		"SELECT COALESCE(MAX(id), 0) FROM "+table)
	if err != nil {
		return 0, InsertError(table, err)
	}

	dialect := l.operator.Dialect()
	batchSize := l.cfg.Database.BatchSize

	bar := newProgressBar(
		l.cfg.Load.Progress, "Loading "+table+": ", len(tbl.Rows),
	)

	var total int64
	for start := 0; start < len(tbl.Rows); start += batchSize {
		end := min(start+batchSize, len(tbl.Rows))
		batch := tbl.Rows[start:end]

		stmt := dialect.InsertIgnoreColumns(table, columns, len(batch))
		args := make([]any, 0, len(batch)*len(columns))
		for j, row := range batch {
			rowArgs, err := observationArgs(table, idx, row, start+j, base)
			if err != nil {
				barFinish(bar)
				return 0, err
			}
			args = append(args, rowArgs...)
		}

		res, err := tx.ExecContext(
			ctx, l.operator.DB().Rebind(stmt), args...,
		)
		if err != nil {
			barFinish(bar)
			return 0, InsertError(table, err)
		}
		if n, err := res.RowsAffected(); err == nil {
			total += n
		}
		barAdd(bar, len(batch))
	}
	barFinish(bar)

	if err := tx.Commit(); err != nil {
		return 0, InsertError(table, err)
	}

	return total, nil
}

// obsIndex locates the source columns LoadObservations reads.
type obsIndex struct {
	seriesID, year, period, value, footnotes int
}

func observationIndex(tbl *bls.Table) (*obsIndex, error) {
	var idx obsIndex
	for _, col := range []struct {
		name string
		dst  *int
	}{
		{"series_id", &idx.seriesID},
		{"year", &idx.year},
		{"period", &idx.period},
		{"value", &idx.value},
		{"footnote_codes", &idx.footnotes},
	} {
		i, err := tbl.ColumnIndex(col.name)
		if err != nil {
			return nil, MissingColumnError(col.name, err)
		}
		*col.dst = i
	}
	return &idx, nil
}

// observationArgs converts one source row into the argument tuple for
// the fact table, in schema column order. rowIdx is 0-based and ids
// start at base+1, so a load into an empty table numbers rows 1..N in
// source order. The series identifier is kept verbatim, padding
// included, so it round-trips with BLS downloads.
func observationArgs(
	table string, idx *obsIndex, row []string, rowIdx int, base int64,
) ([]any, error) {
	need := idx.seriesID
	for _, i := range []int{
		idx.year, idx.period, idx.value, idx.footnotes,
	} {
		need = max(need, i)
	}
	if len(row) <= need {
		return nil, MalformedRowError(table, rowIdx+2,
			fmt.Sprintf("has %d fields, want at least %d",
				len(row), need+1))
	}

	seriesID := row[idx.seriesID]
	parts := bls.DecomposeSeriesID(seriesID)

	year, err := strconv.Atoi(strings.TrimSpace(row[idx.year]))
	if err != nil {
		return nil, MalformedRowError(table, rowIdx+2,
			fmt.Sprintf("year %q is not a number", row[idx.year]))
	}

	// "-" and other non-numeric placeholders load as NULL.
	var value any
	if v, err := strconv.ParseFloat(
		strings.TrimSpace(row[idx.value]), 64,
	); err == nil {
		value = v
	}

	return []any{
		base + int64(rowIdx) + 1,
		seriesID,
		parts.Prefix,
		parts.Seasonal,
		parts.Periodicity,
		parts.AreaCode,
		parts.ItemCode,
		year,
		row[idx.period],
		value,
		row[idx.footnotes],
	}, nil
}

// dimensionColumns maps a file width onto the leading columns of the
// destination table.
func dimensionColumns(table string, width int) ([]string, error) {
	for _, model := range schema.AllModels() {
		if model.TableName() != table {
			continue
		}
		columns := schema.Columns(model)
		if width < 1 || width > len(columns) {
			return nil, TableWidthError(table, len(columns), width)
		}
		return columns[:width], nil
	}
	return nil, UnknownTableError(table)
}
