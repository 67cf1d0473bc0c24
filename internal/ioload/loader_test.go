package ioload

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/econdata/cpidb/internal/ioschema"
	"github.com/econdata/cpidb/internal/iotesting"
	"github.com/econdata/cpidb/pkg/bls"
	"github.com/econdata/cpidb/pkg/config"
	"github.com/econdata/cpidb/pkg/db"
	"github.com/econdata/cpidb/pkg/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	cfg := config.New()
	cfg.Load.Progress = false
	return cfg
}

func setupLoader(t *testing.T) (*loader, db.Operator) {
	t.Helper()
	op := iotesting.Connect(t)
	ctx := context.Background()
	require.NoError(t, ioschema.NewManager(op).Ensure(ctx))
	return newLoader(testConfig(), op), op
}

func parse(t *testing.T, text string) *bls.Table {
	t.Helper()
	tbl, err := bls.Parse(text, "\t")
	require.NoError(t, err)
	return tbl
}

func count(t *testing.T, op db.Operator, table string) int64 {
	t.Helper()
	var n int64
	err := op.DB().QueryRow(
		"SELECT COUNT(*) FROM " + table).Scan(&n)
	require.NoError(t, err)
	return n
}

// TestLoadDimension_SingleArea verifies the smallest useful load: a
// two-column file produces exactly one row, and the columns the file
// does not carry stay NULL.
func TestLoadDimension_SingleArea(t *testing.T) {
	l, op := setupLoader(t)
	ctx := context.Background()

	tbl := parse(t, "area_code\tarea_name\n0000\tU.S. city average\n")

	n, err := l.LoadDimension(ctx, "areas", tbl)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.Equal(t, int64(1), count(t, op, "areas"))

	var name string
	var level sql.NullInt64
	err = op.DB().QueryRow(
		`SELECT area_name, display_level FROM areas
			WHERE area_code = '0000'`).Scan(&name, &level)
	require.NoError(t, err)
	assert.Equal(t, "U.S. city average", name)
	assert.False(t, level.Valid,
		"columns absent from the file should stay NULL")
}

// TestLoadDimension_Reload verifies loading the same file twice is a
// no-op: the second load inserts nothing and the table is unchanged.
func TestLoadDimension_Reload(t *testing.T) {
	l, op := setupLoader(t)
	ctx := context.Background()

	text := "period\tperiod_abbr\tperiod_name\n" +
		"M01\tJAN\tJanuary\nM02\tFEB\tFebruary\n"

	n, err := l.LoadDimension(ctx, "periods", parse(t, text))
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	n, err = l.LoadDimension(ctx, "periods", parse(t, text))
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Equal(t, int64(2), count(t, op, "periods"))
}

// TestLoadDimension_SmallBatches verifies a load that spans several
// insert statements arrives complete.
func TestLoadDimension_SmallBatches(t *testing.T) {
	cfg := testConfig()
	cfg.Database.BatchSize = 2

	op := iotesting.Connect(t)
	ctx := context.Background()
	require.NoError(t, ioschema.NewManager(op).Ensure(ctx))
	l := newLoader(cfg, op)

	text := "item_code\titem_name\n" +
		"SA0\tAll items\n" +
		"SA0E\tEnergy\n" +
		"SAF\tFood and beverages\n" +
		"SAH\tHousing\n" +
		"SAM\tMedical care\n"

	n, err := l.LoadDimension(ctx, "items", parse(t, text))
	require.NoError(t, err)
	assert.Equal(t, int64(5), n)
	assert.Equal(t, int64(5), count(t, op, "items"))
}

// TestLoadDimension_MalformedRow verifies a short row aborts the load
// and rolls back everything, reporting the 1-based source line.
func TestLoadDimension_MalformedRow(t *testing.T) {
	l, op := setupLoader(t)
	ctx := context.Background()

	tbl := parse(t,
		"area_code\tarea_name\n0000\tU.S. city average\nS300\n")

	_, err := l.LoadDimension(ctx, "areas", tbl)
	require.Error(t, err)

	var appErr *errcode.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, errcode.LoadMalformedRowError, appErr.Code)
	assert.Contains(t, appErr.Message(), "3",
		"short row is on source line 3")

	assert.Zero(t, count(t, op, "areas"),
		"failed load must not leave partial rows")
}

// TestLoadDimension_WiderThanTable verifies a file with more columns
// than its table is rejected.
func TestLoadDimension_WiderThanTable(t *testing.T) {
	l, _ := setupLoader(t)
	ctx := context.Background()

	tbl := parse(t, "period\tperiod_abbr\tperiod_name\textra\n"+
		"M01\tJAN\tJanuary\tx\n")

	_, err := l.LoadDimension(ctx, "periods", tbl)
	require.Error(t, err)

	var appErr *errcode.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, errcode.LoadMalformedRowError, appErr.Code)
}

// TestLoadDimension_UnknownTable verifies a catalog entry routed to a
// table outside the schema is rejected before touching the database.
func TestLoadDimension_UnknownTable(t *testing.T) {
	l, _ := setupLoader(t)
	ctx := context.Background()

	tbl := parse(t, "a\tb\n1\t2\n")

	_, err := l.LoadDimension(ctx, "bogus", tbl)
	require.Error(t, err)

	var appErr *errcode.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, errcode.ConfigSourcesError, appErr.Code)
}

// TestLoadObservations_DecomposesSeriesID verifies each fact row
// carries the survey components sliced out of its series identifier,
// and that the identifier itself is stored verbatim, padding included.
func TestLoadObservations_DecomposesSeriesID(t *testing.T) {
	l, op := setupLoader(t)
	ctx := context.Background()

	tbl := parse(t,
		"series_id\tyear\tperiod\tvalue\tfootnote_codes\n"+
			"CUSR0000SA0      \t2024\tM01\t308.417\t\n")

	n, err := l.LoadObservations(ctx, "data", tbl)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	var id int64
	var year int
	var value float64
	var seriesID, prefix, seasonal, periodicity string
	var areaCode, itemCode, period string
	err = op.DB().QueryRow(
		`SELECT id, series_id, prefix, seasonal, periodicity,
			area_code, item_code, year, period, value
			FROM data`).Scan(
		&id, &seriesID, &prefix, &seasonal, &periodicity,
		&areaCode, &itemCode, &year, &period, &value)
	require.NoError(t, err)

	assert.Equal(t, int64(1), id)
	assert.Equal(t, "CUSR0000SA0      ", seriesID)
	assert.Equal(t, "CU", prefix)
	assert.Equal(t, "S", seasonal)
	assert.Equal(t, "R", periodicity)
	assert.Equal(t, "0000", areaCode)
	assert.Equal(t, "SA0", itemCode, "item code is trimmed")
	assert.Equal(t, 2024, year)
	assert.Equal(t, "M01", period)
	assert.InDelta(t, 308.417, value, 0.0001)
}

// TestLoadObservations_PlaceholderValue verifies non-numeric values,
// such as the "-" placeholder, load as NULL rather than failing.
func TestLoadObservations_PlaceholderValue(t *testing.T) {
	l, op := setupLoader(t)
	ctx := context.Background()

	tbl := parse(t,
		"series_id\tyear\tperiod\tvalue\tfootnote_codes\n"+
			"CUSR0000SA0\t2024\tM01\t-\t\n")

	n, err := l.LoadObservations(ctx, "data", tbl)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	var value sql.NullFloat64
	err = op.DB().QueryRow("SELECT value FROM data").Scan(&value)
	require.NoError(t, err)
	assert.False(t, value.Valid)
}

// TestLoadObservations_OverlappingReload verifies a second load over
// partially overlapping data inserts only the new periods, with ids
// that continue past the ids already assigned.
func TestLoadObservations_OverlappingReload(t *testing.T) {
	l, op := setupLoader(t)
	ctx := context.Background()

	first := parse(t,
		"series_id\tyear\tperiod\tvalue\tfootnote_codes\n"+
			"CUSR0000SA0\t2024\tM01\t308.417\t\n"+
			"CUSR0000SA0\t2024\tM02\t310.326\t\n")

	n, err := l.LoadObservations(ctx, "data", first)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	second := parse(t,
		"series_id\tyear\tperiod\tvalue\tfootnote_codes\n"+
			"CUSR0000SA0\t2024\tM02\t310.326\t\n"+
			"CUSR0000SA0\t2024\tM03\t312.107\t\n")

	n, err = l.LoadObservations(ctx, "data", second)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n, "only the new period inserts")
	assert.Equal(t, int64(3), count(t, op, "data"))

	var id int64
	err = op.DB().QueryRow(
		"SELECT id FROM data WHERE period = 'M03'").Scan(&id)
	require.NoError(t, err)
	assert.Greater(t, id, int64(2),
		"ids of a later load continue past existing ids")
}

// TestLoadObservations_MissingColumn verifies the header check fires
// before any insert when a required column is absent.
func TestLoadObservations_MissingColumn(t *testing.T) {
	l, op := setupLoader(t)
	ctx := context.Background()

	tbl := parse(t, "series_id\tyear\tperiod\tfootnote_codes\n"+
		"CUSR0000SA0\t2024\tM01\t\n")

	_, err := l.LoadObservations(ctx, "data", tbl)
	require.Error(t, err)

	var appErr *errcode.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, errcode.LoadMissingColumnError, appErr.Code)
	assert.Zero(t, count(t, op, "data"))
}

// TestLoadObservations_BadYearRollsBack verifies a row with an
// unparseable year aborts the whole load.
func TestLoadObservations_BadYearRollsBack(t *testing.T) {
	l, op := setupLoader(t)
	ctx := context.Background()

	tbl := parse(t,
		"series_id\tyear\tperiod\tvalue\tfootnote_codes\n"+
			"CUSR0000SA0\t2024\tM01\t308.417\t\n"+
			"CUSR0000SA0\t20x4\tM02\t310.326\t\n")

	_, err := l.LoadObservations(ctx, "data", tbl)
	require.Error(t, err)
	assert.Zero(t, count(t, op, "data"))
}

// TestLoadDimension_Postgres runs the dimension load against
// PostgreSQL. Skipped unless CPIDB_TEST_PG_URL is set.
func TestLoadDimension_Postgres(t *testing.T) {
	op := iotesting.ConnectPG(t)
	ctx := context.Background()
	require.NoError(t, ioschema.NewManager(op).Ensure(ctx))
	t.Cleanup(func() {
		for _, table := range []string{
			"areas", "items", "periods", "data",
		} {
			op.DB().Exec("DROP TABLE IF EXISTS " + table + " CASCADE")
		}
	})
	l := newLoader(testConfig(), op)

	text := "area_code\tarea_name\n0000\tU.S. city average\n"

	n, err := l.LoadDimension(ctx, "areas", parse(t, text))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = l.LoadDimension(ctx, "areas", parse(t, text))
	require.NoError(t, err)
	assert.Zero(t, n, "ON CONFLICT DO NOTHING skips the duplicate")
}
