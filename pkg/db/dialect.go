package db

import (
	"fmt"
	"strings"
)

// Dialect identifies the storage engine behind an Operator. The schema
// DDL is shared between engines; the dialect only changes how duplicate
// rows are ignored during inserts and how table existence is checked.
type Dialect int

const (
	// SQLite is the file-backed engine, used when the target is a path.
	SQLite Dialect = iota
	// Postgres is used when the target is a postgres:// URL.
	Postgres
)

func (d Dialect) String() string {
	switch d {
	case SQLite:
		return "sqlite"
	case Postgres:
		return "postgres"
	}
	return "unknown"
}

// InsertIgnore builds a multi-row insert statement that skips rows
// violating a unique constraint instead of failing. The statement uses
// `?` placeholders; callers rebind it for the connected engine with
// sqlx.Rebind. Width is the number of columns per row, rows the number
// of value tuples.
func (d Dialect) InsertIgnore(table string, width, rows int) string {
	return d.insertIgnore(table, "", width, rows)
}

// InsertIgnoreColumns is InsertIgnore with an explicit column list, for
// tables where the values do not cover every column in order.
func (d Dialect) InsertIgnoreColumns(
	table string, columns []string, rows int,
) string {
	colList := "(" + strings.Join(columns, ", ") + ") "
	return d.insertIgnore(table, colList, len(columns), rows)
}

func (d Dialect) insertIgnore(
	table, colList string, width, rows int,
) string {
	placeholders := make([]string, width)
	for i := range placeholders {
		placeholders[i] = "?"
	}
	tuple := "(" + strings.Join(placeholders, ", ") + ")"

	tuples := make([]string, rows)
	for i := range tuples {
		tuples[i] = tuple
	}
	values := strings.Join(tuples, ", ")

	if d == Postgres {
		return fmt.Sprintf(
			"INSERT INTO %s %sVALUES %s ON CONFLICT DO NOTHING",
			table, colList, values,
		)
	}
	return fmt.Sprintf(
		"INSERT OR IGNORE INTO %s %sVALUES %s",
		table, colList, values,
	)
}
