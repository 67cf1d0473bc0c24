package ioload

import (
	"fmt"

	"github.com/econdata/cpidb/pkg/errcode"
)

// NotConnectedError creates an error for when a load is attempted
// without a database connection.
func NotConnectedError() error {
	msg := "Load operation attempted without database connection"

	return &errcode.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("not connected to database"),
	}
}

// ParseError creates an error for when a downloaded file cannot be
// split into header and rows.
func ParseError(file string, err error) error {
	msg := `Cannot parse downloaded file <em>%s</em>

<em>Possible causes:</em>
  - The download returned an HTML error page instead of data
  - The delimiter in sources.yaml does not match the file

<em>How to fix:</em>
  1. Open the source URL in a browser and check its format
  2. Verify the delimiter setting in sources.yaml`

	vars := []any{file}

	return &errcode.Error{
		Code: errcode.LoadParseError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("failed to parse %s: %w", file, err),
	}
}

// MalformedRowError creates an error for a data row that does not fit
// the shape established by the file's header and first row. Line
// numbers are 1-based positions in the source file, header included.
func MalformedRowError(table string, line int, reason string) error {
	msg := `Malformed row in source file for table <em>%s</em>

<em>Line:</em> %d
<em>Problem:</em> row %s

The load was rolled back; the table keeps its previous contents.`

	vars := []any{table, line, reason}

	return &errcode.Error{
		Code: errcode.LoadMalformedRowError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("malformed row at line %d for table %s: row %s",
			line, table, reason),
	}
}

// MissingColumnError creates an error for when the fact file header
// lacks a column the load depends on.
func MissingColumnError(column string, err error) error {
	msg := `Data file header is missing the <em>%s</em> column

<em>How to fix:</em>
  1. Check the source URL in sources.yaml points at a BLS data file
  2. Compare the file's first line with the expected columns:
     series_id, year, period, value, footnote_codes`

	vars := []any{column}

	return &errcode.Error{
		Code: errcode.LoadMissingColumnError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("missing column: %w", err),
	}
}

// InsertError creates an error for bulk insert failures.
func InsertError(table string, err error) error {
	msg := `Failed to insert records into table <em>%s</em>

<em>Possible causes:</em>
  - Table is missing (run <em>cpidb create</em> first)
  - Value does not fit the column type
  - Database is locked by another process`

	vars := []any{table}

	return &errcode.Error{
		Code: errcode.LoadInsertError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("failed to insert into %s: %w", table, err),
	}
}

// TableWidthError creates an error for when the source file carries
// more columns than the destination table has.
func TableWidthError(table string, have, width int) error {
	msg := `Source file does not fit table <em>%s</em>

<em>Table columns:</em> %d
<em>File columns:</em> %d

A source file may carry fewer columns than its table, never more.`

	vars := []any{table, have, width}

	return &errcode.Error{
		Code: errcode.LoadMalformedRowError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("file width %d exceeds table %s width %d",
			width, table, have),
	}
}

// UnknownTableError creates an error for when sources.yaml routes a
// file to a table that is not part of the schema.
func UnknownTableError(table string) error {
	msg := `Unknown destination table <em>%s</em>

<em>How to fix:</em>
  1. Check the table names in sources.yaml
  2. Valid tables: areas, items, periods, data`

	vars := []any{table}

	return &errcode.Error{
		Code: errcode.ConfigSourcesError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("unknown table: %s", table),
	}
}

// CancelledError creates an error for when the update run is
// cancelled.
func CancelledError(err error) error {
	msg := "Update run was cancelled"

	return &errcode.Error{
		Code: errcode.UnknownError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("update cancelled: %w", err),
	}
}
