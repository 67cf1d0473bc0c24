// Package bls handles the flat-file format of the Bureau of Labor
// Statistics time-series downloads: delimited text with one header
// line, and composite series identifiers that encode survey, seasonal
// adjustment, periodicity, area and item in fixed positions.
//
// The package is pure: no network or database access.
package bls

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyInput is returned when the text contains no lines at all.
var ErrEmptyInput = errors.New("empty input")

// ErrNoRows is returned when the text contains a header but no data rows.
var ErrNoRows = errors.New("no data rows after header")

// Table holds parsed delimited text: trimmed header names plus data
// rows split into positional fields.
type Table struct {
	Columns []string
	Rows    [][]string
}

// Parse splits delimited text into a Table. The first line is the
// header; each header token is trimmed of surrounding whitespace, as
// BLS files pad column names to fixed widths. Data fields are kept
// verbatim. Blank lines and CRLF endings are tolerated.
func Parse(text, sep string) (*Table, error) {
	lines := splitLines(text)
	if len(lines) == 0 {
		return nil, ErrEmptyInput
	}

	cols := strings.Split(lines[0], sep)
	for i := range cols {
		cols[i] = strings.TrimSpace(cols[i])
	}

	rows := make([][]string, 0, len(lines)-1)
	for _, line := range lines[1:] {
		rows = append(rows, strings.Split(line, sep))
	}
	if len(rows) == 0 {
		return nil, ErrNoRows
	}

	return &Table{Columns: cols, Rows: rows}, nil
}

// ColumnIndex returns the position of the named column, or an error
// when the header does not carry it.
func (t *Table) ColumnIndex(name string) (int, error) {
	for i, c := range t.Columns {
		if c == name {
			return i, nil
		}
	}
	return 0, fmt.Errorf("column %q not found in header %v", name, t.Columns)
}

func splitLines(text string) []string {
	var res []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		res = append(res, line)
	}
	return res
}
