package schema

import (
	"fmt"
	"reflect"
	"strings"
)

// ViewName is the denormalized read view joining the fact table to all
// three dimensions.
const ViewName = "data_view"

// DropViewDDL removes the read view; it is recreated on every update
// run so it always reflects current table contents.
const DropViewDDL = "DROP VIEW IF EXISTS data_view"

// ViewDDL builds the read view. All joins are left joins: a fact row
// whose code has no dimension row still appears, with NULL dimension
// attributes.
const ViewDDL = `CREATE VIEW data_view AS
SELECT
    d.series_id, d.area_code, a.area_name, d.item_code,
    i.item_name, d.year, d.period, p.period_name, d.value
FROM data d
LEFT JOIN areas a ON
    a.area_code = d.area_code
LEFT JOIN items i ON
    i.item_code = d.item_code
LEFT JOIN periods p ON
    p.period = d.period`

// generateDDL creates an idempotent CREATE TABLE statement from struct
// tags, with optional table-level constraint clauses appended after the
// columns.
func generateDDL(model interface{}, tableName string, constraints ...string) string {
	v := reflect.ValueOf(model)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	t := v.Type()

	var lines []string

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		dbTag := field.Tag.Get("db")
		ddlTag := field.Tag.Get("ddl")

		if dbTag != "" && ddlTag != "" {
			lines = append(lines, fmt.Sprintf("    %s %s", dbTag, ddlTag))
		}
	}

	for _, c := range constraints {
		lines = append(lines, "    "+c)
	}

	ddl := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n%s\n);",
		tableName,
		strings.Join(lines, ",\n"))

	return ddl
}

// Columns returns the db column names of a model in declaration order,
// which is also the physical column order of its table.
func Columns(model interface{}) []string {
	v := reflect.ValueOf(model)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	t := v.Type()

	var cols []string
	for i := 0; i < t.NumField(); i++ {
		if dbTag := t.Field(i).Tag.Get("db"); dbTag != "" {
			cols = append(cols, dbTag)
		}
	}
	return cols
}
