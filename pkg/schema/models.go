// Package schema provides database schema models for the CPI-U store.
// Models generate their own DDL from struct tags; the same DDL text is
// valid for both SQLite and PostgreSQL.
package schema

import (
	"database/sql"
)

// DDLGenerator defines how Go models generate table DDL.
type DDLGenerator interface {
	// TableDDL returns the idempotent CREATE TABLE statement.
	TableDDL() string

	// TableName returns the table name for this model.
	TableName() string
}

// Area is one row of the areas dimension: a geographic area covered by
// the CPI-U survey, such as "0000" for the U.S. city average.
type Area struct {
	AreaCode     string `db:"area_code" ddl:"TEXT NOT NULL PRIMARY KEY"`
	AreaName     string `db:"area_name" ddl:"TEXT"`
	DisplayLevel int    `db:"display_level" ddl:"INTEGER"`
	Selectable   string `db:"selectable" ddl:"TEXT"`
	SortSequence int    `db:"sort_sequence" ddl:"INTEGER"`
}

// Item is one row of the items dimension: a priced good or service
// aggregate, such as "SA0" for all items.
type Item struct {
	ItemCode     string `db:"item_code" ddl:"TEXT NOT NULL PRIMARY KEY"`
	ItemName     string `db:"item_name" ddl:"TEXT"`
	DisplayLevel int    `db:"display_level" ddl:"INTEGER"`
	Selectable   string `db:"selectable" ddl:"TEXT"`
	SortSequence int    `db:"sort_sequence" ddl:"INTEGER"`
}

// Period is one row of the periods dimension: a reporting period code
// such as "M01" (January) or "S02" (second half year).
type Period struct {
	Period     string `db:"period" ddl:"TEXT NOT NULL PRIMARY KEY"`
	PeriodAbbr string `db:"period_abbr" ddl:"TEXT"`
	PeriodName string `db:"period_name" ddl:"TEXT"`
}

// Observation is one row of the data fact table: a single measured
// index value for one series and period. The area_code, item_code and
// period columns reference the dimension tables, but the references
// are advisory: they are not declared as constraints, so fact rows may
// be loaded before their dimensions. The verify command reports rows
// whose references have no dimension row.
type Observation struct {
	ID            int64           `db:"id" ddl:"INTEGER NOT NULL PRIMARY KEY"`
	SeriesID      string          `db:"series_id" ddl:"TEXT"`
	Prefix        string          `db:"prefix" ddl:"TEXT"`
	Seasonal      string          `db:"seasonal" ddl:"TEXT"`
	Periodicity   string          `db:"periodicity" ddl:"TEXT"`
	AreaCode      string          `db:"area_code" ddl:"TEXT"`
	ItemCode      string          `db:"item_code" ddl:"TEXT"`
	Year          int             `db:"year" ddl:"INTEGER"`
	Period        string          `db:"period" ddl:"TEXT"`
	Value         sql.NullFloat64 `db:"value" ddl:"DOUBLE PRECISION"`
	FootnoteCodes string          `db:"footnote_codes" ddl:"TEXT"`
}

// Area DDL methods
func (a Area) TableDDL() string {
	return generateDDL(a, "areas")
}

func (a Area) TableName() string {
	return "areas"
}

// Item DDL methods
func (i Item) TableDDL() string {
	return generateDDL(i, "items")
}

func (i Item) TableName() string {
	return "items"
}

// Period DDL methods
func (p Period) TableDDL() string {
	return generateDDL(p, "periods")
}

func (p Period) TableName() string {
	return "periods"
}

// Observation DDL methods
func (o Observation) TableDDL() string {
	return generateDDL(o, "data",
		"UNIQUE (series_id, year, period)")
}

func (o Observation) TableName() string {
	return "data"
}

// AllModels returns the models in load order: dimensions first, the
// fact table last.
func AllModels() []DDLGenerator {
	return []DDLGenerator{
		Area{},
		Item{},
		Period{},
		Observation{},
	}
}
