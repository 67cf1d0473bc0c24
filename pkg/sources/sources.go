// Package sources provides configuration and validation for the file
// catalog an update run works through.
//
// This package defines the schema for sources.yaml, which lists the
// flat files to download and the tables they feed. The built-in
// catalog covers the CPI-U survey ("cu" files); pointing the tool at
// a mirror or at another survey with the same layout is a matter of
// editing ~/.config/cpidb/sources.yaml.
package sources

// Loader loads the catalog from persistent configuration.
type Loader interface {
	Load() (*Catalog, error)
}

// Kind tells the loader how to interpret a source file.
type Kind string

const (
	// KindDimension is a lookup file (areas, items, periods): the
	// first column is the key and the file's columns map onto the
	// table's leading columns in order.
	KindDimension Kind = "dimension"

	// KindObservations is the fact file: rows carry series_id, year,
	// period and value, and each series_id is decomposed into its
	// survey components during the load.
	KindObservations Kind = "observations"
)

// Catalog represents the complete sources.yaml configuration file.
type Catalog struct {
	// BaseURL is the directory all file names are joined to.
	BaseURL string `yaml:"base_url"`

	// Delimiter separates fields within a line. BLS flat files are
	// tab-delimited; empty is treated as tab.
	Delimiter string `yaml:"delimiter,omitempty"`

	// Files lists the files to download, in load order. Dimension
	// files come first so observation loads see complete lookups.
	Files []File `yaml:"files"`
}

// File represents one source file and its destination table.
type File struct {
	// Name is the file name under BaseURL, e.g. "cu.area".
	Name string `yaml:"name"`

	// Table is the destination table, e.g. "areas".
	Table string `yaml:"table"`

	// Kind selects the load strategy. Empty is treated as dimension.
	Kind Kind `yaml:"kind,omitempty"`
}

// Default returns the built-in CPI-U catalog, mirroring the BLS
// download site layout.
func Default() *Catalog {
	return &Catalog{
		BaseURL:   "https://download.bls.gov/pub/time.series/cu/",
		Delimiter: "\t",
		Files: []File{
			{Name: "cu.area", Table: "areas", Kind: KindDimension},
			{Name: "cu.period", Table: "periods", Kind: KindDimension},
			{Name: "cu.item", Table: "items", Kind: KindDimension},
			{
				Name:  "cu.data.0.Current",
				Table: "data",
				Kind:  KindObservations,
			},
		},
	}
}
