package sources

import "fmt"

// Validate checks the catalog for errors and applies defaults.
func (c *Catalog) Validate() error {
	if !IsValidURL(c.BaseURL) {
		return fmt.Errorf(
			"base_url must be an http(s) URL, got '%s'", c.BaseURL,
		)
	}

	if c.Delimiter == "" {
		c.Delimiter = "\t"
	}

	if len(c.Files) == 0 {
		return fmt.Errorf("no files specified in catalog")
	}

	for i := range c.Files {
		if err := c.Files[i].Validate(); err != nil {
			return fmt.Errorf("file %d: %w", i+1, err)
		}
	}

	return nil
}

// Validate checks a single file entry and applies defaults.
func (f *File) Validate() error {
	if f.Name == "" {
		return fmt.Errorf("name is required")
	}

	if f.Table == "" {
		return fmt.Errorf("table is required")
	}
	// Table names end up inside SQL statements, so only plain
	// identifiers are allowed.
	if !isIdentifier(f.Table) {
		return fmt.Errorf(
			"invalid table name '%s': letters, digits and "+
				"underscores only", f.Table,
		)
	}

	switch f.Kind {
	case "":
		f.Kind = KindDimension
	case KindDimension, KindObservations:
	default:
		return fmt.Errorf(
			"invalid kind '%s': must be '%s' or '%s'",
			f.Kind, KindDimension, KindObservations,
		)
	}

	return nil
}

func isIdentifier(s string) bool {
	for i, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r == '_':
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return len(s) > 0
}
