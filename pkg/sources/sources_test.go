package sources_test

import (
	"testing"

	"github.com/econdata/cpidb/pkg/sources"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	c := sources.Default()

	require.NoError(t, c.Validate())
	assert.Equal(t, "\t", c.Delimiter)
	require.Len(t, c.Files, 4)

	// Dimension files come before the fact file.
	for _, f := range c.Files[:3] {
		assert.Equal(t, sources.KindDimension, f.Kind, f.Name)
	}
	last := c.Files[3]
	assert.Equal(t, "cu.data.0.Current", last.Name)
	assert.Equal(t, "data", last.Table)
	assert.Equal(t, sources.KindObservations, last.Kind)
}

func TestCatalogURL(t *testing.T) {
	c := sources.Default()
	got := c.URL(c.Files[0])
	assert.Equal(t,
		"https://download.bls.gov/pub/time.series/cu/cu.area", got)

	// Base URL without a trailing slash joins the same way.
	c.BaseURL = "https://example.org/mirror"
	got = c.URL(sources.File{Name: "cu.item"})
	assert.Equal(t, "https://example.org/mirror/cu.item", got)
}

func TestValidateDefaults(t *testing.T) {
	c := &sources.Catalog{
		BaseURL: "https://example.org/cu/",
		Files: []sources.File{
			{Name: "cu.area", Table: "areas"},
		},
	}

	require.NoError(t, c.Validate())
	assert.Equal(t, "\t", c.Delimiter)
	assert.Equal(t, sources.KindDimension, c.Files[0].Kind)
}

func TestValidateFailures(t *testing.T) {
	tests := []struct {
		msg     string
		catalog sources.Catalog
	}{
		{
			"bad base url",
			sources.Catalog{
				BaseURL: "ftp://example.org/",
				Files:   []sources.File{{Name: "f", Table: "t"}},
			},
		},
		{
			"no files",
			sources.Catalog{BaseURL: "https://example.org/"},
		},
		{
			"missing table",
			sources.Catalog{
				BaseURL: "https://example.org/",
				Files:   []sources.File{{Name: "cu.area"}},
			},
		},
		{
			"table not an identifier",
			sources.Catalog{
				BaseURL: "https://example.org/",
				Files: []sources.File{
					{Name: "cu.area", Table: "areas; drop"},
				},
			},
		},
		{
			"unknown kind",
			sources.Catalog{
				BaseURL: "https://example.org/",
				Files: []sources.File{
					{Name: "cu.area", Table: "areas", Kind: "facts"},
				},
			},
		},
	}

	for _, tt := range tests {
		err := tt.catalog.Validate()
		assert.Error(t, err, tt.msg)
	}
}
