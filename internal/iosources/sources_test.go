package iosources

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/econdata/cpidb/pkg/config"
	"github.com/econdata/cpidb/pkg/sources"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCatalog_Minimal(t *testing.T) {
	tmpDir := t.TempDir()

	yamlContent := `
base_url: https://example.org/mirror/
files:
  - name: cu.area
    table: areas
`

	configPath := filepath.Join(tmpDir, "sources.yaml")
	err := os.WriteFile(configPath, []byte(yamlContent), 0644)
	require.NoError(t, err)

	catalog, err := loadCatalog(configPath)
	require.NoError(t, err)
	require.Len(t, catalog.Files, 1)

	f := catalog.Files[0]
	assert.Equal(t, "cu.area", f.Name)
	assert.Equal(t, "areas", f.Table)
}

func TestLoadCatalog_FileNotFound(t *testing.T) {
	_, err := loadCatalog("nonexistent.yaml")
	assert.Error(t, err)
	assert.Contains(t, err.Error(),
		"failed to read sources config file")
}

func TestLoadCatalog_BadYAML(t *testing.T) {
	tmpDir := t.TempDir()

	configPath := filepath.Join(tmpDir, "sources.yaml")
	err := os.WriteFile(
		configPath, []byte("files: {not a list"), 0644,
	)
	require.NoError(t, err)

	_, err = loadCatalog(configPath)
	assert.Error(t, err)
	assert.Contains(t, err.Error(),
		"failed to parse sources config file")
}

func TestLoad_MissingFileFallsBackToDefault(t *testing.T) {
	cfg := config.New()
	cfg.HomeDir = t.TempDir()

	catalog, err := New(cfg).Load()
	require.NoError(t, err)
	assert.Equal(t, sources.Default(), catalog)
}

func TestLoad_InvalidCatalogFails(t *testing.T) {
	cfg := config.New()
	cfg.HomeDir = t.TempDir()

	// Put a sources.yaml with a bad kind into the config dir.
	configDir := config.ConfigDir(cfg.HomeDir)
	require.NoError(t, os.MkdirAll(configDir, 0755))

	yamlContent := `
base_url: https://example.org/
files:
  - name: cu.area
    table: areas
    kind: facts
`
	err := os.WriteFile(
		config.SourcesFilePath(cfg.HomeDir),
		[]byte(yamlContent), 0644,
	)
	require.NoError(t, err)

	_, err = New(cfg).Load()
	assert.Error(t, err)
}

func TestLoad_ValidCatalog(t *testing.T) {
	cfg := config.New()
	cfg.HomeDir = t.TempDir()

	configDir := config.ConfigDir(cfg.HomeDir)
	require.NoError(t, os.MkdirAll(configDir, 0755))

	yamlContent := `
base_url: https://example.org/mirror
delimiter: "\t"
files:
  - name: cu.period
    table: periods
  - name: cu.data.0.Current
    table: data
    kind: observations
`
	err := os.WriteFile(
		config.SourcesFilePath(cfg.HomeDir),
		[]byte(yamlContent), 0644,
	)
	require.NoError(t, err)

	catalog, err := New(cfg).Load()
	require.NoError(t, err)
	require.Len(t, catalog.Files, 2)

	// Validation fills in the default kind.
	assert.Equal(t, sources.KindDimension, catalog.Files[0].Kind)
	assert.Equal(t,
		sources.KindObservations, catalog.Files[1].Kind)
	assert.Equal(t,
		"https://example.org/mirror/cu.period",
		catalog.URL(catalog.Files[0]))
}
