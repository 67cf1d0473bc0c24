package iofs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestEnsureDirs_CreatesDirectories verifies all required
// directories are created.
func TestEnsureDirs_CreatesDirectories(t *testing.T) {
	tmpDir := t.TempDir()

	err := EnsureDirs(tmpDir)
	require.NoError(t, err)

	configDir := filepath.Join(tmpDir, ".config", "cpidb")
	info, err := os.Stat(configDir)
	require.NoError(t, err)
	assert.True(t, info.IsDir(),
		"Config directory should exist")

	cacheDir := filepath.Join(tmpDir, ".cache", "cpidb")
	info, err = os.Stat(cacheDir)
	require.NoError(t, err)
	assert.True(t, info.IsDir(),
		"Cache directory should exist")

	logDir := filepath.Join(tmpDir, ".local", "share", "cpidb",
		"logs")
	info, err = os.Stat(logDir)
	require.NoError(t, err)
	assert.True(t, info.IsDir(),
		"Log directory should exist")
}

// TestEnsureDirs_Idempotent verifies multiple calls work.
func TestEnsureDirs_Idempotent(t *testing.T) {
	tmpDir := t.TempDir()

	err := EnsureDirs(tmpDir)
	require.NoError(t, err)

	err = EnsureDirs(tmpDir)
	require.NoError(t, err)
}

// TestTouchDir_CreatesNewDirectory verifies new directory
// creation.
func TestTouchDir_CreatesNewDirectory(t *testing.T) {
	tmpDir := t.TempDir()
	newDir := filepath.Join(tmpDir, "test", "subdir")

	err := touchDir(newDir)
	require.NoError(t, err)

	info, err := os.Stat(newDir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

// TestEnsureConfigFile_CreatesFile verifies config file
// is created with the embedded template content.
func TestEnsureConfigFile_CreatesFile(t *testing.T) {
	tmpDir := t.TempDir()

	err := EnsureDirs(tmpDir)
	require.NoError(t, err)

	err = EnsureConfigFile(tmpDir)
	require.NoError(t, err)

	configPath := filepath.Join(tmpDir, ".config", "cpidb",
		"config.yaml")
	content, err := os.ReadFile(configPath)
	require.NoError(t, err)
	assert.Equal(t, ConfigYAML, string(content),
		"Config file content should match embedded template")
}

// TestEnsureConfigFile_Idempotent verifies existing file
// is not overwritten.
func TestEnsureConfigFile_Idempotent(t *testing.T) {
	tmpDir := t.TempDir()

	err := EnsureDirs(tmpDir)
	require.NoError(t, err)

	err = EnsureConfigFile(tmpDir)
	require.NoError(t, err)

	configPath := filepath.Join(tmpDir, ".config", "cpidb",
		"config.yaml")

	customContent := "# Custom config\ndatabase:\n  url: custom.db"
	err = os.WriteFile(configPath, []byte(customContent), 0644)
	require.NoError(t, err)

	err = EnsureConfigFile(tmpDir)
	require.NoError(t, err)

	content, err := os.ReadFile(configPath)
	require.NoError(t, err)
	assert.Equal(t, customContent, string(content),
		"Existing config file should not be overwritten")
}

// TestEnsureSourcesFile_CreatesFile verifies sources file
// is created with the embedded template content.
func TestEnsureSourcesFile_CreatesFile(t *testing.T) {
	tmpDir := t.TempDir()

	err := EnsureDirs(tmpDir)
	require.NoError(t, err)

	err = EnsureSourcesFile(tmpDir)
	require.NoError(t, err)

	sourcesPath := filepath.Join(tmpDir, ".config", "cpidb",
		"sources.yaml")
	content, err := os.ReadFile(sourcesPath)
	require.NoError(t, err)
	assert.Equal(t, SourcesYAML, string(content),
		"Sources file content should match embedded template")
}

// TestEnsureSourcesFile_Idempotent verifies existing file
// is not overwritten.
func TestEnsureSourcesFile_Idempotent(t *testing.T) {
	tmpDir := t.TempDir()

	err := EnsureDirs(tmpDir)
	require.NoError(t, err)

	err = EnsureSourcesFile(tmpDir)
	require.NoError(t, err)

	sourcesPath := filepath.Join(tmpDir, ".config", "cpidb",
		"sources.yaml")

	customContent := "base_url: https://example.org/mirror/"
	err = os.WriteFile(sourcesPath, []byte(customContent), 0644)
	require.NoError(t, err)

	err = EnsureSourcesFile(tmpDir)
	require.NoError(t, err)

	content, err := os.ReadFile(sourcesPath)
	require.NoError(t, err)
	assert.Equal(t, customContent, string(content),
		"Existing sources file should not be overwritten")
}

// TestConfigYAML_Embedded verifies embedded config is
// not empty.
func TestConfigYAML_Embedded(t *testing.T) {
	assert.NotEmpty(t, ConfigYAML,
		"Embedded ConfigYAML should not be empty")
	assert.Contains(t, ConfigYAML, "database",
		"ConfigYAML should contain database section")
	assert.Contains(t, ConfigYAML, "log",
		"ConfigYAML should contain log section")
}

// TestSourcesYAML_Embedded verifies embedded sources is
// not empty.
func TestSourcesYAML_Embedded(t *testing.T) {
	assert.NotEmpty(t, SourcesYAML,
		"Embedded SourcesYAML should not be empty")
	assert.Contains(t, SourcesYAML, "base_url",
		"SourcesYAML should point at a download directory")
	assert.Contains(t, SourcesYAML, "cu.data.0.Current",
		"SourcesYAML should list the CPI-U data file")
}
