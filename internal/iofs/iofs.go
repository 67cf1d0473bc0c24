// Package iofs prepares the application's directories and seeds the
// default configuration files on first run.
package iofs

import (
	_ "embed"
	"os"

	"github.com/econdata/cpidb/pkg/config"
)

//go:embed config.yaml
var ConfigYAML string

//go:embed sources.yaml
var SourcesYAML string

func EnsureDirs(homeDir string) error {
	dirs := []string{
		config.ConfigDir(homeDir),
		config.CacheDir(homeDir),
		config.LogDir(homeDir),
	}
	for _, v := range dirs {
		if err := touchDir(v); err != nil {
			return err
		}
	}
	return nil
}

func touchDir(dir string) error {
	info, err := os.Stat(dir)
	if err == nil && info.IsDir() {
		return nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return CreateDirError(dir, err)
	}

	return nil
}

func EnsureConfigFile(homeDir string) error {
	configPath := config.ConfigFilePath(homeDir)

	// Keep an existing file untouched.
	if _, err := os.Stat(configPath); err == nil {
		return nil
	}

	if err := os.WriteFile(
		configPath, []byte(ConfigYAML), 0644,
	); err != nil {
		return CopyFileError(configPath, err)
	}

	return nil
}

func EnsureSourcesFile(homeDir string) error {
	sourcesPath := config.SourcesFilePath(homeDir)

	// Keep an existing file untouched.
	if _, err := os.Stat(sourcesPath); err == nil {
		return nil
	}

	if err := os.WriteFile(
		sourcesPath, []byte(SourcesYAML), 0644,
	); err != nil {
		return CopyFileError(sourcesPath, err)
	}

	return nil
}
