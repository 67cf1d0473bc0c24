// Package iosources loads the file catalog from sources.yaml.
package iosources

import (
	"fmt"
	"os"

	"github.com/econdata/cpidb/pkg/config"
	"github.com/econdata/cpidb/pkg/sources"
	"gopkg.in/yaml.v3"
)

type iosources struct {
	cfg *config.Config
}

func New(cfg *config.Config) sources.Loader {
	res := iosources{cfg: cfg}
	return &res
}

func (s *iosources) Load() (*sources.Catalog, error) {
	sourcesPath := config.SourcesFilePath(s.cfg.HomeDir)

	// A home without sources.yaml (bootstrap skipped, bare test
	// home) falls back to the built-in catalog.
	if _, err := os.Stat(sourcesPath); os.IsNotExist(err) {
		return sources.Default(), nil
	}

	catalog, err := loadCatalog(sourcesPath)
	if err != nil {
		return nil, SourcesConfigError(sourcesPath, err)
	}

	if err := catalog.Validate(); err != nil {
		return nil, SourcesConfigError(sourcesPath, err)
	}

	return catalog, nil
}

func loadCatalog(path string) (*sources.Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf(
			"failed to read sources config file: %w", err,
		)
	}

	var catalog sources.Catalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf(
			"failed to parse sources config file: %w", err,
		)
	}

	return &catalog, nil
}
