package iosources

import (
	"fmt"

	"github.com/econdata/cpidb/pkg/errcode"
)

// SourcesConfigError creates an error for when sources.yaml
// cannot be loaded.
func SourcesConfigError(path string, err error) error {
	msg := `Cannot load sources configuration

<em>Configuration file:</em> %s

<em>Possible causes:</em>
  - Invalid YAML format
  - Permission denied
  - A file entry is incomplete

<em>How to fix:</em>
  1. Check the file: <em>ls -l %s</em>
  2. Validate YAML syntax
  3. Delete the file to restore the built-in catalog`

	vars := []any{path, path}

	return &errcode.Error{
		Code: errcode.ConfigSourcesError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("failed to load sources config: %w", err),
	}
}
