package ioschema

import (
	"fmt"

	"github.com/econdata/cpidb/pkg/errcode"
)

// NotConnectedError creates an error for when schema
// operation is attempted without database connection.
func NotConnectedError() error {
	msg := "Schema operation attempted without database connection"

	return &errcode.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("not connected to database"),
	}
}

// CreateSchemaError creates an error for table creation failures.
func CreateSchemaError(table string, err error) error {
	msg := `Cannot create table <em>%s</em>

<em>Possible causes:</em>
  - Insufficient database permissions
  - An existing object with a conflicting definition

<em>How to fix:</em>
  1. Check the database user has CREATE permissions
  2. Check database logs for details`

	vars := []any{table}

	return &errcode.Error{
		Code: errcode.SchemaCreateError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf(
			"failed to create table %s: %w", table, err),
	}
}
