package ioverify

import (
	"fmt"

	"github.com/econdata/cpidb/pkg/errcode"
)

// NotConnectedError creates an error for when Verify is called
// without a database connection.
func NotConnectedError() error {
	msg := "Verify attempted without database connection"

	return &errcode.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("not connected to database"),
	}
}

// QueryError creates an error for when a consistency check query
// fails.
func QueryError(check string, err error) error {
	msg := `Consistency check <em>%s</em> failed

<em>Possible causes:</em>
  - The database was never created (run <em>cpidb create</em> first)
  - The schema belongs to a different application`

	vars := []any{check}

	return &errcode.Error{
		Code: errcode.VerifyQueryError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("verify %s: %w", check, err),
	}
}
