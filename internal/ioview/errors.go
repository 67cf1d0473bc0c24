package ioview

import (
	"fmt"

	"github.com/econdata/cpidb/pkg/errcode"
)

// NotConnectedError creates an error for when a view operation is
// attempted without database connection.
func NotConnectedError() error {
	msg := "View operation attempted without database connection"

	return &errcode.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("not connected to database"),
	}
}

// DropViewError creates an error for when the old view cannot be
// dropped.
func DropViewError(err error) error {
	msg := "Cannot drop the existing reporting view"

	return &errcode.Error{
		Code: errcode.ViewDropError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("failed to drop view: %w", err),
	}
}

// CreateViewError creates an error for when the view cannot be
// created.
func CreateViewError(err error) error {
	msg := `Cannot create the reporting view

<em>Possible causes:</em>
  - One of the four tables is missing
  - Insufficient database permissions

<em>How to fix:</em>
  1. Run <em>cpidb create</em> to build the schema first
  2. Check the database user has CREATE permissions`

	return &errcode.Error{
		Code: errcode.ViewCreateError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("failed to create view: %w", err),
	}
}

// CountViewError creates an error for when view rows cannot be
// counted.
func CountViewError(err error) error {
	msg := "Failed to count reporting view records"

	return &errcode.Error{
		Code: errcode.ViewCountError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("count query: %w", err),
	}
}
