// Package errcode defines error codes and the application error type
// used across cpidb packages.
package errcode

import "fmt"

// Code classifies an error for logging and user-facing reporting.
type Code int

const (
	UnknownError Code = iota

	// File System errors
	CreateDirError
	CopyFileError
	ReadFileError

	// Logging errors
	CreateLogFileError

	// Configuration errors
	ConfigTargetMissingError
	ConfigSourcesError

	// Database errors
	DBConnectionError
	DBNotConnectedError
	DBTableCheckError

	// Schema errors
	SchemaCreateError

	// Fetch (transport) errors
	FetchRequestError
	FetchStatusError
	FetchBodyError

	// Load errors
	LoadParseError
	LoadMalformedRowError
	LoadMissingColumnError
	LoadInsertError

	// View errors
	ViewDropError
	ViewCreateError
	ViewCountError

	// Verify errors
	VerifyQueryError
)

// Error is the application error. Msg is a fmt template rendered with
// Vars for user-facing output; Err carries the wrapped low-level error
// for logs and errors.Is/As chains.
type Error struct {
	Code Code
	Msg  string
	Vars []any
	Err  error
}

// Error returns the low-level error text, falling back to the
// user-facing message when no wrapped error is present.
func (e *Error) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message()
}

// Message renders the user-facing description.
func (e *Error) Message() string {
	if len(e.Vars) == 0 {
		return e.Msg
	}
	return fmt.Sprintf(e.Msg, e.Vars...)
}

// Unwrap exposes the wrapped error to errors.Is and errors.As.
func (e *Error) Unwrap() error {
	return e.Err
}
