package iofetch

import (
	"fmt"

	"github.com/econdata/cpidb/pkg/errcode"
)

// RequestError creates an error for when a download request cannot
// be built or completed.
func RequestError(url string, err error) error {
	msg := `Cannot download <em>%s</em>

<em>Possible causes:</em>
  - No network connectivity
  - The download site is unreachable
  - The request timed out

<em>How to fix:</em>
  1. Check the URL is reachable: <em>curl -I %s</em>
  2. Raise fetch.timeout_sec in config.yaml for large files`

	vars := []any{url, url}

	return &errcode.Error{
		Code: errcode.FetchRequestError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("failed to fetch %s: %w", url, err),
	}
}

// StatusError creates an error for a non-200 response.
func StatusError(url string, status int) error {
	msg := `Download of <em>%s</em> returned status <em>%d</em>

<em>Possible causes:</em>
  - The file moved or was renamed
  - The server rejected the request (BLS returns 403 when the
    User-Agent header is missing or blocked)

<em>How to fix:</em>
  1. Check the file listing at the base URL
  2. Set fetch.user_agent in config.yaml`

	vars := []any{url, status}

	return &errcode.Error{
		Code: errcode.FetchStatusError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf(
			"unexpected status %d for %s", status, url),
	}
}

// BodyError creates an error for when a response body cannot be
// read in full.
func BodyError(url string, err error) error {
	msg := `Download of <em>%s</em> was interrupted`
	vars := []any{url}

	return &errcode.Error{
		Code: errcode.FetchBodyError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf(
			"failed to read body of %s: %w", url, err),
	}
}
