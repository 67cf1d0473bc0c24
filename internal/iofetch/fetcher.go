// Package iofetch downloads source files over HTTP. This is an
// impure I/O package that implements contracts defined in pkg/.
package iofetch

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/econdata/cpidb/pkg/config"
	"github.com/econdata/cpidb/pkg/cpidb"
	"github.com/hashicorp/go-retryablehttp"
)

// fetcher implements cpidb.Fetcher with a retrying HTTP client.
type fetcher struct {
	cfg    *config.FetchConfig
	client *retryablehttp.Client
}

// New creates a Fetcher from the fetch configuration.
func New(cfg *config.FetchConfig) cpidb.Fetcher {
	client := retryablehttp.NewClient()
	client.RetryMax = cfg.RetryMax
	client.HTTPClient.Timeout =
		time.Duration(cfg.TimeoutSec) * time.Second
	// The client logs every attempt on its own; slog covers ours.
	client.Logger = nil

	return &fetcher{cfg: cfg, client: client}
}

// Fetch downloads one file and returns its body as text.
func (f *fetcher) Fetch(
	ctx context.Context,
	url string,
) (string, error) {
	req, err := retryablehttp.NewRequestWithContext(
		ctx, http.MethodGet, url, nil,
	)
	if err != nil {
		return "", RequestError(url, err)
	}
	// The BLS download server rejects requests without a
	// User-Agent header.
	req.Header.Set("User-Agent", f.cfg.UserAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", RequestError(url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", StatusError(url, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", BodyError(url, err)
	}

	return string(body), nil
}
