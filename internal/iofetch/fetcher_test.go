package iofetch_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/econdata/cpidb/internal/iofetch"
	"github.com/econdata/cpidb/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetch_ReturnsBody(t *testing.T) {
	const body = "area_code\tarea_name\n0000\tU.S. city average\n"

	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			gotUA = r.Header.Get("User-Agent")
			w.Write([]byte(body))
		}))
	defer srv.Close()

	cfg := config.New()
	f := iofetch.New(&cfg.Fetch)

	got, err := f.Fetch(context.Background(), srv.URL+"/cu.area")
	require.NoError(t, err)
	assert.Equal(t, body, got)
	assert.Equal(t, cfg.Fetch.UserAgent, gotUA,
		"the configured User-Agent should reach the server")
}

func TestFetch_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "forbidden", http.StatusForbidden)
		}))
	defer srv.Close()

	cfg := config.New()
	f := iofetch.New(&cfg.Fetch)

	_, err := f.Fetch(context.Background(), srv.URL+"/cu.item")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
}

func TestFetch_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			if calls.Add(1) == 1 {
				http.Error(w, "boom",
					http.StatusInternalServerError)
				return
			}
			w.Write([]byte("ok"))
		}))
	defer srv.Close()

	cfg := config.New()
	cfg.Fetch.RetryMax = 2
	f := iofetch.New(&cfg.Fetch)

	got, err := f.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "ok", got)
	assert.Equal(t, int32(2), calls.Load(),
		"first attempt fails, the retry succeeds")
}

func TestFetch_CancelledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("never seen"))
		}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cfg := config.New()
	f := iofetch.New(&cfg.Fetch)

	_, err := f.Fetch(ctx, srv.URL)
	assert.Error(t, err)
}

func TestFetch_BadURL(t *testing.T) {
	cfg := config.New()
	f := iofetch.New(&cfg.Fetch)

	_, err := f.Fetch(context.Background(), "http://[::1]:namedport")
	assert.Error(t, err)
}
