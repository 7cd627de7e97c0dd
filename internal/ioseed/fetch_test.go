package ioseed

import (
	"compress/gzip"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/worldable/worlddb/pkg/config"
	"github.com/worldable/worlddb/pkg/sources"
)

func newTestSeeder() *seeder {
	return &seeder{cfg: config.New()}
}

func TestFetchPlain(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`[{"id":1}]`))
		}))
	defer srv.Close()

	s := newTestSeeder()
	body, err := s.fetch(context.Background(),
		&sources.DataSourceConfig{Component: "countries", URL: srv.URL})
	require.NoError(t, err)
	defer body.Close()

	bs, err := io.ReadAll(body)
	require.NoError(t, err)
	assert.Equal(t, `[{"id":1}]`, string(bs))
}

func TestFetchGzip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			gz := gzip.NewWriter(w)
			gz.Write([]byte(`[{"id":2}]`))
			gz.Close()
		}))
	defer srv.Close()

	s := newTestSeeder()
	body, err := s.fetch(context.Background(),
		&sources.DataSourceConfig{
			Component:   "cities",
			URL:         srv.URL,
			Compression: "gzip",
		})
	require.NoError(t, err)
	defer body.Close()

	bs, err := io.ReadAll(body)
	require.NoError(t, err)
	assert.Equal(t, `[{"id":2}]`, string(bs))
}

func TestFetchBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			http.NotFound(w, r)
		}))
	defer srv.Close()

	s := newTestSeeder()
	_, err := s.fetch(context.Background(),
		&sources.DataSourceConfig{Component: "countries", URL: srv.URL})
	assert.Error(t, err)
}

func TestFetchBadGzip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("not gzip at all"))
		}))
	defer srv.Close()

	s := newTestSeeder()
	_, err := s.fetch(context.Background(),
		&sources.DataSourceConfig{
			Component:   "cities",
			URL:         srv.URL,
			Compression: "gzip",
		})
	assert.Error(t, err)
}
