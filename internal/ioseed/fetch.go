package ioseed

import (
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/worldable/worlddb/pkg/sources"
)

// fetch downloads a dataset and returns a reader over its decompressed
// payload. The caller must close the returned reader.
func (s *seeder) fetch(
	ctx context.Context,
	src *sources.DataSourceConfig,
) (io.ReadCloser, error) {
	timeout := time.Duration(s.cfg.Seed.HTTPTimeoutSec) * time.Second
	client := &http.Client{Timeout: timeout}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src.URL, nil)
	if err != nil {
		return nil, downloadError(src.URL, err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, downloadError(src.URL, err)
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, downloadError(src.URL,
			fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	if !src.IsGzip() {
		return resp.Body, nil
	}

	gz, err := gzip.NewReader(resp.Body)
	if err != nil {
		resp.Body.Close()
		return nil, decompressError(src.URL, err)
	}

	return &gzipReadCloser{gz: gz, body: resp.Body}, nil
}

// gzipReadCloser closes both the gzip reader and the underlying
// response body.
type gzipReadCloser struct {
	gz   *gzip.Reader
	body io.ReadCloser
}

func (g *gzipReadCloser) Read(p []byte) (int, error) {
	return g.gz.Read(p)
}

func (g *gzipReadCloser) Close() error {
	err := g.gz.Close()
	if bodyErr := g.body.Close(); err == nil {
		err = bodyErr
	}
	return err
}
