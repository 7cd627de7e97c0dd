package ioseed

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/worldable/worlddb/pkg/component"
	"github.com/worldable/worlddb/pkg/errcode"
)

func notConnectedError() error {
	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  "Seeding attempted without database connection",
		Err:  fmt.Errorf("not connected to database"),
	}
}

func unknownComponentError(c component.Component) error {
	return &gn.Error{
		Code: errcode.SourcesUnknownComponentError,
		Msg:  "Unknown component <em>%s</em>",
		Vars: []any{string(c)},
		Err:  fmt.Errorf("unknown component %q", c),
	}
}

func noSourceError(c component.Component) error {
	msg := `No data source configured for <em>%s</em>

<em>How to fix:</em>
  1. Add an entry for it in <em>~/.config/worlddb/sources.yaml</em>
  2. Or delete the file and rerun <em>worlddb</em> to restore the default`

	return &gn.Error{
		Code: errcode.SourcesUnknownComponentError,
		Msg:  msg,
		Vars: []any{string(c)},
		Err:  fmt.Errorf("no data source for component %q", c),
	}
}

func downloadError(url string, err error) error {
	msg := `Cannot download dataset from <em>%s</em>

<em>Possible causes:</em>
  - No network connectivity
  - The dataset host is unreachable

<em>How to fix:</em>
  1. Check your network connection
  2. Point <em>sources.yaml</em> at a mirror
  3. Increase <em>seed.http_timeout_sec</em> in config.yaml`

	return &gn.Error{
		Code: errcode.SeedDownloadError,
		Msg:  msg,
		Vars: []any{url},
		Err:  fmt.Errorf("download %s: %w", url, err),
	}
}

func decompressError(url string, err error) error {
	return &gn.Error{
		Code: errcode.SeedDecompressError,
		Msg:  "Cannot decompress dataset from <em>%s</em>",
		Vars: []any{url},
		Err:  fmt.Errorf("decompress %s: %w", url, err),
	}
}

func decodeError(url string, err error) error {
	return &gn.Error{
		Code: errcode.SeedDecodeError,
		Msg:  "Cannot decode dataset from <em>%s</em>",
		Vars: []any{url},
		Err:  fmt.Errorf("decode %s: %w", url, err),
	}
}

func lookupError(table string, err error) error {
	return &gn.Error{
		Code: errcode.DBQueryError,
		Msg:  "Cannot read parent rows from <em>%s</em>",
		Vars: []any{table},
		Err:  fmt.Errorf("parent lookup in %s: %w", table, err),
	}
}

func insertError(table string, err error) error {
	return &gn.Error{
		Code: errcode.SeedInsertError,
		Msg:  "Cannot insert seed data into <em>%s</em>",
		Vars: []any{table},
		Err:  fmt.Errorf("insert into %s: %w", table, err),
	}
}
