package iodb

import (
	"errors"
	"fmt"

	"github.com/gnames/gn"
	"github.com/worldable/worlddb/pkg/config"
	"github.com/worldable/worlddb/pkg/errcode"
)

func connectionError(cfg *config.DatabaseConfig, err error) error {
	msg := `Could not connect to PostgreSQL at <em>%s:%d/%s</em>.

<em>How to fix:</em>
  1. Check if PostgreSQL is running:
     <em>pg_isready -h %s -p %d</em>

  2. Verify the database exists:
     <em>psql -h %s -U %s -l</em>

  3. Review your configuration file:
     <em>~/.config/worlddb/config.yaml</em>`
	vars := []any{
		cfg.Host, cfg.Port, cfg.Database,
		cfg.Host, cfg.Port,
		cfg.Host, cfg.User,
	}
	return &gn.Error{
		Code: errcode.DBConnectionError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("cannot connect to %s:%d/%s: %w",
			cfg.Host, cfg.Port, cfg.Database, err),
	}
}

func notConnectedError() error {
	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  "Database is not connected",
		Err:  errors.New("operator used before Connect"),
	}
}

func tableCheckError(table string, err error) error {
	return &gn.Error{
		Code: errcode.DBTableCheckError,
		Msg:  "Could not check if table <em>%s</em> exists",
		Vars: []any{table},
		Err:  fmt.Errorf("table check for %s: %w", table, err),
	}
}

func queryError(table string, err error) error {
	return &gn.Error{
		Code: errcode.DBQueryError,
		Msg:  "Query on <em>%s</em> failed",
		Vars: []any{table},
		Err:  fmt.Errorf("query on %s: %w", table, err),
	}
}

func dropTableError(table string, err error) error {
	return &gn.Error{
		Code: errcode.DBDropTableError,
		Msg:  "Could not drop table <em>%s</em>",
		Vars: []any{table},
		Err:  fmt.Errorf("drop table %s: %w", table, err),
	}
}
