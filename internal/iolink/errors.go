package iolink

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/worldable/worlddb/pkg/errcode"
)

func notConnectedError() error {
	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  "Linking attempted without database connection",
		Err:  fmt.Errorf("not connected to database"),
	}
}

// UnknownComponentError rejects an invalid --component value before any
// database work starts.
func UnknownComponentError(name string) error {
	msg := `Unknown component <em>%s</em>

<em>Linkable components:</em>
  subregions, countries, states, cities`

	return &gn.Error{
		Code: errcode.LinkUnknownComponentError,
		Msg:  msg,
		Vars: []any{name},
		Err:  fmt.Errorf("unknown component %q", name),
	}
}

func queryError(table string, err error) error {
	return &gn.Error{
		Code: errcode.DBQueryError,
		Msg:  "Query on <em>%s</em> failed during linking",
		Vars: []any{table},
		Err:  fmt.Errorf("link query on %s: %w", table, err),
	}
}

func updateError(table string, err error) error {
	return &gn.Error{
		Code: errcode.LinkUpdateError,
		Msg:  "Cannot update parent references in <em>%s</em>",
		Vars: []any{table},
		Err:  fmt.Errorf("link update on %s: %w", table, err),
	}
}
