package worldable

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/worldable/worlddb/pkg/errcode"
)

func tableMissingError() error {
	msg := `The <em>worldables</em> junction table does not exist

<em>How to fix:</em>
  1. Provision it: <em>worlddb install --worldables</em>
  2. Or install everything: <em>worlddb install --all</em>`

	return &gn.Error{
		Code: errcode.WorldablesTableMissingError,
		Msg:  msg,
		Err:  fmt.Errorf("worldables table missing"),
	}
}

func unknownKindError(tag string) error {
	return &gn.Error{
		Code: errcode.WorldableUnknownKindError,
		Msg:  "Unknown entity kind <em>%s</em>",
		Vars: []any{tag},
		Err:  fmt.Errorf("unknown entity kind %q", tag),
	}
}

func resolveError(kind Kind, ref any) error {
	msg := `Cannot resolve <em>%v</em> to a %s

<em>How to fix:</em>
  1. Check the value against the <em>%s</em> table
  2. Seed the data if the table is empty: <em>worlddb install --%s</em>`

	return &gn.Error{
		Code: errcode.WorldableResolveError,
		Msg:  msg,
		Vars: []any{ref, kind.Tag, kind.Table, string(kind.Component)},
		Err:  fmt.Errorf("cannot resolve %v to a %s", ref, kind.Tag),
	}
}

func queryError(tag string, err error) error {
	return &gn.Error{
		Code: errcode.DBQueryError,
		Msg:  "Attachment operation failed for kind <em>%s</em>",
		Vars: []any{tag},
		Err:  err,
	}
}
