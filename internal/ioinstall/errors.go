package ioinstall

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/worldable/worlddb/pkg/component"
	"github.com/worldable/worlddb/pkg/errcode"
)

func noComponentsError() error {
	msg := `No components selected for installation

<em>How to fix:</em>
  1. Select components: <em>worlddb install --countries --states</em>
  2. Or install everything: <em>worlddb install --all</em>`

	return &gn.Error{
		Code: errcode.InstallNoComponentsError,
		Msg:  msg,
		Err:  fmt.Errorf("empty component selection"),
	}
}

func ledgerError(err error) error {
	return &gn.Error{
		Code: errcode.DBQueryError,
		Msg:  "Cannot access the installation ledger",
		Err:  fmt.Errorf("installation ledger: %w", err),
	}
}

func repairFailedError(missing []component.Component) error {
	return &gn.Error{
		Code: errcode.SchemaRepairError,
		Msg:  "Tables still missing after repair: <em>%v</em>",
		Vars: []any{missing},
		Err:  fmt.Errorf("schema repair left tables missing: %v", missing),
	}
}

func seedFailedError(c component.Component, err error) error {
	return &gn.Error{
		Code: errcode.InstallSeedFailedError,
		Msg:  "Installation of <em>%s</em> failed",
		Vars: []any{string(c)},
		Err:  fmt.Errorf("seed %s: %w", c, err),
	}
}

func rollbackError(
	failed, c component.Component,
	err error,
) error {
	msg := `Rollback after failed install of <em>%s</em> did not complete

<em>The database may hold partial data.</em> Run
<em>worlddb uninstall --%s</em> to clean up.`

	return &gn.Error{
		Code: errcode.InstallRollbackError,
		Msg:  msg,
		Vars: []any{string(failed), string(c)},
		Err:  fmt.Errorf("rollback of %s: %w", c, err),
	}
}
