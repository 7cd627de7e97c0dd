package iohealth

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/worldable/worlddb/pkg/errcode"
)

func notConnectedError() error {
	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  "Health check attempted without database connection",
		Err:  fmt.Errorf("not connected to database"),
	}
}

func ledgerReadError(err error) error {
	msg := `Cannot read the installation ledger

<em>How to fix:</em>
  1. Verify the database is reachable: <em>worlddb health</em>
  2. Reinstall the ledger table: <em>worlddb install --all</em>`

	return &gn.Error{
		Code: errcode.HealthLedgerReadError,
		Msg:  msg,
		Err:  err,
	}
}

func orphanCountError(relation string, err error) error {
	return &gn.Error{
		Code: errcode.HealthOrphanCountError,
		Msg:  "Cannot count orphaned rows for <em>%s</em>",
		Vars: []any{relation},
		Err:  err,
	}
}

func sampleError(relation string, err error) error {
	return &gn.Error{
		Code: errcode.HealthSampleError,
		Msg:  "Cannot fetch orphan samples for <em>%s</em>",
		Vars: []any{relation},
		Err:  err,
	}
}
