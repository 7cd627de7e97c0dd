package ioschema

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/worldable/worlddb/pkg/errcode"
)

// NotConnectedError creates an error for when a schema operation is
// attempted without a database connection.
func NotConnectedError() error {
	msg := "Schema operation attempted without database connection"

	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("not connected to database"),
	}
}

// GORMConnectionError creates an error for GORM connection failures.
func GORMConnectionError(err error) error {
	msg := `Cannot connect to database with GORM

<em>Possible causes:</em>
  - Connection pool not initialized
  - Database configuration issue

<em>How to fix:</em>
  1. Ensure database operator is connected
  2. Check database configuration`

	return &gn.Error{
		Code: errcode.SchemaGORMConnectionError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("failed to connect with GORM: %w", err),
	}
}

// CreateSchemaError creates an error for schema creation failures.
func CreateSchemaError(err error) error {
	msg := `Cannot create database schema

<em>Possible causes:</em>
  - Insufficient database permissions
  - Database constraint violations

<em>How to fix:</em>
  1. Check database user has CREATE permissions
  2. Check database logs for details`

	return &gn.Error{
		Code: errcode.SchemaCreateError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("failed to create schema: %w", err),
	}
}

// RepairSchemaError creates an error for repair failures after
// verification found missing tables.
func RepairSchemaError(tables []string, err error) error {
	msg := `Cannot repair database schema, tables still missing: <em>%v</em>

<em>How to fix:</em>
  1. Check database user has CREATE permissions
  2. Check database logs for details`

	return &gn.Error{
		Code: errcode.SchemaRepairError,
		Msg:  msg,
		Vars: []any{tables},
		Err:  fmt.Errorf("schema repair failed for %v: %w", tables, err),
	}
}
