package db_test

import (
	"testing"

	"github.com/worldable/worlddb/internal/iodb"
	"github.com/worldable/worlddb/pkg/db"
)

// TestPgxOperatorImplementsInterface ensures compile-time contract
// compliance between the iodb implementation and the db.Operator
// interface.
func TestPgxOperatorImplementsInterface(t *testing.T) {
	var _ db.Operator = iodb.NewPgxOperator()
}
