package ioseed_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/worldable/worlddb/internal/iodb"
	"github.com/worldable/worlddb/internal/ioschema"
	"github.com/worldable/worlddb/internal/ioseed"
	"github.com/worldable/worlddb/internal/iotesting"
	"github.com/worldable/worlddb/pkg/component"
	"github.com/worldable/worlddb/pkg/db"
	"github.com/worldable/worlddb/pkg/world"
)

// Integration tests require PostgreSQL with a worlddb_test database.
// Skip with: go test -short

var seedTestTables = []string{"world_subregions", "world_continents"}

func setupSeedDB(t *testing.T) (world.Seeder, db.Operator) {
	t.Helper()

	ctx := context.Background()
	cfg := iotesting.GetTestConfig()

	op := iodb.NewPgxOperator()
	err := op.Connect(ctx, &cfg.Database)
	require.NoError(t, err, "Should connect to test database")
	t.Cleanup(func() { _ = op.Close() })

	for _, table := range seedTestTables {
		require.NoError(t, op.DropTable(ctx, table))
	}
	mgr := ioschema.NewManager(op)
	require.NoError(t, mgr.Provision(ctx, []component.Component{
		component.Continents, component.Subregions,
	}))
	t.Cleanup(func() {
		for _, table := range seedTestTables {
			_ = op.DropTable(context.Background(), table)
		}
	})

	return ioseed.New(cfg, op, nil), op
}

func countNull(t *testing.T, op db.Operator, table, column string) int64 {
	t.Helper()
	var n int64
	query := fmt.Sprintf(
		"SELECT COUNT(*) FROM %s WHERE %s IS NULL", table, column)
	err := op.Pool().QueryRow(context.Background(), query).Scan(&n)
	require.NoError(t, err)
	return n
}

func TestSeedStaticTwice_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	s, op := setupSeedDB(t)
	ctx := context.Background()

	res, err := s.Seed(ctx, component.Continents)
	require.NoError(t, err)
	assert.Equal(t, int64(7), res.RowCount)

	// subregions resolve their continent while seeding
	res, err = s.Seed(ctx, component.Subregions)
	require.NoError(t, err)
	assert.Equal(t, 23, res.Records)
	assert.Equal(t, int64(23), res.RowCount)
	assert.Equal(t, 0, res.Orphans["continent"])
	assert.Equal(t, int64(0),
		countNull(t, op, "world_subregions", "continent_id"))

	// re-seeding is idempotent
	res, err = s.Seed(ctx, component.Continents)
	require.NoError(t, err)
	assert.Equal(t, int64(7), res.RowCount)

	res, err = s.Seed(ctx, component.Subregions)
	require.NoError(t, err)
	assert.Equal(t, int64(23), res.RowCount)
	assert.Equal(t, 0, res.Orphans["continent"])
}

func TestSeedSubregionsBeforeContinents_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	s, op := setupSeedDB(t)
	ctx := context.Background()

	// with no continents seeded every subregion stays orphaned,
	// keeping enough metadata for the linker
	res, err := s.Seed(ctx, component.Subregions)
	require.NoError(t, err)
	assert.Equal(t, int64(23), res.RowCount)
	assert.Equal(t, 23, res.Orphans["continent"])
	assert.Equal(t, int64(23),
		countNull(t, op, "world_subregions", "continent_id"))
}
