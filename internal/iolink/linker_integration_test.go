package iolink_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/worldable/worlddb/internal/iodb"
	"github.com/worldable/worlddb/internal/iolink"
	"github.com/worldable/worlddb/internal/ioschema"
	"github.com/worldable/worlddb/internal/iotesting"
	"github.com/worldable/worlddb/pkg/component"
	"github.com/worldable/worlddb/pkg/db"
	"github.com/worldable/worlddb/pkg/world"
)

// Integration tests require PostgreSQL with a worlddb_test database.
// Skip with: go test -short

var linkTestTables = []string{
	"world_states", "world_countries",
	"world_subregions", "world_continents",
}

func setupLinkDB(t *testing.T) (world.Linker, db.Operator) {
	t.Helper()

	ctx := context.Background()
	cfg := iotesting.GetTestConfig()

	op := iodb.NewPgxOperator()
	err := op.Connect(ctx, &cfg.Database)
	require.NoError(t, err, "Should connect to test database")
	t.Cleanup(func() { _ = op.Close() })

	for _, table := range linkTestTables {
		require.NoError(t, op.DropTable(ctx, table))
	}
	mgr := ioschema.NewManager(op)
	require.NoError(t, mgr.Provision(ctx, []component.Component{
		component.Continents, component.Subregions,
		component.Countries, component.States,
	}))
	t.Cleanup(func() {
		for _, table := range linkTestTables {
			_ = op.DropTable(context.Background(), table)
		}
	})

	return iolink.New(cfg, op), op
}

func insertRow(
	t *testing.T,
	op db.Operator,
	query string,
	args ...any,
) int64 {
	t.Helper()
	var id int64
	err := op.Pool().QueryRow(context.Background(), query, args...).
		Scan(&id)
	require.NoError(t, err)
	return id
}

func resultFor(
	t *testing.T,
	report *world.LinkReport,
	c component.Component,
) world.LinkResult {
	t.Helper()
	for _, lr := range report.Results {
		if lr.Component == c {
			return lr
		}
	}
	t.Fatalf("no link result for %s", c)
	return world.LinkResult{}
}

func scanFK(t *testing.T, op db.Operator, query string) *int64 {
	t.Helper()
	var id *int64
	err := op.Pool().QueryRow(context.Background(), query).Scan(&id)
	require.NoError(t, err)
	return id
}

func insertNigeria(t *testing.T, op db.Operator) int64 {
	return insertRow(t, op,
		`INSERT INTO world_countries
		   (name, iso_code, iso_code_3, created_at, updated_at)
		 VALUES ('Nigeria', 'NG', 'NGA', NOW(), NOW())
		 RETURNING id`)
}

func insertLagosState(t *testing.T, op db.Operator) int64 {
	return insertRow(t, op,
		`INSERT INTO world_states
		   (name, code, source_id, metadata, created_at, updated_at)
		 VALUES ('Lagos', 'LA', 1,
		         '{"country_code": "NG", "country_name": "Nigeria"}',
		         NOW(), NOW())
		 RETURNING id`)
}

func TestLinkStatesOnce_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	l, op := setupLinkDB(t)
	ctx := context.Background()

	countryID := insertNigeria(t, op)
	stateID := insertLagosState(t, op)

	report, err := l.Link(ctx,
		[]component.Component{component.States}, world.LinkOptions{})
	require.NoError(t, err)
	lr := resultFor(t, report, component.States)
	assert.Equal(t, int64(1), lr.Total)
	assert.Equal(t, int64(1), lr.Linked)

	got := scanFK(t, op, fmt.Sprintf(
		"SELECT country_id FROM world_states WHERE id = %d", stateID))
	require.NotNil(t, got)
	assert.Equal(t, countryID, *got)

	// a second run finds nothing left to do
	report, err = l.Link(ctx,
		[]component.Component{component.States}, world.LinkOptions{})
	require.NoError(t, err)
	lr = resultFor(t, report, component.States)
	assert.Equal(t, int64(0), lr.Total)
	assert.Equal(t, int64(0), lr.Linked)
}

func TestLinkDryRun_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	l, op := setupLinkDB(t)
	ctx := context.Background()

	insertNigeria(t, op)
	stateID := insertLagosState(t, op)

	report, err := l.Link(ctx,
		[]component.Component{component.States},
		world.LinkOptions{DryRun: true})
	require.NoError(t, err)
	lr := resultFor(t, report, component.States)
	assert.Equal(t, int64(1), lr.Linked)

	// the report counts what would be linked, the row is untouched
	got := scanFK(t, op, fmt.Sprintf(
		"SELECT country_id FROM world_states WHERE id = %d", stateID))
	assert.Nil(t, got)
}

func TestLinkKeepsSetReference_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	l, op := setupLinkDB(t)
	ctx := context.Background()

	africaID := insertRow(t, op,
		`INSERT INTO world_continents (name, code, created_at, updated_at)
		 VALUES ('Africa', 'AF', NOW(), NOW()) RETURNING id`)
	europeID := insertRow(t, op,
		`INSERT INTO world_continents (name, code, created_at, updated_at)
		 VALUES ('Europe', 'EU', NOW(), NOW()) RETURNING id`)
	subregionID := insertRow(t, op,
		`INSERT INTO world_subregions
		   (name, code, continent_id, created_at, updated_at)
		 VALUES ('Western Africa', 'WAF', $1, NOW(), NOW())
		 RETURNING id`, africaID)

	// the continent reference disagrees with metadata on purpose
	countryID := insertRow(t, op,
		`INSERT INTO world_countries
		   (name, iso_code, iso_code_3, continent_id, metadata,
		    created_at, updated_at)
		 VALUES ('Nigeria', 'NG', 'NGA', $1,
		         '{"continent_name": "Africa",
		           "subregion_name": "Western Africa"}',
		         NOW(), NOW())
		 RETURNING id`, europeID)

	report, err := l.Link(ctx,
		[]component.Component{component.Countries}, world.LinkOptions{})
	require.NoError(t, err)
	lr := resultFor(t, report, component.Countries)
	assert.Equal(t, int64(1), lr.Linked)

	// only the missing subregion reference was filled
	continentQ := fmt.Sprintf(
		"SELECT continent_id FROM world_countries WHERE id = %d",
		countryID)
	subregionQ := fmt.Sprintf(
		"SELECT subregion_id FROM world_countries WHERE id = %d",
		countryID)

	got := scanFK(t, op, continentQ)
	require.NotNil(t, got)
	assert.Equal(t, europeID, *got)
	got = scanFK(t, op, subregionQ)
	require.NotNil(t, got)
	assert.Equal(t, subregionID, *got)

	// the fully linked row is out of scope for the next run
	report, err = l.Link(ctx,
		[]component.Component{component.Countries}, world.LinkOptions{})
	require.NoError(t, err)
	lr = resultFor(t, report, component.Countries)
	assert.Equal(t, int64(0), lr.Total)
	assert.Equal(t, int64(0), lr.Linked)

	// force re-resolves the set reference from metadata
	report, err = l.Link(ctx,
		[]component.Component{component.Countries},
		world.LinkOptions{Force: true})
	require.NoError(t, err)
	lr = resultFor(t, report, component.Countries)
	assert.Equal(t, int64(1), lr.Linked)

	got = scanFK(t, op, continentQ)
	require.NotNil(t, got)
	assert.Equal(t, africaID, *got)
}
