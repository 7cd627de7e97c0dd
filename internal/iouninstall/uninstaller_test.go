package iouninstall

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/worldable/worlddb/pkg/component"
	"github.com/worldable/worlddb/pkg/config"
	"github.com/worldable/worlddb/pkg/world"
)

// fakeOperator fakes table existence checks for plan tests.
type fakeOperator struct {
	tables map[string]bool
}

func (f *fakeOperator) Connect(context.Context, *config.DatabaseConfig) error {
	return nil
}
func (f *fakeOperator) Close() error        { return nil }
func (f *fakeOperator) Pool() *pgxpool.Pool { return nil }
func (f *fakeOperator) TableExists(
	_ context.Context, name string,
) (bool, error) {
	return f.tables[name], nil
}
func (f *fakeOperator) RowCount(context.Context, string) (int64, error) {
	return 0, nil
}
func (f *fakeOperator) DropTable(_ context.Context, name string) error {
	delete(f.tables, name)
	return nil
}

func newPlanner(tables ...string) world.Uninstaller {
	m := make(map[string]bool)
	for _, t := range tables {
		m[t] = true
	}
	return New(config.New(), &fakeOperator{tables: m})
}

func TestPlanRejectsUnknownStrategy(t *testing.T) {
	u := newPlanner()
	_, err := u.Plan(context.Background(), world.UninstallOptions{
		Components: []component.Component{component.Cities},
		Strategy:   world.Strategy("purge"),
	})
	assert.Error(t, err)
}

func TestPlanRejectsEmptySelection(t *testing.T) {
	u := newPlanner()
	_, err := u.Plan(context.Background(), world.UninstallOptions{})
	assert.Error(t, err)
}

func TestPlanBlockWithDependents(t *testing.T) {
	u := newPlanner("world_countries", "world_states", "world_cities")

	_, err := u.Plan(context.Background(), world.UninstallOptions{
		Components: []component.Component{component.Countries},
		Strategy:   world.StrategyBlock,
	})
	assert.Error(t, err)
}

func TestPlanBlockWithoutDependents(t *testing.T) {
	u := newPlanner("world_countries")

	plan, err := u.Plan(context.Background(), world.UninstallOptions{
		Components: []component.Component{component.Countries},
		Strategy:   world.StrategyBlock,
	})
	require.NoError(t, err)
	assert.Equal(t,
		[]component.Component{component.Countries}, plan.Components)
	assert.Empty(t, plan.Nullify)
}

func TestPlanBlockDependentsAlsoSelected(t *testing.T) {
	u := newPlanner("world_countries", "world_states", "world_cities")

	plan, err := u.Plan(context.Background(), world.UninstallOptions{
		Components: []component.Component{
			component.Countries, component.States, component.Cities,
		},
		Strategy: world.StrategyBlock,
	})
	require.NoError(t, err)
	// children first
	assert.Equal(t, []component.Component{
		component.Cities, component.States, component.Countries,
	}, plan.Components)
}

func TestPlanCascadeExtends(t *testing.T) {
	u := newPlanner("world_countries", "world_states", "world_cities")

	plan, err := u.Plan(context.Background(), world.UninstallOptions{
		Components: []component.Component{component.Countries},
		Strategy:   world.StrategyCascade,
	})
	require.NoError(t, err)
	assert.Equal(t, []component.Component{
		component.Cities, component.States, component.Countries,
	}, plan.Components)
	assert.Empty(t, plan.Nullify)
}

func TestPlanNullifyColumns(t *testing.T) {
	u := newPlanner(
		"world_continents", "world_subregions",
		"world_countries", "world_states", "world_cities",
	)

	plan, err := u.Plan(context.Background(), world.UninstallOptions{
		Components: []component.Component{
			component.Continents, component.Subregions,
		},
		Strategy: world.StrategyNullify,
	})
	require.NoError(t, err)

	assert.Equal(t, []component.Component{
		component.Subregions, component.Continents,
	}, plan.Components)

	// countries carry both parent columns, states and cities none of
	// the dropped parents' columns
	assert.ElementsMatch(t,
		[]string{"continent_id", "subregion_id"},
		plan.Nullify["world_countries"])
	assert.NotContains(t, plan.Nullify, "world_states")
	assert.NotContains(t, plan.Nullify, "world_cities")
}

func TestPlanNullifySkipsMissingTables(t *testing.T) {
	u := newPlanner("world_countries")

	plan, err := u.Plan(context.Background(), world.UninstallOptions{
		Components: []component.Component{component.Countries},
		Strategy:   world.StrategyNullify,
	})
	require.NoError(t, err)
	// no dependent tables exist, nothing to nullify
	assert.Empty(t, plan.Nullify)
}

func TestPlanDefaultStrategyIsNullify(t *testing.T) {
	u := newPlanner("world_countries", "world_states")

	plan, err := u.Plan(context.Background(), world.UninstallOptions{
		Components: []component.Component{component.Countries},
	})
	require.NoError(t, err)
	assert.Equal(t,
		[]string{"country_id"}, plan.Nullify["world_states"])
}
