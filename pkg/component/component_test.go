package component_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/worldable/worlddb/pkg/component"
)

func TestAllOrderRespectsDependencies(t *testing.T) {
	pos := make(map[component.Component]int)
	for i, c := range component.All() {
		pos[c] = i
	}

	for _, c := range component.All() {
		for _, dep := range component.Dependencies(c) {
			assert.Less(t, pos[dep], pos[c],
				"%s must come after its dependency %s", c, dep)
		}
	}
}

func TestDependentsMirrorsDependencies(t *testing.T) {
	for _, c := range component.All() {
		for _, dep := range component.Dependencies(c) {
			assert.Contains(t, component.Dependents(dep), c,
				"%s depends on %s, so %s must list it as dependent",
				c, dep, dep)
		}
	}
}

func TestValid(t *testing.T) {
	assert.True(t, component.Valid("countries"))
	assert.True(t, component.Valid("worldables"))
	assert.False(t, component.Valid("planets"))
	assert.False(t, component.Valid(""))
}

func TestTables(t *testing.T) {
	assert.Equal(t, "world_countries", component.Table(component.Countries))
	assert.Equal(t, "worldables", component.Table(component.Worldables))
}

func TestCopiesAreIsolated(t *testing.T) {
	deps := component.Dependencies(component.Cities)
	deps[0] = component.Worldables

	assert.Equal(t,
		component.Continents,
		component.Dependencies(component.Cities)[0],
		"mutating the returned slice must not affect the registry")
}

func TestLargeDatasets(t *testing.T) {
	assert.True(t, component.IsLarge(component.Cities))
	assert.True(t, component.IsLarge(component.States))
	assert.False(t, component.IsLarge(component.Continents))
}

func TestHasSeeder(t *testing.T) {
	assert.False(t, component.HasSeeder(component.Worldables))
	assert.True(t, component.HasSeeder(component.Timezones))
}
