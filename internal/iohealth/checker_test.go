package iohealth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/worldable/worlddb/pkg/component"
	"github.com/worldable/worlddb/pkg/world"
)

func TestOrphanRelationsKnown(t *testing.T) {
	seen := make(map[string]bool)
	for _, rel := range orphanRelations {
		assert.False(t, seen[rel.key], "duplicate relation %s", rel.key)
		seen[rel.key] = true

		_, ok := sampleHints[rel.key]
		assert.True(t, ok, "no sample hint for %s", rel.key)

		found := false
		for _, c := range component.Linkable() {
			if component.Table(c) == rel.table {
				found = true
			}
		}
		assert.True(t, found, "%s is not a linkable table", rel.table)
	}
	assert.Equal(t, len(orphanRelations), len(sampleHints))
}

func TestRecommendationsNothingInstalled(t *testing.T) {
	report := &world.HealthReport{Orphans: map[string]int64{}}
	res := recommendations(report, 0)
	assert.Len(t, res, 1)
	assert.Contains(t, res[0], "worlddb install --all")
}

func TestRecommendationsPartialInstall(t *testing.T) {
	report := &world.HealthReport{Orphans: map[string]int64{}}
	res := recommendations(report, 3)
	assert.Len(t, res, 1)
	assert.Contains(t, res[0], "not installed")
}

func TestRecommendationsOrphans(t *testing.T) {
	report := &world.HealthReport{
		Orphans: map[string]int64{"cities_state": 12},
	}
	for _, c := range component.All() {
		report.Components = append(report.Components,
			world.ComponentStatus{
				Component:   c,
				Installed:   true,
				TableExists: true,
			})
	}

	res := recommendations(report, len(component.All()))
	assert.Len(t, res, 1)
	assert.Contains(t, res[0], "worlddb link")
}

func TestRecommendationsMissingTable(t *testing.T) {
	report := &world.HealthReport{
		Orphans: map[string]int64{},
		Components: []world.ComponentStatus{
			{Component: component.Continents, Installed: true, TableExists: true},
			{Component: component.Countries, Installed: true, TableExists: false},
			{Component: component.Cities, Installed: true, TableExists: false},
		},
	}

	res := recommendations(report, len(component.All()))
	assert.Len(t, res, 1)
	assert.Contains(t, res[0], "repair")
}

func TestRecommendationsHealthy(t *testing.T) {
	report := &world.HealthReport{Orphans: map[string]int64{}}
	for _, c := range component.All() {
		report.Components = append(report.Components,
			world.ComponentStatus{
				Component:   c,
				Installed:   true,
				TableExists: true,
			})
	}

	assert.Empty(t, recommendations(report, len(component.All())))
}
