// Package iohealth implements the world.HealthChecker interface: it
// inspects installation completeness and linkage quality and produces a
// scored report.
package iohealth

import (
	"context"
	"time"

	"github.com/worldable/worlddb/pkg/component"
	"github.com/worldable/worlddb/pkg/config"
	"github.com/worldable/worlddb/pkg/db"
	"github.com/worldable/worlddb/pkg/world"
)

type checker struct {
	cfg      *config.Config
	operator db.Operator
}

// New creates a HealthChecker.
func New(cfg *config.Config, op db.Operator) world.HealthChecker {
	return &checker{cfg: cfg, operator: op}
}

// orphanRelation describes one linkable parent reference.
type orphanRelation struct {
	key    string
	table  string
	column string
}

var orphanRelations = []orphanRelation{
	{"subregions", "world_subregions", "continent_id"},
	{"countries_continent", "world_countries", "continent_id"},
	{"countries_subregion", "world_countries", "subregion_id"},
	{"states", "world_states", "country_id"},
	{"cities_country", "world_cities", "country_id"},
	{"cities_state", "world_cities", "state_id"},
}

// Check builds the health report.
func (c *checker) Check(
	ctx context.Context,
	opts world.HealthOptions,
) (*world.HealthReport, error) {
	if c.operator.Pool() == nil {
		return nil, notConnectedError()
	}

	report := &world.HealthReport{
		GeneratedAt: time.Now(),
		Orphans:     make(map[string]int64),
	}

	ledger, err := c.readLedger(ctx)
	if err != nil {
		return nil, err
	}

	installed := 0
	for _, comp := range component.All() {
		status := world.ComponentStatus{Component: comp}

		exists, err := c.operator.TableExists(ctx, component.Table(comp))
		if err != nil {
			return nil, err
		}
		status.TableExists = exists

		if entry, ok := ledger[comp]; ok {
			status.Installed = entry.installed
			status.LastSeededAt = entry.lastSeededAt
		}
		if status.Installed {
			installed++
		}

		if exists {
			status.RecordCount, err = c.operator.RowCount(
				ctx, component.Table(comp))
			if err != nil {
				return nil, err
			}
		}

		report.Components = append(report.Components, status)
	}

	var orphanTotal, linkableTotal int64
	tableRows := make(map[string]int64)
	for _, status := range report.Components {
		tableRows[component.Table(status.Component)] = status.RecordCount
	}

	for _, rel := range orphanRelations {
		exists, err := c.operator.TableExists(ctx, rel.table)
		if err != nil {
			return nil, err
		}
		if !exists {
			continue
		}

		count, err := c.countOrphans(ctx, rel)
		if err != nil {
			return nil, err
		}
		report.Orphans[rel.key] = count
		orphanTotal += count
		linkableTotal += tableRows[rel.table]
	}

	report.Score = world.HealthScore(
		installed, len(component.All()), orphanTotal, linkableTotal)
	report.Recommendations = recommendations(report, installed)

	if opts.Detailed {
		report.Samples, err = c.collectSamples(ctx, report.Orphans)
		if err != nil {
			return nil, err
		}
	}

	return report, nil
}

// recommendations derives next steps from the report.
func recommendations(
	report *world.HealthReport,
	installed int,
) []string {
	var res []string

	if installed == 0 {
		return []string{
			"no components installed, run 'worlddb install --all'",
		}
	}
	if installed < len(component.All()) {
		res = append(res,
			"some components are not installed, "+
				"run 'worlddb install' to add them")
	}

	var orphans int64
	for _, n := range report.Orphans {
		orphans += n
	}
	if orphans > 0 {
		res = append(res,
			"orphaned rows detected, run 'worlddb link' "+
				"to backfill parent references")
	}

	for _, status := range report.Components {
		if status.Installed && !status.TableExists {
			res = append(res,
				"ledger lists components without tables, "+
					"run 'worlddb install' to repair the schema")
			break
		}
	}

	return res
}
