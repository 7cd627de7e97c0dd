// Package iolink implements the world.Linker interface: it backfills
// NULL parent references from the denormalized metadata written at seed
// time.
package iolink

import (
	"context"
	"log/slog"
	"time"

	"github.com/worldable/worlddb/pkg/component"
	"github.com/worldable/worlddb/pkg/config"
	"github.com/worldable/worlddb/pkg/db"
	"github.com/worldable/worlddb/pkg/world"
)

type linker struct {
	cfg      *config.Config
	operator db.Operator
}

// New creates a Linker.
func New(cfg *config.Config, op db.Operator) world.Linker {
	return &linker{cfg: cfg, operator: op}
}

// Link backfills parent references for the given components in
// dependency order. Components that are not linkable are ignored.
func (l *linker) Link(
	ctx context.Context,
	comps []component.Component,
	opts world.LinkOptions,
) (*world.LinkReport, error) {
	if l.operator.Pool() == nil {
		return nil, notConnectedError()
	}

	start := time.Now()
	selected := make(map[component.Component]bool, len(comps))
	for _, c := range comps {
		selected[c] = true
	}

	report := &world.LinkReport{}
	for _, c := range component.Linkable() {
		if !selected[c] {
			continue
		}

		res, err := l.linkComponent(ctx, c, opts)
		if err != nil {
			return nil, err
		}

		slog.Info("Linked component",
			"component", c,
			"total", res.Total,
			"linked", res.Linked,
			"not_found", res.NotFound,
			"skipped", res.Skipped,
			"dry_run", opts.DryRun,
		)
		report.Results = append(report.Results, *res)
	}

	report.Duration = time.Since(start)
	return report, nil
}

// linkComponent links one component. A missing table, own or parent,
// yields a zero result.
func (l *linker) linkComponent(
	ctx context.Context,
	c component.Component,
	opts world.LinkOptions,
) (*world.LinkResult, error) {
	res := &world.LinkResult{Component: c}

	// only the tables this component's resolver actually reads
	parents := map[component.Component][]string{
		component.Subregions: {"world_continents"},
		component.Countries:  {"world_continents", "world_subregions"},
		component.States:     {"world_countries"},
		component.Cities:     {"world_countries", "world_states"},
	}

	tables := append([]string{component.Table(c)}, parents[c]...)
	for _, table := range tables {
		exists, err := l.operator.TableExists(ctx, table)
		if err != nil {
			return nil, err
		}
		if !exists {
			return res, nil
		}
	}

	switch c {
	case component.Subregions:
		return res, l.linkSubregions(ctx, res, opts)
	case component.Countries:
		return res, l.linkCountries(ctx, res, opts)
	case component.States:
		return res, l.linkStates(ctx, res, opts)
	case component.Cities:
		return res, l.linkCities(ctx, res, opts)
	}
	return res, nil
}
