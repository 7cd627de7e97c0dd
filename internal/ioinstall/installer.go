// Package ioinstall implements the world.Installer interface: it
// resolves the selection, provisions tables, verifies and repairs the
// schema, seeds components in dependency order, keeps the
// installation-state ledger current, and optionally runs linking.
package ioinstall

import (
	"context"
	"log/slog"
	"time"

	"github.com/gnames/gn"
	"github.com/google/uuid"
	"github.com/worldable/worlddb/pkg/component"
	"github.com/worldable/worlddb/pkg/config"
	"github.com/worldable/worlddb/pkg/db"
	"github.com/worldable/worlddb/pkg/world"
)

type installer struct {
	cfg      *config.Config
	operator db.Operator
	schema   world.SchemaManager
	seeder   world.Seeder
	linker   world.Linker
}

// New creates an Installer.
func New(
	cfg *config.Config,
	op db.Operator,
	sm world.SchemaManager,
	sd world.Seeder,
	lk world.Linker,
) world.Installer {
	return &installer{
		cfg:      cfg,
		operator: op,
		schema:   sm,
		seeder:   sd,
		linker:   lk,
	}
}

// Plan resolves install options into an ordered plan.
func (i *installer) Plan(
	ctx context.Context,
	opts world.InstallOptions,
) (*world.InstallPlan, error) {
	installed, err := i.installedComponents(ctx)
	if err != nil {
		return nil, err
	}

	comps, warnings := resolveSelection(opts, installed)
	if len(comps) == 0 {
		return nil, noComponentsError()
	}

	return &world.InstallPlan{
		RunID:      uuid.NewString(),
		Components: comps,
		Warnings:   warnings,
	}, nil
}

// Install executes a plan.
func (i *installer) Install(
	ctx context.Context,
	plan *world.InstallPlan,
	opts world.InstallOptions,
) (*world.InstallResult, error) {
	start := time.Now()
	slog.Info("Starting install",
		"run_id", plan.RunID,
		"components", plan.Components,
	)

	res := &world.InstallResult{
		RunID:  plan.RunID,
		Seeded: make(map[component.Component]*world.SeedResult),
	}

	// note which tables this run creates, for rollback scope
	provisioned, err := i.schema.Missing(ctx, plan.Components)
	if err != nil {
		return nil, err
	}
	res.Provisioned = provisioned

	if err := i.schema.Provision(ctx, plan.Components); err != nil {
		return nil, err
	}

	// verify, repair once, verify again
	missing, err := i.schema.Missing(ctx, plan.Components)
	if err != nil {
		return nil, err
	}
	if len(missing) > 0 {
		slog.Warn("Tables missing after provisioning, repairing",
			"components", missing)
		if err := i.schema.Provision(ctx, missing); err != nil {
			return nil, err
		}
		missing, err = i.schema.Missing(ctx, missing)
		if err != nil {
			return nil, err
		}
		if len(missing) > 0 {
			return nil, repairFailedError(missing)
		}
	}

	for _, c := range plan.Components {
		if !component.HasSeeder(c) {
			// junction table is provisioned only; record it installed
			seedRes := &world.SeedResult{Component: c}
			if err := i.recordInstall(ctx, plan.RunID, seedRes); err != nil {
				return nil, err
			}
			continue
		}

		seedRes, err := i.seeder.Seed(ctx, c)
		if err != nil {
			return nil, i.seedFailed(ctx, c, res, opts, err)
		}
		res.Seeded[c] = seedRes

		if err := i.recordInstall(ctx, plan.RunID, seedRes); err != nil {
			return nil, err
		}
		gn.Info("Installed <em>%s</em>: %d rows", string(c), seedRes.RowCount)
	}

	if opts.AutoLink && !opts.NoLink {
		report, err := i.linker.Link(ctx, plan.Components,
			world.LinkOptions{})
		if err != nil {
			return nil, err
		}
		res.LinkReport = report
	}

	res.Duration = time.Since(start)
	slog.Info("Install finished",
		"run_id", plan.RunID,
		"duration", res.Duration,
	)

	return res, nil
}

// seedFailed handles a mid-run seeding error: with RollbackOnError the
// tables created by this run are dropped and their ledger rows removed,
// otherwise completed work is kept.
func (i *installer) seedFailed(
	ctx context.Context,
	failed component.Component,
	res *world.InstallResult,
	opts world.InstallOptions,
	cause error,
) error {
	if !opts.RollbackOnError {
		return seedFailedError(failed, cause)
	}

	slog.Warn("Seeding failed, rolling back this run",
		"component", failed,
		"error", cause,
	)

	for _, c := range res.Provisioned {
		if err := i.operator.DropTable(ctx, component.Table(c)); err != nil {
			return rollbackError(failed, c, err)
		}
	}

	var done []component.Component
	for c := range res.Seeded {
		done = append(done, c)
	}
	if len(done) > 0 {
		if err := i.removeLedgerEntries(ctx, done); err != nil {
			return rollbackError(failed, failed, err)
		}
	}

	return seedFailedError(failed, cause)
}
