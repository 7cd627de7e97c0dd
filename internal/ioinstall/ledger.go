package ioinstall

import (
	"context"
	"encoding/json"

	"github.com/worldable/worlddb/pkg/component"
	"github.com/worldable/worlddb/pkg/schema"
	"github.com/worldable/worlddb/pkg/world"
)

const ledgerTable = "world_installation_state"

// installedComponents reads the ledger. A missing ledger table means
// nothing is installed yet.
func (i *installer) installedComponents(
	ctx context.Context,
) (map[component.Component]bool, error) {
	exists, err := i.operator.TableExists(ctx, ledgerTable)
	if err != nil {
		return nil, err
	}
	if !exists {
		return map[component.Component]bool{}, nil
	}

	rows, err := i.operator.Pool().Query(ctx,
		`SELECT component FROM world_installation_state
		 WHERE installed`)
	if err != nil {
		return nil, ledgerError(err)
	}
	defer rows.Close()

	res := make(map[component.Component]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, ledgerError(err)
		}
		res[component.Component(name)] = true
	}
	if err := rows.Err(); err != nil {
		return nil, ledgerError(err)
	}

	return res, nil
}

// recordInstall upserts a component's ledger row after a seed run.
func (i *installer) recordInstall(
	ctx context.Context,
	runID string,
	seedRes *world.SeedResult,
) error {
	meta, err := json.Marshal(schema.InstallMetadata{
		RunID:       runID,
		Orphans:     seedRes.Orphans,
		DurationSec: seedRes.Duration.Seconds(),
	})
	if err != nil {
		return ledgerError(err)
	}

	_, err = i.operator.Pool().Exec(ctx,
		`INSERT INTO world_installation_state
		   (component, installed, installed_at, last_seeded_at,
		    record_count, metadata, created_at, updated_at)
		 VALUES ($1, TRUE, NOW(), NOW(), $2, $3, NOW(), NOW())
		 ON CONFLICT (component) DO UPDATE
		 SET installed = TRUE,
		     last_seeded_at = NOW(),
		     record_count = EXCLUDED.record_count,
		     metadata = EXCLUDED.metadata,
		     updated_at = NOW()`,
		string(seedRes.Component), seedRes.RowCount, meta)
	if err != nil {
		return ledgerError(err)
	}
	return nil
}

// removeLedgerEntries deletes ledger rows for the given components.
func (i *installer) removeLedgerEntries(
	ctx context.Context,
	comps []component.Component,
) error {
	names := make([]string, len(comps))
	for j, c := range comps {
		names[j] = string(c)
	}

	_, err := i.operator.Pool().Exec(ctx,
		`DELETE FROM world_installation_state
		 WHERE component = ANY($1)`, names)
	if err != nil {
		return ledgerError(err)
	}
	return nil
}
