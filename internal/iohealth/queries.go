package iohealth

import (
	"context"
	"fmt"
	"time"

	"github.com/worldable/worlddb/pkg/component"
	"github.com/worldable/worlddb/pkg/world"
)

const ledgerTable = "world_installation_state"

type ledgerEntry struct {
	installed    bool
	lastSeededAt *time.Time
}

// readLedger loads installation state rows. A missing ledger table is
// not an error: nothing has been installed yet.
func (c *checker) readLedger(
	ctx context.Context,
) (map[component.Component]ledgerEntry, error) {
	exists, err := c.operator.TableExists(ctx, ledgerTable)
	if err != nil {
		return nil, err
	}
	res := make(map[component.Component]ledgerEntry)
	if !exists {
		return res, nil
	}

	rows, err := c.operator.Pool().Query(ctx,
		`SELECT component, installed, last_seeded_at FROM `+ledgerTable)
	if err != nil {
		return nil, ledgerReadError(err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			name     string
			entry    ledgerEntry
			seededAt *time.Time
		)
		if err := rows.Scan(&name, &entry.installed, &seededAt); err != nil {
			return nil, ledgerReadError(err)
		}
		entry.lastSeededAt = seededAt

		if component.Valid(name) {
			res[component.Component(name)] = entry
		}
	}
	if err := rows.Err(); err != nil {
		return nil, ledgerReadError(err)
	}

	return res, nil
}

// countOrphans counts rows of one relation whose parent reference is
// NULL.
func (c *checker) countOrphans(
	ctx context.Context,
	rel orphanRelation,
) (int64, error) {
	query := fmt.Sprintf(
		"SELECT COUNT(*) FROM %s WHERE %s IS NULL",
		rel.table, rel.column,
	)
	var count int64
	err := c.operator.Pool().QueryRow(ctx, query).Scan(&count)
	if err != nil {
		return 0, orphanCountError(rel.key, err)
	}
	return count, nil
}

// sampleHints maps each relation to the metadata field that names the
// parent which failed to resolve.
var sampleHints = map[string]string{
	"subregions":          "continent_name",
	"countries_continent": "continent_name",
	"countries_subregion": "subregion_name",
	"states":              "country_code",
	"cities_country":      "country_code",
	"cities_state":        "state_code",
}

const sampleLimit = 5

// collectSamples fetches up to five orphan rows per relation with a
// hint extracted from the row's metadata.
func (c *checker) collectSamples(
	ctx context.Context,
	orphans map[string]int64,
) (map[string][]world.OrphanSample, error) {
	res := make(map[string][]world.OrphanSample)

	for _, rel := range orphanRelations {
		if orphans[rel.key] == 0 {
			continue
		}

		query := fmt.Sprintf(
			`SELECT id, name, COALESCE(metadata->>'%s', '')
				FROM %s WHERE %s IS NULL ORDER BY id LIMIT %d`,
			sampleHints[rel.key], rel.table, rel.column, sampleLimit,
		)
		rows, err := c.operator.Pool().Query(ctx, query)
		if err != nil {
			return nil, sampleError(rel.key, err)
		}

		var samples []world.OrphanSample
		for rows.Next() {
			var s world.OrphanSample
			if err := rows.Scan(&s.ID, &s.Name, &s.Hint); err != nil {
				rows.Close()
				return nil, sampleError(rel.key, err)
			}
			samples = append(samples, s)
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return nil, sampleError(rel.key, err)
		}

		res[rel.key] = samples
	}

	return res, nil
}
