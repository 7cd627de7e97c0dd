package iolink

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/worldable/worlddb/pkg/schema"
	"github.com/worldable/worlddb/pkg/world"
)

// assignment is one row's resolved parent ids. Either may stay nil.
type assignment struct {
	id int64
	a  *int64
	b  *int64
}

// linkSubregions fills continent_id from the continent name in
// metadata.
func (l *linker) linkSubregions(
	ctx context.Context,
	res *world.LinkResult,
	opts world.LinkOptions,
) error {
	continents, err := l.loadNameIndex(ctx, "world_continents")
	if err != nil {
		return err
	}

	query := `SELECT id, metadata FROM world_subregions
		WHERE continent_id IS NULL`
	if opts.Force {
		query = `SELECT id, metadata FROM world_subregions`
	}

	var assignments []assignment
	err = l.eachRow(ctx, query, "world_subregions",
		func(id int64, metaRaw []byte) {
			res.Total++
			if len(metaRaw) == 0 {
				res.Skipped++
				return
			}
			var meta schema.SubregionMetadata
			if err := json.Unmarshal(metaRaw, &meta); err != nil {
				res.Skipped++
				return
			}
			parentID, ok := resolveSubregionParent(&meta, continents)
			if !ok {
				res.NotFound++
				return
			}
			res.Linked++
			assignments = append(assignments,
				assignment{id: id, a: &parentID})
		})
	if err != nil {
		return err
	}

	if opts.DryRun {
		return nil
	}
	return l.updateSingle(ctx, "world_subregions", "continent_id",
		assignments)
}

// linkCountries fills continent_id and subregion_id independently from
// the names in metadata. A column that is already set is left alone
// unless forced.
func (l *linker) linkCountries(
	ctx context.Context,
	res *world.LinkResult,
	opts world.LinkOptions,
) error {
	continents, err := l.loadNameIndex(ctx, "world_continents")
	if err != nil {
		return err
	}
	subregions, err := l.loadNameIndex(ctx, "world_subregions")
	if err != nil {
		return err
	}

	query := `SELECT id, continent_id, subregion_id, metadata
		FROM world_countries
		WHERE continent_id IS NULL OR subregion_id IS NULL`
	if opts.Force {
		query = `SELECT id, continent_id, subregion_id, metadata
			FROM world_countries`
	}

	var assignments []assignment
	err = l.eachRowPair(ctx, query, "world_countries",
		func(id int64, curA, curB *int64, metaRaw []byte) {
			res.Total++
			if len(metaRaw) == 0 {
				res.Skipped++
				return
			}
			var meta schema.CountryMetadata
			if err := json.Unmarshal(metaRaw, &meta); err != nil {
				res.Skipped++
				return
			}
			continentID, subregionID := resolveCountryParents(
				&meta, continents, subregions)
			a, b, changed := mergeParents(
				curA, curB, continentID, subregionID, opts.Force)
			if !changed {
				res.NotFound++
				return
			}
			res.Linked++
			assignments = append(assignments,
				assignment{id: id, a: a, b: b})
		})
	if err != nil {
		return err
	}

	if opts.DryRun {
		return nil
	}
	return l.updatePair(ctx, "world_countries",
		"continent_id", "subregion_id", assignments)
}

// linkStates fills country_id, matching the ISO code first and the
// country name second.
func (l *linker) linkStates(
	ctx context.Context,
	res *world.LinkResult,
	opts world.LinkOptions,
) error {
	byCode, err := l.loadCountryCodeIndex(ctx)
	if err != nil {
		return err
	}
	byName, err := l.loadNameIndex(ctx, "world_countries")
	if err != nil {
		return err
	}

	query := `SELECT id, metadata FROM world_states
		WHERE country_id IS NULL`
	if opts.Force {
		query = `SELECT id, metadata FROM world_states`
	}

	var assignments []assignment
	err = l.eachRow(ctx, query, "world_states",
		func(id int64, metaRaw []byte) {
			res.Total++
			if len(metaRaw) == 0 {
				res.Skipped++
				return
			}
			var meta schema.StateMetadata
			if err := json.Unmarshal(metaRaw, &meta); err != nil {
				res.Skipped++
				return
			}
			parentID, ok := resolveStateParent(&meta, byCode, byName)
			if !ok {
				res.NotFound++
				return
			}
			res.Linked++
			assignments = append(assignments,
				assignment{id: id, a: &parentID})
		})
	if err != nil {
		return err
	}

	if opts.DryRun {
		return nil
	}
	return l.updateSingle(ctx, "world_states", "country_id", assignments)
}

// linkCities fills country_id from the ISO code and state_id from the
// country/state code pair. A column that is already set is left alone
// unless forced.
func (l *linker) linkCities(
	ctx context.Context,
	res *world.LinkResult,
	opts world.LinkOptions,
) error {
	countries, err := l.loadCountryCodeIndex(ctx)
	if err != nil {
		return err
	}
	states, err := l.loadStateKeyIndex(ctx)
	if err != nil {
		return err
	}

	query := `SELECT id, country_id, state_id, metadata
		FROM world_cities
		WHERE country_id IS NULL OR state_id IS NULL`
	if opts.Force {
		query = `SELECT id, country_id, state_id, metadata
			FROM world_cities`
	}

	var assignments []assignment
	err = l.eachRowPair(ctx, query, "world_cities",
		func(id int64, curA, curB *int64, metaRaw []byte) {
			res.Total++
			if len(metaRaw) == 0 {
				res.Skipped++
				return
			}
			var meta schema.CityMetadata
			if err := json.Unmarshal(metaRaw, &meta); err != nil {
				res.Skipped++
				return
			}
			countryID, stateID := resolveCityParents(
				&meta, countries, states)
			a, b, changed := mergeParents(
				curA, curB, countryID, stateID, opts.Force)
			if !changed {
				res.NotFound++
				return
			}
			res.Linked++
			assignments = append(assignments,
				assignment{id: id, a: a, b: b})
		})
	if err != nil {
		return err
	}

	if opts.DryRun {
		return nil
	}
	return l.updatePair(ctx, "world_cities",
		"country_id", "state_id", assignments)
}

// eachRowPair streams (id, parent columns, metadata) tuples from a
// query selecting two nullable reference columns.
func (l *linker) eachRowPair(
	ctx context.Context,
	query, table string,
	fn func(id int64, curA, curB *int64, metaRaw []byte),
) error {
	rows, err := l.operator.Pool().Query(ctx, query)
	if err != nil {
		return queryError(table, err)
	}
	defer rows.Close()

	for rows.Next() {
		var id int64
		var curA, curB *int64
		var metaRaw []byte
		if err := rows.Scan(&id, &curA, &curB, &metaRaw); err != nil {
			return queryError(table, err)
		}
		fn(id, curA, curB, metaRaw)
	}
	return rows.Err()
}

// eachRow streams (id, metadata) pairs from a query.
func (l *linker) eachRow(
	ctx context.Context,
	query, table string,
	fn func(id int64, metaRaw []byte),
) error {
	rows, err := l.operator.Pool().Query(ctx, query)
	if err != nil {
		return queryError(table, err)
	}
	defer rows.Close()

	for rows.Next() {
		var id int64
		var metaRaw []byte
		if err := rows.Scan(&id, &metaRaw); err != nil {
			return queryError(table, err)
		}
		fn(id, metaRaw)
	}
	return rows.Err()
}

// updateBatchSize bounds the unnest arrays per UPDATE statement.
const updateBatchSize = 5000

// updateSingle applies single-column assignments in batches.
func (l *linker) updateSingle(
	ctx context.Context,
	table, column string,
	assignments []assignment,
) error {
	query := fmt.Sprintf(
		`UPDATE %s AS t
		 SET %s = u.a, updated_at = NOW()
		 FROM (SELECT unnest($1::bigint[]) AS id,
		              unnest($2::bigint[]) AS a) u
		 WHERE t.id = u.id`,
		table, column,
	)

	for i := 0; i < len(assignments); i += updateBatchSize {
		end := min(i+updateBatchSize, len(assignments))
		batch := assignments[i:end]

		ids := make([]int64, len(batch))
		as := make([]*int64, len(batch))
		for j, asg := range batch {
			ids[j] = asg.id
			as[j] = asg.a
		}

		if _, err := l.operator.Pool().Exec(ctx, query, ids, as); err != nil {
			return updateError(table, err)
		}
	}
	return nil
}

// updatePair applies two-column assignments in batches. NULL resolved
// values keep the existing column value.
func (l *linker) updatePair(
	ctx context.Context,
	table, columnA, columnB string,
	assignments []assignment,
) error {
	query := fmt.Sprintf(
		`UPDATE %s AS t
		 SET %s = COALESCE(u.a, t.%s),
		     %s = COALESCE(u.b, t.%s),
		     updated_at = NOW()
		 FROM (SELECT unnest($1::bigint[]) AS id,
		              unnest($2::bigint[]) AS a,
		              unnest($3::bigint[]) AS b) u
		 WHERE t.id = u.id`,
		table, columnA, columnA, columnB, columnB,
	)

	for i := 0; i < len(assignments); i += updateBatchSize {
		end := min(i+updateBatchSize, len(assignments))
		batch := assignments[i:end]

		ids := make([]int64, len(batch))
		as := make([]*int64, len(batch))
		bs := make([]*int64, len(batch))
		for j, asg := range batch {
			ids[j] = asg.id
			as[j] = asg.a
			bs[j] = asg.b
		}

		if _, err := l.operator.Pool().Exec(
			ctx, query, ids, as, bs); err != nil {
			return updateError(table, err)
		}
	}
	return nil
}
