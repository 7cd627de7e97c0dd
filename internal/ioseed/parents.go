package ioseed

import (
	"context"
	"strings"
)

// cityStateKey identifies a state by its resolved country id and its
// state code. The cities dataset carries both, which makes the pair
// unique enough to find the parent state.
type cityStateKey struct {
	countryID int64
	stateCode string
}

// normName lowercases and trims a lookup name.
func normName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// loadParentNames builds a lookup of normalized name to id for an
// already seeded parent table. A missing parent table yields an empty
// map, so every lookup falls through to a NULL reference that the
// linker can backfill later.
func (s *seeder) loadParentNames(
	ctx context.Context,
	table string,
) (map[string]int64, error) {
	exists, err := s.operator.TableExists(ctx, table)
	if err != nil {
		return nil, err
	}
	res := make(map[string]int64)
	if !exists {
		return res, nil
	}

	query := "SELECT id, name FROM " + table
	rows, err := s.operator.Pool().Query(ctx, query)
	if err != nil {
		return nil, lookupError(table, err)
	}
	defer rows.Close()

	for rows.Next() {
		var id int64
		var name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, lookupError(table, err)
		}
		res[normName(name)] = id
	}
	if err := rows.Err(); err != nil {
		return nil, lookupError(table, err)
	}

	return res, nil
}

// loadCountriesByCode builds a lookup of ISO alpha-2 code to country
// id. A missing countries table yields an empty map.
func (s *seeder) loadCountriesByCode(
	ctx context.Context,
) (map[string]int64, error) {
	exists, err := s.operator.TableExists(ctx, "world_countries")
	if err != nil {
		return nil, err
	}
	res := make(map[string]int64)
	if !exists {
		return res, nil
	}

	query := "SELECT id, iso_code FROM world_countries"
	rows, err := s.operator.Pool().Query(ctx, query)
	if err != nil {
		return nil, lookupError("world_countries", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id int64
		var code string
		if err := rows.Scan(&id, &code); err != nil {
			return nil, lookupError("world_countries", err)
		}
		res[normCode(code)] = id
	}
	if err := rows.Err(); err != nil {
		return nil, lookupError("world_countries", err)
	}

	return res, nil
}

// loadStatesByKey builds a lookup of (country id, state code) to state
// id. States without a code or a country reference cannot anchor a
// city and are left out.
func (s *seeder) loadStatesByKey(
	ctx context.Context,
) (map[cityStateKey]int64, error) {
	exists, err := s.operator.TableExists(ctx, "world_states")
	if err != nil {
		return nil, err
	}
	res := make(map[cityStateKey]int64)
	if !exists {
		return res, nil
	}

	query := `SELECT id, country_id, code FROM world_states
		WHERE code IS NOT NULL AND country_id IS NOT NULL`
	rows, err := s.operator.Pool().Query(ctx, query)
	if err != nil {
		return nil, lookupError("world_states", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id, countryID int64
		var code string
		if err := rows.Scan(&id, &countryID, &code); err != nil {
			return nil, lookupError("world_states", err)
		}
		sc := normCode(code)
		if sc == "" {
			continue
		}
		res[cityStateKey{countryID, sc}] = id
	}
	if err := rows.Err(); err != nil {
		return nil, lookupError("world_states", err)
	}

	return res, nil
}

// lookupByName resolves a parent id by name, case-insensitively. A
// blank or unknown name yields nil.
func lookupByName(idx map[string]int64, name string) *int64 {
	key := normName(name)
	if key == "" {
		return nil
	}
	if id, ok := idx[key]; ok {
		return &id
	}
	return nil
}

// lookupByCode resolves a country id by ISO alpha-2 code.
func lookupByCode(idx map[string]int64, code string) *int64 {
	key := normCode(code)
	if key == "" {
		return nil
	}
	if id, ok := idx[key]; ok {
		return &id
	}
	return nil
}

// lookupState resolves a state id from a resolved country and a state
// code. Without a country there is no way to disambiguate state codes.
func lookupState(
	idx map[cityStateKey]int64,
	countryID *int64,
	stateCode string,
) *int64 {
	if countryID == nil {
		return nil
	}
	sc := normCode(stateCode)
	if sc == "" {
		return nil
	}
	if id, ok := idx[cityStateKey{*countryID, sc}]; ok {
		return &id
	}
	return nil
}
