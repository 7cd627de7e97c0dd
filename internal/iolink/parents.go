package iolink

import (
	"context"
	"encoding/json"
)

// loadNameIndex builds a lookup of normalized name to id for a parent
// table.
func (l *linker) loadNameIndex(
	ctx context.Context,
	table string,
) (map[string]int64, error) {
	query := "SELECT id, name FROM " + table

	rows, err := l.operator.Pool().Query(ctx, query)
	if err != nil {
		return nil, queryError(table, err)
	}
	defer rows.Close()

	res := make(map[string]int64)
	for rows.Next() {
		var id int64
		var name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, queryError(table, err)
		}
		res[normName(name)] = id
	}
	if err := rows.Err(); err != nil {
		return nil, queryError(table, err)
	}

	return res, nil
}

// loadCountryCodeIndex builds a lookup of ISO alpha-2 code to id.
func (l *linker) loadCountryCodeIndex(
	ctx context.Context,
) (map[string]int64, error) {
	query := "SELECT id, iso_code FROM world_countries"

	rows, err := l.operator.Pool().Query(ctx, query)
	if err != nil {
		return nil, queryError("world_countries", err)
	}
	defer rows.Close()

	res := make(map[string]int64)
	for rows.Next() {
		var id int64
		var code string
		if err := rows.Scan(&id, &code); err != nil {
			return nil, queryError("world_countries", err)
		}
		res[normCode(code)] = id
	}
	if err := rows.Err(); err != nil {
		return nil, queryError("world_countries", err)
	}

	return res, nil
}

// loadStateKeyIndex builds a lookup of country/state code pair to state
// id, using the country code kept in each state's metadata.
func (l *linker) loadStateKeyIndex(
	ctx context.Context,
) (map[stateKey]int64, error) {
	query := `SELECT id, code, metadata FROM world_states
		WHERE code IS NOT NULL AND metadata IS NOT NULL`

	rows, err := l.operator.Pool().Query(ctx, query)
	if err != nil {
		return nil, queryError("world_states", err)
	}
	defer rows.Close()

	res := make(map[stateKey]int64)
	for rows.Next() {
		var id int64
		var code string
		var metaRaw []byte
		if err := rows.Scan(&id, &code, &metaRaw); err != nil {
			return nil, queryError("world_states", err)
		}

		var meta struct {
			CountryCode string `json:"country_code"`
		}
		if err := json.Unmarshal(metaRaw, &meta); err != nil {
			continue
		}
		cc := normCode(meta.CountryCode)
		sc := normCode(code)
		if cc == "" || sc == "" {
			continue
		}
		res[stateKey{cc, sc}] = id
	}
	if err := rows.Err(); err != nil {
		return nil, queryError("world_states", err)
	}

	return res, nil
}
