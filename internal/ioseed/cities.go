package ioseed

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/worldable/worlddb/pkg/component"
	"github.com/worldable/worlddb/pkg/jsonstream"
	"github.com/worldable/worlddb/pkg/schema"
	"github.com/worldable/worlddb/pkg/world"
)

// seedCities streams the cities dataset. The payload is too large to
// hold in memory, so batches are flushed while the download is still in
// flight. Rows are keyed by the dataset's record id; re-seeding leaves
// existing rows untouched. Country and state references are resolved
// against the already seeded parent tables; unresolved ones stay NULL
// for the linker.
func (s *seeder) seedCities(
	ctx context.Context,
	res *world.SeedResult,
) error {
	src, err := s.source(component.Cities)
	if err != nil {
		return err
	}

	countries, err := s.loadCountriesByCode(ctx)
	if err != nil {
		return err
	}
	states, err := s.loadStatesByKey(ctx)
	if err != nil {
		return err
	}

	body, err := s.fetch(ctx, src)
	if err != nil {
		return err
	}
	defer body.Close()

	gn.Info("Seeding cities, <em>this dataset is large</em>...")

	batchSize := s.cfg.Seed.BatchSize
	batch := make([]cityRecord, 0, batchSize)
	var orphanCountry, orphanState int

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		oc, os, err := s.insertCityBatch(ctx, batch, countries, states)
		if err != nil {
			return err
		}
		orphanCountry += oc
		orphanState += os
		batch = batch[:0]
		return nil
	}

	err = jsonstream.EachObject(body, func(obj []byte) error {
		var rec cityRecord
		if err := json.Unmarshal(obj, &rec); err != nil {
			res.Skipped++
			slog.Warn("Skipping undecodable city record", "error", err)
			return nil
		}
		if !rec.valid() {
			res.Skipped++
			return nil
		}

		batch = append(batch, rec)
		res.Records++
		if res.Records%50000 == 0 {
			slog.Info("Seeding cities",
				"processed", res.Records)
			gn.Message("  processed <em>%s</em> cities",
				humanize.Comma(int64(res.Records)))
		}

		if len(batch) >= batchSize {
			return flush()
		}
		return nil
	})
	if err != nil {
		return decodeError(src.URL, err)
	}

	if err := flush(); err != nil {
		return err
	}

	res.Orphans = map[string]int{
		"country": orphanCountry,
		"state":   orphanState,
	}
	return nil
}

// insertCityBatch inserts one batch of city rows and reports how many
// of them could not be tied to a country or state.
func (s *seeder) insertCityBatch(
	ctx context.Context,
	batch []cityRecord,
	countries map[string]int64,
	states map[cityStateKey]int64,
) (int, int, error) {
	var valueStrings []string
	var valueArgs []any
	var orphanCountry, orphanState int
	argIdx := 1

	for _, rec := range batch {
		meta, err := json.Marshal(schema.CityMetadata{
			CountryCode: normCode(rec.CountryCode),
			StateCode:   normCode(rec.StateCode),
			CountryName: strings.TrimSpace(rec.CountryName),
			StateName:   strings.TrimSpace(rec.StateName),
		})
		if err != nil {
			return 0, 0, insertError("world_cities", err)
		}

		countryID := lookupByCode(countries, rec.CountryCode)
		stateID := lookupState(states, countryID, rec.StateCode)
		if countryID == nil {
			orphanCountry++
		}
		if stateID == nil && normCode(rec.StateCode) != "" {
			orphanState++
		}

		valueStrings = append(valueStrings,
			fmt.Sprintf("($%d, $%d, $%d, $%d, $%d, $%d, $%d, NOW(), NOW())",
				argIdx, argIdx+1, argIdx+2, argIdx+3, argIdx+4,
				argIdx+5, argIdx+6))
		valueArgs = append(valueArgs,
			strings.TrimSpace(rec.Name),
			countryID,
			stateID,
			sanitizeCoordinate(rec.Latitude, 90),
			sanitizeCoordinate(rec.Longitude, 180),
			rec.ID,
			meta,
		)
		argIdx += 7
	}

	query := fmt.Sprintf(
		`INSERT INTO world_cities
		   (name, country_id, state_id, latitude, longitude, source_id,
		    metadata, created_at, updated_at)
		 VALUES %s
		 ON CONFLICT (source_id) DO NOTHING`,
		strings.Join(valueStrings, ", "),
	)

	if _, err := s.operator.Pool().Exec(ctx, query, valueArgs...); err != nil {
		return 0, 0, insertError("world_cities", err)
	}

	return orphanCountry, orphanState, nil
}
