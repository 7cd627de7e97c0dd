package ioseed

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cheggaaa/pb/v3"
	"github.com/worldable/worlddb/pkg/component"
	"github.com/worldable/worlddb/pkg/jsonstream"
	"github.com/worldable/worlddb/pkg/schema"
	"github.com/worldable/worlddb/pkg/world"
)

// seedStates streams the states dataset and inserts new rows, keyed by
// the dataset's record id. Re-seeding leaves existing rows untouched.
// Country references are resolved against the already seeded countries
// table; unresolved ones stay NULL for the linker.
func (s *seeder) seedStates(
	ctx context.Context,
	res *world.SeedResult,
) error {
	src, err := s.source(component.States)
	if err != nil {
		return err
	}

	body, err := s.fetch(ctx, src)
	if err != nil {
		return err
	}
	defer body.Close()

	var records []stateRecord
	err = jsonstream.EachObject(body, func(obj []byte) error {
		var rec stateRecord
		if err := json.Unmarshal(obj, &rec); err != nil {
			res.Skipped++
			slog.Warn("Skipping undecodable state record", "error", err)
			return nil
		}
		if !rec.valid() {
			res.Skipped++
			return nil
		}
		records = append(records, rec)
		return nil
	})
	if err != nil {
		return decodeError(src.URL, err)
	}

	res.Records = len(records)
	if len(records) == 0 {
		return nil
	}

	countries, err := s.loadCountriesByCode(ctx)
	if err != nil {
		return err
	}

	bar := pb.Full.Start(len(records))
	bar.Set("prefix", "Seeding states: ")
	bar.Set(pb.CleanOnFinish, true)
	defer bar.Finish()

	var orphaned int
	batchSize := s.cfg.Seed.BatchSize
	for i := 0; i < len(records); i += batchSize {
		end := min(i+batchSize, len(records))
		batch := records[i:end]

		var valueStrings []string
		var valueArgs []any
		argIdx := 1

		for _, rec := range batch {
			meta, err := json.Marshal(schema.StateMetadata{
				CountryCode: normCode(rec.CountryCode),
				CountryName: strings.TrimSpace(rec.CountryName),
				Latitude:    rec.Latitude,
				Longitude:   rec.Longitude,
				Type:        rec.Type,
			})
			if err != nil {
				return insertError("world_states", err)
			}

			var code *string
			if c := normCode(rec.StateCode); c != "" {
				code = &c
			}

			countryID := lookupByCode(countries, rec.CountryCode)
			if countryID == nil {
				orphaned++
			}

			valueStrings = append(valueStrings,
				fmt.Sprintf("($%d, $%d, $%d, $%d, $%d, NOW(), NOW())",
					argIdx, argIdx+1, argIdx+2, argIdx+3, argIdx+4))
			valueArgs = append(valueArgs,
				strings.TrimSpace(rec.Name),
				code,
				countryID,
				rec.ID,
				meta,
			)
			argIdx += 5
		}

		query := fmt.Sprintf(
			`INSERT INTO world_states
			   (name, code, country_id, source_id, metadata,
			    created_at, updated_at)
			 VALUES %s
			 ON CONFLICT (source_id) DO NOTHING`,
			strings.Join(valueStrings, ", "),
		)

		if _, err := s.operator.Pool().Exec(ctx, query, valueArgs...); err != nil {
			return insertError("world_states", err)
		}

		bar.Add(len(batch))
	}

	res.Orphans = map[string]int{"country": orphaned}
	return nil
}
