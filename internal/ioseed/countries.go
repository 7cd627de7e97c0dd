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

// seedCountries streams the countries dataset and upserts by ISO code.
// Continent and subregion references are resolved against the already
// seeded parent tables; unresolved ones stay NULL for the linker.
func (s *seeder) seedCountries(
	ctx context.Context,
	res *world.SeedResult,
) error {
	src, err := s.source(component.Countries)
	if err != nil {
		return err
	}

	body, err := s.fetch(ctx, src)
	if err != nil {
		return err
	}
	defer body.Close()

	var records []countryRecord
	err = jsonstream.EachObject(body, func(obj []byte) error {
		var rec countryRecord
		if err := json.Unmarshal(obj, &rec); err != nil {
			res.Skipped++
			slog.Warn("Skipping undecodable country record", "error", err)
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

	continents, err := s.loadParentNames(ctx, "world_continents")
	if err != nil {
		return err
	}
	subregions, err := s.loadParentNames(ctx, "world_subregions")
	if err != nil {
		return err
	}

	bar := pb.Full.Start(len(records))
	bar.Set("prefix", "Seeding countries: ")
	bar.Set(pb.CleanOnFinish, true)
	defer bar.Finish()

	var orphanContinent, orphanSubregion int
	batchSize := s.cfg.Seed.BatchSize
	for i := 0; i < len(records); i += batchSize {
		end := min(i+batchSize, len(records))
		batch := records[i:end]

		var valueStrings []string
		var valueArgs []any
		argIdx := 1

		for _, rec := range batch {
			meta, err := json.Marshal(schema.CountryMetadata{
				ContinentName:  strings.TrimSpace(rec.Region),
				SubregionName:  strings.TrimSpace(rec.Subregion),
				Capital:        rec.Capital,
				Native:         rec.Native,
				Nationality:    rec.Nationality,
				TLD:            rec.TLD,
				NumericCode:    rec.NumericCode,
				CurrencyName:   rec.CurrencyName,
				CurrencySymbol: rec.CurrencySymbol,
				CurrencyCode:   normCode(rec.Currency),
				Emoji:          rec.Emoji,
				Timezones:      rec.Timezones,
				Translations:   rec.Translations,
			})
			if err != nil {
				return insertError("world_countries", err)
			}

			var calling *string
			if code := strings.TrimSpace(rec.PhoneCode); code != "" {
				if !strings.HasPrefix(code, "+") {
					code = "+" + code
				}
				calling = &code
			}

			continentID := lookupByName(continents, rec.Region)
			subregionID := lookupByName(subregions, rec.Subregion)
			if continentID == nil {
				orphanContinent++
			}
			if subregionID == nil && strings.TrimSpace(rec.Subregion) != "" {
				orphanSubregion++
			}

			valueStrings = append(valueStrings,
				fmt.Sprintf("($%d, $%d, $%d, $%d, $%d, $%d, $%d, NOW(), NOW())",
					argIdx, argIdx+1, argIdx+2, argIdx+3, argIdx+4,
					argIdx+5, argIdx+6))
			valueArgs = append(valueArgs,
				strings.TrimSpace(rec.Name),
				normCode(rec.ISO2),
				normCode(rec.ISO3),
				calling,
				continentID,
				subregionID,
				meta,
			)
			argIdx += 7
		}

		query := fmt.Sprintf(
			`INSERT INTO world_countries
			   (name, iso_code, iso_code_3, calling_code, continent_id,
			    subregion_id, metadata, created_at, updated_at)
			 VALUES %s
			 ON CONFLICT (iso_code) DO UPDATE
			 SET name = EXCLUDED.name,
			     iso_code_3 = EXCLUDED.iso_code_3,
			     calling_code = EXCLUDED.calling_code,
			     continent_id = EXCLUDED.continent_id,
			     subregion_id = EXCLUDED.subregion_id,
			     metadata = EXCLUDED.metadata,
			     updated_at = NOW()`,
			strings.Join(valueStrings, ", "),
		)

		if _, err := s.operator.Pool().Exec(ctx, query, valueArgs...); err != nil {
			return insertError("world_countries", err)
		}

		bar.Add(len(batch))
	}

	res.Orphans = map[string]int{
		"continent": orphanContinent,
		"subregion": orphanSubregion,
	}
	return nil
}
