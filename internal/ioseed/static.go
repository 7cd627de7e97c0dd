package ioseed

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/worldable/worlddb/pkg/schema"
	"github.com/worldable/worlddb/pkg/world"
)

// continentRow is one built-in continent.
type continentRow struct {
	name string
	code string
}

var continentData = []continentRow{
	{"Africa", "AF"},
	{"Antarctica", "AN"},
	{"Asia", "AS"},
	{"Europe", "EU"},
	{"North America", "NA"},
	{"Oceania", "OC"},
	{"South America", "SA"},
}

// subregionRow is one built-in UN M49-style subregion.
type subregionRow struct {
	name      string
	code      string
	continent string
}

var subregionData = []subregionRow{
	{"Northern Africa", "NAF", "Africa"},
	{"Middle Africa", "MAF", "Africa"},
	{"Western Africa", "WAF", "Africa"},
	{"Eastern Africa", "EAF", "Africa"},
	{"Southern Africa", "SAF", "Africa"},
	{"Northern America", "NAM", "North America"},
	{"Caribbean", "CAR", "North America"},
	{"Central America", "CAM", "North America"},
	{"South America", "SAM", "South America"},
	{"Central Asia", "CAS", "Asia"},
	{"Western Asia", "WAS", "Asia"},
	{"Eastern Asia", "EAS", "Asia"},
	{"South-Eastern Asia", "SEA", "Asia"},
	{"Southern Asia", "SAS", "Asia"},
	{"Eastern Europe", "EEU", "Europe"},
	{"Southern Europe", "SEU", "Europe"},
	{"Western Europe", "WEU", "Europe"},
	{"Northern Europe", "NEU", "Europe"},
	{"Australia and New Zealand", "ANZ", "Oceania"},
	{"Melanesia", "MEL", "Oceania"},
	{"Micronesia", "MIC", "Oceania"},
	{"Polynesia", "POL", "Oceania"},
	{"Antarctica", "ANT", "Antarctica"},
}

// timezoneRow is one built-in IANA timezone.
type timezoneRow struct {
	name         string
	zoneName     string
	gmtOffset    int
	offsetName   string
	abbreviation string
}

var timezoneData = []timezoneRow{
	{"Greenwich Mean Time", "Africa/Abidjan", 0, "UTC+00:00", "GMT"},
	{"Eastern European Time", "Africa/Cairo", 7200, "UTC+02:00", "EET"},
	{"Central European Time", "Africa/Casablanca", 3600, "UTC+01:00", "CET"},
	{"South Africa Standard Time", "Africa/Johannesburg", 7200, "UTC+02:00", "SAST"},
	{"West Africa Time", "Africa/Lagos", 3600, "UTC+01:00", "WAT"},
	{"East Africa Time", "Africa/Nairobi", 10800, "UTC+03:00", "EAT"},
	{"Argentina Time", "America/Argentina/Buenos_Aires", -10800, "UTC-03:00", "ART"},
	{"Atlantic Standard Time", "America/Barbados", -14400, "UTC-04:00", "AST"},
	{"Brasilia Time", "America/Sao_Paulo", -10800, "UTC-03:00", "BRT"},
	{"Central Standard Time", "America/Chicago", -21600, "UTC-06:00", "CST"},
	{"Central Standard Time (Mexico)", "America/Mexico_City", -21600, "UTC-06:00", "CST"},
	{"Colombia Time", "America/Bogota", -18000, "UTC-05:00", "COT"},
	{"Eastern Standard Time", "America/New_York", -18000, "UTC-05:00", "EST"},
	{"Eastern Standard Time (Canada)", "America/Toronto", -18000, "UTC-05:00", "EST"},
	{"Alaska Standard Time", "America/Anchorage", -32400, "UTC-09:00", "AKST"},
	{"Mountain Standard Time", "America/Denver", -25200, "UTC-07:00", "MST"},
	{"Pacific Standard Time", "America/Los_Angeles", -28800, "UTC-08:00", "PST"},
	{"Pacific Standard Time (Canada)", "America/Vancouver", -28800, "UTC-08:00", "PST"},
	{"Peru Time", "America/Lima", -18000, "UTC-05:00", "PET"},
	{"Chile Standard Time", "America/Santiago", -14400, "UTC-04:00", "CLT"},
	{"Antarctica Time", "Antarctica/McMurdo", 43200, "UTC+12:00", "NZST"},
	{"Arabia Standard Time", "Asia/Riyadh", 10800, "UTC+03:00", "AST"},
	{"Gulf Standard Time", "Asia/Dubai", 14400, "UTC+04:00", "GST"},
	{"Pakistan Standard Time", "Asia/Karachi", 18000, "UTC+05:00", "PKT"},
	{"India Standard Time", "Asia/Kolkata", 19800, "UTC+05:30", "IST"},
	{"Bangladesh Standard Time", "Asia/Dhaka", 21600, "UTC+06:00", "BST"},
	{"Indochina Time", "Asia/Bangkok", 25200, "UTC+07:00", "ICT"},
	{"Western Indonesia Time", "Asia/Jakarta", 25200, "UTC+07:00", "WIB"},
	{"China Standard Time", "Asia/Shanghai", 28800, "UTC+08:00", "CST"},
	{"Hong Kong Time", "Asia/Hong_Kong", 28800, "UTC+08:00", "HKT"},
	{"Singapore Time", "Asia/Singapore", 28800, "UTC+08:00", "SGT"},
	{"Japan Standard Time", "Asia/Tokyo", 32400, "UTC+09:00", "JST"},
	{"Korea Standard Time", "Asia/Seoul", 32400, "UTC+09:00", "KST"},
	{"Israel Standard Time", "Asia/Jerusalem", 7200, "UTC+02:00", "IST"},
	{"Turkey Time", "Europe/Istanbul", 10800, "UTC+03:00", "TRT"},
	{"Azores Standard Time", "Atlantic/Azores", -3600, "UTC-01:00", "AZOT"},
	{"Greenwich Mean Time", "Europe/London", 0, "UTC+00:00", "GMT"},
	{"Western European Time", "Europe/Lisbon", 0, "UTC+00:00", "WET"},
	{"Central European Time", "Europe/Paris", 3600, "UTC+01:00", "CET"},
	{"Central European Time", "Europe/Berlin", 3600, "UTC+01:00", "CET"},
	{"Central European Time", "Europe/Madrid", 3600, "UTC+01:00", "CET"},
	{"Central European Time", "Europe/Rome", 3600, "UTC+01:00", "CET"},
	{"Central European Time", "Europe/Warsaw", 3600, "UTC+01:00", "CET"},
	{"Eastern European Time", "Europe/Athens", 7200, "UTC+02:00", "EET"},
	{"Eastern European Time", "Europe/Helsinki", 7200, "UTC+02:00", "EET"},
	{"Eastern European Time", "Europe/Kyiv", 7200, "UTC+02:00", "EET"},
	{"Moscow Standard Time", "Europe/Moscow", 10800, "UTC+03:00", "MSK"},
	{"Australian Western Standard Time", "Australia/Perth", 28800, "UTC+08:00", "AWST"},
	{"Australian Central Standard Time", "Australia/Adelaide", 34200, "UTC+09:30", "ACST"},
	{"Australian Eastern Standard Time", "Australia/Sydney", 36000, "UTC+10:00", "AEST"},
	{"New Zealand Standard Time", "Pacific/Auckland", 43200, "UTC+12:00", "NZST"},
	{"Fiji Time", "Pacific/Fiji", 43200, "UTC+12:00", "FJT"},
	{"Hawaii-Aleutian Standard Time", "Pacific/Honolulu", -36000, "UTC-10:00", "HST"},
	{"Samoa Standard Time", "Pacific/Pago_Pago", -39600, "UTC-11:00", "SST"},
}

// seedContinents upserts the built-in continents by code.
func (s *seeder) seedContinents(
	ctx context.Context,
	res *world.SeedResult,
) error {
	var valueStrings []string
	var valueArgs []any
	argIdx := 1

	for _, row := range continentData {
		valueStrings = append(valueStrings,
			fmt.Sprintf("($%d, $%d, NOW(), NOW())", argIdx, argIdx+1))
		valueArgs = append(valueArgs, row.name, row.code)
		argIdx += 2
	}

	query := fmt.Sprintf(
		`INSERT INTO world_continents (name, code, created_at, updated_at)
		 VALUES %s
		 ON CONFLICT (code) DO UPDATE
		 SET name = EXCLUDED.name, updated_at = NOW()`,
		strings.Join(valueStrings, ", "),
	)

	if _, err := s.operator.Pool().Exec(ctx, query, valueArgs...); err != nil {
		return insertError("world_continents", err)
	}

	res.Records = len(continentData)
	return nil
}

// seedSubregions upserts the built-in subregions by code. The parent
// continent is resolved right away; its name also goes into metadata
// for the linker.
func (s *seeder) seedSubregions(
	ctx context.Context,
	res *world.SeedResult,
) error {
	continents, err := s.loadParentNames(ctx, "world_continents")
	if err != nil {
		return err
	}

	var valueStrings []string
	var valueArgs []any
	var orphaned int
	argIdx := 1

	for _, row := range subregionData {
		meta, err := json.Marshal(
			schema.SubregionMetadata{ContinentName: row.continent})
		if err != nil {
			return insertError("world_subregions", err)
		}

		continentID := lookupByName(continents, row.continent)
		if continentID == nil {
			orphaned++
		}

		valueStrings = append(valueStrings,
			fmt.Sprintf("($%d, $%d, $%d, $%d, NOW(), NOW())",
				argIdx, argIdx+1, argIdx+2, argIdx+3))
		valueArgs = append(valueArgs, row.name, row.code, continentID, meta)
		argIdx += 4
	}

	query := fmt.Sprintf(
		`INSERT INTO world_subregions
		   (name, code, continent_id, metadata, created_at, updated_at)
		 VALUES %s
		 ON CONFLICT (code) DO UPDATE
		 SET name = EXCLUDED.name,
		     continent_id = EXCLUDED.continent_id,
		     metadata = EXCLUDED.metadata,
		     updated_at = NOW()`,
		strings.Join(valueStrings, ", "),
	)

	if _, err := s.operator.Pool().Exec(ctx, query, valueArgs...); err != nil {
		return insertError("world_subregions", err)
	}

	res.Records = len(subregionData)
	res.Orphans = map[string]int{"continent": orphaned}
	return nil
}

// seedTimezones inserts the built-in timezones; existing zones are left
// untouched.
func (s *seeder) seedTimezones(
	ctx context.Context,
	res *world.SeedResult,
) error {
	var valueStrings []string
	var valueArgs []any
	argIdx := 1

	for _, row := range timezoneData {
		valueStrings = append(valueStrings,
			fmt.Sprintf("($%d, $%d, $%d, $%d, $%d, NOW(), NOW())",
				argIdx, argIdx+1, argIdx+2, argIdx+3, argIdx+4))
		valueArgs = append(valueArgs,
			row.name, row.zoneName, row.gmtOffset,
			row.offsetName, row.abbreviation)
		argIdx += 5
	}

	query := fmt.Sprintf(
		`INSERT INTO world_timezones
		   (name, zone_name, gmt_offset, gmt_offset_name, abbreviation,
		    created_at, updated_at)
		 VALUES %s
		 ON CONFLICT (zone_name) DO NOTHING`,
		strings.Join(valueStrings, ", "),
	)

	if _, err := s.operator.Pool().Exec(ctx, query, valueArgs...); err != nil {
		return insertError("world_timezones", err)
	}

	res.Records = len(timezoneData)
	return nil
}
