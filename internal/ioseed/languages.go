package ioseed

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/cheggaaa/pb/v3"
	"github.com/worldable/worlddb/pkg/component"
	"github.com/worldable/worlddb/pkg/world"
)

// seedLanguages loads the languages dataset, an object keyed by ISO
// 639-1 code, and upserts by code.
func (s *seeder) seedLanguages(
	ctx context.Context,
	res *world.SeedResult,
) error {
	src, err := s.source(component.Languages)
	if err != nil {
		return err
	}

	body, err := s.fetch(ctx, src)
	if err != nil {
		return err
	}
	defer body.Close()

	var payload map[string]languageRecord
	if err := json.NewDecoder(body).Decode(&payload); err != nil {
		return decodeError(src.URL, err)
	}

	byCode := make(map[string]languageRecord, len(payload))
	for code, rec := range payload {
		code = strings.ToLower(strings.TrimSpace(code))
		if len(code) != 2 || strings.TrimSpace(rec.Name) == "" {
			res.Skipped++
			continue
		}
		byCode[code] = rec
	}

	codes := make([]string, 0, len(byCode))
	for code := range byCode {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	res.Records = len(codes)
	if len(codes) == 0 {
		return nil
	}

	bar := pb.Full.Start(len(codes))
	bar.Set("prefix", "Seeding languages: ")
	bar.Set(pb.CleanOnFinish, true)
	defer bar.Finish()

	batchSize := s.cfg.Seed.BatchSize
	for i := 0; i < len(codes); i += batchSize {
		end := min(i+batchSize, len(codes))

		var valueStrings []string
		var valueArgs []any
		argIdx := 1

		for _, code := range codes[i:end] {
			rec := byCode[code]

			var native *string
			if n := strings.TrimSpace(rec.Native); n != "" {
				native = &n
			}

			valueStrings = append(valueStrings,
				fmt.Sprintf("($%d, $%d, $%d, NOW(), NOW())",
					argIdx, argIdx+1, argIdx+2))
			valueArgs = append(valueArgs,
				strings.TrimSpace(rec.Name), native, code)
			argIdx += 3
		}

		query := fmt.Sprintf(
			`INSERT INTO world_languages
			   (name, native_name, iso_code, created_at, updated_at)
			 VALUES %s
			 ON CONFLICT (iso_code) DO UPDATE
			 SET name = EXCLUDED.name,
			     native_name = EXCLUDED.native_name,
			     updated_at = NOW()`,
			strings.Join(valueStrings, ", "),
		)

		if _, err := s.operator.Pool().Exec(ctx, query, valueArgs...); err != nil {
			return insertError("world_languages", err)
		}

		bar.Add(end - i)
	}

	return nil
}
