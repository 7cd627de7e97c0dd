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

// seedCurrencies loads the currencies dataset, an object keyed by ISO
// 4217 code, and upserts by code.
func (s *seeder) seedCurrencies(
	ctx context.Context,
	res *world.SeedResult,
) error {
	src, err := s.source(component.Currencies)
	if err != nil {
		return err
	}

	body, err := s.fetch(ctx, src)
	if err != nil {
		return err
	}
	defer body.Close()

	var payload map[string]currencyRecord
	if err := json.NewDecoder(body).Decode(&payload); err != nil {
		return decodeError(src.URL, err)
	}

	byCode := make(map[string]currencyRecord, len(payload))
	for code, rec := range payload {
		code = normCode(code)
		if len(code) != 3 || strings.TrimSpace(rec.Name) == "" {
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
	bar.Set("prefix", "Seeding currencies: ")
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

			var symbol *string
			if sym := strings.TrimSpace(rec.Symbol); sym != "" {
				symbol = &sym
			}

			valueStrings = append(valueStrings,
				fmt.Sprintf("($%d, $%d, $%d, NOW(), NOW())",
					argIdx, argIdx+1, argIdx+2))
			valueArgs = append(valueArgs,
				strings.TrimSpace(rec.Name), code, symbol)
			argIdx += 3
		}

		query := fmt.Sprintf(
			`INSERT INTO world_currencies
			   (name, code, symbol, created_at, updated_at)
			 VALUES %s
			 ON CONFLICT (code) DO UPDATE
			 SET name = EXCLUDED.name,
			     symbol = EXCLUDED.symbol,
			     updated_at = NOW()`,
			strings.Join(valueStrings, ", "),
		)

		if _, err := s.operator.Pool().Exec(ctx, query, valueArgs...); err != nil {
			return insertError("world_currencies", err)
		}

		bar.Add(end - i)
	}

	return nil
}
