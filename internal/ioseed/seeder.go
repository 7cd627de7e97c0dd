// Package ioseed implements the world.Seeder interface: it loads
// reference data for each component into PostgreSQL. Small datasets are
// built in, large ones are downloaded from the locations in
// sources.yaml and streamed.
package ioseed

import (
	"context"
	"log/slog"
	"time"

	"github.com/worldable/worlddb/pkg/component"
	"github.com/worldable/worlddb/pkg/config"
	"github.com/worldable/worlddb/pkg/db"
	"github.com/worldable/worlddb/pkg/sources"
	"github.com/worldable/worlddb/pkg/world"
)

type seeder struct {
	cfg      *config.Config
	operator db.Operator
	sources  *sources.SourcesConfig
}

// New creates a Seeder. The sources configuration may be nil when only
// built-in components are seeded.
func New(
	cfg *config.Config,
	op db.Operator,
	src *sources.SourcesConfig,
) world.Seeder {
	return &seeder{cfg: cfg, operator: op, sources: src}
}

// Seed loads data for one component. The component's table must already
// be provisioned.
func (s *seeder) Seed(
	ctx context.Context,
	c component.Component,
) (*world.SeedResult, error) {
	if s.operator.Pool() == nil {
		return nil, notConnectedError()
	}

	start := time.Now()
	slog.Info("Seeding component", "component", c)

	res := &world.SeedResult{Component: c}
	var err error

	switch c {
	case component.Continents:
		err = s.seedContinents(ctx, res)
	case component.Subregions:
		err = s.seedSubregions(ctx, res)
	case component.Timezones:
		err = s.seedTimezones(ctx, res)
	case component.Countries:
		err = s.seedCountries(ctx, res)
	case component.States:
		err = s.seedStates(ctx, res)
	case component.Cities:
		err = s.seedCities(ctx, res)
	case component.Languages:
		err = s.seedLanguages(ctx, res)
	case component.Currencies:
		err = s.seedCurrencies(ctx, res)
	case component.Worldables:
		// junction table has no reference data
	default:
		err = unknownComponentError(c)
	}
	if err != nil {
		return nil, err
	}

	res.RowCount, err = s.operator.RowCount(ctx, component.Table(c))
	if err != nil {
		return nil, err
	}

	res.Duration = time.Since(start)
	slog.Info("Component seeded",
		"component", c,
		"records", res.Records,
		"skipped", res.Skipped,
		"rows", res.RowCount,
		"duration", res.Duration,
	)

	return res, nil
}

// source returns the data source for a remotely seeded component.
func (s *seeder) source(c component.Component) (*sources.DataSourceConfig, error) {
	if s.sources == nil {
		return nil, noSourceError(c)
	}
	src, ok := s.sources.ForComponent(c)
	if !ok {
		return nil, noSourceError(c)
	}
	return src, nil
}
