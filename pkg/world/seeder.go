package world

import (
	"context"
	"time"

	"github.com/worldable/worlddb/pkg/component"
)

// SeedResult reports the outcome of seeding one component.
type SeedResult struct {
	Component component.Component

	// Records is the number of dataset records processed.
	Records int

	// Skipped counts records rejected by validation (empty names,
	// undecodable objects).
	Skipped int

	// RowCount is the table row count after the seed run.
	RowCount int64

	// Orphans counts records whose parent lookup failed during the
	// run, keyed by relation name ("continent", "subregion",
	// "country", "state"). Those rows keep a NULL reference until
	// the linker backfills them.
	Orphans map[string]int

	Duration time.Duration
}

// Seeder loads reference data for a single component into its table.
// Seeding is idempotent: rows are upserted by their natural key, or
// skipped when the source record id is already present.
type Seeder interface {
	// Seed loads data for the component. The component's table must
	// already exist.
	Seed(ctx context.Context, c component.Component) (*SeedResult, error)
}
