package world

import (
	"context"
	"time"

	"github.com/worldable/worlddb/pkg/component"
)

// LinkOptions tunes a link run.
type LinkOptions struct {
	// DryRun reports what would be linked without writing.
	DryRun bool

	// Force re-resolves rows that already have a parent reference, not
	// only the orphaned ones.
	Force bool
}

// LinkResult reports the outcome of linking one component.
type LinkResult struct {
	Component component.Component

	// Total is the number of rows examined.
	Total int64

	// Linked is the number of rows whose parent reference was filled.
	Linked int64

	// NotFound is the number of rows whose metadata did not resolve to
	// an existing parent. Those rows keep a NULL reference.
	NotFound int64

	// Skipped is the number of rows with no usable metadata.
	Skipped int64
}

// LinkReport aggregates linking across components.
type LinkReport struct {
	Results  []LinkResult
	Duration time.Duration
}

// Linker backfills NULL parent references from the denormalized
// metadata stored at seed time. Linking never overwrites an existing
// reference unless forced, and a component whose table (or parent
// table) is absent yields a zero result, not an error.
type Linker interface {
	// Link backfills parent references for the given components in
	// dependency order.
	Link(ctx context.Context, comps []component.Component, opts LinkOptions) (*LinkReport, error)
}
