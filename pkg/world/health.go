package world

import (
	"context"
	"time"

	"github.com/worldable/worlddb/pkg/component"
)

// HealthOptions tunes a health check.
type HealthOptions struct {
	// Detailed includes sample orphan rows in the report.
	Detailed bool
}

// ComponentStatus is the health view of a single component.
type ComponentStatus struct {
	Component    component.Component `json:"component"`
	Installed    bool                `json:"installed"`
	TableExists  bool                `json:"table_exists"`
	RecordCount  int64               `json:"record_count"`
	LastSeededAt *time.Time          `json:"last_seeded_at,omitempty"`
}

// OrphanSample is one orphaned row shown in a detailed report.
type OrphanSample struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Hint string `json:"hint,omitempty"`
}

// HealthReport is the full result of a health check.
type HealthReport struct {
	GeneratedAt time.Time         `json:"generated_at"`
	Components  []ComponentStatus `json:"components"`

	// Orphans counts rows with NULL parent references, keyed by
	// relation: subregions, countries_continent, countries_subregion,
	// states, cities_country, cities_state.
	Orphans map[string]int64 `json:"orphans"`

	// Samples holds up to five orphan rows per relation; only set for
	// detailed reports.
	Samples map[string][]OrphanSample `json:"samples,omitempty"`

	// Score is the overall health in [0,100].
	Score float64 `json:"score"`

	Recommendations []string `json:"recommendations,omitempty"`
}

// HealthChecker inspects installation completeness and linkage quality.
type HealthChecker interface {
	Check(ctx context.Context, opts HealthOptions) (*HealthReport, error)
}

// HealthScore computes the overall score: half from the fraction of
// components installed, half from the fraction of linkable rows that
// have their parent references set. With no linkable rows the linkage
// half counts as complete.
func HealthScore(installed, total int, orphanRows, linkableRows int64) float64 {
	if total == 0 {
		return 0
	}
	installedFrac := float64(installed) / float64(total)

	linkedFrac := 1.0
	if linkableRows > 0 {
		linkedFrac = float64(linkableRows-orphanRows) / float64(linkableRows)
		if linkedFrac < 0 {
			linkedFrac = 0
		}
	}

	return 100 * (0.5*installedFrac + 0.5*linkedFrac)
}
