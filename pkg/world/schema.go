// Package world defines the contracts for the worlddb lifecycle:
// provisioning, seeding, linking, uninstalling, and health checks.
// Implementations live in internal/io* packages.
package world

import (
	"context"

	"github.com/worldable/worlddb/pkg/component"
)

// SchemaManager handles table creation and repair through GORM
// AutoMigrate. All operations are idempotent and safe to run multiple
// times; re-provisioning an existing table never drops data.
type SchemaManager interface {
	// Provision creates or updates the tables for the given components,
	// plus the installation-state ledger.
	Provision(ctx context.Context, comps []component.Component) error

	// Missing returns the subset of components whose tables do not
	// exist. Used after Provision to verify, and by repair to decide
	// what to recreate.
	Missing(ctx context.Context, comps []component.Component) ([]component.Component, error)
}
