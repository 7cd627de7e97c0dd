package world

import (
	"context"
	"time"

	"github.com/worldable/worlddb/pkg/component"
)

// InstallOptions selects what to install and how.
type InstallOptions struct {
	// Components is the explicit selection; ignored when All is set.
	Components []component.Component

	// All selects every component.
	All bool

	// SkipLarge excludes the large datasets (states, cities) from an
	// --all selection.
	SkipLarge bool

	// WithDependencies adds missing dependencies to the selection
	// transitively instead of warning about them.
	WithDependencies bool

	// NoLink skips the linking pass after seeding.
	NoLink bool

	// AutoLink runs the linking pass without asking.
	AutoLink bool

	// RollbackOnError drops the tables provisioned by this run if
	// seeding fails partway.
	RollbackOnError bool
}

// DependencyWarning flags a selected component whose dependency is
// neither selected nor already installed. Installation proceeds; the
// rows seed with NULL parent references until the dependency is
// installed and linked.
type DependencyWarning struct {
	Component component.Component
	Missing   []component.Component
}

// InstallPlan is the resolved install order with its warnings.
type InstallPlan struct {
	// RunID identifies this install invocation in the ledger.
	RunID string

	// Components is the final selection in canonical dependency order.
	Components []component.Component

	// Warnings lists unmet dependencies; empty when WithDependencies
	// resolved them.
	Warnings []DependencyWarning
}

// InstallResult reports a completed install run.
type InstallResult struct {
	RunID string

	// Provisioned lists components whose tables were created by this
	// run (as opposed to already existing).
	Provisioned []component.Component

	// Seeded maps each seeded component to its seed outcome.
	Seeded map[component.Component]*SeedResult

	// LinkReport is set when a linking pass ran.
	LinkReport *LinkReport

	Duration time.Duration
}

// Installer drives the install state machine: resolve the selection,
// provision tables, verify and repair, seed in dependency order, record
// progress in the ledger, and optionally link.
type Installer interface {
	// Plan resolves InstallOptions into an ordered plan. It consults
	// the ledger to decide which dependencies are already satisfied.
	Plan(ctx context.Context, opts InstallOptions) (*InstallPlan, error)

	// Install executes a plan.
	Install(ctx context.Context, plan *InstallPlan, opts InstallOptions) (*InstallResult, error)
}
