package world

import (
	"context"

	"github.com/worldable/worlddb/pkg/component"
)

// Strategy decides what happens to dependents of an uninstalled
// component.
type Strategy string

const (
	// StrategyNullify keeps dependent rows and sets their foreign keys
	// to NULL. The default.
	StrategyNullify Strategy = "nullify"

	// StrategyBlock refuses to uninstall while installed dependents
	// exist.
	StrategyBlock Strategy = "block"

	// StrategyCascade extends the uninstall to installed dependents.
	StrategyCascade Strategy = "cascade"
)

// ValidStrategy reports whether s is a known uninstall strategy.
func ValidStrategy(s Strategy) bool {
	switch s {
	case StrategyNullify, StrategyBlock, StrategyCascade:
		return true
	}
	return false
}

// UninstallOptions selects what to remove and how to treat dependents.
type UninstallOptions struct {
	Components []component.Component
	All        bool
	Strategy   Strategy

	// Force skips the interactive confirmation.
	Force bool
}

// UninstallPlan is the resolved set of components to drop.
type UninstallPlan struct {
	// Components to drop, in reverse dependency order (children first).
	Components []component.Component

	// Nullify maps dependent tables to the foreign key columns that
	// will be set to NULL before dropping.
	Nullify map[string][]string
}

// UninstallResult reports a completed uninstall.
type UninstallResult struct {
	Dropped []component.Component

	// Nullified counts rows updated per dependent table.
	Nullified map[string]int64
}

// Uninstaller removes component tables and their ledger entries.
// Strategy validation and blocking happen at plan time, before any
// database mutation.
type Uninstaller interface {
	// Plan validates the strategy and resolves the drop set. With
	// StrategyBlock it fails when installed dependents exist; with
	// StrategyCascade it extends the set with them.
	Plan(ctx context.Context, opts UninstallOptions) (*UninstallPlan, error)

	// Uninstall executes a plan.
	Uninstall(ctx context.Context, plan *UninstallPlan) (*UninstallResult, error)
}
