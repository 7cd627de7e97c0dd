// Package iouninstall implements the world.Uninstaller interface: it
// removes component tables and ledger entries, treating dependents
// according to the chosen strategy.
package iouninstall

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/worldable/worlddb/pkg/component"
	"github.com/worldable/worlddb/pkg/config"
	"github.com/worldable/worlddb/pkg/db"
	"github.com/worldable/worlddb/pkg/world"
)

type uninstaller struct {
	cfg      *config.Config
	operator db.Operator
}

// New creates an Uninstaller.
func New(cfg *config.Config, op db.Operator) world.Uninstaller {
	return &uninstaller{cfg: cfg, operator: op}
}

// Plan validates the strategy and resolves the drop set before any
// database mutation.
func (u *uninstaller) Plan(
	ctx context.Context,
	opts world.UninstallOptions,
) (*world.UninstallPlan, error) {
	strategy := opts.Strategy
	if strategy == "" {
		strategy = world.StrategyNullify
	}
	if !world.ValidStrategy(strategy) {
		return nil, strategyError(opts.Strategy)
	}

	selected := make(map[component.Component]bool)
	if opts.All {
		for _, c := range component.All() {
			selected[c] = true
		}
	} else {
		for _, c := range opts.Components {
			selected[c] = true
		}
	}
	if len(selected) == 0 {
		return nil, noComponentsError()
	}

	// dependents that still have a table and are not themselves going
	// away
	remaining := make(map[component.Component][]component.Component)
	for c := range selected {
		for _, dep := range component.Dependents(c) {
			if selected[dep] {
				continue
			}
			exists, err := u.operator.TableExists(
				ctx, component.Table(dep))
			if err != nil {
				return nil, err
			}
			if exists {
				remaining[c] = append(remaining[c], dep)
			}
		}
	}

	switch strategy {
	case world.StrategyBlock:
		if len(remaining) > 0 {
			return nil, blockedError(remaining)
		}
	case world.StrategyCascade:
		for _, deps := range remaining {
			for _, dep := range deps {
				selected[dep] = true
			}
		}
		remaining = nil
	}

	plan := &world.UninstallPlan{
		Nullify: make(map[string][]string),
	}

	// children drop before parents
	all := component.All()
	for idx := len(all) - 1; idx >= 0; idx-- {
		if selected[all[idx]] {
			plan.Components = append(plan.Components, all[idx])
		}
	}

	if strategy == world.StrategyNullify {
		for c, deps := range remaining {
			col, ok := component.ChildForeignKey(c)
			if !ok {
				continue
			}
			for _, dep := range deps {
				table := component.Table(dep)
				if tableHasColumn(dep, col) &&
					!slices.Contains(plan.Nullify[table], col) {
					plan.Nullify[table] = append(plan.Nullify[table], col)
				}
			}
		}
	}

	return plan, nil
}

// fkColumns lists the parent reference columns each child table
// actually carries.
var fkColumns = map[component.Component][]string{
	component.Subregions: {"continent_id"},
	component.Countries:  {"continent_id", "subregion_id"},
	component.States:     {"country_id"},
	component.Cities:     {"country_id", "state_id"},
}

func tableHasColumn(c component.Component, col string) bool {
	return slices.Contains(fkColumns[c], col)
}

// Uninstall executes a plan: nullify dependent foreign keys, drop the
// tables, remove ledger rows.
func (u *uninstaller) Uninstall(
	ctx context.Context,
	plan *world.UninstallPlan,
) (*world.UninstallResult, error) {
	if u.operator.Pool() == nil {
		return nil, notConnectedError()
	}

	res := &world.UninstallResult{
		Nullified: make(map[string]int64),
	}

	for table, cols := range plan.Nullify {
		for _, col := range cols {
			query := fmt.Sprintf(
				`UPDATE %s SET %s = NULL, updated_at = NOW()
				 WHERE %s IS NOT NULL`,
				table, col, col,
			)
			tag, err := u.operator.Pool().Exec(ctx, query)
			if err != nil {
				return nil, nullifyError(table, col, err)
			}
			res.Nullified[table] += tag.RowsAffected()
			slog.Info("Nullified parent references",
				"table", table,
				"column", col,
				"rows", tag.RowsAffected(),
			)
		}
	}

	for _, c := range plan.Components {
		if err := u.operator.DropTable(ctx, component.Table(c)); err != nil {
			return nil, err
		}
		res.Dropped = append(res.Dropped, c)
		slog.Info("Dropped component", "component", c)
	}

	if err := u.removeLedgerEntries(ctx, plan.Components); err != nil {
		return nil, err
	}

	return res, nil
}

// removeLedgerEntries deletes ledger rows for dropped components. A
// missing ledger table is fine.
func (u *uninstaller) removeLedgerEntries(
	ctx context.Context,
	comps []component.Component,
) error {
	exists, err := u.operator.TableExists(
		ctx, "world_installation_state")
	if err != nil {
		return err
	}
	if !exists {
		return nil
	}

	names := make([]string, len(comps))
	for i, c := range comps {
		names[i] = string(c)
	}

	_, err = u.operator.Pool().Exec(ctx,
		`DELETE FROM world_installation_state
		 WHERE component = ANY($1)`, names)
	if err != nil {
		return ledgerError(err)
	}
	return nil
}
