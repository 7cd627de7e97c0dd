package iouninstall

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gnames/gn"
	"github.com/worldable/worlddb/pkg/component"
	"github.com/worldable/worlddb/pkg/errcode"
	"github.com/worldable/worlddb/pkg/world"
)

func notConnectedError() error {
	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  "Uninstall attempted without database connection",
		Err:  fmt.Errorf("not connected to database"),
	}
}

func strategyError(s world.Strategy) error {
	msg := `Unknown uninstall strategy <em>%s</em>

<em>Valid strategies:</em>
  nullify - keep dependents, clear their parent references (default)
  block   - refuse while installed dependents exist
  cascade - uninstall dependents too`

	return &gn.Error{
		Code: errcode.UninstallStrategyError,
		Msg:  msg,
		Vars: []any{string(s)},
		Err:  fmt.Errorf("unknown strategy %q", s),
	}
}

func noComponentsError() error {
	msg := `No components selected for uninstall

<em>How to fix:</em>
  1. Select components: <em>worlddb uninstall --cities</em>
  2. Or remove everything: <em>worlddb uninstall --all</em>`

	return &gn.Error{
		Code: errcode.InstallNoComponentsError,
		Msg:  msg,
		Err:  fmt.Errorf("empty component selection"),
	}
}

func blockedError(
	remaining map[component.Component][]component.Component,
) error {
	var lines []string
	for c, deps := range remaining {
		names := make([]string, len(deps))
		for i, dep := range deps {
			names[i] = string(dep)
		}
		lines = append(lines, fmt.Sprintf("  %s is needed by: %s",
			c, strings.Join(names, ", ")))
	}
	sort.Strings(lines)

	msg := `Uninstall blocked, installed dependents exist:

%s

<em>Options:</em>
  1. Uninstall the dependents first
  2. Use <em>--strategy cascade</em> to remove them too
  3. Use <em>--strategy nullify</em> to keep them with cleared references`

	return &gn.Error{
		Code: errcode.UninstallBlockedError,
		Msg:  msg,
		Vars: []any{strings.Join(lines, "\n")},
		Err:  fmt.Errorf("uninstall blocked by dependents"),
	}
}

func nullifyError(table, col string, err error) error {
	return &gn.Error{
		Code: errcode.LinkUpdateError,
		Msg:  "Cannot clear <em>%s.%s</em>",
		Vars: []any{table, col},
		Err:  fmt.Errorf("nullify %s.%s: %w", table, col, err),
	}
}

func ledgerError(err error) error {
	return &gn.Error{
		Code: errcode.DBQueryError,
		Msg:  "Cannot update the installation ledger",
		Err:  fmt.Errorf("installation ledger: %w", err),
	}
}
