package ioinstall

import (
	"github.com/worldable/worlddb/pkg/component"
	"github.com/worldable/worlddb/pkg/world"
)

// resolveSelection turns install options into the final component list
// in canonical dependency order, plus warnings for unmet dependencies.
// A dependency counts as met when it is selected or already installed.
func resolveSelection(
	opts world.InstallOptions,
	installed map[component.Component]bool,
) ([]component.Component, []world.DependencyWarning) {
	selected := make(map[component.Component]bool)

	if opts.All {
		for _, c := range component.All() {
			if opts.SkipLarge && component.IsLarge(c) {
				continue
			}
			selected[c] = true
		}
	} else {
		for _, c := range opts.Components {
			selected[c] = true
		}
	}

	if opts.WithDependencies {
		// transitive closure; All() is short, loop until stable
		for changed := true; changed; {
			changed = false
			for c := range selected {
				for _, dep := range component.Dependencies(c) {
					if !selected[dep] && !installed[dep] {
						selected[dep] = true
						changed = true
					}
				}
			}
		}
	}

	var comps []component.Component
	var warnings []world.DependencyWarning
	for _, c := range component.All() {
		if !selected[c] {
			continue
		}
		comps = append(comps, c)

		var missing []component.Component
		for _, dep := range component.Dependencies(c) {
			if !selected[dep] && !installed[dep] {
				missing = append(missing, dep)
			}
		}
		if len(missing) > 0 {
			warnings = append(warnings, world.DependencyWarning{
				Component: c,
				Missing:   missing,
			})
		}
	}

	return comps, warnings
}
