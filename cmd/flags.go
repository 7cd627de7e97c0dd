package cmd

import (
	"github.com/spf13/cobra"

	"github.com/worldable/worlddb/pkg/component"
)

// addComponentFlags registers one boolean flag per component, so
// selections read naturally: worlddb install --countries --currencies.
func addComponentFlags(cmd *cobra.Command) {
	for _, c := range component.All() {
		cmd.Flags().Bool(string(c), false,
			"select the "+string(c)+" component")
	}
}

// selectedComponents collects the components whose flags were set.
func selectedComponents(cmd *cobra.Command) []component.Component {
	var res []component.Component
	for _, c := range component.All() {
		if set, _ := cmd.Flags().GetBool(string(c)); set {
			res = append(res, c)
		}
	}
	return res
}
