package cmd

import (
	"context"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"

	"github.com/worldable/worlddb/internal/iodb"
	"github.com/worldable/worlddb/internal/iouninstall"
	"github.com/worldable/worlddb/pkg/world"
)

// getUninstallCmd returns the uninstall command.
func getUninstallCmd() *cobra.Command {
	var (
		opts     world.UninstallOptions
		strategy string
	)

	uninstallCmd := &cobra.Command{
		Use:   "uninstall",
		Short: "Remove component tables and their data",
		Long: `Uninstall drops component tables and removes their ledger entries.

Dependents of a dropped component are handled by strategy:
  nullify - keep dependent rows, set their parent references to NULL
            (default)
  block   - refuse to uninstall while installed dependents exist
  cascade - uninstall the dependents too

Examples:
  # Drop the cities table
  worlddb uninstall --cities

  # Drop countries and everything that depends on them
  worlddb uninstall --countries --strategy cascade

  # Remove the whole installation without prompting
  worlddb uninstall --all --force`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Components = selectedComponents(cmd)
			opts.Strategy = world.Strategy(strategy)
			err := runUninstall(&opts)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	addComponentFlags(uninstallCmd)
	uninstallCmd.Flags().BoolVarP(&opts.All, "all", "a",
		false, "uninstall every component")
	uninstallCmd.Flags().StringVarP(&strategy, "strategy", "s",
		string(world.StrategyNullify),
		"dependent handling: nullify, block or cascade")
	uninstallCmd.Flags().BoolVarP(&opts.Force, "force", "f",
		false, "drop tables without confirmation")

	return uninstallCmd
}

func runUninstall(opts *world.UninstallOptions) error {
	ctx := context.Background()

	op := iodb.NewPgxOperator()
	if err := op.Connect(ctx, &cfg.Database); err != nil {
		return err
	}
	defer op.Close()

	gn.Info("Connected to database: <em>%s@%s:%d/%s</em>",
		cfg.Database.User, cfg.Database.Host,
		cfg.Database.Port, cfg.Database.Database)

	uninstaller := iouninstall.New(cfg, op)

	plan, err := uninstaller.Plan(ctx, *opts)
	if err != nil {
		return err
	}

	if !opts.Force {
		names := make([]string, len(plan.Components))
		for i, c := range plan.Components {
			names[i] = string(c)
		}
		gn.Warn("\nWarning: this drops tables and their data for: %s",
			strings.Join(names, ", "))

		confirmed, err := askYesNo("\nDo you want to continue? (yes/no): ")
		if err != nil {
			return err
		}
		if !confirmed {
			gn.Info("Aborted. No changes made.")
			return nil
		}
	}

	res, err := uninstaller.Uninstall(ctx, plan)
	if err != nil {
		return err
	}

	for table, n := range res.Nullified {
		if n > 0 {
			gn.Info("  nullified %s parent references in <em>%s</em>",
				humanize.Comma(n), table)
		}
	}
	for _, c := range res.Dropped {
		gn.Info("  dropped <em>%s</em>", c)
	}
	gn.Info("\nUninstall complete.")

	return nil
}
