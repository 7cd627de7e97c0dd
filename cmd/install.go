package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/spf13/cobra"

	"github.com/worldable/worlddb/internal/iodb"
	"github.com/worldable/worlddb/internal/ioinstall"
	"github.com/worldable/worlddb/internal/iolink"
	"github.com/worldable/worlddb/internal/ioschema"
	"github.com/worldable/worlddb/internal/ioseed"
	"github.com/worldable/worlddb/internal/iosources"
	"github.com/worldable/worlddb/pkg/component"
	"github.com/worldable/worlddb/pkg/world"
)

// getInstallCmd returns the install command.
func getInstallCmd() *cobra.Command {
	var opts world.InstallOptions

	installCmd := &cobra.Command{
		Use:   "install",
		Short: "Install geographic reference data",
		Long: `Install creates component tables and seeds them with data.

This command:
  1. Connects to PostgreSQL using configuration settings
  2. Resolves the component selection and its dependencies
  3. Creates missing tables via GORM AutoMigrate
  4. Seeds each component from bundled data or remote datasets
  5. Records progress in the world_installation_state ledger
  6. Optionally backfills parent references (linking)

Without component flags or --all the selection is interactive.

Components in dependency order:
  continents, subregions, countries, states, cities,
  languages, currencies, timezones, worldables

Examples:
  # Install everything
  worlddb install --all

  # Install countries and their dependencies
  worlddb install --countries --with-dependencies

  # Everything except the large datasets (states, cities)
  worlddb install --all --skip-large

  # Unattended run that cleans up after itself
  worlddb install --all --auto-link --rollback-on-error`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Components = selectedComponents(cmd)
			err := runInstall(&opts)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	addComponentFlags(installCmd)
	installCmd.Flags().BoolVarP(&opts.All, "all", "a",
		false, "install every component")
	installCmd.Flags().BoolVar(&opts.SkipLarge, "skip-large",
		false, "skip the large datasets (states, cities)")
	installCmd.Flags().BoolVar(&opts.WithDependencies, "with-dependencies",
		false, "add missing dependencies to the selection")
	installCmd.Flags().BoolVar(&opts.AutoLink, "auto-link",
		false, "run the linking pass after seeding without asking")
	installCmd.Flags().BoolVar(&opts.NoLink, "no-link",
		false, "skip the linking pass")
	installCmd.Flags().BoolVar(&opts.RollbackOnError, "rollback-on-error",
		false, "drop tables created by this run if seeding fails")

	return installCmd
}

func runInstall(opts *world.InstallOptions) error {
	ctx := context.Background()

	if !opts.All && len(opts.Components) == 0 {
		comps, err := askComponents()
		if err != nil {
			return err
		}
		if len(comps) == 0 {
			gn.Info("Aborted. No components selected.")
			return nil
		}
		opts.Components = comps
	}

	op := iodb.NewPgxOperator()
	if err := op.Connect(ctx, &cfg.Database); err != nil {
		return err
	}
	defer op.Close()

	gn.Info("Connected to database: <em>%s@%s:%d/%s</em>",
		cfg.Database.User, cfg.Database.Host,
		cfg.Database.Port, cfg.Database.Database)

	src, err := iosources.New(cfg).Load()
	if err != nil {
		return err
	}

	installer := ioinstall.New(
		cfg, op,
		ioschema.NewManager(op),
		ioseed.New(cfg, op, src),
		iolink.New(cfg, op),
	)

	plan, err := installer.Plan(ctx, *opts)
	if err != nil {
		return err
	}

	for _, w := range plan.Warnings {
		names := make([]string, len(w.Missing))
		for i, m := range w.Missing {
			names[i] = string(m)
		}
		gn.Warn(
			"<warn>%s depends on %s; rows will seed unlinked "+
				"until those are installed</warn>",
			w.Component, strings.Join(names, ", "),
		)
	}

	if !opts.AutoLink && !opts.NoLink {
		linkAfter, err := askYesNo(
			"Backfill parent references after seeding? (yes/no): ")
		if err != nil {
			return err
		}
		opts.AutoLink = linkAfter
		opts.NoLink = !linkAfter
	}

	res, err := installer.Install(ctx, plan, *opts)
	if err != nil {
		return err
	}

	printInstallResult(res)
	return nil
}

func printInstallResult(res *world.InstallResult) {
	for _, c := range component.All() {
		sr, ok := res.Seeded[c]
		if !ok {
			continue
		}
		gn.Info("  <em>%s</em>: %s rows (%s records, %s skipped)",
			c,
			humanize.Comma(sr.RowCount),
			humanize.Comma(int64(sr.Records)),
			humanize.Comma(int64(sr.Skipped)),
		)
	}

	if res.LinkReport != nil {
		for _, lr := range res.LinkReport.Results {
			if lr.Total == 0 {
				continue
			}
			gn.Info("  linked <em>%s</em>: %s of %s orphans",
				lr.Component,
				humanize.Comma(lr.Linked),
				humanize.Comma(lr.Total),
			)
		}
	}

	gn.Info("\nInstallation complete in %s (run %s)",
		gnfmt.TimeString(res.Duration.Seconds()), res.RunID)
	gn.Info(`Next steps:
  - Run '<em>worlddb health</em>' to verify the installation
  - Run '<em>worlddb link</em>' if orphaned rows remain
`)
}

// askComponents reads an interactive component selection from stdin.
func askComponents() ([]component.Component, error) {
	all := component.All()
	gn.Message("Select components to install:")
	for i, c := range all {
		fmt.Printf("  %2d. %s\n", i+1, c)
	}
	fmt.Print("\nNumbers separated by commas, or 'all': ")

	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		gn.Warn("Failed to read user input")
		return nil, err
	}

	response = strings.TrimSpace(strings.ToLower(response))
	if response == "" {
		return nil, nil
	}
	if response == "all" {
		return all, nil
	}

	var res []component.Component
	for _, part := range strings.Split(response, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || n < 1 || n > len(all) {
			gn.Warn("Ignoring invalid selection <em>%s</em>", part)
			continue
		}
		res = append(res, all[n-1])
	}
	return res, nil
}

func askYesNo(prompt string) (bool, error) {
	fmt.Print(prompt)

	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		gn.Warn("Failed to read user input")
		return false, err
	}

	response = strings.TrimSpace(strings.ToLower(response))
	return response == "yes" || response == "y", nil
}
