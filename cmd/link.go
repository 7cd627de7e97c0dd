package cmd

import (
	"context"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/spf13/cobra"

	"github.com/worldable/worlddb/internal/iodb"
	"github.com/worldable/worlddb/internal/iolink"
	"github.com/worldable/worlddb/pkg/component"
	"github.com/worldable/worlddb/pkg/world"
)

// getLinkCmd returns the link command.
func getLinkCmd() *cobra.Command {
	var (
		opts world.LinkOptions
		comp string
	)

	linkCmd := &cobra.Command{
		Use:   "link",
		Short: "Backfill parent references from metadata",
		Long: `Link resolves orphaned rows to their parents.

Components installed out of dependency order seed with NULL parent
references and denormalized names/codes in their metadata. Link reads
that metadata and backfills the references:

  subregions -> continents      (continent name)
  countries  -> continents      (continent name)
  countries  -> subregions      (subregion name)
  states     -> countries       (country code, then name)
  cities     -> countries       (country code)
  cities     -> states          (country code + state code)

Rows whose metadata does not resolve keep their NULL reference and are
counted; linking again after installing the missing parent picks them
up. Re-running link is idempotent.

Examples:
  # Link every component
  worlddb link

  # Preview without writing
  worlddb link --dry-run

  # Re-link only cities, re-resolving already linked rows
  worlddb link --component cities --force`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runLink(comp, opts)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	linkCmd.Flags().StringVarP(&comp, "component", "c", "",
		"link a single component (subregions, countries, states, cities)")
	linkCmd.Flags().BoolVar(&opts.DryRun, "dry-run",
		false, "report what would be linked without writing")
	linkCmd.Flags().BoolVarP(&opts.Force, "force", "f",
		false, "re-resolve rows that already have a parent reference")

	return linkCmd
}

// linkTargets resolves the --component flag into the components to
// link. An empty flag means every linkable component; anything outside
// that set is rejected before any database work.
func linkTargets(comp string) ([]component.Component, error) {
	if comp == "" {
		return component.Linkable(), nil
	}
	for _, c := range component.Linkable() {
		if string(c) == comp {
			return []component.Component{c}, nil
		}
	}
	return nil, iolink.UnknownComponentError(comp)
}

func runLink(comp string, opts world.LinkOptions) error {
	ctx := context.Background()

	comps, err := linkTargets(comp)
	if err != nil {
		return err
	}

	op := iodb.NewPgxOperator()
	if err := op.Connect(ctx, &cfg.Database); err != nil {
		return err
	}
	defer op.Close()

	gn.Info("Connected to database: <em>%s@%s:%d/%s</em>",
		cfg.Database.User, cfg.Database.Host,
		cfg.Database.Port, cfg.Database.Database)

	if opts.DryRun {
		gn.Info("Dry run: no rows will be updated")
	}

	report, err := iolink.New(cfg, op).Link(ctx, comps, opts)
	if err != nil {
		return err
	}

	for _, lr := range report.Results {
		if lr.Total == 0 {
			continue
		}
		gn.Info(
			"  <em>%s</em>: %s of %s linked, %s unresolved, %s skipped",
			lr.Component,
			humanize.Comma(lr.Linked),
			humanize.Comma(lr.Total),
			humanize.Comma(lr.NotFound),
			humanize.Comma(lr.Skipped),
		)
	}

	gn.Info("\nLinking complete in %s",
		gnfmt.TimeString(report.Duration.Seconds()))

	return nil
}
