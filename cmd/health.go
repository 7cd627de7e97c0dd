package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"

	"github.com/worldable/worlddb/internal/iodb"
	"github.com/worldable/worlddb/internal/iohealth"
	"github.com/worldable/worlddb/pkg/world"
)

// getHealthCmd returns the health command.
func getHealthCmd() *cobra.Command {
	var (
		opts   world.HealthOptions
		asJSON bool
	)

	healthCmd := &cobra.Command{
		Use:   "health",
		Short: "Report installation completeness and linkage quality",
		Long: `Health inspects the installation and reports a score.

The report covers:
  - per-component status: installed, table present, row count
  - orphaned rows per parent relationship
  - an overall score: 50% fraction of components installed,
    50% fraction of linkable rows with resolved parents
  - recommended next steps

Examples:
  worlddb health
  worlddb health --detailed
  worlddb health --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runHealth(opts, asJSON)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	healthCmd.Flags().BoolVarP(&opts.Detailed, "detailed", "d",
		false, "include sample orphan rows per relationship")
	healthCmd.Flags().BoolVarP(&asJSON, "json", "j",
		false, "print the report as JSON")

	return healthCmd
}

func runHealth(opts world.HealthOptions, asJSON bool) error {
	ctx := context.Background()

	op := iodb.NewPgxOperator()
	if err := op.Connect(ctx, &cfg.Database); err != nil {
		return err
	}
	defer op.Close()

	report, err := iohealth.New(cfg, op).Check(ctx, opts)
	if err != nil {
		return err
	}

	if asJSON {
		out, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	}

	printHealthReport(report)
	return nil
}

func printHealthReport(report *world.HealthReport) {
	gn.Message("Components:")
	for _, status := range report.Components {
		state := "not installed"
		switch {
		case status.Installed && status.TableExists:
			state = fmt.Sprintf("%s rows",
				humanize.Comma(status.RecordCount))
		case status.Installed:
			state = "installed, table missing"
		case status.TableExists:
			state = "table present, not installed"
		}
		fmt.Printf("  %-12s %s\n", status.Component, state)
	}

	var orphans int64
	for _, n := range report.Orphans {
		orphans += n
	}
	if orphans > 0 {
		gn.Message("\nOrphaned rows:")
		for _, key := range []string{
			"subregions", "countries_continent", "countries_subregion",
			"states", "cities_country", "cities_state",
		} {
			if n := report.Orphans[key]; n > 0 {
				fmt.Printf("  %-20s %s\n", key, humanize.Comma(n))
			}
		}
	}

	for key, samples := range report.Samples {
		if len(samples) == 0 {
			continue
		}
		gn.Message("\nSample orphans (%s):", key)
		for _, s := range samples {
			if s.Hint == "" {
				fmt.Printf("  [%d] %s\n", s.ID, s.Name)
				continue
			}
			fmt.Printf("  [%d] %s (unresolved: %s)\n",
				s.ID, s.Name, s.Hint)
		}
	}

	gn.Info("\nHealth score: <em>%.1f / 100</em>", report.Score)
	for _, rec := range report.Recommendations {
		gn.Warn("  - %s", rec)
	}
}
