package main

import (
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/prairiewatch/impact-map/internal/catalog"
)

var sitesCmd = &cobra.Command{
	Use:   "sites",
	Short: "Inspect the site catalog",
}

var sitesValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the site source and report excluded rows",
	RunE: func(cmd *cobra.Command, _ []string) error {
		f, err := os.Open(cfg.Data.SitesCSV)
		if err != nil {
			return eris.Wrapf(err, "sites: open %s", cfg.Data.SitesCSV)
		}
		defer f.Close()

		env := catalog.Envelope{
			MinLat: cfg.Region.MinLat, MaxLat: cfg.Region.MaxLat,
			MinLon: cfg.Region.MinLon, MaxLon: cfg.Region.MaxLon,
		}

		records, report, err := catalog.Load(f, env)
		if err != nil {
			return eris.Wrap(err, "sites validate")
		}

		fmt.Printf("rows read:  %d\n", report.RowsRead)
		fmt.Printf("valid:      %d\n", len(records))
		fmt.Printf("excluded:   %d\n", len(report.Excluded))
		fmt.Printf("duplicates: %d\n", len(report.Duplicates))

		for _, ve := range report.Excluded {
			fmt.Printf("  - %s\n", ve.Error())
		}
		for _, id := range report.Duplicates {
			fmt.Printf("  - duplicate id %s: later row kept\n", id)
		}

		return nil
	},
}

func init() {
	sitesCmd.AddCommand(sitesValidateCmd)
	rootCmd.AddCommand(sitesCmd)
}
