package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/prairiewatch/impact-map/internal/store"
)

var runsLimit int

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recorded compose runs",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		s, err := store.Open(cfg.Store.Path)
		if err != nil {
			return err
		}
		defer s.Close()

		if err := s.Migrate(ctx); err != nil {
			return err
		}

		records, err := s.ListRuns(ctx, runsLimit)
		if err != nil {
			return eris.Wrap(err, "runs")
		}

		if len(records) == 0 {
			fmt.Println("no recorded runs")
			return nil
		}

		for _, rec := range records {
			fmt.Printf("%s  %s  sites=%d excluded=%d zones=%d layers=%d aqi_year=%d\n",
				rec.CreatedAt.Format("2006-01-02 15:04"),
				rec.ID[:8],
				rec.SitesLoaded, rec.SitesExcluded, rec.Clusters, rec.Layers, rec.SourceYear,
			)
		}
		return nil
	},
}

func init() {
	runsCmd.Flags().IntVar(&runsLimit, "limit", 20, "maximum runs to list")
	rootCmd.AddCommand(runsCmd)
}
