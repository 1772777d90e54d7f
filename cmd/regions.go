package main

import (
	"encoding/json"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/prairiewatch/impact-map/internal/model"
)

var regionsCmd = &cobra.Command{
	Use:   "regions",
	Short: "Build and dump the merged region attribute table",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		result, err := runPipeline(ctx, cfg, nil, 0, false)
		if err != nil {
			return eris.Wrap(err, "regions")
		}

		// Stable output order for diffing between runs.
		rows := make([]model.RegionAttributes, 0, len(result.Attributes))
		for _, a := range result.Attributes {
			rows = append(rows, a)
		}
		sort.Slice(rows, func(i, j int) bool { return rows[i].RegionID < rows[j].RegionID })

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return eris.Wrap(enc.Encode(rows), "regions: encode")
	},
}

func init() {
	rootCmd.AddCommand(regionsCmd)
}
