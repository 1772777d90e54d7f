package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/prairiewatch/impact-map/internal/model"
	"github.com/prairiewatch/impact-map/internal/store"
)

var (
	composeMetrics     []string
	composeThresholdKM float64
	composeNoClusters  bool
	composeOut         string
	composeRecord      bool
)

var composeCmd = &cobra.Command{
	Use:   "compose",
	Short: "Run the full pipeline and emit the render model",
	Long: `Loads the site, boundary, demographic, and air quality sources,
joins sites to regions, detects concentration zones, and writes the
composed render model as JSON.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		metrics, err := parseMetrics(composeMetrics)
		if err != nil {
			return err
		}

		result, err := runPipeline(ctx, cfg, metrics, composeThresholdKM, !composeNoClusters)
		if err != nil {
			return eris.Wrap(err, "compose")
		}

		out := os.Stdout
		if composeOut != "" && composeOut != "-" {
			f, err := os.Create(composeOut)
			if err != nil {
				return eris.Wrapf(err, "compose: create %s", composeOut)
			}
			defer f.Close()
			out = f
		}

		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result.Model); err != nil {
			return eris.Wrap(err, "compose: encode render model")
		}

		if composeRecord {
			if err := recordRun(ctx, result); err != nil {
				return err
			}
		}

		return nil
	},
}

// parseMetrics resolves the --metrics flag. Empty means every metric.
func parseMetrics(raw []string) ([]model.Metric, error) {
	if len(raw) == 0 {
		return model.Metrics, nil
	}
	metrics := make([]model.Metric, 0, len(raw))
	for _, m := range raw {
		metric := model.Metric(strings.TrimSpace(m))
		if !metric.Valid() {
			return nil, eris.Errorf("unknown metric %q", m)
		}
		metrics = append(metrics, metric)
	}
	return metrics, nil
}

func recordRun(ctx context.Context, result *pipelineResult) error {
	s, err := store.Open(cfg.Store.Path)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.Migrate(ctx); err != nil {
		return err
	}

	unassigned := 0
	for _, j := range result.Joined {
		if !j.Assigned() {
			unassigned++
		}
	}

	rec, err := s.RecordRun(ctx, store.RunRecord{
		SitesLoaded:   len(result.Sites),
		SitesExcluded: len(result.Report.Excluded),
		Regions:       len(result.Attributes),
		Unassigned:    unassigned,
		Clusters:      len(result.Zones),
		Layers:        len(result.Model.Layers),
		SourceYear:    result.SourceYear,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "recorded run %s\n", rec.ID)
	return nil
}

func init() {
	composeCmd.Flags().StringSliceVar(&composeMetrics, "metrics", nil, "context metrics to build choropleths for (default: all)")
	composeCmd.Flags().Float64Var(&composeThresholdKM, "threshold-km", 0, "cluster proximity threshold in km (default from config: 10)")
	composeCmd.Flags().BoolVar(&composeNoClusters, "no-clusters", false, "skip the cluster overlay layer")
	composeCmd.Flags().StringVarP(&composeOut, "out", "o", "-", "output path for the render model JSON (- for stdout)")
	composeCmd.Flags().BoolVar(&composeRecord, "record", false, "record a run summary in the local store")
	rootCmd.AddCommand(composeCmd)
}
