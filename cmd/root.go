package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/prairiewatch/impact-map/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "impact-map",
	Short: "Data-center impact map composition pipeline",
	Long:  "Validates site records, joins them to county boundaries, merges demographic and air-quality context, detects concentration zones, and composes a layered render model for the dashboard.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
