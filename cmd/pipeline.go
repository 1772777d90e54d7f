package main

import (
	"context"
	"os"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/prairiewatch/impact-map/internal/boundary"
	"github.com/prairiewatch/impact-map/internal/catalog"
	"github.com/prairiewatch/impact-map/internal/cluster"
	"github.com/prairiewatch/impact-map/internal/composer"
	"github.com/prairiewatch/impact-map/internal/config"
	"github.com/prairiewatch/impact-map/internal/join"
	"github.com/prairiewatch/impact-map/internal/merge"
	"github.com/prairiewatch/impact-map/internal/model"
	"github.com/prairiewatch/impact-map/internal/source"
)

// pipelineResult carries everything the compose and serve commands need
// after the core pipeline has run.
type pipelineResult struct {
	Sites      []model.SiteRecord
	Report     *catalog.LoadReport
	Joined     []model.JoinedSite
	Attributes map[string]model.RegionAttributes
	Zones      []model.ClusterZone
	Model      model.RenderModel
	SourceYear int
}

// loadInputs reads the external bulk sources. The four files are
// independent, so they load concurrently; everything after this point
// is synchronous and pure.
func loadInputs(ctx context.Context, cfg *config.Config) (
	sites []model.SiteRecord,
	report *catalog.LoadReport,
	idx *boundary.Index,
	dem []merge.DemographicRow,
	aqiTable *source.Table,
	err error,
) {
	env := catalog.Envelope{
		MinLat: cfg.Region.MinLat, MaxLat: cfg.Region.MaxLat,
		MinLon: cfg.Region.MinLon, MaxLon: cfg.Region.MaxLon,
	}

	g, _ := errgroup.WithContext(ctx)

	g.Go(func() error {
		f, err := os.Open(cfg.Data.SitesCSV)
		if err != nil {
			return eris.Wrapf(err, "open sites %s", cfg.Data.SitesCSV)
		}
		defer f.Close()
		sites, report, err = catalog.Load(f, env)
		return err
	})

	g.Go(func() error {
		var err error
		idx, err = boundary.Load(cfg.Data.BoundariesSHP, boundary.LoadOptions{
			IDField:   cfg.Region.IDField,
			NameField: cfg.Region.NameField,
		})
		return err
	})

	g.Go(func() error {
		f, err := os.Open(cfg.Data.DemographicsCSV)
		if err != nil {
			return eris.Wrapf(err, "open demographics %s", cfg.Data.DemographicsCSV)
		}
		defer f.Close()
		table, err := source.ReadCSV(f, source.CSVOptions{TrimSpace: true})
		if err != nil {
			return err
		}
		dem, err = merge.ParseDemographics(table)
		return err
	})

	g.Go(func() error {
		f, err := os.Open(cfg.Data.AQICSV)
		if err != nil {
			return eris.Wrapf(err, "open aqi %s", cfg.Data.AQICSV)
		}
		defer f.Close()
		var err2 error
		aqiTable, err2 = source.ReadCSV(f, source.CSVOptions{TrimSpace: true})
		return err2
	})

	if err = g.Wait(); err != nil {
		return nil, nil, nil, nil, nil, err
	}
	return sites, report, idx, dem, aqiTable, nil
}

// runPipeline executes the full composition pipeline.
func runPipeline(ctx context.Context, cfg *config.Config, metrics []model.Metric, thresholdKM float64, showClusters bool) (*pipelineResult, error) {
	sites, report, idx, dem, aqiTable, err := loadInputs(ctx, cfg)
	if err != nil {
		return nil, err
	}

	// Regions resolve AQI county names to ids.
	nameToID := make(map[string]string, idx.Len())
	for _, region := range idx.Regions() {
		name := region.Name
		if name == "" {
			name = region.ID
		}
		nameToID[merge.CanonicalRegionName(name)] = region.ID
	}

	aqiRows, err := merge.ParseAQI(aqiTable, cfg.Region.StateName, nameToID)
	if err != nil {
		return nil, err
	}

	attrs, err := merge.Merge(dem, aqiRows, merge.Options{
		PovertyWeight:  cfg.Score.PovertyWeight,
		MinorityWeight: cfg.Score.MinorityWeight,
	})
	if err != nil {
		return nil, err
	}

	if err := applyEnergySources(cfg, attrs); err != nil {
		return nil, err
	}

	joined := join.Join(sites, idx)

	if thresholdKM <= 0 {
		thresholdKM = cfg.Cluster.ThresholdKM
	}
	zones := cluster.Detect(joined, thresholdKM)

	pal := composer.DefaultPalette()
	if cfg.Data.PaletteYAML != "" {
		pal, err = composer.LoadPalette(cfg.Data.PaletteYAML)
		if err != nil {
			return nil, err
		}
	}

	viewport := model.Viewport{
		CenterLat: cfg.Map.CenterLat,
		CenterLon: cfg.Map.CenterLon,
		Zoom:      cfg.Map.Zoom,
	}
	rm, err := composer.Compose(joined, attrs, zones, composer.Selection{
		Metrics:      metrics,
		ShowClusters: showClusters,
		Viewport:     &viewport,
	}, pal)
	if err != nil {
		return nil, err
	}

	sourceYear := 0
	for _, a := range attrs {
		if a.SourceYear > sourceYear {
			sourceYear = a.SourceYear
		}
	}

	zap.L().Info("pipeline complete",
		zap.Int("sites", len(sites)),
		zap.Int("excluded", len(report.Excluded)),
		zap.Int("regions", idx.Len()),
		zap.Int("zones", len(zones)),
		zap.Int("layers", len(rm.Layers)),
		zap.Int("source_year", sourceYear),
	)

	return &pipelineResult{
		Sites:      sites,
		Report:     report,
		Joined:     joined,
		Attributes: attrs,
		Zones:      zones,
		Model:      rm,
		SourceYear: sourceYear,
	}, nil
}

// applyEnergySources merges the optional energy tables when configured.
// A missing or unreadable energy file downgrades to a warning: energy
// context enriches the map but is not required to build it.
func applyEnergySources(cfg *config.Config, attrs map[string]model.RegionAttributes) error {
	if cfg.Data.EnergyBurdenCSV != "" {
		f, err := os.Open(cfg.Data.EnergyBurdenCSV)
		if err != nil {
			zap.L().Warn("energy burden source not loaded", zap.Error(err))
		} else {
			// LEAD county exports carry an eight-row preamble.
			table, err := source.ReadCSV(f, source.CSVOptions{TrimSpace: true, SkipRows: 8})
			f.Close()
			if err != nil {
				return err
			}
			rows, err := merge.ParseEnergyBurden(table)
			if err != nil {
				return err
			}
			merge.ApplyEnergy(attrs, rows, nil)
		}
	}

	if cfg.Data.EnergyXLSX != "" {
		table, err := source.ReadXLSX(cfg.Data.EnergyXLSX, source.XLSXOptions{
			SheetName: "County",
			SkipRows:  4,
		})
		if err != nil {
			zap.L().Warn("energy profiles workbook not loaded", zap.Error(err))
			return nil
		}
		rows, err := merge.ParseConsumption(table, cfg.Region.StateAbbr)
		if err != nil {
			return err
		}
		merge.ApplyEnergy(attrs, nil, rows)
	}
	return nil
}
