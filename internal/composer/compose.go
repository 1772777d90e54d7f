// Package composer assembles the multi-layer render model: choropleth
// layers over regions, site marker layers by status, the cluster
// overlay, and a legend list kept in strict 1:1 correspondence with the
// layers.
package composer

import (
	"fmt"

	"github.com/rotisserie/eris"

	"github.com/prairiewatch/impact-map/internal/model"
)

// Default viewport framing, matching the original dashboard.
const (
	defaultCenterLat = 40.0
	defaultCenterLon = -89.2
	defaultZoom      = 7
)

// metricTitles maps metrics to legend titles.
var metricTitles = map[model.Metric]string{
	model.MetricCompositeScore: "Composite impact score",
	model.MetricPovertyRate:    "Poverty rate (%)",
	model.MetricMinorityPct:    "Minority population (%)",
	model.MetricAQIP90:         "AQI, 90th percentile",
	model.MetricOzoneDays:      "Ozone days",
	model.MetricPM25Days:       "PM2.5 days",
	model.MetricEnergyBurden:   "Energy burden (% income)",
	model.MetricEnergyCost:     "Avg. annual energy cost ($)",
	model.MetricElecPerCapita:  "Electricity use (MWh/capita)",
}

// Selection picks which context metrics become choropleth layers and
// whether the cluster overlay is built.
type Selection struct {
	Metrics      []model.Metric
	ShowClusters bool
	Viewport     *model.Viewport
}

// Compose builds the render model in one deterministic pass. Layer
// order is choropleths in selection order, then one marker sub-layer
// per status present in the data, then the cluster overlay. Every layer
// is appended together with its legend entry, so the model always
// satisfies len(Layers) == len(Legend) with matching order. Choropleth
// layers default hidden (context is opt-in); marker and cluster layers
// default visible.
func Compose(
	joined []model.JoinedSite,
	attrs map[string]model.RegionAttributes,
	zones []model.ClusterZone,
	sel Selection,
	pal Palette,
) (model.RenderModel, error) {
	rm := model.RenderModel{
		Viewport: model.Viewport{CenterLat: defaultCenterLat, CenterLon: defaultCenterLon, Zoom: defaultZoom},
	}
	if sel.Viewport != nil {
		rm.Viewport = *sel.Viewport
	}

	for _, metric := range sel.Metrics {
		if !metric.Valid() {
			return model.RenderModel{}, eris.Errorf("composer: unknown metric %q", metric)
		}
		addChoropleth(&rm, attrs, metric, pal)
	}

	for _, status := range model.Statuses {
		group := sitesWithStatus(joined, status)
		if len(group) == 0 {
			continue
		}
		addMarkers(&rm, status, group, pal)
	}

	if sel.ShowClusters {
		addClusterOverlay(&rm, zones, pal)
	}

	return rm, nil
}

func addChoropleth(rm *model.RenderModel, attrs map[string]model.RegionAttributes, metric model.Metric, pal Palette) {
	values := make(map[string]*float64, len(attrs))
	for id, a := range attrs {
		values[id] = a.Value(metric)
	}

	bins := makeBins(values, pal.ramp(metric))
	title := metricTitles[metric]

	layer := model.LayerDescriptor{
		ID:      "choropleth-" + string(metric),
		Kind:    model.LayerChoropleth,
		Title:   title,
		Visible: false,
		Choropleth: &model.ChoroplethParams{
			Metric:       metric,
			Bins:         bins,
			MissingColor: pal.MissingColor,
			Values:       values,
		},
	}

	// The legend always carries the missing bucket so a region with no
	// data is distinguishable from a genuinely low value.
	legendBins := make([]model.ColorBin, 0, len(bins)+1)
	legendBins = append(legendBins, bins...)
	legendBins = append(legendBins, model.ColorBin{Color: pal.MissingColor, Missing: true})

	rm.AddLayer(layer, model.LegendEntry{Title: title, Bins: legendBins})
}

func addMarkers(rm *model.RenderModel, status model.SiteStatus, group []model.JoinedSite, pal Palette) {
	color := pal.statusColor(status)
	title := "Sites: " + statusTitle(status)

	layer := model.LayerDescriptor{
		ID:      "markers-" + string(status),
		Kind:    model.LayerMarkers,
		Title:   title,
		Visible: true,
		Markers: &model.MarkerParams{Status: status, Color: color, Sites: group},
	}

	rm.AddLayer(layer, model.LegendEntry{
		Title:  title,
		Swatch: color,
		Label:  fmt.Sprintf("%s (%d)", statusTitle(status), len(group)),
	})
}

func addClusterOverlay(rm *model.RenderModel, zones []model.ClusterZone, pal Palette) {
	layer := model.LayerDescriptor{
		ID:      "cluster-overlay",
		Kind:    model.LayerClusterOverlay,
		Title:   "Concentration zones",
		Visible: true,
		Clusters: &model.ClusterParams{
			Color: pal.ClusterColor,
			Zones: zones,
		},
	}

	rm.AddLayer(layer, model.LegendEntry{
		Title:  "Concentration zones",
		Swatch: pal.ClusterColor,
		Label:  fmt.Sprintf("dashed circle, %d zones", len(zones)),
	})
}

func sitesWithStatus(joined []model.JoinedSite, status model.SiteStatus) []model.JoinedSite {
	var out []model.JoinedSite
	for _, site := range joined {
		if site.Status == status {
			out = append(out, site)
		}
	}
	return out
}

func statusTitle(s model.SiteStatus) string {
	switch s {
	case model.StatusExisting:
		return "Existing"
	case model.StatusProposed:
		return "Proposed"
	case model.StatusUnderDevelopment:
		return "Under development"
	case model.StatusUnderConstruction:
		return "Under construction"
	case model.StatusDenied:
		return "Denied"
	}
	return string(s)
}
