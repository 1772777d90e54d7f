package composer

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/prairiewatch/impact-map/internal/model"
)

// Palette holds every color choice the composer makes: marker colors by
// status, choropleth ramps by metric, and the shared missing-value and
// cluster colors.
type Palette struct {
	StatusColors map[model.SiteStatus]string `yaml:"status_colors"`
	Ramps        map[model.Metric][]string   `yaml:"ramps"`
	MissingColor string                      `yaml:"missing_color"`
	ClusterColor string                      `yaml:"cluster_color"`
}

// ylOrRd and purples are five-class sequential ramps, light to dark.
var (
	ylOrRd  = []string{"#ffffb2", "#fecc5c", "#fd8d3c", "#f03b20", "#bd0026"}
	purples = []string{"#f2f0f7", "#cbc9e2", "#9e9ac8", "#756bb1", "#54278f"}
	blues   = []string{"#eff3ff", "#bdd7e7", "#6baed6", "#3182bd", "#08519c"}
	greens  = []string{"#edf8e9", "#bae4b3", "#74c476", "#31a354", "#006d2c"}
)

// DefaultPalette returns the built-in colors: marker colors follow the
// original dashboard (existing green, proposed blue, denied red), the
// impact and pollution ramps run yellow to red, energy ramps green.
func DefaultPalette() Palette {
	return Palette{
		StatusColors: map[model.SiteStatus]string{
			model.StatusExisting:          "green",
			model.StatusProposed:          "blue",
			model.StatusUnderDevelopment:  "orange",
			model.StatusUnderConstruction: "cadetblue",
			model.StatusDenied:            "red",
		},
		Ramps: map[model.Metric][]string{
			model.MetricCompositeScore: purples,
			model.MetricPovertyRate:    ylOrRd,
			model.MetricMinorityPct:    blues,
			model.MetricAQIP90:         ylOrRd,
			model.MetricOzoneDays:      ylOrRd,
			model.MetricPM25Days:       ylOrRd,
			model.MetricEnergyBurden:   greens,
			model.MetricEnergyCost:     greens,
			model.MetricElecPerCapita:  greens,
		},
		MissingColor: "#d9d9d9",
		ClusterColor: "purple",
	}
}

// LoadPalette reads a YAML palette file and merges it over the
// defaults. Only the keys present in the file are overridden.
func LoadPalette(path string) (Palette, error) {
	pal := DefaultPalette()

	data, err := os.ReadFile(path)
	if err != nil {
		return Palette{}, eris.Wrapf(err, "composer: read palette %s", path)
	}

	var override Palette
	if err := yaml.Unmarshal(data, &override); err != nil {
		return Palette{}, eris.Wrapf(err, "composer: parse palette %s", path)
	}

	for status, color := range override.StatusColors {
		pal.StatusColors[status] = color
	}
	for metric, ramp := range override.Ramps {
		pal.Ramps[metric] = ramp
	}
	if override.MissingColor != "" {
		pal.MissingColor = override.MissingColor
	}
	if override.ClusterColor != "" {
		pal.ClusterColor = override.ClusterColor
	}
	return pal, nil
}

// ramp returns the color ramp for a metric, defaulting to the
// yellow-red ramp for metrics without an explicit entry.
func (p Palette) ramp(m model.Metric) []string {
	if ramp, ok := p.Ramps[m]; ok && len(ramp) > 0 {
		return ramp
	}
	return ylOrRd
}

// statusColor returns the marker color for a status, gray as fallback.
func (p Palette) statusColor(s model.SiteStatus) string {
	if c, ok := p.StatusColors[s]; ok {
		return c
	}
	return "gray"
}
