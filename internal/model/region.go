package model

// RegionAttributes is the merged per-region context table: demographics,
// the derived composite impact score, latest-year air quality, and energy
// burden figures. Absent source values stay nil so a missing input is
// never mistaken for a genuine zero.
type RegionAttributes struct {
	RegionID   string `json:"region_id"`
	RegionName string `json:"region_name,omitempty"`

	PovertyRate *float64 `json:"poverty_rate,omitempty"`
	MinorityPct *float64 `json:"minority_pct,omitempty"`

	// CompositeImpactScore blends normalized poverty and minority share.
	// Dataset-relative: normalized against the min-max range observed in
	// the current run, not an absolute scale.
	CompositeImpactScore *float64 `json:"composite_impact_score,omitempty"`

	AQIP90       *float64 `json:"aqi_p90,omitempty"`
	MedianAQI    *float64 `json:"median_aqi,omitempty"`
	MaxAQI       *float64 `json:"max_aqi,omitempty"`
	OzoneDays    *float64 `json:"ozone_days,omitempty"`
	PM25Days     *float64 `json:"pm25_days,omitempty"`
	AQIDaysTotal *float64 `json:"aqi_days_total,omitempty"`

	// SourceYear is the AQI year actually used for this region's air
	// quality fields. Zero when the region had no usable AQI rows.
	SourceYear int `json:"source_year,omitempty"`

	EnergyBurdenPct  *float64 `json:"energy_burden_pct,omitempty"`
	AvgEnergyCostUSD *float64 `json:"avg_energy_cost_usd,omitempty"`
	HouseholdIncome  *float64 `json:"household_income_usd,omitempty"`
	ElecMWhPerCapita *float64 `json:"elec_mwh_per_capita,omitempty"`
}

// Float returns a pointer to v. Convenience for building attribute tables.
func Float(v float64) *float64 { return &v }

// Metric names a per-region context value a choropleth layer can encode.
type Metric string

const (
	MetricCompositeScore Metric = "composite_impact_score"
	MetricPovertyRate    Metric = "poverty_rate"
	MetricMinorityPct    Metric = "minority_pct"
	MetricAQIP90         Metric = "aqi_p90"
	MetricOzoneDays      Metric = "ozone_days"
	MetricPM25Days       Metric = "pm25_days"
	MetricEnergyBurden   Metric = "energy_burden_pct"
	MetricEnergyCost     Metric = "avg_energy_cost_usd"
	MetricElecPerCapita  Metric = "elec_mwh_per_capita"
)

// Metrics lists every choropleth-capable metric in presentation order.
var Metrics = []Metric{
	MetricCompositeScore,
	MetricPovertyRate,
	MetricMinorityPct,
	MetricAQIP90,
	MetricOzoneDays,
	MetricPM25Days,
	MetricEnergyBurden,
	MetricEnergyCost,
	MetricElecPerCapita,
}

// Valid reports whether m is a known metric.
func (m Metric) Valid() bool {
	for _, known := range Metrics {
		if m == known {
			return true
		}
	}
	return false
}

// Value extracts the metric m from a region's attributes. Returns nil
// when the underlying field is missing.
func (r RegionAttributes) Value(m Metric) *float64 {
	switch m {
	case MetricCompositeScore:
		return r.CompositeImpactScore
	case MetricPovertyRate:
		return r.PovertyRate
	case MetricMinorityPct:
		return r.MinorityPct
	case MetricAQIP90:
		return r.AQIP90
	case MetricOzoneDays:
		return r.OzoneDays
	case MetricPM25Days:
		return r.PM25Days
	case MetricEnergyBurden:
		return r.EnergyBurdenPct
	case MetricEnergyCost:
		return r.AvgEnergyCostUSD
	case MetricElecPerCapita:
		return r.ElecMWhPerCapita
	}
	return nil
}
