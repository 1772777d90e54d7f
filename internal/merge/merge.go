// Package merge joins the per-region demographic and air-quality tables
// into a single attribute table and derives the composite impact score.
package merge

import (
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/prairiewatch/impact-map/internal/model"
)

// DemographicRow is one region's demographic inputs. Nil fields were
// absent in the source.
type DemographicRow struct {
	RegionID    string
	RegionName  string
	PovertyRate *float64
	MinorityPct *float64
}

// AQIRow is one region-year of the air quality summary table.
type AQIRow struct {
	RegionID     string
	Year         int
	P90          *float64
	Median       *float64
	Max          *float64
	OzoneDays    *float64
	PM25Days     *float64
	AQIDaysTotal *float64
}

// Options tunes the composite score. Zero weights fall back to the
// equal-weighted default.
type Options struct {
	PovertyWeight  float64
	MinorityWeight float64
}

func (o Options) weights() (float64, float64) {
	if o.PovertyWeight == 0 && o.MinorityWeight == 0 {
		return 0.5, 0.5
	}
	return o.PovertyWeight, o.MinorityWeight
}

// Merge builds the region attribute table. The demographic table
// anchors a strict left join: every demographic region appears in the
// output, and a region absent from the AQI table keeps its demographic
// fields with missing AQI fields. AQI rows from years other than the
// globally selected latest year are ignored, never back-filled. The
// result depends only on row content, not row order.
func Merge(dem []DemographicRow, aqi []AQIRow, opts Options) (map[string]model.RegionAttributes, error) {
	if len(dem) == 0 {
		return nil, eris.New("merge: demographic table is empty")
	}

	attrs := make(map[string]model.RegionAttributes, len(dem))
	for _, row := range dem {
		if row.RegionID == "" {
			return nil, eris.New("merge: demographic row with empty region id")
		}
		if _, dup := attrs[row.RegionID]; dup {
			return nil, eris.Errorf("merge: duplicate demographic region id %q", row.RegionID)
		}
		attrs[row.RegionID] = model.RegionAttributes{
			RegionID:    row.RegionID,
			RegionName:  row.RegionName,
			PovertyRate: row.PovertyRate,
			MinorityPct: row.MinorityPct,
		}
	}

	year, haveYear := LatestYear(aqi)
	if haveYear {
		for _, row := range aqi {
			if row.Year != year {
				continue
			}
			a, ok := attrs[row.RegionID]
			if !ok {
				// AQI region outside the demographic universe.
				continue
			}
			a.AQIP90 = row.P90
			a.MedianAQI = row.Median
			a.MaxAQI = row.Max
			a.OzoneDays = row.OzoneDays
			a.PM25Days = row.PM25Days
			a.AQIDaysTotal = row.AQIDaysTotal
			a.SourceYear = year
			attrs[row.RegionID] = a
		}
		zap.L().Info("merge: air quality joined", zap.Int("source_year", year))
	} else {
		zap.L().Warn("merge: air quality table empty, all AQI fields missing")
	}

	applyCompositeScore(attrs, opts)
	return attrs, nil
}

// applyCompositeScore derives the weighted blend of normalized poverty
// rate and minority share. Normalization is min-max over the regions
// present in this run, so the score is relative to the dataset. Regions
// missing either input get a missing score, never zero.
func applyCompositeScore(attrs map[string]model.RegionAttributes, opts Options) {
	poverty := make(map[string]float64)
	minority := make(map[string]float64)
	for id, a := range attrs {
		if a.PovertyRate != nil {
			poverty[id] = *a.PovertyRate
		}
		if a.MinorityPct != nil {
			minority[id] = *a.MinorityPct
		}
	}

	np := normalizeMinMax(poverty)
	nm := normalizeMinMax(minority)
	w1, w2 := opts.weights()

	for id, a := range attrs {
		p, hasP := np[id]
		m, hasM := nm[id]
		if !hasP || !hasM {
			continue
		}
		a.CompositeImpactScore = model.Float(p*w1 + m*w2)
		attrs[id] = a
	}
}
