// Package join assigns every site to exactly one region id.
package join

import (
	"go.uber.org/zap"

	"github.com/prairiewatch/impact-map/internal/model"
)

// Locator answers point-to-region containment lookups.
// *boundary.Index satisfies it.
type Locator interface {
	Locate(lat, lon float64) (regionID string, ok bool)
}

// Join resolves each site against the boundary index. Sites outside
// every known region get model.RegionUnassigned; that is an expected
// case (cross-border or imprecise source coordinates), not an error,
// and the site stays visible downstream. Output order follows input
// order, one JoinedSite per SiteRecord.
func Join(sites []model.SiteRecord, idx Locator) []model.JoinedSite {
	joined := make([]model.JoinedSite, 0, len(sites))
	unassigned := 0

	for _, site := range sites {
		regionID, ok := idx.Locate(site.Latitude, site.Longitude)
		if !ok {
			regionID = model.RegionUnassigned
			unassigned++
			zap.L().Debug("join: site outside all known regions",
				zap.String("site_id", site.ID),
				zap.Float64("lat", site.Latitude),
				zap.Float64("lon", site.Longitude),
			)
		}
		joined = append(joined, model.JoinedSite{SiteRecord: site, RegionID: regionID})
	}

	if unassigned > 0 {
		zap.L().Info("join: sites left unassigned", zap.Int("count", unassigned))
	}
	return joined
}
