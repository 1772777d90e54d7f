// Package cluster groups nearby sites into geographic concentration
// zones.
package cluster

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/prairiewatch/impact-map/internal/model"
)

// DefaultThresholdKM is the documented default proximity threshold.
// Larger thresholds produce fewer, larger clusters.
const DefaultThresholdKM = 10.0

// radiusMarginFactor pads the covering radius so member markers sit
// visibly inside the drawn circle.
const radiusMarginFactor = 1.05

const earthRadiusKM = 6371.0

// Detect builds a proximity graph over the sites (edge when great-
// circle distance <= thresholdKM) and returns each connected component
// of size >= 2 as a ClusterZone. Singletons are not clusters. Output is
// deterministic: components are discovered in first-encountered site
// order and member lists keep input order.
func Detect(sites []model.JoinedSite, thresholdKM float64) []model.ClusterZone {
	if thresholdKM <= 0 {
		thresholdKM = DefaultThresholdKM
	}

	n := len(sites)
	visited := make([]bool, n)
	var zones []model.ClusterZone

	for i := 0; i < n; i++ {
		if visited[i] {
			continue
		}

		// BFS from the first unvisited site; the queue keeps component
		// membership in discovery order.
		component := []int{i}
		visited[i] = true
		for head := 0; head < len(component); head++ {
			cur := component[head]
			for j := 0; j < n; j++ {
				if visited[j] {
					continue
				}
				if Haversine(sites[cur].Latitude, sites[cur].Longitude,
					sites[j].Latitude, sites[j].Longitude) <= thresholdKM {
					visited[j] = true
					component = append(component, j)
				}
			}
		}

		if len(component) < 2 {
			continue
		}
		zones = append(zones, buildZone(len(zones)+1, sites, component))
	}

	zap.L().Debug("cluster: detection complete",
		zap.Float64("threshold_km", thresholdKM),
		zap.Int("zones", len(zones)),
	)
	return zones
}

func buildZone(seq int, sites []model.JoinedSite, members []int) model.ClusterZone {
	zone := model.ClusterZone{
		ID:        fmt.Sprintf("zone-%03d", seq),
		MemberIDs: make([]string, 0, len(members)),
	}

	var sumLat, sumLon float64
	for _, idx := range members {
		zone.MemberIDs = append(zone.MemberIDs, sites[idx].ID)
		sumLat += sites[idx].Latitude
		sumLon += sites[idx].Longitude
	}
	zone.CentroidLat = sumLat / float64(len(members))
	zone.CentroidLon = sumLon / float64(len(members))

	var maxDist float64
	for _, idx := range members {
		d := Haversine(zone.CentroidLat, zone.CentroidLon, sites[idx].Latitude, sites[idx].Longitude)
		if d > maxDist {
			maxDist = d
		}
	}
	zone.RadiusKM = maxDist * radiusMarginFactor

	return zone
}

// Haversine returns the great-circle distance between two points in
// kilometers.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	const degToRad = math.Pi / 180.0

	dLat := (lat2 - lat1) * degToRad
	dLon := (lon2 - lon1) * degToRad

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*degToRad)*math.Cos(lat2*degToRad)*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	return 2 * earthRadiusKM * math.Asin(math.Sqrt(a))
}
