package model

// ClusterZone is a connected group of two or more nearby sites,
// summarized by a centroid and a covering radius. Zones are recomputed
// in full on every run; membership order is deterministic.
type ClusterZone struct {
	ID          string   `json:"id"`
	MemberIDs   []string `json:"member_ids"`
	CentroidLat float64  `json:"centroid_lat"`
	CentroidLon float64  `json:"centroid_lon"`
	RadiusKM    float64  `json:"radius_km"`
}

// Size returns the number of member sites.
func (z ClusterZone) Size() int { return len(z.MemberIDs) }
