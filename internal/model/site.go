// Package model defines the core data types flowing through the map
// composition pipeline: site records, region attributes, cluster zones,
// and the final render model.
package model

// SiteStatus is the lifecycle status of a data-center site. The set is
// closed at ingestion; rows carrying any other value are rejected.
type SiteStatus string

const (
	StatusExisting          SiteStatus = "existing"
	StatusProposed          SiteStatus = "proposed"
	StatusUnderDevelopment  SiteStatus = "under_development"
	StatusUnderConstruction SiteStatus = "under_construction"
	StatusDenied            SiteStatus = "denied"
)

// Statuses lists every valid status in a fixed order. Marker sub-layers
// and their legend entries follow this order.
var Statuses = []SiteStatus{
	StatusExisting,
	StatusProposed,
	StatusUnderDevelopment,
	StatusUnderConstruction,
	StatusDenied,
}

// Valid reports whether s is one of the enumerated statuses.
func (s SiteStatus) Valid() bool {
	switch s {
	case StatusExisting, StatusProposed, StatusUnderDevelopment,
		StatusUnderConstruction, StatusDenied:
		return true
	}
	return false
}

// SiteRecord is a validated, normalized data-center site. Records are
// built once at load time and immutable afterwards.
type SiteRecord struct {
	ID                string     `json:"id" validate:"required"`
	Name              string     `json:"name" validate:"required"`
	Operator          string     `json:"operator"`
	Latitude          float64    `json:"lat"`
	Longitude         float64    `json:"lon"`
	Status            SiteStatus `json:"status" validate:"required,oneof=existing proposed under_development under_construction denied"`
	City              string     `json:"city,omitempty"`
	State             string     `json:"state,omitempty"`
	AddressHint       string     `json:"address_hint,omitempty"`
	LocationPrecision string     `json:"location_precision,omitempty"`
	Surroundings      string     `json:"surroundings,omitempty"`
	CommunitySignals  string     `json:"community_signals,omitempty"`
	Stressors         string     `json:"stressors,omitempty"`
	Sources           []string   `json:"sources,omitempty"`
}

// RegionUnassigned is the region id given to sites that fall outside
// every known boundary polygon. Such sites stay visible on the map.
const RegionUnassigned = "unassigned"

// JoinedSite is a SiteRecord plus its containing region. Exactly one
// JoinedSite is produced per catalog record.
type JoinedSite struct {
	SiteRecord
	RegionID string `json:"region_id"`
}

// Assigned reports whether the site resolved to a known region.
func (j JoinedSite) Assigned() bool {
	return j.RegionID != RegionUnassigned
}
