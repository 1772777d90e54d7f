// Package boundary loads administrative region polygons from a
// shapefile and answers point-in-polygon lookups.
package boundary

import (
	"fmt"
	"strings"

	"github.com/jonas-p/go-shp"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// BoundaryLoadError reports malformed geometry or a structural problem
// in the boundary source. Fatal: the load aborts.
type BoundaryLoadError struct {
	RegionID string
	Reason   string
}

func (e *BoundaryLoadError) Error() string {
	return fmt.Sprintf("boundary: region %q: %s", e.RegionID, e.Reason)
}

// Region is one administrative boundary: an identifier, a display name,
// and one or more polygons.
type Region struct {
	ID       string
	Name     string
	Polygons []Polygon
}

// Index holds validated regions in load order and resolves points to
// region ids. A point lying exactly on a shared edge between two
// regions is assigned to the region loaded first; without that rule the
// assignment would depend on iteration accidents.
type Index struct {
	regions []Region
}

// LoadOptions names the shapefile attributes carrying the region id and
// display name.
type LoadOptions struct {
	IDField   string // default "GEOID"
	NameField string // default "NAME"
}

// Load reads a polygon shapefile into an Index, validating every ring.
func Load(shpPath string, opts LoadOptions) (*Index, error) {
	if opts.IDField == "" {
		opts.IDField = "GEOID"
	}
	if opts.NameField == "" {
		opts.NameField = "NAME"
	}

	reader, err := shp.Open(shpPath)
	if err != nil {
		return nil, eris.Wrapf(err, "boundary: open shapefile %s", shpPath)
	}
	defer func() { _ = reader.Close() }()

	fields := reader.Fields()
	fieldIdx := make(map[string]int, len(fields))
	for i, f := range fields {
		name := strings.TrimRight(f.String(), "\x00")
		fieldIdx[strings.ToLower(name)] = i
	}

	idIdx, ok := fieldIdx[strings.ToLower(opts.IDField)]
	if !ok {
		return nil, &BoundaryLoadError{Reason: fmt.Sprintf("id attribute %q not in shapefile", opts.IDField)}
	}
	nameIdx, hasName := fieldIdx[strings.ToLower(opts.NameField)]

	var regions []Region
	for reader.Next() {
		_, shape := reader.Shape()

		attr := func(idx int) string {
			return strings.TrimSpace(strings.TrimRight(reader.Attribute(idx), "\x00"))
		}

		region := Region{ID: attr(idIdx)}
		if hasName {
			region.Name = attr(nameIdx)
		}

		poly, ok := shape.(*shp.Polygon)
		if !ok || poly == nil {
			return nil, &BoundaryLoadError{RegionID: region.ID, Reason: "record geometry is not a polygon"}
		}

		region.Polygons, err = splitRings(poly)
		if err != nil {
			return nil, &BoundaryLoadError{RegionID: region.ID, Reason: err.Error()}
		}

		regions = append(regions, region)
	}

	idx, err := FromRegions(regions)
	if err != nil {
		return nil, err
	}
	zap.L().Info("boundary: loaded regions",
		zap.String("shapefile", shpPath),
		zap.Int("regions", len(regions)),
	)
	return idx, nil
}

// FromRegions builds an Index from already-assembled regions, running
// the same ring validation the shapefile path gets.
func FromRegions(regions []Region) (*Index, error) {
	seen := make(map[string]bool, len(regions))
	for _, region := range regions {
		if region.ID == "" {
			return nil, &BoundaryLoadError{Reason: "region id attribute is empty"}
		}
		if seen[region.ID] {
			return nil, &BoundaryLoadError{RegionID: region.ID, Reason: "duplicate region id"}
		}
		seen[region.ID] = true

		for _, poly := range region.Polygons {
			if err := validateRing(poly.Outer); err != nil {
				return nil, &BoundaryLoadError{RegionID: region.ID, Reason: err.Error()}
			}
			for _, hole := range poly.Holes {
				if err := validateRing(hole); err != nil {
					return nil, &BoundaryLoadError{RegionID: region.ID, Reason: err.Error()}
				}
			}
		}
	}
	return &Index{regions: regions}, nil
}

func validateRing(r Ring) error {
	if !r.closed() {
		return eris.New("ring is not closed")
	}
	if r.selfIntersects() {
		return eris.New("ring is self-intersecting")
	}
	return nil
}

// splitRings slices a shapefile polygon record into outer rings and
// holes by winding: clockwise parts open a new polygon, counter-
// clockwise parts are holes attached to the containing outer ring.
func splitRings(p *shp.Polygon) ([]Polygon, error) {
	if p.NumParts == 0 || len(p.Points) == 0 {
		return nil, eris.New("polygon record has no rings")
	}

	var polys []Polygon
	for i := int32(0); i < p.NumParts; i++ {
		start := p.Parts[i]
		end := int32(len(p.Points))
		if i+1 < p.NumParts {
			end = p.Parts[i+1]
		}

		ring := make(Ring, 0, (end-start)*2)
		for j := start; j < end; j++ {
			ring = append(ring, p.Points[j].X, p.Points[j].Y)
		}

		if !ring.isCounterClockwise() {
			polys = append(polys, Polygon{Outer: ring})
			continue
		}

		// Hole: attach to the outer ring containing its first vertex.
		attached := false
		for k := range polys {
			if len(ring) >= 2 && polys[k].contains(ring[0], ring[1]) {
				polys[k].Holes = append(polys[k].Holes, ring)
				attached = true
				break
			}
		}
		if !attached {
			return nil, eris.New("hole ring has no containing outer ring")
		}
	}
	return polys, nil
}

// Locate returns the id of the first-loaded region containing the
// point, or ok=false when no region contains it.
func (idx *Index) Locate(lat, lon float64) (string, bool) {
	for _, region := range idx.regions {
		for _, poly := range region.Polygons {
			if poly.contains(lon, lat) {
				return region.ID, true
			}
		}
	}
	return "", false
}

// Regions returns the loaded regions in load order.
func (idx *Index) Regions() []Region {
	return idx.regions
}

// Len returns the number of loaded regions.
func (idx *Index) Len() int { return len(idx.regions) }
