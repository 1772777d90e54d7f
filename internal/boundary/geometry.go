package boundary

import (
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/xy"
)

// Ring is a closed linear ring as flat XY coordinate pairs
// (lon, lat, lon, lat, ...), first vertex repeated last.
type Ring []float64

// Polygon is one outer ring plus any holes cut out of it.
type Polygon struct {
	Outer Ring
	Holes []Ring
}

// closed reports whether the ring's first and last vertices coincide.
func (r Ring) closed() bool {
	n := len(r)
	if n < 8 { // a closed triangle needs 4 vertices
		return false
	}
	return r[0] == r[n-2] && r[1] == r[n-1]
}

// selfIntersects reports whether any two non-adjacent segments of the
// ring cross. Quadratic with a bounding-box reject per pair; rings are
// validated once at load time.
func (r Ring) selfIntersects() bool {
	n := len(r)/2 - 1 // segment count
	for i := 0; i < n; i++ {
		ax, ay := r[2*i], r[2*i+1]
		bx, by := r[2*i+2], r[2*i+3]
		for j := i + 2; j < n; j++ {
			// The closing segment is adjacent to the first.
			if i == 0 && j == n-1 {
				continue
			}
			cx, cy := r[2*j], r[2*j+1]
			dx, dy := r[2*j+2], r[2*j+3]
			if max(ax, bx) < min(cx, dx) || max(cx, dx) < min(ax, bx) ||
				max(ay, by) < min(cy, dy) || max(cy, dy) < min(ay, by) {
				continue
			}
			if segmentsCross(ax, ay, bx, by, cx, cy, dx, dy) {
				return true
			}
		}
	}
	return false
}

// segmentsCross reports proper intersection between segments AB and CD.
// Shared endpoints between distinct segments do not count as a cross.
func segmentsCross(ax, ay, bx, by, cx, cy, dx, dy float64) bool {
	d1 := cross(cx, cy, dx, dy, ax, ay)
	d2 := cross(cx, cy, dx, dy, bx, by)
	d3 := cross(ax, ay, bx, by, cx, cy)
	d4 := cross(ax, ay, bx, by, dx, dy)
	return ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0))
}

func cross(ox, oy, ax, ay, px, py float64) float64 {
	return (ax-ox)*(py-oy) - (ay-oy)*(px-ox)
}

// contains reports whether the point lies inside the polygon or exactly
// on its boundary. Boundary points count as contained so that the
// caller's first-loaded-wins tie-break applies.
func (p Polygon) contains(lon, lat float64) bool {
	pt := geom.Coord{lon, lat}
	if xy.IsOnLine(geom.XY, pt, p.Outer) {
		return true
	}
	if !xy.IsPointInRing(geom.XY, pt, p.Outer) {
		return false
	}
	for _, hole := range p.Holes {
		if xy.IsOnLine(geom.XY, pt, hole) {
			return true
		}
		if xy.IsPointInRing(geom.XY, pt, hole) {
			return false
		}
	}
	return true
}

// isCounterClockwise reports ring winding. Shapefile convention stores
// outer rings clockwise and holes counter-clockwise.
func (r Ring) isCounterClockwise() bool {
	return xy.IsRingCounterClockwise(geom.XY, r)
}
