package geo

import (
	"fmt"

	"github.com/edgecharge/mcsd/core/model"
)

// Ring is a closed polygon ring. The first and last vertex do not need to
// repeat; closure is implicit.
type Ring []model.GeoPoint

// Polygon is an outer ring followed by zero or more holes.
type Polygon []Ring

// Region is a named boundary made of one or more polygons.
type Region struct {
	ID       string
	Polygons []Polygon
}

// Contains reports whether the point lies inside any of the region's
// polygons, honouring holes.
func (r Region) Contains(p model.GeoPoint) bool {
	for _, poly := range r.Polygons {
		if poly.contains(p) {
			return true
		}
	}
	return false
}

func (p Polygon) contains(pt model.GeoPoint) bool {
	if len(p) == 0 || !ringContains(p[0], pt) {
		return false
	}
	for _, hole := range p[1:] {
		if ringContains(hole, pt) {
			return false
		}
	}
	return true
}

// ringContains implements even-odd ray casting: a ray cast eastward from the
// point crosses the ring boundary an odd number of times iff the point is
// inside.
func ringContains(ring Ring, pt model.GeoPoint) bool {
	n := len(ring)
	if n < 3 {
		return false
	}
	inside := false
	j := n - 1
	for i := 0; i < n; i++ {
		a, b := ring[i], ring[j]
		if (a.Lat > pt.Lat) != (b.Lat > pt.Lat) {
			x := (b.Lon-a.Lon)*(pt.Lat-a.Lat)/(b.Lat-a.Lat) + a.Lon
			if pt.Lon < x {
				inside = !inside
			}
		}
		j = i
	}
	return inside
}

// Index resolves coordinates to region identifiers. The region order is
// fixed at construction and defines the tie-break: when boundaries overlap,
// the first region containing the point wins.
type Index struct {
	regions []Region
}

// NewIndex builds an index over the given regions. Region order is
// preserved. An empty id is rejected.
func NewIndex(regions []Region) (*Index, error) {
	for i, r := range regions {
		if r.ID == "" {
			return nil, fmt.Errorf("geo: region %d has empty id", i)
		}
	}
	rs := make([]Region, len(regions))
	copy(rs, regions)
	return &Index{regions: rs}, nil
}

// Locate returns the id of the first region whose boundary contains the
// point, or the empty string when no region contains it.
func (idx *Index) Locate(p model.GeoPoint) string {
	for _, r := range idx.regions {
		if r.Contains(p) {
			return r.ID
		}
	}
	return ""
}

// RegionIDs returns the region identifiers in stored order.
func (idx *Index) RegionIDs() []string {
	ids := make([]string, len(idx.regions))
	for i, r := range idx.regions {
		ids[i] = r.ID
	}
	return ids
}
