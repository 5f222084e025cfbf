// Package geo provides great-circle distance math and region resolution by
// point-in-polygon containment over a fixed, ordered set of boundaries.
package geo

import (
	"math"
	"sort"

	"github.com/edgecharge/mcsd/core/model"
)

const earthRadiusKm = 6371

// HaversineKm computes the great-circle distance in kilometers between two
// points using the haversine formula.
func HaversineKm(a, b model.GeoPoint) float64 {
	lon1 := a.Lon * math.Pi / 180
	lat1 := a.Lat * math.Pi / 180
	lon2 := b.Lon * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dlon := lon2 - lon1
	dlat := lat2 - lat1
	h := math.Pow(math.Sin(dlat/2), 2) + math.Cos(lat1)*math.Cos(lat2)*math.Pow(math.Sin(dlon/2), 2)
	return earthRadiusKm * 2 * math.Asin(math.Sqrt(h))
}

// Candidate pairs a point index with its distance from a query location.
type Candidate struct {
	Index      int
	DistanceKm float64
}

// NearestWithin returns the indices and distances of all points within
// radiusKm of origin, sorted by ascending distance. Ties keep the original
// index order.
func NearestWithin(points []model.GeoPoint, origin model.GeoPoint, radiusKm float64) []Candidate {
	var out []Candidate
	for i, p := range points {
		if d := HaversineKm(origin, p); d <= radiusKm {
			out = append(out, Candidate{Index: i, DistanceKm: d})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].DistanceKm < out[j].DistanceKm })
	return out
}
