package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edgecharge/mcsd/core/model"
)

func square(minLon, minLat, maxLon, maxLat float64) Polygon {
	return Polygon{Ring{
		{Lon: minLon, Lat: minLat},
		{Lon: maxLon, Lat: minLat},
		{Lon: maxLon, Lat: maxLat},
		{Lon: minLon, Lat: maxLat},
	}}
}

func TestIndexLocatePartition(t *testing.T) {
	idx, err := NewIndex([]Region{
		{ID: "west", Polygons: []Polygon{square(0, 0, 1, 1)}},
		{ID: "east", Polygons: []Polygon{square(1, 0, 2, 1)}},
	})
	require.NoError(t, err)

	assert.Equal(t, "west", idx.Locate(model.GeoPoint{Lon: 0.5, Lat: 0.5}))
	assert.Equal(t, "east", idx.Locate(model.GeoPoint{Lon: 1.5, Lat: 0.5}))
	assert.Equal(t, "", idx.Locate(model.GeoPoint{Lon: 5, Lat: 5}))
}

func TestIndexLocateDeterministic(t *testing.T) {
	idx, err := NewIndex([]Region{
		{ID: "r1", Polygons: []Polygon{square(0, 0, 1, 1)}},
	})
	require.NoError(t, err)
	p := model.GeoPoint{Lon: 0.25, Lat: 0.75}
	first := idx.Locate(p)
	for i := 0; i < 100; i++ {
		assert.Equal(t, first, idx.Locate(p))
	}
}

func TestIndexOverlapFirstWins(t *testing.T) {
	// both regions contain (1.5, 1.5); stored order decides
	idx, err := NewIndex([]Region{
		{ID: "a", Polygons: []Polygon{square(0, 0, 2, 2)}},
		{ID: "b", Polygons: []Polygon{square(1, 1, 3, 3)}},
	})
	require.NoError(t, err)
	assert.Equal(t, "a", idx.Locate(model.GeoPoint{Lon: 1.5, Lat: 1.5}))

	reversed, err := NewIndex([]Region{
		{ID: "b", Polygons: []Polygon{square(1, 1, 3, 3)}},
		{ID: "a", Polygons: []Polygon{square(0, 0, 2, 2)}},
	})
	require.NoError(t, err)
	assert.Equal(t, "b", reversed.Locate(model.GeoPoint{Lon: 1.5, Lat: 1.5}))
}

func TestPolygonHole(t *testing.T) {
	outer := Ring{{Lon: 0, Lat: 0}, {Lon: 4, Lat: 0}, {Lon: 4, Lat: 4}, {Lon: 0, Lat: 4}}
	hole := Ring{{Lon: 1, Lat: 1}, {Lon: 3, Lat: 1}, {Lon: 3, Lat: 3}, {Lon: 1, Lat: 3}}
	region := Region{ID: "donut", Polygons: []Polygon{{outer, hole}}}

	assert.True(t, region.Contains(model.GeoPoint{Lon: 0.5, Lat: 0.5}))
	assert.False(t, region.Contains(model.GeoPoint{Lon: 2, Lat: 2}))
	assert.False(t, region.Contains(model.GeoPoint{Lon: 5, Lat: 5}))
}

func TestNewIndexEmptyID(t *testing.T) {
	_, err := NewIndex([]Region{{ID: ""}})
	assert.Error(t, err)
}

func TestIndexRegionIDs(t *testing.T) {
	idx, err := NewIndex([]Region{{ID: "a"}, {ID: "b"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, idx.RegionIDs())
}
