// Package dataset loads region boundaries, dispatch points and vehicle
// trajectories from local files. Only the shapes matter to the core; these
// loaders validate the numeric inputs so malformed values never reach the
// distance or reward computations.
package dataset

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/edgecharge/mcsd/core/geo"
	"github.com/edgecharge/mcsd/core/model"
)

type geoJSONFile struct {
	Type     string           `json:"type"`
	Features []geoJSONFeature `json:"features"`
}

type geoJSONFeature struct {
	Type       string          `json:"type"`
	Properties map[string]any  `json:"properties"`
	Geometry   geoJSONGeometry `json:"geometry"`
}

type geoJSONGeometry struct {
	Type        string          `json:"type"`
	Coordinates json.RawMessage `json:"coordinates"`
}

// LoadRegions reads region boundaries from a GeoJSON FeatureCollection. The
// feature order in the file is preserved; it defines the containment
// tie-break of the resulting index. The region id is taken from the "id"
// property, falling back to "region".
func LoadRegions(path string) ([]geo.Region, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("dataset: read regions: %w", err)
	}
	var file geoJSONFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("dataset: parse regions: %w", err)
	}
	regions := make([]geo.Region, 0, len(file.Features))
	for i, f := range file.Features {
		id := regionID(f.Properties)
		if id == "" {
			return nil, fmt.Errorf("dataset: feature %d has no id or region property", i)
		}
		polys, err := parseGeometry(f.Geometry)
		if err != nil {
			return nil, fmt.Errorf("dataset: feature %s: %w", id, err)
		}
		regions = append(regions, geo.Region{ID: id, Polygons: polys})
	}
	return regions, nil
}

func regionID(props map[string]any) string {
	for _, key := range []string{"id", "region"} {
		switch v := props[key].(type) {
		case string:
			return v
		case float64:
			return fmt.Sprintf("%v", v)
		}
	}
	return ""
}

func parseGeometry(g geoJSONGeometry) ([]geo.Polygon, error) {
	switch g.Type {
	case "Polygon":
		var coords [][][]float64
		if err := json.Unmarshal(g.Coordinates, &coords); err != nil {
			return nil, fmt.Errorf("polygon coordinates: %w", err)
		}
		poly, err := buildPolygon(coords)
		if err != nil {
			return nil, err
		}
		return []geo.Polygon{poly}, nil
	case "MultiPolygon":
		var coords [][][][]float64
		if err := json.Unmarshal(g.Coordinates, &coords); err != nil {
			return nil, fmt.Errorf("multipolygon coordinates: %w", err)
		}
		polys := make([]geo.Polygon, 0, len(coords))
		for _, pc := range coords {
			poly, err := buildPolygon(pc)
			if err != nil {
				return nil, err
			}
			polys = append(polys, poly)
		}
		return polys, nil
	default:
		return nil, fmt.Errorf("unsupported geometry type %q", g.Type)
	}
}

func buildPolygon(rings [][][]float64) (geo.Polygon, error) {
	poly := make(geo.Polygon, 0, len(rings))
	for _, ring := range rings {
		r := make(geo.Ring, 0, len(ring))
		for _, pos := range ring {
			if len(pos) < 2 {
				return nil, fmt.Errorf("position with fewer than two coordinates")
			}
			p := model.GeoPoint{Lon: pos[0], Lat: pos[1]}
			if err := p.Validate(); err != nil {
				return nil, err
			}
			r = append(r, p)
		}
		poly = append(poly, r)
	}
	return poly, nil
}
