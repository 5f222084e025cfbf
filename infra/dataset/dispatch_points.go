package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/edgecharge/mcsd/core/model"
)

// LoadDispatchPoints reads candidate dispatch point coordinates from a CSV
// file with lon/lat (or longitude/latitude) columns and an optional region
// column.
func LoadDispatchPoints(path string) ([]model.DispatchPoint, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dataset: open dispatch points: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("dataset: dispatch points header: %w", err)
	}
	lonCol := findColumn(header, "lon", "longitude")
	latCol := findColumn(header, "lat", "latitude")
	regionCol := findColumn(header, "region")
	if lonCol < 0 || latCol < 0 {
		return nil, fmt.Errorf("dataset: dispatch points need lon and lat columns")
	}

	var points []model.DispatchPoint
	for line := 2; ; line++ {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("dataset: dispatch points line %d: %w", line, err)
		}
		p, err := parsePoint(rec[lonCol], rec[latCol])
		if err != nil {
			return nil, fmt.Errorf("dataset: dispatch points line %d: %w", line, err)
		}
		dp := model.DispatchPoint{Point: p}
		if regionCol >= 0 && regionCol < len(rec) {
			dp.Region = rec[regionCol]
		}
		points = append(points, dp)
	}
	return points, nil
}

// RegionDispatchPoints filters the candidate coordinates of one region:
// points tagged with the region id or carrying no tag at all.
func RegionDispatchPoints(points []model.DispatchPoint, region string) []model.GeoPoint {
	var out []model.GeoPoint
	for _, dp := range points {
		if dp.Region == "" || dp.Region == region {
			out = append(out, dp.Point)
		}
	}
	return out
}

func findColumn(header []string, names ...string) int {
	for i, h := range header {
		for _, n := range names {
			if h == n {
				return i
			}
		}
	}
	return -1
}

func parsePoint(lonField, latField string) (model.GeoPoint, error) {
	lon, err := strconv.ParseFloat(lonField, 64)
	if err != nil {
		return model.GeoPoint{}, fmt.Errorf("invalid lon %q", lonField)
	}
	lat, err := strconv.ParseFloat(latField, 64)
	if err != nil {
		return model.GeoPoint{}, fmt.Errorf("invalid lat %q", latField)
	}
	p := model.GeoPoint{Lon: lon, Lat: lat}
	if err := p.Validate(); err != nil {
		return model.GeoPoint{}, err
	}
	return p, nil
}
