package model

import (
	"fmt"
	"math"
)

// GeoPoint is a WGS84 coordinate in degrees.
type GeoPoint struct {
	Lon float64 `json:"lon"`
	Lat float64 `json:"lat"`
}

// Validate checks that both coordinates are finite numbers.
func (p GeoPoint) Validate() error {
	if !isFinite(p.Lon) || !isFinite(p.Lat) {
		return fmt.Errorf("non-finite coordinate (%v, %v)", p.Lon, p.Lat)
	}
	return nil
}

// DispatchPoint is a candidate location an MCS can be sent to. Region is
// empty when the point is shared by all regions.
type DispatchPoint struct {
	Point  GeoPoint `json:"point"`
	Region string   `json:"region"`
}

// TrajectoryPoint is a single timestamped position of a vehicle.
type TrajectoryPoint struct {
	Timestamp string   `json:"timestamp"`
	Point     GeoPoint `json:"point"`
}

// Trajectory is the ordered movement history of one vehicle.
type Trajectory struct {
	VehicleID string
	Points    []TrajectoryPoint
}

// Validate checks every point of the trajectory.
func (t Trajectory) Validate() error {
	for i, p := range t.Points {
		if err := p.Point.Validate(); err != nil {
			return fmt.Errorf("trajectory %s point %d: %w", t.VehicleID, i, err)
		}
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
