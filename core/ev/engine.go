// Package ev turns vehicle trajectories into charge requests. Each vehicle
// starts fully charged and depletes its battery along the great-circle
// distance of every trajectory segment; whenever the state of charge sits at
// or below the configured threshold at a segment end, a request is emitted.
package ev

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/edgecharge/mcsd/core/geo"
	"github.com/edgecharge/mcsd/core/model"
)

// Locator resolves a coordinate to a region id. An empty string means the
// point is outside all known regions.
type Locator interface {
	Locate(model.GeoPoint) string
}

// Engine produces charge request streams from trajectories.
type Engine struct {
	cfg Config
}

// NewEngine validates the configuration and returns an engine.
func NewEngine(cfg Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("ev: %w", err)
	}
	return &Engine{cfg: cfg}, nil
}

// Stream returns a single-pass request stream over the given trajectories.
// Vehicles are visited in slice order, vehicles without points are skipped.
// The stream is not restartable; build a new one to replay.
func (e *Engine) Stream(trajectories []model.Trajectory, locator Locator) (*RequestStream, error) {
	if locator == nil {
		return nil, fmt.Errorf("ev: nil locator")
	}
	return &RequestStream{cfg: e.cfg, locator: locator, trajectories: trajectories}, nil
}

// EstimateEnergyKWh approximates the energy needed to travel the polyline
// connecting the given points.
func EstimateEnergyKWh(points []model.TrajectoryPoint, energyPerKm float64) float64 {
	total := 0.0
	for i := 1; i < len(points); i++ {
		total += geo.HaversineKm(points[i-1].Point, points[i].Point) * energyPerKm
	}
	return total
}

// RequestStream iterates charge requests lazily in the style of
// bufio.Scanner: Next advances to the following request, Request returns it
// and Err reports a validation failure after Next returned false.
type RequestStream struct {
	cfg          Config
	locator      Locator
	trajectories []model.Trajectory

	ti  int     // current trajectory
	pi  int     // segment end index within the current trajectory
	soc float64 // state of charge of the current vehicle

	cur model.ChargeRequest
	err error
}

// Next advances the stream to the next charge request. It returns false when
// the input is exhausted or a malformed point was encountered.
func (s *RequestStream) Next() bool {
	if s.err != nil {
		return false
	}
	for s.ti < len(s.trajectories) {
		traj := s.trajectories[s.ti]
		if len(traj.Points) == 0 || s.pi >= len(traj.Points) {
			s.ti++
			s.pi = 0
			continue
		}
		if s.pi == 0 {
			// new vehicle: full battery, consume the first point
			if err := traj.Points[0].Point.Validate(); err != nil {
				s.err = fmt.Errorf("ev: vehicle %s: %w", traj.VehicleID, err)
				return false
			}
			s.soc = 1.0
			s.pi = 1
			continue
		}
		prev := traj.Points[s.pi-1]
		next := traj.Points[s.pi]
		if err := next.Point.Validate(); err != nil {
			s.err = fmt.Errorf("ev: vehicle %s: %w", traj.VehicleID, err)
			return false
		}
		distance := geo.HaversineKm(prev.Point, next.Point)
		s.soc -= distance * s.cfg.EnergyKWhPerKm / s.cfg.BatteryCapacityKWh
		if s.soc < 0 {
			s.soc = 0
		}
		s.pi++
		if s.soc <= s.cfg.SoCThreshold {
			s.cur = model.ChargeRequest{
				ID:        uuid.NewString(),
				VehicleID: traj.VehicleID,
				Location:  next.Point,
				Region:    s.locator.Locate(next.Point),
				Timestamp: next.Timestamp,
				SoC:       s.soc,
			}
			return true
		}
	}
	return false
}

// Request returns the charge request produced by the last call to Next.
func (s *RequestStream) Request() model.ChargeRequest { return s.cur }

// Err returns the first validation error encountered, if any.
func (s *RequestStream) Err() error { return s.err }
