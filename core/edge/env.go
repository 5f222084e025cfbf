// Package edge implements the per-region queueing environment for mobile
// charging station dispatch. One Env owns the request queue and the MCS pool
// of a single region and advances one discrete time step per Step call.
package edge

import (
	"fmt"

	"gonum.org/v1/gonum/stat"

	"github.com/edgecharge/mcsd/core/geo"
	"github.com/edgecharge/mcsd/core/logger"
	"github.com/edgecharge/mcsd/core/model"
)

// PointRef optionally references a candidate dispatch point. The zero value
// means no assignment.
type PointRef struct {
	Index int
	OK    bool
}

// AssignTo references the candidate point at index i.
func AssignTo(i int) PointRef { return PointRef{Index: i, OK: true} }

// NoAssignment leaves a queue entry unassigned.
func NoAssignment() PointRef { return PointRef{} }

// Action carries one optional point reference per queue entry, by position.
type Action []PointRef

// Observation is the edge policy input built from current queue state.
type Observation struct {
	Region          string
	PendingRequests int
	MeanWait        float64
	MaxWait         float64
	AvailableMCS    int
	TimeBin         int
	ArrivalRate     float64
	CandidatePoints []model.GeoPoint
}

type queueEntry struct {
	request  model.ChargeRequest
	waitTime int
}

type mcsUnit struct {
	location  model.GeoPoint
	available bool
}

// Env is the queueing environment of a single region.
type Env struct {
	region string
	cfg    Config
	points []model.GeoPoint

	queue    []queueEntry
	pool     []mcsUnit
	stepNum  int
	arrivals int

	log logger.Logger
}

// NewEnv builds the environment for one region. One MCS unit is created per
// dispatch point; units are never destroyed afterwards.
func NewEnv(region string, cfg Config, points []model.GeoPoint, log logger.Logger) (*Env, error) {
	if region == "" {
		return nil, fmt.Errorf("edge: empty region id")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("edge: %w", err)
	}
	if log == nil {
		log = logger.NopLogger{}
	}
	pool := make([]mcsUnit, len(points))
	for i, p := range points {
		pool[i] = mcsUnit{location: p, available: true}
	}
	return &Env{region: region, cfg: cfg, points: points, pool: pool, log: log}, nil
}

// Region returns the region id this environment simulates.
func (e *Env) Region() string { return e.region }

// AddRequest appends the request to the queue with a wait time of zero.
// When the queue is at capacity the request is dropped silently and the
// arrivals counter is left untouched.
func (e *Env) AddRequest(req model.ChargeRequest) {
	if len(e.queue) >= e.cfg.MaxQueueSize {
		requestsDropped.WithLabelValues(e.region).Inc()
		e.log.Debugw("queue full, dropping request", map[string]any{
			"region":  e.region,
			"request": req.ID,
		})
		return
	}
	e.queue = append(e.queue, queueEntry{request: req})
	e.arrivals++
	requestsEnqueued.WithLabelValues(e.region).Inc()
}

// Observe builds the current observation.
func (e *Env) Observe() Observation {
	meanWait, maxWait := e.waitStats()
	return Observation{
		Region:          e.region,
		PendingRequests: len(e.queue),
		MeanWait:        meanWait,
		MaxWait:         maxWait,
		AvailableMCS:    e.availableMCS(),
		TimeBin:         (e.stepNum / 12) % 24, // 2-hour bins at a 5-minute step
		ArrivalRate:     e.arrivalRate(),
		CandidatePoints: e.points,
	}
}

// Step advances the environment one time step. Every queue entry ages by one
// before assignments are processed, so the closing removal filter only ever
// drops entries whose wait time was reset by a successful assignment.
func (e *Env) Step(action Action) (Observation, float64, bool, map[string]float64) {
	reward := 0.0
	info := map[string]float64{}

	for i := range e.queue {
		e.queue[i].waitTime++
	}

	n := len(action)
	if len(e.queue) < n {
		n = len(e.queue)
	}
	for i := 0; i < n; i++ {
		ref := action[i]
		if !ref.OK || ref.Index < 0 || ref.Index >= len(e.points) {
			continue
		}
		entry := &e.queue[i]
		point := e.points[ref.Index]
		if geo.HaversineKm(point, entry.request.Location) > e.cfg.RegionRadiusKm {
			reward -= 0.2 // candidate too far from the request
			continue
		}
		if e.assignMCS(point) {
			reward += 1.0 - 0.01*float64(entry.waitTime)
			entry.waitTime = 0
			mcsAssignments.WithLabelValues(e.region).Inc()
		} else {
			reward -= 0.1 // no MCS available
		}
	}

	// entries reset to zero by an assignment are served and leave the queue
	kept := e.queue[:0]
	for _, entry := range e.queue {
		if entry.waitTime > 0 {
			kept = append(kept, entry)
		}
	}
	e.queue = kept
	e.stepNum++

	return e.Observe(), reward, false, info
}

// assignMCS relocates the first available unit to the target point. Units
// stay available; no cooldown or busy period is modelled.
func (e *Env) assignMCS(target model.GeoPoint) bool {
	for i := range e.pool {
		if e.pool[i].available {
			e.pool[i].location = target
			return true
		}
	}
	return false
}

// BuildSummary recomputes the statistics snapshot uploaded to the cloud
// tier. The success rate is a placeholder pending a real served/arrived
// computation.
func (e *Env) BuildSummary() model.RegionSummary {
	meanWait, _ := e.waitStats()
	return model.RegionSummary{
		Region:       e.region,
		SuccessRate:  0,
		AverageWait:  meanWait,
		ArrivalRate:  e.arrivalRate(),
		AvailableMCS: e.availableMCS(),
		QueueLength:  len(e.queue),
	}
}

// ResetWindow zeroes the arrivals counter. It is invoked by the orchestrator
// at window boundaries, never by the environment itself.
func (e *Env) ResetWindow() { e.arrivals = 0 }

func (e *Env) waitStats() (mean, max float64) {
	if len(e.queue) == 0 {
		return 0, 0
	}
	waits := make([]float64, len(e.queue))
	for i, entry := range e.queue {
		waits[i] = float64(entry.waitTime)
		if waits[i] > max {
			max = waits[i]
		}
	}
	return stat.Mean(waits, nil), max
}

func (e *Env) arrivalRate() float64 {
	den := e.stepNum
	if den < 1 {
		den = 1
	}
	return float64(e.arrivals) / float64(den)
}

func (e *Env) availableMCS() int {
	n := 0
	for _, u := range e.pool {
		if u.available {
			n++
		}
	}
	return n
}

// QueueLength reports the number of pending requests.
func (e *Env) QueueLength() int { return len(e.queue) }
