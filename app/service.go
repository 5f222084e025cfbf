// Package app assembles the simulation service: region boundaries, edge
// environments, the cloud environment and the training loop.
package app

import (
	"context"
	"fmt"

	"github.com/edgecharge/mcsd/config"
	"github.com/edgecharge/mcsd/core/cloud"
	"github.com/edgecharge/mcsd/core/edge"
	"github.com/edgecharge/mcsd/core/ev"
	"github.com/edgecharge/mcsd/core/geo"
	coremetrics "github.com/edgecharge/mcsd/core/metrics"
	"github.com/edgecharge/mcsd/core/policy"
	"github.com/edgecharge/mcsd/core/trainer"
	"github.com/edgecharge/mcsd/infra/dataset"
	"github.com/edgecharge/mcsd/infra/logger"
	"github.com/edgecharge/mcsd/infra/metrics"
	"github.com/edgecharge/mcsd/internal/eventbus"
)

// Service owns the wired simulation and its collaborators.
type Service struct {
	Trainer *trainer.Trainer

	cfg    *config.Config
	engine *ev.Engine
	index  *geo.Index
	sink   coremetrics.MetricsSink
	bus    *eventbus.Bus
	log    logger.Logger
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	logg := logger.New("service")

	regions, err := dataset.LoadRegions(cfg.Simulation.RegionsPath)
	if err != nil {
		return nil, fmt.Errorf("load regions: %w", err)
	}
	regions = selectRegions(regions, cfg.Simulation.RegionIDs)
	if len(regions) == 0 {
		return nil, fmt.Errorf("no regions selected")
	}
	index, err := geo.NewIndex(regions)
	if err != nil {
		return nil, fmt.Errorf("region index: %w", err)
	}

	points, err := dataset.LoadDispatchPoints(cfg.Simulation.DispatchPointsPath)
	if err != nil {
		return nil, fmt.Errorf("load dispatch points: %w", err)
	}

	sink, err := coremetrics.NewMetricsSink(cfg.Metrics.Sinks)
	if err != nil {
		return nil, fmt.Errorf("metrics sink: %w", err)
	}
	bus := eventbus.New()

	cloudEnv, err := cloud.NewEnv(cfg.Cloud, index.RegionIDs())
	if err != nil {
		return nil, err
	}
	tr, err := trainer.New(cfg.Schedule, cfg.Cloud, cloudEnv,
		policy.GreedyWaitPolicy{MaxTransfer: cfg.Cloud.MaxTransferPerInterval},
		logg, sink, bus)
	if err != nil {
		return nil, err
	}
	for _, id := range index.RegionIDs() {
		env, err := edge.NewEnv(id, cfg.Edge, dataset.RegionDispatchPoints(points, id), logger.New("edge-"+id))
		if err != nil {
			return nil, fmt.Errorf("edge env %s: %w", id, err)
		}
		if err := tr.RegisterRegion(id, env, policy.FirstCandidatePolicy{}); err != nil {
			return nil, err
		}
	}

	engine, err := ev.NewEngine(cfg.EV)
	if err != nil {
		return nil, err
	}

	return &Service{
		Trainer: tr,
		cfg:     cfg,
		engine:  engine,
		index:   index,
		sink:    sink,
		bus:     bus,
		log:     logg,
	}, nil
}

// Run seeds the region queues from the trajectory dataset and executes the
// training loop until it completes or the context is cancelled.
func (s *Service) Run(ctx context.Context) error {
	if s.promConfigured() {
		go func() {
			if err := metrics.StartPromServer(ctx, s.cfg.Metrics.PrometheusPort); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}

	trajectories, err := dataset.LoadTrajectories(s.cfg.Simulation.TrajectoryRoot, s.cfg.Simulation.RegionIDs)
	if err != nil {
		return fmt.Errorf("load trajectories: %w", err)
	}
	s.log.Infof("loaded %d trajectories from %s", len(trajectories), s.cfg.Simulation.TrajectoryRoot)

	stream, err := s.engine.Stream(trajectories, s.index)
	if err != nil {
		return err
	}
	routed, unroutable := 0, 0
	for stream.Next() {
		req := stream.Request()
		env := s.Trainer.Env(req.Region)
		if !req.Routed() || env == nil {
			// region lookup miss: the request is discarded, counted for
			// observability only
			unroutableRequests.Inc()
			unroutable++
			s.log.Debugw("unroutable request", map[string]any{
				"request": req.ID,
				"vehicle": req.VehicleID,
			})
			continue
		}
		env.AddRequest(req)
		routed++
	}
	if err := stream.Err(); err != nil {
		return fmt.Errorf("request stream: %w", err)
	}
	s.log.Infof("seeded queues with %d requests (%d unroutable)", routed, unroutable)

	return s.Trainer.Train(ctx)
}

// Close releases resources held by the service.
func (s *Service) Close() error {
	s.bus.Close()
	if c, ok := s.sink.(interface{ Close() }); ok {
		c.Close()
	}
	return nil
}

func (s *Service) promConfigured() bool {
	if s.cfg.Metrics.PrometheusPort == "" {
		return false
	}
	for _, m := range s.cfg.Metrics.Sinks {
		if m.Type == "prom" {
			return true
		}
	}
	return false
}

// selectRegions keeps the boundary file order while restricting to the
// requested ids.
func selectRegions(regions []geo.Region, ids []string) []geo.Region {
	if len(ids) == 0 {
		return regions
	}
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	var out []geo.Region
	for _, r := range regions {
		if want[r.ID] {
			out = append(out, r)
		}
	}
	return out
}
