// Package trainer drives the two-tier rollout/update loop: every round each
// region performs one edge rollout, the cloud tier samples at its own
// allocation cadence and both tiers are updated at independent intervals.
package trainer

import (
	"context"
	"fmt"

	"github.com/edgecharge/mcsd/core/cloud"
	"github.com/edgecharge/mcsd/core/edge"
	"github.com/edgecharge/mcsd/core/events"
	"github.com/edgecharge/mcsd/core/logger"
	"github.com/edgecharge/mcsd/core/metrics"
	"github.com/edgecharge/mcsd/core/model"
	"github.com/edgecharge/mcsd/core/policy"
	"github.com/edgecharge/mcsd/internal/eventbus"
)

type region struct {
	id     string
	env    *edge.Env
	policy policy.EdgePolicy
	buffer RolloutBuffer[edge.Observation, edge.Action]
}

// Trainer coordinates edge and cloud sampling and updates with the given
// policies. Regions roll out in registration order.
type Trainer struct {
	schedule Schedule
	cloudCfg cloud.Config

	regions []*region
	byID    map[string]*region

	cloudEnv    *cloud.Env
	cloudPolicy policy.CloudPolicy
	cloudBuffer RolloutBuffer[cloud.Observation, cloud.Action]

	log  logger.Logger
	sink metrics.MetricsSink
	bus  eventbus.EventBus
}

// New creates a Trainer. The metrics sink and event bus are optional; the
// logger falls back to a no-op implementation when nil.
func New(schedule Schedule, cloudCfg cloud.Config, cloudEnv *cloud.Env, cloudPolicy policy.CloudPolicy, log logger.Logger, sink metrics.MetricsSink, bus eventbus.EventBus) (*Trainer, error) {
	if cloudEnv == nil || cloudPolicy == nil {
		return nil, fmt.Errorf("trainer: nil cloud environment or policy")
	}
	if err := schedule.Validate(); err != nil {
		return nil, fmt.Errorf("trainer: %w", err)
	}
	if err := cloudCfg.Validate(); err != nil {
		return nil, fmt.Errorf("trainer: %w", err)
	}
	if log == nil {
		log = logger.NopLogger{}
	}
	if sink == nil {
		sink = metrics.NopSink{}
	}
	return &Trainer{
		schedule:    schedule,
		cloudCfg:    cloudCfg,
		byID:        make(map[string]*region),
		cloudEnv:    cloudEnv,
		cloudPolicy: cloudPolicy,
		log:         log,
		sink:        sink,
		bus:         bus,
	}, nil
}

// RegisterRegion attaches an edge environment and its policy to the loop.
// Registration order defines the rollout order within a round.
func (t *Trainer) RegisterRegion(id string, env *edge.Env, pol policy.EdgePolicy) error {
	if id == "" || env == nil || pol == nil {
		return fmt.Errorf("trainer: invalid region registration")
	}
	if _, ok := t.byID[id]; ok {
		return fmt.Errorf("trainer: region %s already registered", id)
	}
	r := &region{id: id, env: env, policy: pol}
	t.regions = append(t.regions, r)
	t.byID[id] = r
	return nil
}

// Env returns the registered environment for the region, or nil.
func (t *Trainer) Env(id string) *edge.Env {
	if r, ok := t.byID[id]; ok {
		return r.env
	}
	return nil
}

// Train runs exactly MaxIterations rounds unless the context is cancelled.
// There is no early-stopping criterion; a failing policy update aborts the
// run.
func (t *Trainer) Train(ctx context.Context) error {
	t.log.Infof("starting training for %d iterations over %d regions", t.schedule.MaxIterations, len(t.regions))
	for round := 0; round < t.schedule.MaxIterations; round++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		for _, r := range t.regions {
			t.edgeRollout(r, round)
		}
		if round%t.cloudCfg.AllocationInterval == 0 {
			t.cloudRollout(round)
		}

		if round > 0 && round%t.schedule.CloudUpdateEvery == 0 {
			if err := t.updateCloud(round); err != nil {
				return err
			}
		}
		if round > 0 && round%t.schedule.EdgeSyncEvery == 0 {
			if err := t.updateEdges(round); err != nil {
				return err
			}
		}

		if round > 0 && round%t.schedule.EvaluationInterval == 0 {
			t.checkpoint(events.CheckpointEval, round)
		}
		if round > 0 && round%t.schedule.SaveInterval == 0 {
			t.checkpoint(events.CheckpointSave, round)
		}
	}
	return nil
}

// edgeRollout performs one observe/act/step cycle on the region and buffers
// the transition.
func (t *Trainer) edgeRollout(r *region, round int) {
	obs := r.env.Observe()
	action := r.policy.Act(obs)
	newObs, reward, done, info := r.env.Step(action)
	r.buffer.Add(policy.EdgeTransition{Obs: obs, Action: action, Reward: reward, NewObs: newObs, Done: done, Info: info})
	if rec, ok := t.sink.(metrics.EdgeStepRecorder); ok {
		if err := rec.RecordEdgeStep(metrics.EdgeStepEvent{Region: r.id, Round: round, Reward: reward, QueueLength: newObs.PendingRequests}); err != nil {
			t.log.Warnf("record edge step: %v", err)
		}
	}
}

// cloudRollout collects a fresh summary from every region, samples the
// cloud policy once and resets the arrival windows. Summaries follow the
// region registration order.
func (t *Trainer) cloudRollout(round int) {
	summaries := make([]model.RegionSummary, len(t.regions))
	for i, r := range t.regions {
		summaries[i] = r.env.BuildSummary()
	}
	obs := t.cloudEnv.Observe(summaries)
	action := t.cloudPolicy.Act(obs)
	newObs, reward, done, info := t.cloudEnv.Step(action, summaries)
	t.cloudBuffer.Add(policy.CloudTransition{Obs: obs, Action: action, Reward: reward, NewObs: newObs, Done: done, Info: info})
	if err := t.sink.RecordRegionSummaries(summaries); err != nil {
		t.log.Warnf("record summaries: %v", err)
	}
	for _, r := range t.regions {
		r.env.ResetWindow()
	}
	t.log.Debugw("cloud rollout", map[string]any{"round": round, "reward": reward})
}

func (t *Trainer) updateCloud(round int) error {
	batch := t.cloudBuffer.Transitions()
	m, err := t.cloudPolicy.Update(batch)
	if err != nil {
		return fmt.Errorf("trainer: cloud policy update at round %d: %w", round, err)
	}
	t.log.Debugw("cloud policy update", map[string]any{
		"round":       round,
		"batch":       len(batch),
		"mean_reward": t.cloudBuffer.MeanReward(),
		"metrics":     m,
	})
	t.recordUpdate("cloud", "", round, len(batch), m)
	t.cloudBuffer.Clear()
	return nil
}

func (t *Trainer) updateEdges(round int) error {
	for _, r := range t.regions {
		batch := r.buffer.Transitions()
		m, err := r.policy.Update(batch)
		if err != nil {
			return fmt.Errorf("trainer: edge policy update for %s at round %d: %w", r.id, round, err)
		}
		t.log.Debugw("edge policy update", map[string]any{
			"round":       round,
			"region":      r.id,
			"batch":       len(batch),
			"mean_reward": r.buffer.MeanReward(),
			"metrics":     m,
		})
		t.recordUpdate("edge", r.id, round, len(batch), m)
		r.buffer.Clear()
	}
	return nil
}

func (t *Trainer) recordUpdate(tier, regionID string, round, batch int, m map[string]float64) {
	if rec, ok := t.sink.(metrics.PolicyUpdateRecorder); ok {
		if err := rec.RecordPolicyUpdate(metrics.PolicyUpdateEvent{Tier: tier, Region: regionID, Round: round, BatchSize: batch, Metrics: m}); err != nil {
			t.log.Warnf("record policy update: %v", err)
		}
	}
	if t.bus != nil {
		t.bus.Publish(events.PolicyUpdateEvent{Tier: tier, Region: regionID, Round: round, Metrics: m})
	}
}

func (t *Trainer) checkpoint(kind events.CheckpointKind, round int) {
	t.log.Infof("%s checkpoint at round %d", kind, round)
	if t.bus != nil {
		t.bus.Publish(events.CheckpointEvent{Kind: kind, Round: round})
	}
}
