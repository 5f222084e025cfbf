// Package cloud implements the cross-region allocation environment. It owns
// one MCS allocation count per registered region and adjusts the counts by
// signed deltas, clamped at zero.
package cloud

import (
	"fmt"
	"sort"

	"github.com/edgecharge/mcsd/core/model"
)

// Observation exposes the latest region summaries to the cloud policy.
type Observation struct {
	Summaries []model.RegionSummary
}

// Action maps region ids to signed allocation deltas. Regions absent from
// the map are unaffected.
type Action map[string]int

// Env coordinates MCS allocation counts across regions.
type Env struct {
	cfg         Config
	allocations map[string]int
	stepNum     int
}

// NewEnv creates the environment with every registered region starting at
// an allocation of one unit.
func NewEnv(cfg Config, regionIDs []string) (*Env, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("cloud: %w", err)
	}
	alloc := make(map[string]int, len(regionIDs))
	for _, id := range regionIDs {
		alloc[id] = 1
	}
	return &Env{cfg: cfg, allocations: alloc}, nil
}

// Observe wraps the given summaries into the policy observation.
func (e *Env) Observe(summaries []model.RegionSummary) Observation {
	return Observation{Summaries: summaries}
}

// Step applies the allocation deltas and scores the supplied summaries.
// Every delta costs 0.1 per transferred unit; every summary contributes its
// success rate and average wait to the reward regardless of the action.
func (e *Env) Step(action Action, summaries []model.RegionSummary) (Observation, float64, bool, map[string]float64) {
	reward := 0.0
	info := map[string]float64{}

	for id, delta := range action {
		next := e.allocations[id] + delta
		if next < 0 {
			next = 0
		}
		e.allocations[id] = next
		cost := delta
		if cost < 0 {
			cost = -cost
		}
		reward -= float64(cost) * 0.1
	}

	for _, s := range summaries {
		reward += s.SuccessRate*2.0 - s.AverageWait*0.05
		info["wait_"+s.Region] = s.AverageWait
	}

	e.stepNum++
	return e.Observe(summaries), reward, false, info
}

// Allocation returns the current MCS count for the region.
func (e *Env) Allocation(region string) int { return e.allocations[region] }

// GreedyAction is the baseline heuristic: move one unit towards the region
// with the highest average wait, taken from the one with the lowest. Ties
// keep the original summary order.
func (e *Env) GreedyAction(summaries []model.RegionSummary) Action {
	return GreedyByWait(summaries, e.cfg.MaxTransferPerInterval)
}

// GreedyByWait sorts the summaries by descending average wait and grants the
// first region min(maxTransfer, 1) while the last region, when distinct,
// gives up one unit.
func GreedyByWait(summaries []model.RegionSummary, maxTransfer int) Action {
	if len(summaries) == 0 {
		return Action{}
	}
	ordered := make([]model.RegionSummary, len(summaries))
	copy(ordered, summaries)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].AverageWait > ordered[j].AverageWait
	})
	action := Action{}
	grant := 1
	if maxTransfer < grant {
		grant = maxTransfer
	}
	action[ordered[0].Region] = grant
	if last := len(ordered) - 1; last > 0 {
		action[ordered[last].Region] = -1
	}
	return action
}
