package policy

import (
	"github.com/edgecharge/mcsd/core/cloud"
	"github.com/edgecharge/mcsd/core/edge"
)

// FirstCandidatePolicy is the edge baseline: every pending request is sent
// to the first candidate dispatch point. It stands in for RL inference.
type FirstCandidatePolicy struct{}

// Act selects one point reference per pending request.
func (FirstCandidatePolicy) Act(obs edge.Observation) edge.Action {
	action := make(edge.Action, obs.PendingRequests)
	for i := range action {
		if len(obs.CandidatePoints) == 0 {
			action[i] = edge.NoAssignment()
			continue
		}
		action[i] = edge.AssignTo(0)
	}
	return action
}

// Update is a no-op for the heuristic baseline.
func (FirstCandidatePolicy) Update([]EdgeTransition) (map[string]float64, error) {
	return map[string]float64{"loss": 0}, nil
}

// GreedyWaitPolicy is the cloud baseline: shift one MCS unit from the
// region with the lowest average wait towards the one with the highest.
type GreedyWaitPolicy struct {
	// MaxTransfer caps the units granted to the highest-wait region.
	MaxTransfer int
}

// Act applies the greedy-by-wait heuristic to the latest summaries.
func (p GreedyWaitPolicy) Act(obs cloud.Observation) cloud.Action {
	maxTransfer := p.MaxTransfer
	if maxTransfer <= 0 {
		maxTransfer = 1
	}
	return cloud.GreedyByWait(obs.Summaries, maxTransfer)
}

// Update is a no-op for the heuristic baseline.
func (GreedyWaitPolicy) Update([]CloudTransition) (map[string]float64, error) {
	return map[string]float64{"loss": 0}, nil
}
