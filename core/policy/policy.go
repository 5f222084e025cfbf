// Package policy defines the decision capability contracts for the two
// control tiers and ships the heuristic baselines. Learned implementations
// are supplied externally; they only need to satisfy the interfaces.
package policy

import (
	"github.com/edgecharge/mcsd/core/cloud"
	"github.com/edgecharge/mcsd/core/edge"
)

// Transition is one buffered rollout step of either tier.
type Transition[O, A any] struct {
	Obs    O
	Action A
	Reward float64
	NewObs O
	Done   bool
	Info   map[string]float64
}

// EdgeTransition is a buffered transition of a region environment.
type EdgeTransition = Transition[edge.Observation, edge.Action]

// CloudTransition is a buffered transition of the allocation environment.
type CloudTransition = Transition[cloud.Observation, cloud.Action]

// EdgePolicy decides dispatch point assignments for one region. Act must be
// a pure function of the observation.
type EdgePolicy interface {
	Act(obs edge.Observation) edge.Action
	Update(batch []EdgeTransition) (map[string]float64, error)
}

// CloudPolicy decides cross-region allocation deltas. Act must be a pure
// function of the observation.
type CloudPolicy interface {
	Act(obs cloud.Observation) cloud.Action
	Update(batch []CloudTransition) (map[string]float64, error)
}
