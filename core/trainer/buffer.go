package trainer

import (
	"gonum.org/v1/gonum/stat"

	"github.com/edgecharge/mcsd/core/policy"
)

// RolloutBuffer accumulates the transitions of one tier between policy
// updates. It is cleared right after a successful update.
type RolloutBuffer[O, A any] struct {
	transitions []policy.Transition[O, A]
}

// Add appends a transition.
func (b *RolloutBuffer[O, A]) Add(t policy.Transition[O, A]) {
	b.transitions = append(b.transitions, t)
}

// Transitions returns the buffered transitions without copying.
func (b *RolloutBuffer[O, A]) Transitions() []policy.Transition[O, A] {
	return b.transitions
}

// Len reports the number of buffered transitions.
func (b *RolloutBuffer[O, A]) Len() int { return len(b.transitions) }

// Clear drops all buffered transitions.
func (b *RolloutBuffer[O, A]) Clear() { b.transitions = b.transitions[:0] }

// MeanReward computes the average reward over the buffered transitions,
// zero when empty.
func (b *RolloutBuffer[O, A]) MeanReward() float64 {
	if len(b.transitions) == 0 {
		return 0
	}
	rewards := make([]float64, len(b.transitions))
	for i, t := range b.transitions {
		rewards[i] = t.Reward
	}
	return stat.Mean(rewards, nil)
}
