package trainer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/edgecharge/mcsd/core/edge"
	"github.com/edgecharge/mcsd/core/policy"
)

func TestRolloutBuffer(t *testing.T) {
	var b RolloutBuffer[edge.Observation, edge.Action]
	assert.Zero(t, b.Len())
	assert.Zero(t, b.MeanReward())

	b.Add(policy.EdgeTransition{Reward: 1.0})
	b.Add(policy.EdgeTransition{Reward: -0.2})
	b.Add(policy.EdgeTransition{Reward: 0.7})

	assert.Equal(t, 3, b.Len())
	assert.Len(t, b.Transitions(), 3)
	assert.InDelta(t, 0.5, b.MeanReward(), 1e-9)

	b.Clear()
	assert.Zero(t, b.Len())
	assert.Zero(t, b.MeanReward())
}
