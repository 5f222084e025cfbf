package cloud

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edgecharge/mcsd/core/model"
)

func testConfig() Config {
	cfg := Config{}
	cfg.SetDefaults()
	return cfg
}

func newTestEnv(t *testing.T, regions ...string) *Env {
	t.Helper()
	env, err := NewEnv(testConfig(), regions)
	require.NoError(t, err)
	return env
}

func TestNewEnvInitialAllocation(t *testing.T) {
	env := newTestEnv(t, "a", "b")
	assert.Equal(t, 1, env.Allocation("a"))
	assert.Equal(t, 1, env.Allocation("b"))
}

func TestStepAppliesDeltasAndCost(t *testing.T) {
	env := newTestEnv(t, "a", "b")
	_, reward, done, _ := env.Step(Action{"a": 3, "b": -1}, nil)
	assert.Equal(t, 4, env.Allocation("a"))
	assert.Equal(t, 0, env.Allocation("b"))
	assert.InDelta(t, -0.4, reward, 1e-9) // |3|*0.1 + |-1|*0.1
	assert.False(t, done)
}

func TestStepClampsAllocationAtZero(t *testing.T) {
	env := newTestEnv(t, "a")
	_, reward, _, _ := env.Step(Action{"a": -5}, nil)
	assert.Equal(t, 0, env.Allocation("a"))
	assert.InDelta(t, -0.5, reward, 1e-9) // cost still charged for the full delta
}

func TestStepScoresSummaries(t *testing.T) {
	env := newTestEnv(t, "a", "b")
	summaries := []model.RegionSummary{
		{Region: "a", SuccessRate: 0.5, AverageWait: 10},
		{Region: "b", SuccessRate: 0, AverageWait: 2},
	}
	obs, reward, _, info := env.Step(Action{}, summaries)
	// 0.5*2 - 10*0.05 - 2*0.05
	assert.InDelta(t, 0.4, reward, 1e-9)
	assert.Equal(t, 10.0, info["wait_a"])
	assert.Equal(t, 2.0, info["wait_b"])
	assert.Equal(t, summaries, obs.Summaries)

	// regions without a delta keep their allocation
	assert.Equal(t, 1, env.Allocation("a"))
	assert.Equal(t, 1, env.Allocation("b"))
}

func TestAllocationNeverNegative(t *testing.T) {
	env := newTestEnv(t, "a")
	for _, delta := range []int{-3, 2, -10, -1, 5, -100} {
		env.Step(Action{"a": delta}, nil)
		assert.GreaterOrEqual(t, env.Allocation("a"), 0)
	}
}

func TestGreedyAction(t *testing.T) {
	env := newTestEnv(t, "A", "B", "C")
	summaries := []model.RegionSummary{
		{Region: "A", AverageWait: 10},
		{Region: "B", AverageWait: 1},
		{Region: "C", AverageWait: 5},
	}
	action := env.GreedyAction(summaries)
	assert.Equal(t, Action{"A": 1, "B": -1}, action)
}

func TestGreedyActionEmpty(t *testing.T) {
	env := newTestEnv(t)
	assert.Empty(t, env.GreedyAction(nil))
}

func TestGreedyActionSingleRegion(t *testing.T) {
	action := GreedyByWait([]model.RegionSummary{{Region: "only", AverageWait: 3}}, 5)
	assert.Equal(t, Action{"only": 1}, action)
}

func TestGreedyActionStableTies(t *testing.T) {
	// equal waits keep the original relative order
	action := GreedyByWait([]model.RegionSummary{
		{Region: "first", AverageWait: 2},
		{Region: "second", AverageWait: 2},
		{Region: "third", AverageWait: 2},
	}, 1)
	assert.Equal(t, Action{"first": 1, "third": -1}, action)
}

func TestNewEnvInvalidConfig(t *testing.T) {
	_, err := NewEnv(Config{AllocationInterval: -1}, nil)
	assert.Error(t, err)
}
