package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/edgecharge/mcsd/core/cloud"
	"github.com/edgecharge/mcsd/core/edge"
	"github.com/edgecharge/mcsd/core/model"
)

func TestFirstCandidatePolicyAct(t *testing.T) {
	pol := FirstCandidatePolicy{}
	obs := edge.Observation{
		PendingRequests: 3,
		CandidatePoints: []model.GeoPoint{{Lon: 1, Lat: 1}, {Lon: 2, Lat: 2}},
	}
	action := pol.Act(obs)
	assert.Len(t, action, 3)
	for _, ref := range action {
		assert.Equal(t, edge.AssignTo(0), ref)
	}
}

func TestFirstCandidatePolicyActNoCandidates(t *testing.T) {
	pol := FirstCandidatePolicy{}
	action := pol.Act(edge.Observation{PendingRequests: 2})
	assert.Len(t, action, 2)
	for _, ref := range action {
		assert.False(t, ref.OK)
	}
}

func TestFirstCandidatePolicyUpdate(t *testing.T) {
	m, err := FirstCandidatePolicy{}.Update(nil)
	assert.NoError(t, err)
	assert.Contains(t, m, "loss")
}

func TestGreedyWaitPolicyAct(t *testing.T) {
	pol := GreedyWaitPolicy{MaxTransfer: 5}
	obs := cloud.Observation{Summaries: []model.RegionSummary{
		{Region: "A", AverageWait: 10},
		{Region: "B", AverageWait: 1},
		{Region: "C", AverageWait: 5},
	}}
	assert.Equal(t, cloud.Action{"A": 1, "B": -1}, pol.Act(obs))
}

func TestGreedyWaitPolicyActEmpty(t *testing.T) {
	pol := GreedyWaitPolicy{}
	assert.Empty(t, pol.Act(cloud.Observation{}))
}
