package trainer

import "fmt"

// Schedule defines the cadences of the two-tier training loop. All
// intervals are expressed in rounds.
type Schedule struct {
	// CloudUpdateEvery triggers a cloud policy update when the round is a
	// positive multiple of it.
	CloudUpdateEvery int `json:"cloud_update_every"`
	// EdgeSyncEvery triggers the edge policy updates when the round is a
	// positive multiple of it.
	EdgeSyncEvery int `json:"edge_sync_every"`
	// EvaluationInterval emits an evaluation checkpoint marker; numeric
	// evaluation is delegated to an external evaluator.
	EvaluationInterval int `json:"evaluation_interval"`
	// SaveInterval emits a save checkpoint marker; persistence is delegated
	// to an external collaborator.
	SaveInterval int `json:"save_interval"`
	// MaxIterations is the exact number of rounds the loop runs.
	MaxIterations int `json:"max_iterations"`
	// CheckpointDir is handed to the external persistence collaborator.
	CheckpointDir string `json:"checkpoint_dir"`
}

// SetDefaults applies the reference schedule.
func (s *Schedule) SetDefaults() {
	if s.CloudUpdateEvery == 0 {
		s.CloudUpdateEvery = 50
	}
	if s.EdgeSyncEvery == 0 {
		s.EdgeSyncEvery = 500
	}
	if s.EvaluationInterval == 0 {
		s.EvaluationInterval = 1000
	}
	if s.SaveInterval == 0 {
		s.SaveInterval = 2000
	}
	if s.MaxIterations == 0 {
		s.MaxIterations = 10000
	}
	if s.CheckpointDir == "" {
		s.CheckpointDir = "checkpoints"
	}
}

// Validate checks that every cadence is a positive interval.
func (s Schedule) Validate() error {
	for name, v := range map[string]int{
		"cloud_update_every":  s.CloudUpdateEvery,
		"edge_sync_every":     s.EdgeSyncEvery,
		"evaluation_interval": s.EvaluationInterval,
		"save_interval":       s.SaveInterval,
		"max_iterations":      s.MaxIterations,
	} {
		if v <= 0 {
			return fmt.Errorf("%s must be positive", name)
		}
	}
	return nil
}
