// Package events defines the training related events emitted on the event
// bus.
//
// Available event types:
//   - CheckpointEvent: evaluation or save checkpoint marker
//   - PolicyUpdateEvent: completed policy update of either tier
package events

// CheckpointKind distinguishes the checkpoint markers emitted by the
// training loop.
type CheckpointKind string

const (
	// CheckpointEval marks an evaluation boundary; numeric evaluation is
	// delegated to an external evaluator.
	CheckpointEval CheckpointKind = "eval"
	// CheckpointSave marks a persistence boundary; writing model state is
	// delegated to an external collaborator.
	CheckpointSave CheckpointKind = "save"
)

// CheckpointEvent is emitted when the training loop reaches an evaluation
// or save interval.
type CheckpointEvent struct {
	Kind  CheckpointKind
	Round int
}

// PolicyUpdateEvent is emitted after a policy update completes.
type PolicyUpdateEvent struct {
	Tier    string // "edge" or "cloud"
	Region  string // empty for the cloud tier
	Round   int
	Metrics map[string]float64
}
