// Package metrics defines the observability capability set of the
// simulation. Sinks record region summaries and can optionally record edge
// step and policy update events; multiple sinks are combined with
// NewMultiSink. The factory helpers build sinks from configuration.
package metrics

import (
	"github.com/edgecharge/mcsd/core/model"
)

// MetricsSink records region summaries for observability purposes.
type MetricsSink interface {
	RecordRegionSummaries(summaries []model.RegionSummary) error
}

// EdgeStepEvent captures the outcome of one region environment step.
type EdgeStepEvent struct {
	Region      string
	Round       int
	Reward      float64
	QueueLength int
}

// EdgeStepRecorder records edge environment steps.
type EdgeStepRecorder interface {
	RecordEdgeStep(ev EdgeStepEvent) error
}

// PolicyUpdateEvent captures the metrics returned by a policy update.
type PolicyUpdateEvent struct {
	Tier      string // "edge" or "cloud"
	Region    string // empty for the cloud tier
	Round     int
	BatchSize int
	Metrics   map[string]float64
}

// PolicyUpdateRecorder records policy update outcomes.
type PolicyUpdateRecorder interface {
	RecordPolicyUpdate(ev PolicyUpdateEvent) error
}

// NopSink implements MetricsSink with no-op methods.
type NopSink struct{}

func (NopSink) RecordRegionSummaries([]model.RegionSummary) error { return nil }
func (NopSink) RecordEdgeStep(EdgeStepEvent) error                { return nil }
func (NopSink) RecordPolicyUpdate(PolicyUpdateEvent) error        { return nil }

// MultiSink fans records out to multiple sinks.
type MultiSink struct {
	Sinks []MetricsSink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...MetricsSink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordRegionSummaries forwards the summaries to all sinks, returning the
// first error encountered.
func (m *MultiSink) RecordRegionSummaries(summaries []model.RegionSummary) error {
	for _, s := range m.Sinks {
		if err := s.RecordRegionSummaries(summaries); err != nil {
			return err
		}
	}
	return nil
}

// RecordEdgeStep forwards the event to sinks implementing EdgeStepRecorder.
func (m *MultiSink) RecordEdgeStep(ev EdgeStepEvent) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(EdgeStepRecorder); ok {
			if err := rec.RecordEdgeStep(ev); err != nil {
				return err
			}
		}
	}
	return nil
}

// RecordPolicyUpdate forwards the event to sinks implementing
// PolicyUpdateRecorder.
func (m *MultiSink) RecordPolicyUpdate(ev PolicyUpdateEvent) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(PolicyUpdateRecorder); ok {
			if err := rec.RecordPolicyUpdate(ev); err != nil {
				return err
			}
		}
	}
	return nil
}
