package model

// RegionSummary is the statistics snapshot a region environment uploads to
// the cloud tier. It is recomputed from current state on every call and is
// not persisted across windows.
type RegionSummary struct {
	Region       string             `json:"region"`
	SuccessRate  float64            `json:"success_rate"`
	AverageWait  float64            `json:"average_wait"`
	ArrivalRate  float64            `json:"arrival_rate"`
	AvailableMCS int                `json:"available_mcs"`
	QueueLength  int                `json:"queue_length"`
	ExtraMetrics map[string]float64 `json:"extra_metrics,omitempty"`
}
