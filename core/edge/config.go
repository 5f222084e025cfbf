package edge

import "fmt"

// Config holds the per-region environment parameters together with the
// hyperparameters an externally supplied learner may consume.
type Config struct {
	// RegionRadiusKm bounds how far from a request a dispatch point may be
	// for an assignment to count as serviceable.
	RegionRadiusKm float64 `json:"region_radius_km"`
	// MaxQueueSize caps the pending request queue; excess arrivals are
	// dropped silently.
	MaxQueueSize int `json:"max_queue_size"`

	// Learner hyperparameters, passed through to external edge policies.
	ReplayBufferSize int     `json:"replay_buffer_size"`
	BatchSize        int     `json:"batch_size"`
	Gamma            float64 `json:"gamma"`
	LearningRate     float64 `json:"learning_rate"`
}

// SetDefaults applies the reference parameters.
func (c *Config) SetDefaults() {
	if c.RegionRadiusKm == 0 {
		c.RegionRadiusKm = 2
	}
	if c.MaxQueueSize == 0 {
		c.MaxQueueSize = 50
	}
	if c.ReplayBufferSize == 0 {
		c.ReplayBufferSize = 50000
	}
	if c.BatchSize == 0 {
		c.BatchSize = 128
	}
	if c.Gamma == 0 {
		c.Gamma = 0.99
	}
	if c.LearningRate == 0 {
		c.LearningRate = 3e-4
	}
}

// Validate checks mandatory fields.
func (c Config) Validate() error {
	if c.RegionRadiusKm <= 0 {
		return fmt.Errorf("region radius must be positive")
	}
	if c.MaxQueueSize <= 0 {
		return fmt.Errorf("max queue size must be positive")
	}
	return nil
}
