package cloud

import "fmt"

// Config holds cross-region allocation parameters together with the
// hyperparameters an externally supplied learner may consume.
type Config struct {
	// AllocationInterval is the number of edge rounds between cloud
	// rollouts, e.g. hourly when the edge step is five minutes.
	AllocationInterval int `json:"allocation_interval"`
	// MaxTransferPerInterval caps the MCS units moved towards a region in
	// one allocation decision.
	MaxTransferPerInterval int `json:"max_transfer_per_interval"`

	// Learner hyperparameters, passed through to external cloud policies.
	PPOClip      float64 `json:"ppo_clip"`
	EntropyCoeff float64 `json:"entropy_coeff"`
	ValueCoeff   float64 `json:"value_coeff"`
	LearningRate float64 `json:"learning_rate"`
	Gamma        float64 `json:"gamma"`
	GAELambda    float64 `json:"gae_lambda"`
}

// SetDefaults applies the reference parameters.
func (c *Config) SetDefaults() {
	if c.AllocationInterval == 0 {
		c.AllocationInterval = 12
	}
	if c.MaxTransferPerInterval == 0 {
		c.MaxTransferPerInterval = 5
	}
	if c.PPOClip == 0 {
		c.PPOClip = 0.2
	}
	if c.EntropyCoeff == 0 {
		c.EntropyCoeff = 0.01
	}
	if c.ValueCoeff == 0 {
		c.ValueCoeff = 0.5
	}
	if c.LearningRate == 0 {
		c.LearningRate = 1e-4
	}
	if c.Gamma == 0 {
		c.Gamma = 0.95
	}
	if c.GAELambda == 0 {
		c.GAELambda = 0.95
	}
}

// Validate checks mandatory fields.
func (c Config) Validate() error {
	if c.AllocationInterval <= 0 {
		return fmt.Errorf("allocation interval must be positive")
	}
	if c.MaxTransferPerInterval <= 0 {
		return fmt.Errorf("max transfer per interval must be positive")
	}
	return nil
}
