package ev

import "fmt"

// Config holds energy consumption and charge request parameters for the
// simulated vehicles.
type Config struct {
	// EnergyKWhPerKm is the energy drawn per kilometer travelled.
	EnergyKWhPerKm float64 `json:"energy_kwh_per_km"`
	// SoCThreshold is the state of charge at or below which a vehicle
	// requests charging.
	SoCThreshold float64 `json:"soc_threshold"`
	// BatteryCapacityKWh is the usable battery capacity.
	BatteryCapacityKWh float64 `json:"battery_capacity_kwh"`
	// TimestepMinutes is the sampling interval of trajectory points.
	TimestepMinutes int `json:"timestep_minutes"`
}

// SetDefaults applies the reference vehicle parameters.
func (c *Config) SetDefaults() {
	if c.EnergyKWhPerKm == 0 {
		c.EnergyKWhPerKm = 0.18
	}
	if c.SoCThreshold == 0 {
		c.SoCThreshold = 0.2
	}
	if c.BatteryCapacityKWh == 0 {
		c.BatteryCapacityKWh = 80
	}
	if c.TimestepMinutes == 0 {
		c.TimestepMinutes = 5
	}
}

// Validate checks that the configuration is physically sound.
func (c Config) Validate() error {
	if c.BatteryCapacityKWh <= 0 {
		return fmt.Errorf("battery capacity must be positive")
	}
	if c.EnergyKWhPerKm < 0 {
		return fmt.Errorf("energy per km must not be negative")
	}
	if c.SoCThreshold < 0 || c.SoCThreshold > 1 {
		return fmt.Errorf("soc threshold must be within [0,1]")
	}
	return nil
}
